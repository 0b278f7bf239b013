package legend

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/engine/label"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
)

// Default legend texts.
const (
	DefaultTitle    = "Ontography — Color Key"
	DefaultEdgeNote = "Thin gray lines = weak ties (contact/dependency/flow). Not causal or hierarchical."
	DefaultTip      = "Tip: hover a node to highlight its ties. Click a legend row to spotlight a category."
)

// Row is one entry of the color key.
type Row struct {
	Category ontology.CategoryKey
	Color    common.Color
	Meaning  string
}

// HitKind says what a pointer position landed on.
type HitKind int

const (
	HitNone HitKind = iota
	HitToggle
	HitRow
	HitPanel
)

// Hit is the result of a legend hit test.
type Hit struct {
	Kind     HitKind
	Category ontology.CategoryKey
}

// Metrics sizes the legend panel in pixels.
type Metrics struct {
	Margin      int
	Width       int
	Padding     int
	TitleHeight int
	RowHeight   int
	LineHeight  int
	Swatch      int
	ToggleW     int
	ToggleH     int
}

// DefaultMetrics places a 340 pixel wide panel in the top left corner.
var DefaultMetrics = Metrics{
	Margin:      12,
	Width:       340,
	Padding:     10,
	TitleHeight: 24,
	RowHeight:   40,
	LineHeight:  16,
	Swatch:      14,
	ToggleW:     52,
	ToggleH:     20,
}

// RowLayout positions one row.
type RowLayout struct {
	Row
	Rect   common.Rect
	Swatch common.Rect
}

// Layout is the resolved geometry of the legend for drawing and hit testing.
type Layout struct {
	Panel      common.Rect
	Title      common.Rect
	Toggle     common.Rect
	Rows       []RowLayout
	Footer     []string
	FooterTop  int
	LineHeight int
}

// Legend is the UI state of the color key: its rows, texts and visibility.
// Visibility only affects the panel, never the scene.
type Legend interface {
	// Rows returns the color key rows in display order.
	Rows() []Row

	// Title returns the panel title.
	Title() string

	// Visible reports whether the rows and notes are shown.
	Visible() bool

	// ToggleVisibility flips visibility.
	//
	// Returns:
	//   - bool: the new visibility
	ToggleVisibility() bool

	// ButtonText returns the toggle button caption: "Hide" while visible, "Show" while hidden.
	ButtonText() string

	// Layout resolves the panel geometry for the current visibility.
	Layout() Layout

	// HitTest resolves a pointer position in viewport pixels against the current layout.
	//
	// Parameters:
	//   - x, y: pointer position
	//
	// Returns:
	//   - Hit: what was hit
	HitTest(x, y int) Hit
}

type legendImpl struct {
	mu       *sync.Mutex
	rows     []Row
	title    string
	edgeNote string
	tip      string
	visible  bool
	metrics  Metrics
	measurer label.Measurer
}

var _ Legend = &legendImpl{}

// NewLegend creates a new, visible Legend listing the dataset's categories in order.
//
// Parameters:
//   - ds: the dataset whose style table forms the rows
//   - options: functional options
//
// Returns:
//   - Legend: the legend
func NewLegend(ds *ontology.Dataset, options ...LegendBuilderOption) Legend {
	l := &legendImpl{
		mu:       &sync.Mutex{},
		title:    DefaultTitle,
		edgeNote: DefaultEdgeNote,
		tip:      DefaultTip,
		visible:  true,
		metrics:  DefaultMetrics,
		measurer: label.MeasureFunc(func(s string) int { return 7 * len([]rune(s)) }),
	}
	for _, c := range ds.Categories {
		l.rows = append(l.rows, Row{Category: c.Key, Color: c.Style.Color, Meaning: c.Style.Meaning})
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *legendImpl) Rows() []Row {
	return append([]Row(nil), l.rows...)
}

func (l *legendImpl) Title() string {
	return l.title
}

func (l *legendImpl) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visible
}

func (l *legendImpl) ToggleVisibility() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visible = !l.visible
	return l.visible
}

func (l *legendImpl) ButtonText() string {
	if l.Visible() {
		return "Hide"
	}
	return "Show"
}

func (l *legendImpl) Layout() Layout {
	m := l.metrics
	left, top := m.Margin, m.Margin
	right := left + m.Width
	inner := m.Width - 2*m.Padding

	lay := Layout{LineHeight: m.LineHeight}
	y := top + m.Padding
	lay.Title = common.Rect{MinX: left + m.Padding, MinY: y, MaxX: right - m.Padding - m.ToggleW, MaxY: y + m.TitleHeight}
	ty := y + (m.TitleHeight-m.ToggleH)/2
	lay.Toggle = common.Rect{MinX: right - m.Padding - m.ToggleW, MinY: ty, MaxX: right - m.Padding, MaxY: ty + m.ToggleH}
	y += m.TitleHeight

	if l.Visible() {
		for _, r := range l.rows {
			rect := common.Rect{MinX: left + m.Padding, MinY: y, MaxX: right - m.Padding, MaxY: y + m.RowHeight}
			sy := y + (m.LineHeight-m.Swatch)/2 + 4
			lay.Rows = append(lay.Rows, RowLayout{
				Row:    r,
				Rect:   rect,
				Swatch: common.Rect{MinX: rect.MinX, MinY: sy, MaxX: rect.MinX + m.Swatch, MaxY: sy + m.Swatch},
			})
			y += m.RowHeight
		}
		y += m.Padding / 2
		lay.FooterTop = y
		for _, text := range []string{l.edgeNote, l.tip} {
			lay.Footer = append(lay.Footer, label.Wrap(text, inner, l.measurer)...)
		}
		y += len(lay.Footer) * m.LineHeight
	}

	lay.Panel = common.Rect{MinX: left, MinY: top, MaxX: right, MaxY: y + m.Padding}
	return lay
}

func (l *legendImpl) HitTest(x, y int) Hit {
	lay := l.Layout()
	if !lay.Panel.Contains(x, y) {
		return Hit{Kind: HitNone}
	}
	if lay.Toggle.Contains(x, y) {
		return Hit{Kind: HitToggle}
	}
	for _, r := range lay.Rows {
		if r.Rect.Contains(x, y) {
			return Hit{Kind: HitRow, Category: r.Category}
		}
	}
	return Hit{Kind: HitPanel}
}
