// Package viewer ties the scene, camera, picking and legend together into one interactive frame step.
package viewer

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/config"
	"github.com/Carmen-Shannon/oxy-ontography/engine/camera"
	"github.com/Carmen-Shannon/oxy-ontography/engine/label"
	"github.com/Carmen-Shannon/oxy-ontography/engine/layout"
	"github.com/Carmen-Shannon/oxy-ontography/engine/legend"
	"github.com/Carmen-Shannon/oxy-ontography/engine/overlay"
	"github.com/Carmen-Shannon/oxy-ontography/engine/picking"
	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer"
	"github.com/Carmen-Shannon/oxy-ontography/engine/scene"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
)

// Viewer is the interactive ontography: it owns the scene and its controllers and turns input into frames.
// Input methods may be called from the window thread while Frame runs on the render goroutine.
type Viewer interface {
	// PointerMoved tracks the single pointer. While a drag is active the movement orbits the camera.
	//
	// Parameters:
	//   - x, y: pointer position in viewport pixels, origin top left
	PointerMoved(x, y float32)

	// PointerLeft forgets the pointer when it leaves the window, so nothing stays hovered and any drag ends.
	PointerLeft()

	// PointerPressed handles a button press. A left press on the legend toggle or a legend row is consumed
	// by the legend; a left press anywhere outside the panel starts an orbit drag.
	//
	// Parameters:
	//   - button: the mouse button
	//   - x, y: pointer position in viewport pixels
	PointerPressed(button int, x, y float32)

	// PointerReleased ends an orbit drag.
	PointerReleased(button int, x, y float32)

	// Scrolled zooms the camera. Positive steps move toward the target.
	Scrolled(steps float32)

	// KeyPressed handles viewer keys. H toggles the legend panel.
	//
	// Parameters:
	//   - key: the key code
	//
	// Returns:
	//   - bool: true if the key was handled
	KeyPressed(key uint32) bool

	// Resize updates the camera aspect, the drawing surface and the overlay size.
	// The surface is reconfigured by the next Frame so GPU calls stay on the render goroutine.
	// A zero-area viewport is remembered and frames skip drawing until it grows again.
	Resize(width, height int)

	// Frame runs one step and draws it.
	//
	// The step order is fixed: camera update, pick, highlight reset, spotlight re-apply when focused,
	// hover apply, overlay composition. Hover therefore wins on the hovered node and its incident edges
	// while spotlight dimming persists everywhere else. Drawing happens after the step, outside the
	// viewer lock.
	//
	// Returns:
	//   - *Frame: the frame that was drawn
	//   - error: error if drawing failed
	Frame() (*Frame, error)

	Scene() scene.Scene
	Camera() camera.Camera
	Highlighter() picking.Highlighter
	Spotlight() legend.Spotlight
	Legend() legend.Legend
}

type viewerImpl struct {
	mu *sync.Mutex

	cfg         *config.Config
	scene       scene.Scene
	camera      camera.Camera
	rasterizer  label.Rasterizer
	highlighter picking.Highlighter
	spotlight   legend.Spotlight
	legend      legend.Legend
	compositor  overlay.Compositor
	drawer      Drawer

	renderer renderer.Renderer
	rng      *rand.Rand
	viewport picking.Viewport
	pointer  picking.Pointer
	dragging bool
	resized  bool
}

var _ Viewer = &viewerImpl{}

// NewViewer builds the scene from a dataset and wires its controllers.
// Without WithRenderer or WithDrawer frames are stepped but not drawn.
//
// Parameters:
//   - ds: the dataset to show
//   - cfg: viewer constants; nil uses config.Default()
//   - options: functional options
//
// Returns:
//   - Viewer: the viewer
//   - error: error if the drawer could not be initialized
func NewViewer(ds *ontology.Dataset, cfg *config.Config, options ...ViewerBuilderOption) (Viewer, error) {
	if ds == nil {
		panic("viewer: dataset is required")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	v := &viewerImpl{
		mu:       &sync.Mutex{},
		cfg:      cfg,
		viewport: picking.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height},
	}
	for _, opt := range options {
		opt(v)
	}

	lc := cfg.Label
	v.rasterizer = label.NewRasterizer(
		label.WithCanvasSize(lc.CanvasWidth, lc.CanvasHeight),
		label.WithMaxWidth(lc.MaxWidth),
		label.WithLineHeight(lc.LineHeight),
		label.WithColor(lc.Color.RGBA(1)),
		label.WithWorkers(lc.Workers),
	)

	sc := cfg.Scene
	placerOpts := []layout.PlacerBuilderOption{
		layout.WithCenters(ds.CenterFor),
		layout.WithJitter(sc.Jitter[0], sc.Jitter[1], sc.Jitter[2]),
	}
	if v.rng != nil {
		placerOpts = append(placerOpts, layout.WithRand(v.rng))
	}
	hl := cfg.Highlight
	v.scene = scene.FromDataset(ds,
		scene.WithPlacer(layout.NewPlacer(placerOpts...)),
		scene.WithStyles(ds.StyleFor),
		scene.WithLabelWrap(v.rasterizer.Wrap),
		scene.WithLabelOffset(sc.LabelOffset),
		scene.WithEdgeOpacity(hl.EdgeDefault),
	)

	cc := cfg.Camera
	v.camera = camera.NewCamera(
		camera.WithFov(cc.FOV*math.Pi/180),
		camera.WithClipPlanes(cc.Near, cc.Far),
		camera.WithAspect(aspect(v.viewport)),
		camera.WithController(camera.NewCameraController(
			camera.WithTarget(vec3(cc.Target)),
			camera.WithPosition(vec3(cc.Position)),
			camera.WithDamping(cc.Damping),
			camera.WithRotateSpeed(cc.RotateSpeed),
			camera.WithZoomSpeed(cc.ZoomSpeed),
			camera.WithDistanceLimits(cc.MinDistance, cc.MaxDistance),
		)),
	)

	tc := cfg.Tooltip
	hlOpts := []picking.HighlighterBuilderOption{
		picking.WithMarkerRadius(sc.NodeRadius),
		picking.WithHoverScale(hl.HoverScale),
		picking.WithEdgeEmphasis(hl.EdgeIncident, hl.EdgeOther),
		picking.WithTooltipBox(picking.TooltipBox{Width: tc.Width, Height: tc.Height, Offset: tc.Offset}),
	}
	if tc.Hint != "" {
		hlOpts = append(hlOpts, picking.WithHint(tc.Hint))
	}
	v.highlighter = picking.NewHighlighter(v.scene, hlOpts...)
	v.spotlight = legend.NewSpotlight(v.scene,
		legend.WithNodeOpacities(hl.SpotlightIn, hl.SpotlightOut),
		legend.WithEdgeOpacities(hl.SpotlightEdgeIn, hl.SpotlightEdgeOut),
		legend.WithRestEdgeOpacity(hl.SpotlightEdgeRest),
	)

	v.compositor = overlay.NewCompositor()
	v.legend = legend.NewLegend(ds,
		legend.WithTexts(cfg.Legend.Title, cfg.Legend.EdgeNote, cfg.Legend.Tip),
		legend.WithMeasurer(v.compositor.Measurer()),
		legend.WithVisible(cfg.Legend.Visible),
	)

	if v.drawer == nil && v.renderer != nil {
		v.drawer = NewGPUDrawer(v.renderer, v.camera, v.rasterizer, cfg)
	}
	if v.drawer != nil {
		if err := v.drawer.Init(v.scene, v.viewport); err != nil {
			return nil, fmt.Errorf("failed to initialize drawer: %w", err)
		}
	}

	log.Printf("[Viewer] Scene %s: %d nodes, %d edges, %d categories",
		v.scene.BuildID(), v.scene.NodeCount(), v.scene.EdgeCount(), len(ds.Categories))
	return v, nil
}

func (v *viewerImpl) Scene() scene.Scene               { return v.scene }
func (v *viewerImpl) Camera() camera.Camera            { return v.camera }
func (v *viewerImpl) Highlighter() picking.Highlighter { return v.highlighter }
func (v *viewerImpl) Spotlight() legend.Spotlight      { return v.spotlight }
func (v *viewerImpl) Legend() legend.Legend            { return v.legend }

func (v *viewerImpl) PointerMoved(x, y float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.dragging && v.pointer.Valid {
		v.camera.Controller().Rotate(x-v.pointer.X, y-v.pointer.Y, v.viewport.Height)
	}
	v.pointer = picking.Pointer{X: x, Y: y, Valid: true}
}

func (v *viewerImpl) PointerLeft() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pointer = picking.Pointer{}
	v.dragging = false
}

func (v *viewerImpl) PointerPressed(button int, x, y float32) {
	if button != common.MouseButtonLeft {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pointer = picking.Pointer{X: x, Y: y, Valid: true}

	hit := v.legend.HitTest(int(x), int(y))
	switch hit.Kind {
	case legend.HitToggle:
		v.legend.ToggleVisibility()
	case legend.HitRow:
		v.spotlight.Click(hit.Category)
		if c, ok := v.spotlight.Focused(); ok {
			log.Printf("[Viewer] Spotlight on %q", c)
		} else {
			log.Printf("[Viewer] Spotlight cleared")
		}
	case legend.HitPanel:
	default:
		v.dragging = true
	}
}

func (v *viewerImpl) PointerReleased(button int, x, y float32) {
	if button != common.MouseButtonLeft {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dragging = false
	v.pointer = picking.Pointer{X: x, Y: y, Valid: true}
}

func (v *viewerImpl) Scrolled(steps float32) {
	v.camera.Controller().Zoom(steps)
}

func (v *viewerImpl) KeyPressed(key uint32) bool {
	switch key {
	case common.KeyH:
		v.mu.Lock()
		v.legend.ToggleVisibility()
		v.mu.Unlock()
		return true
	}
	return false
}

func (v *viewerImpl) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewport = picking.Viewport{Width: max(width, 0), Height: max(height, 0)}
	if v.viewport.Width == 0 || v.viewport.Height == 0 {
		return
	}
	v.camera.SetAspect(aspect(v.viewport))
	v.resized = true
}

func (v *viewerImpl) Frame() (*Frame, error) {
	f, resized := v.step()
	if v.drawer == nil || f.Viewport.Width == 0 || f.Viewport.Height == 0 {
		return f, nil
	}
	if resized {
		v.drawer.Resize(f.Viewport)
	}
	if err := v.drawer.Draw(f); err != nil {
		return f, fmt.Errorf("failed to draw frame: %w", err)
	}
	return f, nil
}

// step advances the state machines and snapshots the result. It also reports and clears a pending resize.
func (v *viewerImpl) step() (*Frame, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.camera.Update()

	hover := picking.IdleState()
	if v.pointer.Valid && v.viewport.Width > 0 && v.viewport.Height > 0 {
		hover = v.highlighter.Pick(v.camera.Ray(picking.PointerToNDC(v.pointer, v.viewport)))
	}
	v.highlighter.Reset()
	if _, focused := v.spotlight.Focused(); focused {
		v.spotlight.Apply()
	}
	v.highlighter.Apply(hover, v.pointer, v.viewport)

	focus, focused := v.spotlight.Focused()
	img, changed := v.compositor.Compose(overlay.State{
		Viewport:   v.viewport,
		Tooltip:    v.highlighter.Tooltip(),
		Box:        v.highlighter.Box(),
		Legend:     v.legend.Layout(),
		Title:      v.legend.Title(),
		ButtonText: v.legend.ButtonText(),
		Focus:      focus,
		Focused:    focused,
	})

	resized := v.resized && v.viewport.Width > 0 && v.viewport.Height > 0
	if resized {
		v.resized = false
	}
	return &Frame{
		Nodes:          v.scene.Nodes(),
		Edges:          v.scene.Edges(),
		Camera:         v.camera.Uniform(),
		Frustum:        v.camera.Frustum(),
		Eye:            v.camera.Position(),
		Viewport:       v.viewport,
		Hover:          hover,
		Overlay:        img,
		OverlayChanged: changed,
	}, resized
}

func aspect(vp picking.Viewport) float32 {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 1
	}
	return float32(vp.Width) / float32(vp.Height)
}
