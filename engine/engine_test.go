package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/engine/camera"
	"github.com/Carmen-Shannon/oxy-ontography/engine/legend"
	"github.com/Carmen-Shannon/oxy-ontography/engine/picking"
	"github.com/Carmen-Shannon/oxy-ontography/engine/scene"
	"github.com/Carmen-Shannon/oxy-ontography/engine/viewer"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	mu        sync.Mutex
	running   atomic.Bool
	closed    atomic.Bool
	polls     atomic.Int32
	keyRegs   int
	onResize  func(int, int)
	onScroll  func(float32)
	onKey     func(uint32)
	onButton  func(int, bool, float32, float32)
	onMove    func(float32, float32)
	onLeave   func()
	afterPoll func()
}

func newFakeWindow() *fakeWindow {
	w := &fakeWindow{}
	w.running.Store(true)
	return w
}

func (w *fakeWindow) SetResizeCallback(cb func(int, int))  { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(float32))   { w.onScroll = cb }
func (w *fakeWindow) SetMouseMoveCallback(cb func(x, y float32)) {
	w.onMove = cb
}
func (w *fakeWindow) SetMouseLeaveCallback(cb func()) { w.onLeave = cb }
func (w *fakeWindow) SetMouseButtonCallback(cb func(int, bool, float32, float32)) {
	w.onButton = cb
}
func (w *fakeWindow) SetKeyDownCallback(cb func(uint32)) {
	w.mu.Lock()
	w.keyRegs++
	w.mu.Unlock()
	w.onKey = cb
}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) IsRunning() bool                            { return w.running.Load() }
func (w *fakeWindow) Close() error {
	w.closed.Store(true)
	w.running.Store(false)
	return nil
}
func (w *fakeWindow) ProcessMessages() {
	w.polls.Add(1)
	if w.afterPoll != nil {
		w.afterPoll()
	}
}
func (w *fakeWindow) Width() int  { return 640 }
func (w *fakeWindow) Height() int { return 480 }

type fakeViewer struct {
	frames   atomic.Int32
	keys     []uint32
	pressed  int
	released int
	resized  [2]int
	left     int
	panicAt  int32
}

func (v *fakeViewer) PointerMoved(x, y float32)                {}
func (v *fakeViewer) PointerLeft()                              { v.left++ }
func (v *fakeViewer) PointerPressed(button int, x, y float32)  { v.pressed++ }
func (v *fakeViewer) PointerReleased(button int, x, y float32) { v.released++ }
func (v *fakeViewer) Scrolled(steps float32)                   {}
func (v *fakeViewer) KeyPressed(key uint32) bool {
	v.keys = append(v.keys, key)
	return true
}
func (v *fakeViewer) Resize(width, height int) { v.resized = [2]int{width, height} }
func (v *fakeViewer) Frame() (*viewer.Frame, error) {
	n := v.frames.Add(1)
	if v.panicAt > 0 && n == v.panicAt {
		panic("boom")
	}
	return &viewer.Frame{Hover: picking.HoveringState(0), LabelsDrawn: 3}, nil
}
func (v *fakeViewer) Scene() scene.Scene               { return nil }
func (v *fakeViewer) Camera() camera.Camera            { return nil }
func (v *fakeViewer) Highlighter() picking.Highlighter { return nil }
func (v *fakeViewer) Spotlight() legend.Spotlight      { return nil }
func (v *fakeViewer) Legend() legend.Legend            { return nil }

func newTestEngine(t *testing.T, opts ...EngineBuilderOption) (Engine, *fakeWindow, *fakeViewer, *atomic.Int32) {
	t.Helper()
	w := newFakeWindow()
	v := &fakeViewer{}
	builds := &atomic.Int32{}
	e := NewEngine(append([]EngineBuilderOption{
		WithWindow(w),
		WithViewerFactory(func() (viewer.Viewer, error) {
			builds.Add(1)
			return v, nil
		}),
	}, opts...)...)
	t.Cleanup(e.Exit)
	return e, w, v, builds
}

func waitFrames(t *testing.T, v *fakeViewer, n int32) {
	t.Helper()
	require.Eventually(t, func() bool { return v.frames.Load() >= n }, time.Second, time.Millisecond)
}

func TestNewEngineRequiresWindowAndViewer(t *testing.T) {
	assert.PanicsWithValue(t, "engine: window is required", func() { NewEngine() })
	assert.PanicsWithValue(t, "engine: viewer factory is required", func() { NewEngine(WithWindow(newFakeWindow())) })
}

func TestEnterExitLifecycle(t *testing.T) {
	e, _, v, _ := newTestEngine(t)
	assert.False(t, e.Running())
	assert.Nil(t, e.Viewer())

	require.NoError(t, e.Enter())
	assert.True(t, e.Running())
	assert.Equal(t, v, e.Viewer())
	waitFrames(t, v, 3)

	e.Exit()
	assert.False(t, e.Running())
	stopped := v.frames.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, v.frames.Load())

	e.Exit()
	assert.False(t, e.Running())
}

func TestReenterReusesSceneAndListeners(t *testing.T) {
	e, w, v, builds := newTestEngine(t)
	require.NoError(t, e.Enter())
	require.NoError(t, e.Enter())
	e.Exit()
	require.NoError(t, e.Enter())
	waitFrames(t, v, 1)

	assert.Equal(t, int32(1), builds.Load())
	assert.Equal(t, 1, w.keyRegs)
}

func TestLifecycleKeys(t *testing.T) {
	e, w, v, _ := newTestEngine(t)
	require.NoError(t, e.Enter())

	w.onKey(common.KeyEsc)
	assert.False(t, e.Running())

	w.onKey(common.KeyEnter)
	assert.True(t, e.Running())
	w.onKey(common.KeyEsc)
	w.onKey(common.KeyF)
	assert.True(t, e.Running())

	w.onKey(common.KeyH)
	assert.Equal(t, []uint32{common.KeyH}, v.keys)
}

func TestInputForwarding(t *testing.T) {
	e, w, v, _ := newTestEngine(t)
	require.NoError(t, e.Enter())

	w.onButton(common.MouseButtonLeft, true, 10, 10)
	w.onButton(common.MouseButtonLeft, false, 12, 10)
	w.onResize(800, 600)
	w.onLeave()
	assert.Equal(t, 1, v.pressed)
	assert.Equal(t, 1, v.released)
	assert.Equal(t, 1, v.left)
	assert.Equal(t, [2]int{800, 600}, v.resized)
}

func TestViewerBuildErrorIsSticky(t *testing.T) {
	calls := 0
	e := NewEngine(WithWindow(newFakeWindow()), WithViewerFactory(func() (viewer.Viewer, error) {
		calls++
		return nil, errors.New("no adapter")
	}))
	assert.EqualError(t, e.Enter(), "no adapter")
	assert.EqualError(t, e.Enter(), "no adapter")
	assert.Equal(t, 1, calls)
	assert.False(t, e.Running())
}

func TestRenderPanicStopsTask(t *testing.T) {
	e, _, v, _ := newTestEngine(t)
	v.panicAt = 2
	require.NoError(t, e.Enter())
	require.Eventually(t, func() bool { return !e.Running() }, time.Second, time.Millisecond)

	require.NoError(t, e.Enter())
	waitFrames(t, v, 4)
	assert.True(t, e.Running())
}

func TestFrameLimit(t *testing.T) {
	e, _, v, _ := newTestEngine(t, WithRenderFrameLimit(20))
	require.NoError(t, e.Enter())
	time.Sleep(120 * time.Millisecond)
	e.Exit()
	assert.LessOrEqual(t, v.frames.Load(), int32(5))
	assert.GreaterOrEqual(t, v.frames.Load(), int32(1))
}

func TestProfilingObservesFrames(t *testing.T) {
	e, _, v, _ := newTestEngine(t, WithProfiling(true))
	require.NoError(t, e.Enter())
	waitFrames(t, v, 5)
	e.Exit()

	families, err := e.Profiler().Registry().Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		m := mf.GetMetric()[0]
		switch {
		case m.GetCounter() != nil:
			values[mf.GetName()] = m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			values[mf.GetName()] = m.GetGauge().GetValue()
		}
	}
	assert.Equal(t, float64(v.frames.Load()), values["ontography_frames_total"])
	assert.Equal(t, 3.0, values["ontography_labels_drawn"])
}

func TestRunStopsOnQuitAndClosesWindow(t *testing.T) {
	e, w, _, _ := newTestEngine(t)
	w.afterPoll = func() {
		if w.polls.Load() == 3 {
			e.Quit()
		}
	}
	require.NoError(t, e.Run())
	assert.True(t, w.closed.Load())
	assert.False(t, e.Running())
	e.Quit()
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	e, w, _, _ := newTestEngine(t)
	w.afterPoll = func() { w.running.Store(false) }
	require.NoError(t, e.Run())
	assert.Equal(t, int32(1), w.polls.Load())
	assert.True(t, w.closed.Load())
}
