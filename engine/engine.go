package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/engine/picking"
	"github.com/Carmen-Shannon/oxy-ontography/engine/profiler"
	"github.com/Carmen-Shannon/oxy-ontography/engine/viewer"
	"github.com/Carmen-Shannon/oxy-ontography/engine/window"
)

// pollInterval paces window event polling on the main thread.
const pollInterval = 4 * time.Millisecond

// engine implements the Engine interface.
// Window events are handled on the thread calling Run; frames run on the render task's goroutine.
type engine struct {
	mu *sync.Mutex

	window     window.Window
	newViewer  func() (viewer.Viewer, error)
	viewer     viewer.Viewer
	viewerErr  error
	buildOnce  sync.Once
	listenOnce sync.Once

	task *renderTask

	quitChannel chan struct{}
	quitOnce    sync.Once

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine runs the viewer inside a window.
// The view can be exited and entered again; the scene is built on the first Enter and reused afterwards.
type Engine interface {
	// Window returns the underlying window.
	Window() window.Window

	// Viewer returns the viewer, or nil before the first successful Enter.
	Viewer() viewer.Viewer

	// EnableProfiler enables the once-per-second performance log.
	EnableProfiler()

	// DisableProfiler disables the performance log.
	DisableProfiler()

	// Profiler returns the engine's profiler.
	Profiler() *profiler.Profiler

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default). Takes effect on the next Enter.
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Enter builds the viewer on first use, registers the window listeners once and starts the render loop
	// if it is not already running.
	//
	// Returns:
	//   - error: error if the viewer could not be built
	Enter() error

	// Exit stops the render loop and waits for it. No frame runs after Exit returns. The window stays open.
	Exit()

	// Running reports whether the render loop is active.
	Running() bool

	// Run enters the view and processes window events on the calling thread until the window closes or Quit
	// is called, then exits the view and closes the window. It must be called from the main thread.
	//
	// Returns:
	//   - error: error if the view could not be entered
	Run() error

	// Quit makes Run return. Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// WithWindow and WithViewerFactory (or WithViewer) are required.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:          &sync.Mutex{},
		quitChannel: make(chan struct{}),
		profiler:    profiler.NewProfiler(),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.window == nil {
		panic("engine: window is required")
	}
	if e.newViewer == nil {
		panic("engine: viewer factory is required")
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Viewer() viewer.Viewer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewer
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	e.profilingEnabled = true
	e.mu.Unlock()
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	e.profilingEnabled = false
	e.mu.Unlock()
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameLimit(fps)
}

func (e *engine) Enter() error {
	e.buildOnce.Do(func() {
		v, err := e.newViewer()
		e.mu.Lock()
		e.viewer, e.viewerErr = v, err
		e.mu.Unlock()
		if err != nil {
			log.Printf("[Engine] failed to build viewer: %v", err)
		}
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.viewerErr != nil {
		return e.viewerErr
	}
	e.listenOnce.Do(e.registerListeners)

	if e.taskRunning() {
		return nil
	}
	e.task = newRenderTask(e.frame, e.renderFrameLimit)
	e.task.Start(context.Background())
	log.Printf("[Engine] Entered view")
	return nil
}

func (e *engine) Exit() {
	e.mu.Lock()
	task := e.task
	e.task = nil
	e.mu.Unlock()

	if task == nil {
		return
	}
	task.Stop()
	log.Printf("[Engine] Exited view")
}

func (e *engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.taskRunning()
}

// taskRunning reports whether the current task is still looping. Callers hold e.mu.
func (e *engine) taskRunning() bool {
	if e.task == nil {
		return false
	}
	select {
	case <-e.task.Done():
		return false
	default:
		return true
	}
}

func (e *engine) Run() error {
	if err := e.Enter(); err != nil {
		return err
	}
	defer func() {
		e.Exit()
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] failed to close window: %v", err)
		}
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for e.window.IsRunning() {
		e.window.ProcessMessages()
		select {
		case <-e.quitChannel:
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

// Quit is safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// registerListeners wires window input to the viewer and the lifecycle keys to the engine.
// Escape leaves the view, Enter or F enters it again; other keys go to the viewer.
func (e *engine) registerListeners() {
	v := e.viewer
	e.window.SetResizeCallback(v.Resize)
	e.window.SetScrollCallback(v.Scrolled)
	e.window.SetMouseMoveCallback(v.PointerMoved)
	e.window.SetMouseLeaveCallback(v.PointerLeft)
	e.window.SetMouseButtonCallback(func(button int, pressed bool, x, y float32) {
		if pressed {
			v.PointerPressed(button, x, y)
		} else {
			v.PointerReleased(button, x, y)
		}
	})
	e.window.SetKeyDownCallback(func(key uint32) {
		switch key {
		case common.KeyEsc:
			e.Exit()
		case common.KeyEnter, common.KeyF:
			if err := e.Enter(); err != nil {
				log.Printf("[Engine] failed to enter view: %v", err)
			}
		default:
			v.KeyPressed(key)
		}
	})
}

// frame runs one viewer frame and feeds the profiler.
func (e *engine) frame() error {
	start := time.Now()
	f, err := e.viewer.Frame()

	e.mu.Lock()
	profiling := e.profilingEnabled
	e.mu.Unlock()
	if profiling && f != nil {
		e.profiler.ObserveFrame(time.Since(start))
		e.profiler.ObservePick(f.Hover.Kind == picking.Hovering)
		e.profiler.ObserveLabels(f.LabelsDrawn)
		e.profiler.Tick()
	}
	return err
}

func frameLimit(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
