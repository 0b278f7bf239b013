package engine

import (
	"github.com/Carmen-Shannon/oxy-ontography/engine/viewer"
	"github.com/Carmen-Shannon/oxy-ontography/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window the engine renders into and takes input from.
//
// Parameters:
//   - w: an open Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithViewerFactory sets how the viewer is built. The factory runs once, on the first Enter.
//
// Parameters:
//   - build: builds the scene and its viewer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewerFactory(build func() (viewer.Viewer, error)) EngineBuilderOption {
	return func(e *engine) {
		e.newViewer = build
	}
}

// WithViewer uses an already built viewer.
func WithViewer(v viewer.Viewer) EngineBuilderOption {
	return WithViewerFactory(func() (viewer.Viewer, error) { return v, nil })
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameLimit(fps)
	}
}
