package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-ontography/config"
	"github.com/Carmen-Shannon/oxy-ontography/engine"
	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer"
	"github.com/Carmen-Shannon/oxy-ontography/engine/viewer"
	"github.com/Carmen-Shannon/oxy-ontography/engine/window"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
	"github.com/spf13/cobra"
)

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the viewer (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView()
		},
	}
}

// runView opens the window and blocks until it is closed.
// GPU setup panics are reported as errors.
func runView() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("viewer startup: %v", r)
			Bad.Printf("ontography: %v\n", err)
		}
	}()

	cfg := config.Default()
	ds := ontology.Default()

	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		Bad.Printf("ontography: %v\n", err)
		return err
	}

	present := renderer.PresentModeVSync
	if !cfg.Render.VSync {
		present = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, w,
		renderer.WithPresentMode(present),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Render.MSAA)),
		renderer.WithClearColor(cfg.Scene.Background.Color),
	)

	e := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithProfiling(cfg.Render.Profiling),
		engine.WithRenderFrameLimit(float64(cfg.Render.FrameLimit)),
		engine.WithViewerFactory(func() (viewer.Viewer, error) {
			return viewer.NewViewer(ds, cfg,
				viewer.WithRenderer(r),
				viewer.WithViewport(w.Width(), w.Height()),
			)
		}),
	)
	if err := e.Run(); err != nil {
		Bad.Printf("ontography: %v\n", err)
		return err
	}
	return nil
}
