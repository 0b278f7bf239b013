package engine

import (
	"context"
	"log"
	"time"
)

// renderTask runs the frame loop on its own goroutine until its context is cancelled.
// A task runs at most once; the engine creates a new one for every Enter.
type renderTask struct {
	frame func() error
	limit time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func newRenderTask(frame func() error, limit time.Duration) *renderTask {
	return &renderTask{
		frame: frame,
		limit: limit,
		done:  make(chan struct{}),
	}
}

// Start launches the loop. Cancelling ctx or calling Stop ends it.
func (t *renderTask) Start(ctx context.Context) {
	ctx, t.cancel = context.WithCancel(ctx)
	go t.run(ctx)
}

// Stop cancels the loop and waits until the current frame has finished. No frame runs after Stop returns.
func (t *renderTask) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
	<-t.done
}

// Done is closed when the loop has exited, including after a recovered panic.
func (t *renderTask) Done() <-chan struct{} {
	return t.done
}

func (t *renderTask) run(ctx context.Context) {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render task recovered from panic: %v", r)
		}
	}()

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		start := time.Now()
		if err := t.frame(); err != nil {
			log.Printf("[Engine] frame failed: %v", err)
		}

		if t.limit <= 0 {
			continue
		}
		remaining := t.limit - time.Since(start)
		if remaining <= 0 {
			continue
		}
		if timer == nil {
			timer = time.NewTimer(remaining)
			defer timer.Stop()
		} else {
			timer.Reset(remaining)
		}
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}
