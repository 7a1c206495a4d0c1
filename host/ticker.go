package host

import (
	"time"

	authority "github.com/ironforge/authority"
)

// FrameTicker drives the "process-wide frame tick that drives timer
// expirations" collaborator: authority.Core.RunFrame must be called on
// some cadence for temp-permission/temp-group timers to ever fire, and
// authority itself never starts that goroutine.
type FrameTicker interface {
	// Run calls core.RunFrame() on every tick until stop is closed. Run
	// blocks; callers that want a background ticker should run it in its
	// own goroutine.
	Run(core *authority.Core, stop <-chan struct{})
}

// IntervalTicker is a FrameTicker backed by a time.Ticker at a fixed
// interval. The zero value ticks every 50ms.
type IntervalTicker struct {
	Interval time.Duration
}

// Run implements FrameTicker.
func (t IntervalTicker) Run(core *authority.Core, stop <-chan struct{}) {
	interval := t.Interval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			core.RunFrame()
		case <-stop:
			return
		}
	}
}

// StartTicker runs t against core in a new goroutine and returns a stop
// func that blocks until the goroutine has exited.
func StartTicker(t FrameTicker, core *authority.Core) (stop func()) {
	stopCh := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		t.Run(core, stopCh)
	}()
	return func() {
		close(stopCh)
		<-done
	}
}
