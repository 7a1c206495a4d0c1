package authority

import (
	"sync"
	"sync/atomic"

	"github.com/ironforge/authority/internal/events"
)

// loadEventKind distinguishes the two requests a loadDispatcher carries.
type loadEventKind int

const (
	loadEventUser loadEventKind = iota
	loadEventGroups
)

type loadEvent struct {
	kind   loadEventKind
	userID uint64
}

// loadDispatcher runs LoadUser/LoadGroups dispatch on its own goroutine,
// off the caller's stack, per CallbackConfig's "async group/user
// load-event dispatch path". DropIfFull makes Emit non-blocking under
// backpressure, incrementing MetricCallbackDropped instead of stalling
// the caller.
type loadDispatcher struct {
	core *Core
	cfg  CallbackConfig

	ch        chan loadEvent
	done      chan struct{}
	wg        sync.WaitGroup
	closed    atomic.Bool
	closeOnce sync.Once
}

func newLoadDispatcher(core *Core, cfg CallbackConfig) *loadDispatcher {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	d := &loadDispatcher{
		core: core,
		cfg:  cfg,
		ch:   make(chan loadEvent, cfg.BufferSize),
		done: make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *loadDispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case ev := <-d.ch:
			d.deliver(ev)
		case <-d.done:
			for {
				select {
				case ev := <-d.ch:
					d.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

func (d *loadDispatcher) deliver(ev loadEvent) {
	switch ev.kind {
	case loadEventUser:
		d.core.callbacks.userLoad.Range(func(fn events.UserLoadFunc) { fn(ev.userID) })
		d.core.callbacks.userLoaded.Range(func(fn events.UserLoadedFunc) { fn(ev.userID) })
	case loadEventGroups:
		d.core.callbacks.loadGroups.Range(func(fn events.LoadGroupsFunc) { fn() })
	}
}

// Emit enqueues ev, dropping it (and incrementing MetricCallbackDropped)
// under backpressure if cfg.DropIfFull, else blocking the caller until
// room is available or Close runs.
func (d *loadDispatcher) Emit(ev loadEvent) {
	if d == nil || d.closed.Load() {
		return
	}
	if d.cfg.DropIfFull {
		select {
		case d.ch <- ev:
		case <-d.done:
		default:
			d.core.metrics.Inc(MetricCallbackDropped)
		}
		return
	}
	select {
	case d.ch <- ev:
	case <-d.done:
	}
}

// Close drains any pending events synchronously, then stops the worker.
func (d *loadDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}
