package timer

import (
	"container/heap"
	"math"
	"sync"
	"time"
)

// NoID is the sentinel id meaning "no timer was created", returned when
// Create is called with a nil callback.
const NoID uint32 = math.MaxUint32

// Flag modifies how a created timer behaves once it fires.
type Flag uint8

const (
	// FlagNone runs the callback once and erases the entry.
	FlagNone Flag = 0
	// FlagRepeat re-inserts the entry with a fresh deadline after it
	// fires, unless it was killed while executing.
	FlagRepeat Flag = 1 << 0
)

// Callback is invoked by RunFrame when a timer's deadline has passed. It
// runs with the Wheel's lock released, so it may call Create/Kill/
// Reschedule, including against its own timer id; see the package doc for
// the full locking contract.
type Callback func(id uint32, userData []any)

// Clock returns the current time used to compute deadlines. Tests inject a
// deterministic Clock; production code defaults to time.Now.
type Clock func() time.Time

type entry struct {
	id          uint32
	executeTime time.Time
	delay       time.Duration
	repeat      bool
	exec        bool
	kill        bool
	callback    Callback
	userData    []any
	index       int
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	return h[i].executeTime.Before(h[j].executeTime)
}
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Wheel is the deadline-ordered timer collection. The zero value is not
// usable; construct one with New.
type Wheel struct {
	mu     sync.Mutex
	heap   entryHeap
	byID   map[uint32]*entry
	nextID uint32
	clock  Clock
}

// New returns an empty Wheel. A nil clock defaults to time.Now.
func New(clock Clock) *Wheel {
	if clock == nil {
		clock = time.Now
	}
	return &Wheel{byID: make(map[uint32]*entry), clock: clock}
}

// Create allocates a new timer id and schedules callback to run after
// delay, returning the id. flags controls repeat behavior. userData is
// carried through to the callback unmodified.
func (w *Wheel) Create(delay time.Duration, callback Callback, flags Flag, userData []any) uint32 {
	if callback == nil {
		return NoID
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++
	e := &entry{
		id:          id,
		executeTime: w.clock().Add(delay),
		delay:       delay,
		repeat:      flags&FlagRepeat != 0,
		callback:    callback,
		userData:    userData,
	}
	heap.Push(&w.heap, e)
	w.byID[id] = e
	return id
}

// Kill cancels a pending timer. If it is currently executing (the callback
// is running inside RunFrame, re-entered via another goroutine's Kill
// call), it is marked for cancellation instead of erased immediately so the
// frame loop won't re-insert it on return; killing an unknown or
// already-removed id is a no-op.
func (w *Wheel) Kill(id uint32) {
	if id == NoID {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.byID[id]
	if !ok {
		return
	}
	if e.exec {
		e.kill = true
		return
	}
	heap.Remove(&w.heap, e.index)
	delete(w.byID, id)
}

// Reschedule updates a pending timer's delay and deadline. A no-op against
// an unknown id or a timer currently executing.
func (w *Wheel) Reschedule(id uint32, newDelay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.byID[id]
	if !ok || e.exec {
		return
	}
	e.delay = newDelay
	e.executeTime = w.clock().Add(newDelay)
	heap.Fix(&w.heap, e.index)
}

// RunFrame fires every timer whose deadline has passed, in deadline order,
// re-inserting repeating timers that weren't killed during their own
// callback. The lock is released for the duration of each callback, so a
// callback may freely call Create/Kill/Reschedule — including killing its
// own timer id — without re-entering a mutex the calling goroutine already
// holds; e.exec/e.kill coordinate that window with a concurrent Kill.
func (w *Wheel) RunFrame() {
	w.mu.Lock()
	now := w.clock()
	for w.heap.Len() > 0 {
		e := w.heap[0]
		if e.executeTime.After(now) {
			break
		}

		e.exec = true
		w.mu.Unlock()
		e.callback(e.id, e.userData)
		w.mu.Lock()
		e.exec = false

		if e.repeat && !e.kill {
			e.executeTime = now.Add(e.delay)
			heap.Fix(&w.heap, e.index)
			continue
		}
		heap.Remove(&w.heap, e.index)
		delete(w.byID, e.id)
	}
	w.mu.Unlock()
}

// Len reports the number of pending timers, for diagnostics and tests.
func (w *Wheel) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.heap.Len()
}

// Pending reports whether id still has a pending entry.
func (w *Wheel) Pending(id uint32) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.byID[id]
	return ok
}
