// Package timer implements the Timer Wheel: a single process-wide
// deadline-ordered collection of callbacks keyed by a 32-bit monotonically
// increasing id, driven by an explicit RunFrame tick rather than any
// internal goroutine or ticker.
//
// # Concurrency
//
// A single mutex guards the heap. RunFrame holds it only while walking and
// mutating the heap itself; it releases the lock before invoking each
// callback and re-acquires it once the callback returns. Callbacks are
// therefore free to call Create, Kill, or Reschedule — including killing
// their own timer id — without re-entering a mutex the calling goroutine
// already holds. A timer marked exec is mid-callback; Kill against it only
// sets its kill flag rather than touching the heap, so RunFrame can tell
// once the callback returns whether to skip re-inserting a repeating entry.
//
// # Architecture boundaries
//
// This package knows nothing about permissions, groups, or users — it
// schedules opaque callbacks against opaque ids. The node package's
// TimerID field and TimerKiller interface are satisfied by a thin adapter
// in the owning aggregate, not by an import of this package into node.
//
// # What this package must NOT do
//
//   - Spawn its own goroutine or ticker; RunFrame is always caller-driven.
//   - Re-insert a timer that was killed while executing.
package timer
