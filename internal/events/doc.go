// Package events implements the callback registry: for each event kind,
// a set of unique handles guarded by its own reader/writer lock, so
// dispatch can run concurrently with registration.
//
// # Identity
//
// A C ABI would key each set on function-pointer identity —
// registering the same pointer twice is the collision Register must
// reject. Go function values aren't comparable, so this package replaces
// that identity with an opaque [Handle] (a uuid.UUID) the caller mints with
// [NewHandle] and supplies to Register; Unregister later takes the same
// value back. This keeps CallbackAlreadyExist/CallbackNotFound meaningful
// rather than structurally unreachable.
//
// # Dispatch
//
// Registry.Range holds only the read lock for its whole iteration, so
// dispatch runs under a shared lock — callbacks must not try to mutate
// the same set from inside Range (they may register against a different
// event kind's set; nothing here prevents that). Iteration order follows
// Go's map iteration, which is unspecified from one call to the next;
// dispatch order across callbacks on the same event kind is unspecified
// too, so this isn't a gap to close.
//
// # Architecture boundaries
//
// This package only stores and iterates typed callback values; it knows
// nothing about groups, users, or the timer wheel. The Action type and the
// per-event payload function types live here because they're pure event
// vocabulary with no dependency on the rest of the module — the root
// authority package imports this package, so this package must never
// import it back.
//
// # What this package must NOT do
//
//   - Decide which events fire or carry business logic about when to
//     dispatch — that is the owning manager's job.
//   - Hold its lock across a callback's own blocking work beyond what a
//     single Range call naturally does.
package events
