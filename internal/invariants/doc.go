// Package invariants implements the "for-all" structural invariants that
// span the group forest and the user registry together, so no single
// package's own tests (node, group, user) can verify them in isolation.
// The purely single-package invariants (trie round-trip pruning, wildcard
// shadowing precedence) are already covered by node/group's own tests and
// aren't duplicated here.
//
// # Shape
//
// A set of small pure functions over already-live domain values (no
// snapshot DTO to keep in sync, since group.Group and user.User already
// export everything these checks need) that return a slice of [Violation]
// rather than panicking or erroring — an invariant scan reports everything
// wrong in one pass instead of stopping at the first violation. [Scan]
// runs every check except [ImmunityOrdering], which needs a CanAffect
// result per user pair, and aggregates the results.
//
// # Architecture boundaries
//
// This package only reads group/user state; it never mutates it and never
// calls into the timer wheel or a callback registry. The root authority
// package imports it for exactly one call site, Core.InvariantReport,
// which snapshots the live group/user pointers under their usual locks
// and hands them here; cmd/authority-invariant-scan then drives that
// method after replaying a scripted scenario against a live
// *authority.Core. No other package should need to import this one.
//
// # What this package must NOT do
//
//   - Be imported by group or user — this is a one-way dependency,
//     tooling looking in, never the reverse.
//   - Mutate any group or user it inspects.
package invariants
