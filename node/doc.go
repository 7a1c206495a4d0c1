// Package node implements the permission trie: a hash-keyed tree of dotted
// permission segments that resolves a query to Allow, Disallow, or
// NotFound, with wildcard shadowing and optional per-leaf expiry timers.
//
// # Wildcard semantics
//
// Walking the trie tracks the most recent ancestor whose Wildcard flag is
// set (including the root). A miss at any depth returns that ancestor's
// polarity; reaching the end of the fingerprint without a miss returns the
// current node's polarity if it is an EndNode, otherwise the last wildcard's
// polarity, otherwise NotFound. The most specific declaration always wins
// over a shallower wildcard.
//
// # Architecture boundaries
//
// This package owns the trie shape and its pruning invariants. It does not
// know about Users, Groups, or the timer wheel — deletion accepts an
// optional [TimerKiller] so a caller (the timer wheel owner) can cancel a
// pending expiry when its node is pruned, without node importing timer.
//
// Node carries no mutex of its own: every exported method assumes the
// caller already holds whatever lock guards the owning User, Group, or
// Core aggregate. A Node must never be reachable from two goroutines
// without a shared lock between them.
//
// # What this package must NOT do
//
//   - Hold a reference to a live timer wheel.
//   - Exceed [fingerprint.MaxSegments] depth.
//   - Lock anything itself; locking is the owning aggregate's job.
package node
