// Package group implements Group: a named priority level with its own
// permission trie, cookie map, and a handle to a parent Group.
//
// # Parent chain
//
// HasPermission and Cookie both walk the parent chain, asking each level
// in turn and returning the first decisive answer; NotFound/missing only
// if the whole chain comes up empty. The chain is a plain *Group pointer
// rather than a name lookup — whoever assigns a parent (the owning
// manager, via SetParent) is responsible for cycle-checking first with
// Reaches, since a cycle here would make HasPermission loop forever.
//
// # Architecture boundaries
//
// This package owns one Group's own state. It does not know about the
// registry of all groups by name, about Users, or about the timer wheel
// beyond the same [node.TimerKiller] seam node itself uses.
//
// # What this package must NOT do
//
//   - Look up a parent by name; parents are wired by the owning manager.
//   - Walk the parent chain without a caller-held lock already in place.
package group
