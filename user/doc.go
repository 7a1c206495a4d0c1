// Package user implements User: the per-player permission state threading
// together a temporary trie, a direct (permanent) trie, and an ordered list
// of permanent and temporary group memberships.
//
// # Layer order
//
// HasPermission consults, in order: the temp trie, the direct trie, each
// temporary group's own parent chain, then each permanent group's own
// parent chain. The first decisive verdict wins, and the layer it came
// from is reported back as a [PermType] so callers (and RemovePerm) can
// tell a direct grant apart from one inherited through a group.
//
// # Timer decoupling
//
// Like node and group, this package never calls into a timer wheel
// itself. AddPerm and AddGroup return enough information — the node.Node
// a temp permission landed on, or the outcome that says a fresh temp group
// entry was appended — for the owning manager to create, reschedule, or
// kill the actual timer and wire the resulting id back with
// [User.SetTempGroupTimer] or by setting the returned Node's TimerID
// directly.
//
// # Architecture boundaries
//
// This package owns one player's permission state. It does not own the
// group-name registry (callers resolve names to *group.Group before
// calling in), the timer wheel, or the callback/event fan-out a manager
// layer dispatches around these operations.
package user
