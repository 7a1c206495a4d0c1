// Package host pins the shape of three collaborators that sit outside
// authority itself: the process-wide frame tick that drives timer
// expirations ([FrameTicker]), the embedding host's plugin entry point
// ([EntryPoint]/[PluginID]), and the single static instance the original
// C ABI boundary wraps ([Facade]/[InitFacade]).
//
// None of this is required to use authority — Builder/Core work standalone
// — but an embedding host that wants the same shape the original gave
// plugins can use this package instead of inventing its own.
//
// # What this package must NOT do
//
//   - Call into authority.Core's unexported fields or any internal
//     sub-package; it only ever sees the public API.
//   - Own persistence or network I/O — those belong to storage/* and the
//     embedding host respectively.
package host
