// Package internal contains helper types that are intentionally private to
// authority.
//
// # Sub-packages
//
//   - events — the typed callback vocabulary (function types + Registry[T])
//   - invariants — group/user structural checks behind Core.InvariantReport (and so cmd/authority-invariant-scan)
//
// # What this package must NOT do
//
//   - Export types that appear in the public authority API.
//   - Be imported by any package outside this module.
package internal
