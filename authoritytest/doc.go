// Package authoritytest holds cross-package test helpers for authority
// and its satellites: a deterministic TickSource, a fake StorageProvider,
// and a BuildCore constructor. It exists as an importable package rather
// than an integration-tagged _test.go file because authority's components
// span several packages (storage/redisprovider, host) that each need the
// same fakes without duplicating them.
package authoritytest
