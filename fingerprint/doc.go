// Package fingerprint parses dotted permission strings into the fixed-width
// segment arrays the permission trie walks.
//
// # Grammar
//
//	perm := ['-'] segment ('.' segment)* ['.' '*']
//
// A leading '-' flips polarity to Deny. A trailing '*' segment marks a
// wildcard default. Segments are hashed with xxhash for O(1) trie
// descent; the source slices are kept alongside the hashes so the trie can
// do heterogeneous lookups without re-slicing the original string.
//
// # Architecture boundaries
//
// This package is a pure string/hash utility with no I/O and no locking. It
// does not know about Nodes, Groups, or Users.
//
// # What this package must NOT do
//
//   - Allocate per-call when Parse is used through a [Cache].
//   - Accept more than [MaxSegments] segments.
package fingerprint
