package fingerprint

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// MaxSegments bounds the number of dotted segments a permission string may
// carry. Excess segments are truncated rather than rejected, matching the
// bounded stack-allocated arrays the engine threads the fingerprint through.
const MaxSegments = 64

// AllHash is the sentinel hash of the literal segment "*", denoting "all".
var AllHash = xxhash.Sum64String("*")

// Fingerprint is the parsed, hashed form of a permission string: an ordered
// list of segment hashes plus the originating slices, a wildcard flag, and
// the requested polarity (Allow unless the string carried a leading '-').
type Fingerprint struct {
	Segments []string
	Hashes   []uint64
	Wildcard bool
	Allow    bool
}

// Parse splits perm on '.', stripping a leading '-' (polarity) and a
// trailing "*" segment (wildcard), and hashes every remaining segment.
// Empty input parses to a zero-length, non-wildcard, allow Fingerprint — a
// no-op for callers that add/remove against it.
func Parse(perm string) Fingerprint {
	allow := true
	if strings.HasPrefix(perm, "-") {
		allow = false
		perm = perm[1:]
	}
	if perm == "" {
		return Fingerprint{Allow: allow}
	}

	raw := strings.Split(perm, ".")
	wildcard := false
	if len(raw) > 0 && raw[len(raw)-1] == "*" {
		wildcard = true
		raw = raw[:len(raw)-1]
	}
	if len(raw) > MaxSegments {
		raw = raw[:MaxSegments]
	}

	segments := make([]string, 0, len(raw))
	hashes := make([]uint64, 0, len(raw))
	for _, seg := range raw {
		seg = strings.TrimPrefix(seg, "-")
		if seg == "*" {
			wildcard = true
			break
		}
		segments = append(segments, seg)
		hashes = append(hashes, xxhash.Sum64String(seg))
	}

	return Fingerprint{
		Segments: segments,
		Hashes:   hashes,
		Wildcard: wildcard,
		Allow:    allow,
	}
}

// Root reports whether the fingerprint is the bare "*"/"-*" root wildcard:
// no segments, wildcard set.
func (f Fingerprint) Root() bool {
	return len(f.Segments) == 0 && f.Wildcard
}

// String reconstructs the canonical dotted permission string (without a
// timestamp suffix), the inverse of Parse for the subset Parse preserves.
func (f Fingerprint) String() string {
	var b strings.Builder
	if !f.Allow {
		b.WriteByte('-')
	}
	b.WriteString(strings.Join(f.Segments, "."))
	if f.Wildcard {
		if len(f.Segments) > 0 {
			b.WriteByte('.')
		}
		b.WriteByte('*')
	}
	return b.String()
}

// Hash returns the xxhash of an arbitrary string, exposed so sibling
// packages (group/user registries, group-name keys) hash with the exact
// same function the trie uses for segment keys.
func Hash(s string) uint64 {
	return xxhash.Sum64String(s)
}
