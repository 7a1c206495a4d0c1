package node

import (
	"math"
	"sort"
	"strings"

	"github.com/ironforge/authority/fingerprint"
)

// NoTimer is the sentinel timer id meaning "no pending expiry" (the max
// uint32 value, never a valid allocated timer id).
const NoTimer uint32 = math.MaxUint32

// Verdict is the three-way result of a trie lookup.
type Verdict int

const (
	NotFound Verdict = iota
	Allow
	Disallow
)

// TimerKiller cancels a pending timer by id. Node deletion calls it for
// every descendant timer it prunes; nil is a valid no-op killer.
type TimerKiller interface {
	Kill(id uint32)
}

type timerKillerFunc func(id uint32)

func (f timerKillerFunc) Kill(id uint32) {
	if f != nil {
		f(id)
	}
}

// Node is one level of the permission trie. The root Node is always
// retained regardless of emptiness; every other Node with EndNode=false and
// no children is pruned immediately on deletion.
//
// Node does not lock itself: every exported method walks or mutates the
// whole subtree rooted at the receiver in one pass, and the owning User,
// Group, or Core aggregate is expected to hold its own lock around the
// call. The trie node carries no mutex of its own; synchronization lives
// one layer up.
type Node struct {
	children  map[uint64]*child
	State     bool
	Wildcard  bool
	EndNode   bool
	Timestamp int64
	TimerID   uint32
}

type child struct {
	seg  string
	node *Node
}

// New returns an empty trie root.
func New() *Node {
	return &Node{children: make(map[uint64]*child), TimerID: NoTimer}
}

func newChildNode() *Node {
	return &Node{children: make(map[uint64]*child), TimerID: NoTimer}
}

// Check walks fp against the trie and returns the decisive verdict, per the
// wildcard-shadowing rule described in the package doc.
func (n *Node) Check(fp fingerprint.Fingerprint) Verdict {
	cur := n
	var lastWild *Node
	if cur.Wildcard {
		lastWild = cur
	}

	for i, h := range fp.Hashes {
		c, ok := cur.children[h]
		if !ok || c.seg != fp.Segments[i] {
			return verdictFromWildcard(lastWild)
		}
		cur = c.node
		if cur.Wildcard {
			lastWild = cur
		}
	}

	if cur.EndNode {
		return boolVerdict(cur.State)
	}
	return verdictFromWildcard(lastWild)
}

func verdictFromWildcard(n *Node) Verdict {
	if n == nil {
		return NotFound
	}
	return boolVerdict(n.State)
}

func boolVerdict(state bool) Verdict {
	if state {
		return Allow
	}
	return Disallow
}

// Add inserts fp into the trie, creating intermediate nodes as needed, and
// returns the terminal node so the caller can attach or refresh a timer.
func (n *Node) Add(fp fingerprint.Fingerprint) *Node {
	cur := n
	for i, h := range fp.Hashes {
		c, ok := cur.children[h]
		if !ok {
			c = &child{seg: fp.Segments[i], node: newChildNode()}
			cur.children[h] = c
		}
		cur = c.node
	}
	cur.State = fp.Allow
	cur.Wildcard = fp.Wildcard
	cur.EndNode = true
	return cur
}

// Remove deletes fp from the trie, pruning empty intermediate chains, and
// kills every descendant timer it removes via killer (nil is a safe no-op).
//
// A wildcard-terminated fingerprint (e.g. "admin.*") only clears the
// reached node's children; it never un-declares the node itself —
// removing "admin.*" after it was declared does not make "admin.*"
// disappear from Dump, it only drops anything nested under "admin".
func (n *Node) Remove(fp fingerprint.Fingerprint, killer TimerKiller) {
	if killer == nil {
		killer = timerKillerFunc(nil)
	}

	if fp.Root() {
		n.children = make(map[uint64]*child)
		n.State = false
		n.Wildcard = false
		return
	}

	k := len(fp.Hashes)
	if k == 0 {
		return
	}

	type ancestor struct {
		parent *Node
		hash   uint64
	}
	ancestors := make([]ancestor, k)

	cur := n
	for i := 0; i < k; i++ {
		c, ok := cur.children[fp.Hashes[i]]
		if !ok {
			return
		}
		ancestors[i] = ancestor{parent: cur, hash: fp.Hashes[i]}
		cur = c.node
	}

	if fp.Wildcard {
		killDescendants(cur, killer)
		cur.children = make(map[uint64]*child)
		if cur.EndNode {
			return
		}
	} else {
		killIfSet(killer, cur.TimerID)
		killDescendants(cur, killer)
	}

	idx := k - 1
	delete(ancestors[idx].parent.children, ancestors[idx].hash)
	for {
		parent := ancestors[idx].parent
		if parent.EndNode || len(parent.children) > 0 {
			return
		}
		if idx == 0 {
			return
		}
		idx--
		delete(ancestors[idx].parent.children, ancestors[idx].hash)
	}
}

// Reset kills n's own timer plus every descendant's, then clears n back to
// an empty root. Unlike Remove(fp.Root(), ...) — which clears the trie
// without killing any timer, the root's or a descendant's — Reset is for
// whole-trie teardown (DeleteUser discarding a user's temp trie) where
// leaving a timer pointed at a trie about to be thrown away would fire
// later against nothing.
func (n *Node) Reset(killer TimerKiller) {
	if killer == nil {
		killer = timerKillerFunc(nil)
	}
	killIfSet(killer, n.TimerID)
	killDescendants(n, killer)
	n.children = make(map[uint64]*child)
	n.State = false
	n.Wildcard = false
}

func killIfSet(killer TimerKiller, id uint32) {
	if id != NoTimer {
		killer.Kill(id)
	}
}

// killDescendants kills the timer of every node strictly under n, recursing
// depth-first. It never touches n's own timer.
func killDescendants(n *Node, killer TimerKiller) {
	for _, c := range n.children {
		killIfSet(killer, c.node.TimerID)
		killDescendants(c.node, killer)
	}
}

// Dump returns one formatted entry per declared EndNode, depth-first, using
// the unambiguous grammar: a leading '-' for Deny, a trailing ".*" for
// wildcard nodes, and a trailing " <timestamp>" for temporary entries. A
// root wildcard is emitted first as "*" or "-*".
func (n *Node) Dump() []string {
	var out []string
	if n.Wildcard {
		out = append(out, formatEntry("*", n.State, false, n.Timestamp))
	}
	dumpChildren(n, "", &out)
	return out
}

func dumpChildren(n *Node, prefix string, out *[]string) {
	names := make([]string, 0, len(n.children))
	byName := make(map[string]*child, len(n.children))
	for _, c := range n.children {
		names = append(names, c.seg)
		byName[c.seg] = c
	}
	sort.Strings(names)

	for _, name := range names {
		c := byName[name]
		full := name
		if prefix != "" {
			full = prefix + "." + name
		}
		if c.node.EndNode {
			*out = append(*out, formatEntry(full, c.node.State, c.node.Wildcard, c.node.Timestamp))
		}
		dumpChildren(c.node, full, out)
	}
}

func formatEntry(path string, allow, wildcard bool, timestamp int64) string {
	var b strings.Builder
	if !allow {
		b.WriteByte('-')
	}
	b.WriteString(path)
	if wildcard {
		b.WriteString(".*")
	}
	if timestamp > 0 {
		b.WriteByte(' ')
		writeInt64(&b, timestamp)
	}
	return b.String()
}

func writeInt64(b *strings.Builder, v int64) {
	if v == 0 {
		b.WriteByte('0')
		return
	}
	if v < 0 {
		b.WriteByte('-')
		v = -v
	}
	var digits [20]byte
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	b.Write(digits[i:])
}

// Rehash is a no-op placeholder for a bottom-up "force rehash" pass after a
// bulk load; Go's map implementation has no equivalent resize-hint
// operation to call, so this exists to document the call site bulk-load
// code should invoke.
func (n *Node) Rehash() {}
