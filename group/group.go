package group

import (
	"github.com/ironforge/authority/fingerprint"
	"github.com/ironforge/authority/node"
)

// Group is a named priority level: its own permission trie plus a cookie
// map and an optional parent to fall back to.
type Group struct {
	Name     string
	Priority int
	Parent   *Group
	Cookies  map[string]any
	Nodes    *node.Node
}

// New returns an empty Group with the given name, priority, and optional
// parent (nil for a root-level group).
func New(name string, priority int, parent *Group) *Group {
	return &Group{
		Name:     name,
		Priority: priority,
		Parent:   parent,
		Cookies:  make(map[string]any),
		Nodes:    node.New(),
	}
}

// HasPermission walks g's own trie, then each parent's, in order, and
// returns the first decisive verdict. It returns node.NotFound only if the
// entire chain is NotFound.
func (g *Group) HasPermission(fp fingerprint.Fingerprint) node.Verdict {
	for cur := g; cur != nil; cur = cur.Parent {
		if v := cur.Nodes.Check(fp); v != node.NotFound {
			return v
		}
	}
	return node.NotFound
}

// AddPermission inserts fp into g's own trie and returns the terminal node
// for the caller to attach a timer to.
func (g *Group) AddPermission(fp fingerprint.Fingerprint) *node.Node {
	return g.Nodes.Add(fp)
}

// RemovePermission deletes fp from g's own trie.
func (g *Group) RemovePermission(fp fingerprint.Fingerprint, killer node.TimerKiller) {
	g.Nodes.Remove(fp, killer)
}

// Dump returns every declared permission in g's own trie, formatted per
// the node package's grammar.
func (g *Group) Dump() []string {
	return g.Nodes.Dump()
}

// Cookie looks up name in g's own map, then each parent's, in order.
func (g *Group) Cookie(name string) (any, bool) {
	for cur := g; cur != nil; cur = cur.Parent {
		if v, ok := cur.Cookies[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetCookie sets name on g's own map, never a parent's.
func (g *Group) SetCookie(name string, value any) {
	g.Cookies[name] = value
}

// AllCookies returns a copy of g's own cookie map, excluding parents — only
// a group's direct entries are ever reported.
func (g *Group) AllCookies() map[string]any {
	out := make(map[string]any, len(g.Cookies))
	for k, v := range g.Cookies {
		out[k] = v
	}
	return out
}

// Reaches reports whether target is g itself or any ancestor of g. The
// owning manager calls this before assigning a parent, to refuse a change
// that would introduce a cycle.
func (g *Group) Reaches(target *Group) bool {
	for cur := g; cur != nil; cur = cur.Parent {
		if cur == target {
			return true
		}
	}
	return false
}

// HasParent reports whether other appears anywhere in g's parent chain,
// starting at g's immediate parent (not g itself).
func (g *Group) HasParent(other *Group) bool {
	for cur := g.Parent; cur != nil; cur = cur.Parent {
		if cur == other {
			return true
		}
	}
	return false
}

// TempGroup is a temporary membership: a group reference, the timestamp it
// expires at, and the timer wheel id driving that expiry.
type TempGroup struct {
	Group     *Group
	Timestamp int64
	TimerID   uint32
}
