package invariants

import (
	"fmt"

	"github.com/ironforge/authority/group"
	"github.com/ironforge/authority/status"
	"github.com/ironforge/authority/user"
)

// Violation is one failed check, named by Rule for programmatic filtering
// and carrying a human-readable Detail.
type Violation struct {
	Rule   string
	Detail string
}

// Report is the aggregate result of a Scan.
type Report struct {
	Violations []Violation
}

// Clean reports whether the scan found nothing wrong.
func (r Report) Clean() bool {
	return len(r.Violations) == 0
}

// NoDanglingParent checks that for every group g deleted, no surviving
// group's Parent still points at g.
func NoDanglingParent(surviving []*group.Group, deleted map[*group.Group]bool) []Violation {
	var out []Violation
	for _, g := range surviving {
		if g.Parent != nil && deleted[g.Parent] {
			out = append(out, Violation{
				Rule:   "no-dangling-parent",
				Detail: fmt.Sprintf("group %q still points at deleted parent %q", g.Name, g.Parent.Name),
			})
		}
	}
	return out
}

// NoLingeringMembership checks that for every group g deleted, no user's
// permanent or temporary membership list still references g.
func NoLingeringMembership(users []*user.User, deleted map[*group.Group]bool) []Violation {
	var out []Violation
	for _, u := range users {
		for _, g := range u.Groups {
			if deleted[g] {
				out = append(out, Violation{
					Rule:   "no-lingering-membership",
					Detail: fmt.Sprintf("user still lists deleted group %q as a permanent member", g.Name),
				})
			}
		}
		for _, tg := range u.TempGroups {
			if deleted[tg.Group] {
				out = append(out, Violation{
					Rule:   "no-lingering-membership",
					Detail: fmt.Sprintf("user still lists deleted group %q as a temporary member", tg.Group.Name),
				})
			}
		}
	}
	return out
}

// NoDuplicateGroupMembership checks that a user's membership list contains
// no group reachable via another membership's own parent chain. Permanent
// and temp lists are checked independently: AddGroup (the only mutator)
// only ever de-duplicates within the permanent list and within the temp
// list, never across the two — a temp membership of a group whose parent
// is already a permanent membership is a real, reachable state (see
// user.AddGroupPromoted), not a violation.
func NoDuplicateGroupMembership(u *user.User) []Violation {
	var out []Violation
	for i, g := range u.Groups {
		for j, other := range u.Groups {
			if i == j {
				continue
			}
			if other.Reaches(g) {
				out = append(out, Violation{
					Rule:   "no-duplicate-group-membership",
					Detail: fmt.Sprintf("permanent group %q is reachable via %q's parent chain", g.Name, other.Name),
				})
			}
		}
	}
	for i, tg := range u.TempGroups {
		for j, other := range u.TempGroups {
			if i == j {
				continue
			}
			if other.Group.Reaches(tg.Group) {
				out = append(out, Violation{
					Rule:   "no-duplicate-group-membership",
					Detail: fmt.Sprintf("temp group %q is reachable via %q's parent chain", tg.Group.Name, other.Group.Name),
				})
			}
		}
	}
	return out
}

// ImmunityOrdering checks that can_affect(a, b) == Allow iff
// effective_immunity(a) >= effective_immunity(b). The caller supplies
// whatever CanAffect actually returned for the pair, so this can verify
// either a live call or a recorded one from a scripted scenario.
func ImmunityOrdering(a, b *user.User, canAffect status.Status) []Violation {
	want := a.EffectiveImmunity() >= b.EffectiveImmunity()
	got := canAffect == status.Allow
	if want == got {
		return nil
	}
	return []Violation{{
		Rule: "immunity-ordering",
		Detail: fmt.Sprintf(
			"effective immunity a=%d b=%d implies can_affect=%v, but observed %v",
			a.EffectiveImmunity(), b.EffectiveImmunity(), want, canAffect,
		),
	}}
}

// Scan runs every structural check this package knows about and
// aggregates the violations into one Report.
func Scan(surviving []*group.Group, users []*user.User, deleted map[*group.Group]bool) Report {
	var out []Violation
	out = append(out, NoDanglingParent(surviving, deleted)...)
	out = append(out, NoLingeringMembership(users, deleted)...)
	for _, u := range users {
		out = append(out, NoDuplicateGroupMembership(u)...)
	}
	return Report{Violations: out}
}
