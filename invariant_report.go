package authority

import (
	"github.com/ironforge/authority/group"
	"github.com/ironforge/authority/internal/invariants"
	"github.com/ironforge/authority/user"
)

// InvariantReport runs every structural check internal/invariants knows
// about against the current live group/user registries and returns the
// aggregate result. It never mutates state and takes each mutex only long
// enough to snapshot the live pointers; cmd/authority-invariant-scan is
// the intended caller, after replaying a scripted scenario against a
// fresh Core.
//
// DeleteGroup already nulls dangling Parent pointers and excises
// memberships before freeing a group. Core keeps no record of deleted
// groups, so the deleted set passed to Scan is empty and NoDanglingParent
// and NoLingeringMembership report nothing here; the report's findings
// come from NoDuplicateGroupMembership and ImmunityOrdering.
func (c *Core) InvariantReport() invariants.Report {
	c.groupsMu.RLock()
	groups := make([]*group.Group, 0, len(c.groups))
	for _, g := range c.groups {
		groups = append(groups, g)
	}
	c.groupsMu.RUnlock()

	c.usersMu.RLock()
	users := make([]*user.User, 0, len(c.users))
	ids := make([]uint64, 0, len(c.users))
	for id, u := range c.users {
		users = append(users, u)
		ids = append(ids, id)
	}
	c.usersMu.RUnlock()

	report := invariants.Scan(groups, users, nil)

	for i, actorID := range ids {
		for j := i + 1; j < len(ids); j++ {
			canAffect, err := c.CanAffectUser(actorID, ids[j])
			if err != nil {
				continue
			}
			report.Violations = append(report.Violations,
				invariants.ImmunityOrdering(users[i], users[j], canAffect)...)
		}
	}
	return report
}
