package user

import (
	"fmt"
	"sort"

	"github.com/ironforge/authority/fingerprint"
	"github.com/ironforge/authority/group"
	"github.com/ironforge/authority/node"
)

// PermType identifies which of the four permission layers produced a
// HasPermission verdict, ordered by precedence: a temp grant shadows a
// direct one, a direct one shadows anything inherited from a group.
type PermType int

const (
	TempUserPerm PermType = iota
	DirectUserPerm
	TempGroupPerm
	PermGroupPerm
	NonePerm
)

// User is one player's permission state: a temp trie, a direct trie, a
// cookie map, and the permanent/temporary group memberships it belongs to.
// Both group slices are kept sorted descending by group priority; callers
// must hold their own lock around every method, same as node and group.
type User struct {
	TempNodes  *node.Node
	UserNodes  *node.Node
	Cookies    map[string]any
	Groups     []*group.Group
	TempGroups []group.TempGroup
	Immunity   int
}

// TempPermSpec is one "perm timestamp" entry fed to New.
type TempPermSpec struct {
	Perm      string
	Timestamp int64
}

// TempGroupSpec is one temporary-membership entry fed to New; the group
// reference must already be resolved by the caller's name registry.
type TempGroupSpec struct {
	Group     *group.Group
	Timestamp int64
}

// PendingTempPerm pairs a just-created temp-permission node with the perm
// string it was parsed from, since the node itself carries no path back to
// its fingerprint's segments — the caller needs the string to dispatch a
// PermExpiration event when the wired timer eventually fires.
type PendingTempPerm struct {
	Perm string
	Node *node.Node
}

// ConstructResult is what New returns: the built User plus every temp entry
// it created that still needs a real timer wired up by the caller.
type ConstructResult struct {
	User                 *User
	PendingTempPermNodes []PendingTempPerm
	PendingTempGroups    []*group.Group
}

// New builds a User from a snapshot: an ordered list of permanent group
// refs, permanent perm strings, temp-perm specs, and temp-group specs.
// Every perm (permanent and temp) is routed through AddPerm so overlap
// between the two is resolved exactly as a live AddPerm call would resolve
// it; groups are appended directly since there's no existing state yet for
// them to collide with.
func New(immunity int, groups []*group.Group, perms []string, tempPerms []TempPermSpec, tempGroups []TempGroupSpec) ConstructResult {
	u := &User{
		TempNodes: node.New(),
		UserNodes: node.New(),
		Cookies:   make(map[string]any),
		Groups:    append([]*group.Group(nil), groups...),
		Immunity:  immunity,
	}
	u.SortGroups()

	for _, p := range perms {
		u.AddPerm(fingerprint.Parse(p), 0, nil)
	}

	var pendingPerms []PendingTempPerm
	for _, tp := range tempPerms {
		res := u.AddPerm(fingerprint.Parse(tp.Perm), tp.Timestamp, nil)
		if res.Node != nil && res.Node.TimerID == node.NoTimer {
			pendingPerms = append(pendingPerms, PendingTempPerm{Perm: tp.Perm, Node: res.Node})
		}
	}

	var pendingGroups []*group.Group
	for _, tg := range tempGroups {
		res := u.AddGroup(tg.Group, tg.Timestamp)
		if res.Outcome == AddGroupAdded {
			pendingGroups = append(pendingGroups, tg.Group)
		}
	}

	return ConstructResult{User: u, PendingTempPermNodes: pendingPerms, PendingTempGroups: pendingGroups}
}

// HasPermission walks the four layers in precedence order and returns the
// first decisive verdict along with the layer it came from. NonePerm is
// reported alongside node.NotFound when no layer has an opinion.
func (u *User) HasPermission(fp fingerprint.Fingerprint) (node.Verdict, PermType) {
	if v := u.TempNodes.Check(fp); v != node.NotFound {
		return v, TempUserPerm
	}
	if v := u.UserNodes.Check(fp); v != node.NotFound {
		return v, DirectUserPerm
	}
	for _, tg := range u.TempGroups {
		if v := tg.Group.HasPermission(fp); v != node.NotFound {
			return v, TempGroupPerm
		}
	}
	for _, g := range u.Groups {
		if v := g.HasPermission(fp); v != node.NotFound {
			return v, PermGroupPerm
		}
	}
	return node.NotFound, NonePerm
}

// AddPermResult reports what AddPerm did. Node is non-nil only for a temp
// add; the caller checks Node.TimerID against node.NoTimer to decide
// whether to create a fresh timer or reschedule the existing one.
type AddPermResult struct {
	AlreadyGranted bool
	Node           *node.Node
}

// AddPerm inserts fp as permanent (timestamp == 0) or temporary
// (timestamp != 0), following this diff/precedence logic:
//
//   - A requested grant that already matches the existing verdict exactly
//     (same polarity, whichever layer decides it) is a no-op reported as
//     AlreadyGranted — except when the existing source is a temp group,
//     which a permanent add always overrides regardless of diff.
//   - A permanent add made while a temp declaration of the same perm
//     exists unconditionally drops the temp declaration first (and always
//     proceeds to add, even with no diff), matching the source's
//     perm_type==0 branch short-circuiting the already-granted check.
func (u *User) AddPerm(fp fingerprint.Fingerprint, timestamp int64, killer node.TimerKiller) AddPermResult {
	status, permType := u.HasPermission(fp)
	requestDeny := !fp.Allow
	diff := !((requestDeny && status == node.Disallow) || (!requestDeny && status == node.Allow))

	if timestamp != 0 {
		if !diff {
			return AddPermResult{AlreadyGranted: true}
		}
		n := u.TempNodes.Add(fp)
		n.Timestamp = timestamp
		return AddPermResult{Node: n}
	}

	if permType == TempUserPerm {
		u.TempNodes.Remove(fp, killer)
	} else if !diff && permType != TempGroupPerm {
		return AddPermResult{AlreadyGranted: true}
	}
	u.UserNodes.Add(fp)
	return AddPermResult{}
}

// RemovePerm deletes fp from whichever of the user's own tries declares it.
// It refuses to touch a group-inherited permission (PermType > DirectUserPerm,
// which also covers NonePerm: nothing to remove). ok reports whether a
// removal happened; wasTemp reports which trie it came from, for the
// caller's event dispatch.
func (u *User) RemovePerm(fp fingerprint.Fingerprint, killer node.TimerKiller) (ok bool, wasTemp bool, permType PermType) {
	_, permType = u.HasPermission(fp)
	if permType > DirectUserPerm {
		return false, false, permType
	}
	if permType == TempUserPerm {
		u.TempNodes.Remove(fp, killer)
		return true, true, permType
	}
	u.UserNodes.Remove(fp, killer)
	return true, false, permType
}

// AddGroupOutcome reports what AddGroup did, so the caller knows whether a
// new timer needs creating, an existing one needs rescheduling, or a temp
// membership's timer needs killing after being promoted to permanent.
type AddGroupOutcome int

const (
	AddGroupAdded AddGroupOutcome = iota
	AddGroupAlreadyExist
	AddGroupRescheduled
	AddGroupPromoted
)

// AddGroupResult is what AddGroup returns. PriorTimerID is valid only for
// AddGroupRescheduled (reschedule this id to the new timestamp) and
// AddGroupPromoted (kill this id, the temp entry is gone).
type AddGroupResult struct {
	Outcome      AddGroupOutcome
	PriorTimerID uint32
}

// AddGroup adds g as a permanent (timestamp == 0) or temporary member, with
// this precedence:
//
//   - Already a permanent member, or reachable from one of this user's
//     permanent groups' own parent chains: AlreadyExist.
//   - Already the exact temp-group entry: a same timestamp is AlreadyExist;
//     a different one reschedules in place.
//   - Reachable from some other temp group's parent chain (but not an exact
//     match): AlreadyExist — redundant, that chain already implies it.
//   - Exact temp-group match requested as permanent (timestamp == 0):
//     promote — drop the temp entry, add as permanent.
//   - Otherwise: append as a fresh permanent or temp entry.
func (u *User) AddGroup(g *group.Group, timestamp int64) AddGroupResult {
	for _, pg := range u.Groups {
		if pg.Reaches(g) {
			return AddGroupResult{Outcome: AddGroupAlreadyExist}
		}
	}

	for i := range u.TempGroups {
		tg := &u.TempGroups[i]
		if tg.Group == g {
			if timestamp != 0 {
				if tg.Timestamp == timestamp {
					return AddGroupResult{Outcome: AddGroupAlreadyExist}
				}
				prior := tg.TimerID
				tg.Timestamp = timestamp
				u.SortGroups()
				return AddGroupResult{Outcome: AddGroupRescheduled, PriorTimerID: prior}
			}
			prior := tg.TimerID
			u.TempGroups = append(u.TempGroups[:i], u.TempGroups[i+1:]...)
			u.Groups = append(u.Groups, g)
			u.SortGroups()
			return AddGroupResult{Outcome: AddGroupPromoted, PriorTimerID: prior}
		}
		if tg.Group.Reaches(g) {
			return AddGroupResult{Outcome: AddGroupAlreadyExist}
		}
	}

	if timestamp == 0 {
		u.Groups = append(u.Groups, g)
	} else {
		u.TempGroups = append(u.TempGroups, group.TempGroup{Group: g, Timestamp: timestamp, TimerID: node.NoTimer})
	}
	u.SortGroups()
	return AddGroupResult{Outcome: AddGroupAdded}
}

// SetTempGroupTimer wires the timer id the caller created for a just-added
// temp-group entry back onto that entry.
func (u *User) SetTempGroupTimer(g *group.Group, timerID uint32) {
	for i := range u.TempGroups {
		if u.TempGroups[i].Group == g {
			u.TempGroups[i].TimerID = timerID
			return
		}
	}
}

// RemoveGroupResult reports what RemoveGroup found and removed.
type RemoveGroupResult struct {
	Found     bool
	Temp      bool
	Timestamp int64
	TimerID   uint32
}

// RemoveGroup removes g if it is an exact member — temp membership is
// checked first, then permanent — and does nothing for a group that is
// merely reachable through the parent chain; only exact membership counts.
func (u *User) RemoveGroup(g *group.Group) RemoveGroupResult {
	for i, tg := range u.TempGroups {
		if tg.Group == g {
			u.TempGroups = append(u.TempGroups[:i], u.TempGroups[i+1:]...)
			return RemoveGroupResult{Found: true, Temp: true, Timestamp: tg.Timestamp, TimerID: tg.TimerID}
		}
	}
	for i, pg := range u.Groups {
		if pg == g {
			u.Groups = append(u.Groups[:i], u.Groups[i+1:]...)
			return RemoveGroupResult{Found: true}
		}
	}
	return RemoveGroupResult{}
}

// HasGroup reports whether g is a permanent member or reachable from one of
// the permanent groups' own parent chains. Temporary memberships are never
// consulted.
func (u *User) HasGroup(g *group.Group) bool {
	for _, pg := range u.Groups {
		if pg.Reaches(g) {
			return true
		}
	}
	return false
}

// EffectiveImmunity returns Immunity if it was set explicitly (!= -1), or
// else the highest priority among the user's front permanent and front temp
// group (SortGroups keeps both lists sorted descending, so index 0 is the
// max of each), or -1 if the user belongs to no group at all.
func (u *User) EffectiveImmunity() int {
	if u.Immunity != -1 {
		return u.Immunity
	}
	max := -1
	if len(u.Groups) > 0 && u.Groups[0].Priority > max {
		max = u.Groups[0].Priority
	}
	if len(u.TempGroups) > 0 && u.TempGroups[0].Group.Priority > max {
		max = u.TempGroups[0].Group.Priority
	}
	return max
}

// Cookie looks up name in the user's own map, then each permanent group's
// own parent chain, stopping at the first match. Temp groups are not
// consulted.
func (u *User) Cookie(name string) (any, bool) {
	if v, ok := u.Cookies[name]; ok {
		return v, true
	}
	for _, g := range u.Groups {
		if v, ok := g.Cookie(name); ok {
			return v, true
		}
	}
	return nil, false
}

// SetCookie sets name on the user's own map, never a group's.
func (u *User) SetCookie(name string, value any) {
	u.Cookies[name] = value
}

// AllCookies returns a copy of the user's own cookie map, excluding every
// group's.
func (u *User) AllCookies() map[string]any {
	out := make(map[string]any, len(u.Cookies))
	for k, v := range u.Cookies {
		out[k] = v
	}
	return out
}

// Dump returns every declared permission across both tries, direct entries
// first and temp entries appended after — the same order the grounding
// source's DumpPermissions concatenates them in.
func (u *User) Dump() []string {
	out := u.UserNodes.Dump()
	return append(out, u.TempNodes.Dump()...)
}

// GroupNames formats the user's memberships as Dump does for permissions:
// a bare name for each permanent group, "name timestamp" for each temp one.
func (u *User) GroupNames() []string {
	out := make([]string, 0, len(u.Groups)+len(u.TempGroups))
	for _, g := range u.Groups {
		out = append(out, g.Name)
	}
	for _, tg := range u.TempGroups {
		out = append(out, fmt.Sprintf("%s %d", tg.Group.Name, tg.Timestamp))
	}
	return out
}

// SortGroups keeps both group slices sorted descending by priority, the
// invariant EffectiveImmunity and precedence ordering rely on.
func (u *User) SortGroups() {
	sort.SliceStable(u.Groups, func(i, j int) bool { return u.Groups[i].Priority > u.Groups[j].Priority })
	sort.SliceStable(u.TempGroups, func(i, j int) bool { return u.TempGroups[i].Group.Priority > u.TempGroups[j].Group.Priority })
}
