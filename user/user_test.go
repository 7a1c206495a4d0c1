package user

import (
	"testing"

	"github.com/ironforge/authority/fingerprint"
	"github.com/ironforge/authority/group"
	"github.com/ironforge/authority/node"
)

func newTestUser() *User {
	return New(-1, nil, nil, nil, nil).User
}

func TestHasPermissionLayerPrecedence(t *testing.T) {
	admins := group.New("admins", 10, nil)
	admins.AddPermission(fingerprint.Parse("admin.*"))

	u := newTestUser()
	u.Groups = []*group.Group{admins}

	if v, pt := u.HasPermission(fingerprint.Parse("admin.kick")); v != node.Allow || pt != PermGroupPerm {
		t.Fatalf("got (%v, %v), want (Allow, PermGroupPerm)", v, pt)
	}

	u.AddPerm(fingerprint.Parse("-admin.kick"), 0, nil)
	if v, pt := u.HasPermission(fingerprint.Parse("admin.kick")); v != node.Disallow || pt != DirectUserPerm {
		t.Fatalf("direct should win over group: got (%v, %v)", v, pt)
	}

	u.AddPerm(fingerprint.Parse("admin.kick"), 12345, nil)
	if v, pt := u.HasPermission(fingerprint.Parse("admin.kick")); v != node.Allow || pt != TempUserPerm {
		t.Fatalf("temp should win over direct: got (%v, %v)", v, pt)
	}
}

func TestAddPermAlreadyGrantedIsNoop(t *testing.T) {
	u := newTestUser()
	u.AddPerm(fingerprint.Parse("chat.send"), 0, nil)
	res := u.AddPerm(fingerprint.Parse("chat.send"), 0, nil)
	if !res.AlreadyGranted {
		t.Fatal("re-adding the identical permanent grant should report AlreadyGranted")
	}
}

func TestAddPermPermanentOverridesTempGroupEvenWithoutDiff(t *testing.T) {
	admins := group.New("admins", 10, nil)
	admins.AddPermission(fingerprint.Parse("chat.send"))

	u := newTestUser()
	u.TempGroups = []group.TempGroup{{Group: admins, Timestamp: 999, TimerID: node.NoTimer}}

	res := u.AddPerm(fingerprint.Parse("chat.send"), 0, nil)
	if res.AlreadyGranted {
		t.Fatal("a permanent add against a temp-group-sourced verdict must always proceed, not report AlreadyGranted")
	}
	if v, pt := u.HasPermission(fingerprint.Parse("chat.send")); v != node.Allow || pt != DirectUserPerm {
		t.Fatalf("got (%v, %v), want (Allow, DirectUserPerm)", v, pt)
	}
}

func TestAddPermPermanentDropsExistingTempUnconditionally(t *testing.T) {
	u := newTestUser()
	u.AddPerm(fingerprint.Parse("chat.send"), 555, nil)

	res := u.AddPerm(fingerprint.Parse("chat.send"), 0, nil)
	if res.AlreadyGranted {
		t.Fatal("converting a temp grant to permanent must not report AlreadyGranted")
	}
	if v, pt := u.HasPermission(fingerprint.Parse("chat.send")); v != node.Allow || pt != DirectUserPerm {
		t.Fatalf("got (%v, %v), want (Allow, DirectUserPerm); temp declaration should be gone", v, pt)
	}
	if dump := u.TempNodes.Dump(); len(dump) != 0 {
		t.Fatalf("temp trie should be empty after promotion, got %v", dump)
	}
}

func TestAddPermTempReturnsNodeForTimerWiring(t *testing.T) {
	u := newTestUser()
	res := u.AddPerm(fingerprint.Parse("chat.send"), 100, nil)
	if res.Node == nil {
		t.Fatal("temp add should return the terminal node")
	}
	if res.Node.TimerID != node.NoTimer {
		t.Fatal("freshly added temp node should start with no timer wired")
	}
	res.Node.TimerID = 7

	// Same polarity, no actual verdict change: AlreadyGranted, timer untouched.
	same := u.AddPerm(fingerprint.Parse("chat.send"), 200, nil)
	if !same.AlreadyGranted {
		t.Fatal("re-granting an identical temp perm should report AlreadyGranted and not reschedule")
	}

	// Flipped polarity is a real diff: lands on the same node, existing timer id intact.
	flipped := u.AddPerm(fingerprint.Parse("-chat.send"), 300, nil)
	if flipped.Node == nil || flipped.Node.TimerID != 7 {
		t.Fatal("a genuine diff should return the same node with its existing timer id intact for rescheduling")
	}
	if flipped.Node.Timestamp != 300 {
		t.Fatalf("timestamp should be updated to 300, got %d", flipped.Node.Timestamp)
	}
}

func TestRemovePermRefusesGroupOwnedPermission(t *testing.T) {
	admins := group.New("admins", 10, nil)
	admins.AddPermission(fingerprint.Parse("chat.send"))

	u := newTestUser()
	u.Groups = []*group.Group{admins}

	ok, _, pt := u.RemovePerm(fingerprint.Parse("chat.send"), nil)
	if ok || pt != PermGroupPerm {
		t.Fatalf("RemovePerm on a group-owned perm should refuse: got ok=%v pt=%v", ok, pt)
	}
}

func TestRemovePermRefusesUnknownPermission(t *testing.T) {
	u := newTestUser()
	ok, _, pt := u.RemovePerm(fingerprint.Parse("chat.send"), nil)
	if ok || pt != NonePerm {
		t.Fatalf("RemovePerm on an unknown perm should refuse: got ok=%v pt=%v", ok, pt)
	}
}

func TestRemovePermPrefersTempLayer(t *testing.T) {
	u := newTestUser()
	u.AddPerm(fingerprint.Parse("chat.send"), 100, nil)

	ok, wasTemp, pt := u.RemovePerm(fingerprint.Parse("chat.send"), nil)
	if !ok || !wasTemp || pt != TempUserPerm {
		t.Fatalf("got ok=%v wasTemp=%v pt=%v, want true/true/TempUserPerm", ok, wasTemp, pt)
	}
	if v, _ := u.HasPermission(fingerprint.Parse("chat.send")); v != node.NotFound {
		t.Fatal("permission should be gone after removal")
	}
}

func TestAddGroupAlreadyExistViaParentChain(t *testing.T) {
	root := group.New("root", 10, nil)
	mid := group.New("mid", 5, root)

	u := newTestUser()
	u.Groups = []*group.Group{mid}

	res := u.AddGroup(root, 0)
	if res.Outcome != AddGroupAlreadyExist {
		t.Fatalf("adding an ancestor of an existing permanent group should be AlreadyExist, got %v", res.Outcome)
	}
}

func TestAddGroupTempRescheduleOnSameGroupDifferentTimestamp(t *testing.T) {
	g := group.New("vip", 5, nil)
	u := newTestUser()
	u.AddGroup(g, 100)
	u.TempGroups[0].TimerID = 42

	res := u.AddGroup(g, 200)
	if res.Outcome != AddGroupRescheduled || res.PriorTimerID != 42 {
		t.Fatalf("got %v/%d, want Rescheduled/42", res.Outcome, res.PriorTimerID)
	}
	if u.TempGroups[0].Timestamp != 200 {
		t.Fatalf("timestamp should be updated to 200, got %d", u.TempGroups[0].Timestamp)
	}
}

func TestAddGroupTempSameTimestampIsAlreadyExist(t *testing.T) {
	g := group.New("vip", 5, nil)
	u := newTestUser()
	u.AddGroup(g, 100)

	res := u.AddGroup(g, 100)
	if res.Outcome != AddGroupAlreadyExist {
		t.Fatalf("got %v, want AlreadyExist", res.Outcome)
	}
}

func TestAddGroupPromotesTempToPermanent(t *testing.T) {
	g := group.New("vip", 5, nil)
	u := newTestUser()
	u.AddGroup(g, 100)
	u.TempGroups[0].TimerID = 9

	res := u.AddGroup(g, 0)
	if res.Outcome != AddGroupPromoted || res.PriorTimerID != 9 {
		t.Fatalf("got %v/%d, want Promoted/9", res.Outcome, res.PriorTimerID)
	}
	if len(u.TempGroups) != 0 || len(u.Groups) != 1 || u.Groups[0] != g {
		t.Fatalf("expected g to move from TempGroups to Groups, got temp=%v groups=%v", u.TempGroups, u.Groups)
	}
}

func TestAddGroupRedundantViaOtherTempGroupChain(t *testing.T) {
	root := group.New("root", 10, nil)
	mid := group.New("mid", 5, root)

	u := newTestUser()
	u.AddGroup(mid, 100)

	res := u.AddGroup(root, 50)
	if res.Outcome != AddGroupAlreadyExist {
		t.Fatalf("adding an ancestor of an existing temp group should be AlreadyExist, got %v", res.Outcome)
	}
}

func TestAddGroupFreshAppendsSortedByPriority(t *testing.T) {
	low := group.New("low", 1, nil)
	high := group.New("high", 10, nil)

	u := newTestUser()
	u.AddGroup(low, 0)
	u.AddGroup(high, 0)

	if u.Groups[0] != high || u.Groups[1] != low {
		t.Fatalf("Groups should be sorted descending by priority, got %v", u.Groups)
	}
}

func TestRemoveGroupExactMembershipOnly(t *testing.T) {
	root := group.New("root", 10, nil)
	mid := group.New("mid", 5, root)

	u := newTestUser()
	u.Groups = []*group.Group{mid}

	if res := u.RemoveGroup(root); res.Found {
		t.Fatal("RemoveGroup should not match an ancestor that was never an exact member")
	}
	res := u.RemoveGroup(mid)
	if !res.Found || res.Temp {
		t.Fatalf("got %+v, want Found permanent removal", res)
	}
	if len(u.Groups) != 0 {
		t.Fatal("mid should be removed from Groups")
	}
}

func TestRemoveGroupTempChecksBeforePermanent(t *testing.T) {
	g := group.New("vip", 5, nil)
	u := newTestUser()
	u.AddGroup(g, 100)
	u.TempGroups[0].TimerID = 3

	res := u.RemoveGroup(g)
	if !res.Found || !res.Temp || res.TimerID != 3 || res.Timestamp != 100 {
		t.Fatalf("got %+v, want Found temp removal with TimerID=3 Timestamp=100", res)
	}
}

func TestHasGroupIgnoresTempMemberships(t *testing.T) {
	g := group.New("vip", 5, nil)
	u := newTestUser()
	u.AddGroup(g, 100)

	if u.HasGroup(g) {
		t.Fatal("HasGroup should not consider temp memberships, only permanent")
	}
	u.AddGroup(g, 0)
	if !u.HasGroup(g) {
		t.Fatal("HasGroup should find g once promoted to permanent")
	}
}

func TestHasGroupFollowsPermanentParentChain(t *testing.T) {
	root := group.New("root", 10, nil)
	mid := group.New("mid", 5, root)

	u := newTestUser()
	u.Groups = []*group.Group{mid}

	if !u.HasGroup(root) {
		t.Fatal("HasGroup should find an ancestor of a permanent group")
	}
}

func TestEffectiveImmunityExplicitOverridesDerived(t *testing.T) {
	u := newTestUser()
	u.Immunity = 50
	u.Groups = []*group.Group{group.New("admins", 10, nil)}

	if got := u.EffectiveImmunity(); got != 50 {
		t.Fatalf("explicit immunity should win, got %d", got)
	}
}

func TestEffectiveImmunityDerivedFromFrontGroups(t *testing.T) {
	u := newTestUser()
	u.Immunity = -1
	u.Groups = []*group.Group{group.New("admins", 10, nil)}
	u.TempGroups = []group.TempGroup{{Group: group.New("vip", 20, nil), Timestamp: 1}}
	u.SortGroups()

	if got := u.EffectiveImmunity(); got != 20 {
		t.Fatalf("got %d, want 20 (max of front permanent and front temp)", got)
	}
}

func TestEffectiveImmunityNoGroupsIsMinusOne(t *testing.T) {
	u := newTestUser()
	u.Immunity = -1
	if got := u.EffectiveImmunity(); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestCookieFallsThroughToPermanentGroupsOnly(t *testing.T) {
	admins := group.New("admins", 10, nil)
	admins.SetCookie("theme", "dark")

	u := newTestUser()
	u.Groups = []*group.Group{admins}

	if v, ok := u.Cookie("theme"); !ok || v != "dark" {
		t.Fatalf("got (%v, %v), want (dark, true)", v, ok)
	}

	u2 := newTestUser()
	u2.TempGroups = []group.TempGroup{{Group: admins, Timestamp: 1}}
	if _, ok := u2.Cookie("theme"); ok {
		t.Fatal("Cookie should not consult temp group memberships")
	}
}

func TestCookieOwnMapWinsOverGroup(t *testing.T) {
	admins := group.New("admins", 10, nil)
	admins.SetCookie("theme", "dark")

	u := newTestUser()
	u.Groups = []*group.Group{admins}
	u.SetCookie("theme", "light")

	if v, _ := u.Cookie("theme"); v != "light" {
		t.Fatalf("own cookie map should win, got %v", v)
	}
}

func TestCookieFirstMatchingGroupWinsOverLaterGroupMiss(t *testing.T) {
	withCookie := group.New("a", 10, nil)
	withCookie.SetCookie("theme", "dark")
	without := group.New("b", 5, nil)

	u := newTestUser()
	u.Groups = []*group.Group{withCookie, without}

	if v, ok := u.Cookie("theme"); !ok || v != "dark" {
		t.Fatalf("got (%v, %v), want (dark, true); a later group with no answer must not clobber an earlier hit", v, ok)
	}
}

func TestDumpConcatenatesDirectThenTemp(t *testing.T) {
	u := newTestUser()
	u.AddPerm(fingerprint.Parse("chat.send"), 0, nil)
	u.AddPerm(fingerprint.Parse("admin.kick"), 500, nil)

	dump := u.Dump()
	if len(dump) != 2 || dump[0] != "chat.send" || dump[1] != "admin.kick 500" {
		t.Fatalf("got %v, want [chat.send, \"admin.kick 500\"]", dump)
	}
}

func TestNewResolvesTempPermOverlapWithPermanentList(t *testing.T) {
	// The permanent grant allows chat.send; the temp spec requests the
	// opposite polarity, a genuine diff, so the temp layer takes over
	// without touching the permanent trie underneath it.
	result := New(-1, nil, []string{"chat.send"}, []TempPermSpec{{Perm: "-chat.send", Timestamp: 100}}, nil)
	u := result.User

	if v, pt := u.HasPermission(fingerprint.Parse("chat.send")); v != node.Disallow || pt != TempUserPerm {
		t.Fatalf("got (%v, %v), want (Disallow, TempUserPerm); temp layer should shadow the permanent grant loaded first", v, pt)
	}
	if dump := u.UserNodes.Dump(); len(dump) != 1 || dump[0] != "chat.send" {
		t.Fatalf("permanent trie should be untouched by a temp add, got %v", dump)
	}
	if len(result.PendingTempPermNodes) != 1 {
		t.Fatalf("expected one pending temp node needing a timer, got %d", len(result.PendingTempPermNodes))
	}
}

func TestNewAppendsResolvedTempGroups(t *testing.T) {
	g := group.New("vip", 5, nil)
	result := New(-1, nil, nil, nil, []TempGroupSpec{{Group: g, Timestamp: 999}})
	u := result.User

	if len(u.TempGroups) != 1 || u.TempGroups[0].Group != g || u.TempGroups[0].Timestamp != 999 {
		t.Fatalf("got %v, want one temp group entry for vip at 999", u.TempGroups)
	}
	if len(result.PendingTempGroups) != 1 || result.PendingTempGroups[0] != g {
		t.Fatalf("expected vip to be reported as a pending temp group needing a timer, got %v", result.PendingTempGroups)
	}
}
