package authority

import (
	"testing"
	"time"
)

func newTestCoreWithClock(t *testing.T) (*Core, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
	core, err := New().WithTickSource(c.Now).Build()
	if err != nil {
		t.Fatalf("New().Build() failed: %v", err)
	}
	t.Cleanup(core.Close)
	return core, c
}

// clock is a minimal deterministic TickSource for this package's own
// tests; authoritytest.Clock exists for consumers outside this module and
// cannot be imported here without an import cycle.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestCreateUserRejectsUnknownGroup(t *testing.T) {
	core := newTestCore(t)

	if status := core.CreateUser(1, 0, []string{"ghost"}, nil); status != GroupNotFound {
		t.Fatalf("CreateUser with unknown group = %v, want GroupNotFound", status)
	}
}

func TestCreateUserRejectsDuplicateID(t *testing.T) {
	core := newTestCore(t)

	if status := core.CreateUser(1, 0, nil, nil); status != Success {
		t.Fatalf("first CreateUser = %v, want Success", status)
	}
	if status := core.CreateUser(1, 0, nil, nil); status != UserAlreadyExist {
		t.Fatalf("second CreateUser = %v, want UserAlreadyExist", status)
	}
}

func TestHasPermissionInheritsFromGroup(t *testing.T) {
	core := newTestCore(t)
	core.CreateGroup("g", []string{"a.b"}, 0, "")
	core.CreateUser(1, 0, []string{"g"}, nil)

	if status, _ := core.HasPermission(1, "a.b"); status != Allow {
		t.Fatalf("HasPermission(1, a.b) = %v, want Allow", status)
	}
	if status, _ := core.HasPermission(1, "c.d"); status != PermNotFound {
		t.Fatalf("HasPermission(1, c.d) = %v, want PermNotFound", status)
	}
}

func TestTemporaryPermissionExpiresOnRunFrame(t *testing.T) {
	core, c := newTestCoreWithClock(t)
	core.CreateUser(1, 0, nil, nil)

	grantAt := c.now.Add(time.Minute).Unix()
	if status := core.AddPermission(1, "a.b", grantAt, false); status != Success {
		t.Fatalf("AddPermission = %v", status)
	}
	if status, _ := core.HasPermission(1, "a.b"); status != Allow {
		t.Fatalf("HasPermission before expiry = %v, want Allow", status)
	}

	c.advance(2 * time.Minute)
	core.RunFrame()

	if status, _ := core.HasPermission(1, "a.b"); status != PermNotFound {
		t.Fatalf("HasPermission after expiry = %v, want PermNotFound", status)
	}
}

func TestCanAffectUserFollowsImmunityOrdering(t *testing.T) {
	core := newTestCore(t)
	core.CreateUser(1, 10, nil, nil)
	core.CreateUser(2, 20, nil, nil)

	if status, err := core.CanAffectUser(1, 2); err != nil || status != Disallow {
		t.Fatalf("CanAffectUser(1, 2) = (%v, %v), want (Disallow, nil)", status, err)
	}
	if status, err := core.CanAffectUser(2, 1); err != nil || status != Allow {
		t.Fatalf("CanAffectUser(2, 1) = (%v, %v), want (Allow, nil)", status, err)
	}
}

func TestCanAffectUserReportsMissingUsers(t *testing.T) {
	core := newTestCore(t)
	core.CreateUser(1, 0, nil, nil)

	if status, _ := core.CanAffectUser(99, 1); status != ActorUserNotFound {
		t.Fatalf("CanAffectUser(99, 1) = %v, want ActorUserNotFound", status)
	}
	if status, _ := core.CanAffectUser(1, 99); status != TargetUserNotFound {
		t.Fatalf("CanAffectUser(1, 99) = %v, want TargetUserNotFound", status)
	}
}

func TestAddAndRemoveGroupUpdatesMembership(t *testing.T) {
	core := newTestCore(t)
	core.CreateGroup("g", []string{"a.b"}, 0, "")
	core.CreateUser(1, 0, nil, nil)

	if status := core.AddGroup(1, "g", 0, true); status != Success {
		t.Fatalf("AddGroup = %v", status)
	}
	if status, _ := core.HasPermission(1, "a.b"); status != Allow {
		t.Fatalf("HasPermission after AddGroup = %v, want Allow", status)
	}

	if status := core.RemoveGroup(1, "g", true); status != Success {
		t.Fatalf("RemoveGroup = %v", status)
	}
	if status, _ := core.HasPermission(1, "a.b"); status != PermNotFound {
		t.Fatalf("HasPermission after RemoveGroup = %v, want PermNotFound", status)
	}
}

func TestDeleteUserRemovesFromRegistry(t *testing.T) {
	core := newTestCore(t)
	core.CreateUser(1, 0, nil, nil)

	if status := core.DeleteUser(1); status != Success {
		t.Fatalf("DeleteUser = %v", status)
	}
	if core.UserExists(1) {
		t.Fatal("UserExists(1) = true after DeleteUser")
	}
	if status := core.DeleteUser(1); status != TargetUserNotFound {
		t.Fatalf("second DeleteUser = %v, want TargetUserNotFound", status)
	}
}

func TestSetAndGetCookie(t *testing.T) {
	core := newTestCore(t)
	core.CreateUser(1, 0, nil, nil)

	if status := core.SetCookie(1, "k", 42); status != Success {
		t.Fatalf("SetCookie = %v", status)
	}
	v, status := core.GetCookie(1, "k")
	if status != Success || v != 42 {
		t.Fatalf("GetCookie = (%v, %v), want (42, Success)", v, status)
	}
}

func TestDumpPermissionsOrdersUserNodesBeforeTempNodes(t *testing.T) {
	core := newTestCore(t)
	core.CreateUser(1, 0, nil, []string{"a.b"})
	core.AddPermission(1, "c.d", 4102444800, true)

	dump, status := core.DumpPermissions(1)
	if status != Success {
		t.Fatalf("DumpPermissions = %v", status)
	}

	permIndex := map[string]int{}
	for i, p := range dump {
		permIndex[p] = i
	}
	if permIndex["a.b"] >= permIndex["c.d 4102444800"] {
		t.Fatalf("DumpPermissions = %v, want a.b (permanent) before \"c.d 4102444800\" (temp)", dump)
	}
}
