package authoritytest

import (
	"testing"

	authority "github.com/ironforge/authority"
)

func TestFakeStorageProviderReplaysUserSnapshot(t *testing.T) {
	provider := NewFakeStorageProvider()
	provider.Users[1] = UserSnapshot{Immunity: 2, Perms: []string{"a.b"}}

	core, err := authority.New().WithStorageProvider(provider).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer core.Close()

	core.LoadUser(1)
	core.Close()

	if status, _ := core.HasPermission(1, "a.b"); status != authority.Allow {
		t.Fatalf("HasPermission(1, a.b) = %v, want Allow", status)
	}
	if len(provider.UserLoadCalls) != 1 || provider.UserLoadCalls[0] != 1 {
		t.Fatalf("UserLoadCalls = %v, want [1]", provider.UserLoadCalls)
	}
}

func TestFakeStorageProviderOrdersGroupsByParent(t *testing.T) {
	provider := NewFakeStorageProvider()
	provider.Groups["child"] = GroupSnapshot{Perms: []string{"c.d"}, Parent: "parent"}
	provider.Groups["parent"] = GroupSnapshot{Perms: []string{"a.b"}}

	core, err := authority.New().WithStorageProvider(provider).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer core.Close()

	core.LoadGroups()
	core.Close()

	got, status := core.GetParent("child")
	if status != authority.Success || got != "parent" {
		t.Fatalf("GetParent(child) = (%q, %v), want (parent, Success)", got, status)
	}
	if provider.GroupsLoadCalls != 1 {
		t.Fatalf("GroupsLoadCalls = %d, want 1", provider.GroupsLoadCalls)
	}
}
