package redisprovider

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	authority "github.com/ironforge/authority"
)

func newTestProvider(t *testing.T) (*Provider, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	p, err := NewProvider(client, "test")
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	return p, mr
}

func TestNewProviderRejectsNilClient(t *testing.T) {
	if _, err := NewProvider(nil, ""); err != ErrNilClient {
		t.Fatalf("expected ErrNilClient, got %v", err)
	}
}

func TestOnUserLoadReplaysPersistedSnapshot(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()

	if err := p.SaveUser(ctx, 42, 3, nil, []string{"chat.send", "chat.delete"}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	core, err := authority.New().WithStorageProvider(p).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	core.LoadUser(42)
	core.Close()

	status, _ := core.HasPermission(42, "chat.send")
	if status != authority.Allow {
		t.Fatalf("HasPermission(42, chat.send) = %v, want Allow", status)
	}
}

func TestOnGroupsLoadOrdersParentBeforeChild(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()

	if err := p.SaveGroup(ctx, "child", []string{"child.perm"}, 1, "parent"); err != nil {
		t.Fatalf("SaveGroup(child) failed: %v", err)
	}
	if err := p.SaveGroup(ctx, "parent", []string{"parent.perm"}, 2, ""); err != nil {
		t.Fatalf("SaveGroup(parent) failed: %v", err)
	}

	core, err := authority.New().WithStorageProvider(p).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	core.LoadGroups()
	core.Close()

	if !core.GroupExists("parent") || !core.GroupExists("child") {
		t.Fatalf("expected both groups to be created")
	}
	got, status := core.GetParent("child")
	if status != authority.Success || got != "parent" {
		t.Fatalf("GetParent(child) = (%q, %v), want (parent, Success)", got, status)
	}
}

func TestSaveUserRoundTripsThroughOnUserLoad(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()

	if err := p.SaveUser(ctx, 7, -1, []string{"admins"}, []string{"a.b.c"}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	data, err := p.client.Get(ctx, p.userKey(7)).Bytes()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	snap, err := unmarshalUser(data)
	if err != nil {
		t.Fatalf("unmarshalUser failed: %v", err)
	}
	if snap.Immunity != -1 || len(snap.Perms) != 1 || snap.Perms[0] != "a.b.c" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestMutateUserPermAddsAndRemoves(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()

	if err := p.mutateUserPerm(ctx, 1, func(perms []string) []string {
		return upsertTemporal(perms, "a.b", 0)
	}); err != nil {
		t.Fatalf("mutateUserPerm add failed: %v", err)
	}
	if err := p.mutateUserPerm(ctx, 1, func(perms []string) []string {
		return removeTemporal(perms, "a.b")
	}); err != nil {
		t.Fatalf("mutateUserPerm remove failed: %v", err)
	}

	data, err := p.client.Get(ctx, p.userKey(1)).Bytes()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	snap, err := unmarshalUser(data)
	if err != nil {
		t.Fatalf("unmarshalUser failed: %v", err)
	}
	if len(snap.Perms) != 0 {
		t.Fatalf("expected perms to be empty after remove, got %v", snap.Perms)
	}
}

func TestDeleteGroupRemovesFromSetAndKey(t *testing.T) {
	p, _ := newTestProvider(t)
	ctx := context.Background()

	if err := p.SaveGroup(ctx, "gone", nil, 0, ""); err != nil {
		t.Fatalf("SaveGroup failed: %v", err)
	}
	if err := p.DeleteGroup(ctx, "gone"); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	names, err := p.client.SMembers(ctx, p.groupSetKey()).Result()
	if err != nil {
		t.Fatalf("SMembers failed: %v", err)
	}
	for _, n := range names {
		if n == "gone" {
			t.Fatalf("expected 'gone' to be removed from group set, got %v", names)
		}
	}
}
