package authoritytest

import (
	"sync"

	authority "github.com/ironforge/authority"
)

// UserSnapshot is a canned user record FakeStorageProvider replays on
// OnUserLoad.
type UserSnapshot struct {
	Immunity int
	Groups   []string
	Perms    []string
}

// GroupSnapshot is a canned group record FakeStorageProvider replays on
// OnGroupsLoad. Groups are created in map-iteration order; callers whose
// fixtures have parent/child relationships must either pre-create the
// parent separately or rely on FakeStorageProvider's ordering pass (the
// same topological pass storage/redisprovider uses).
type GroupSnapshot struct {
	Perms    []string
	Priority int
	Parent   string
}

// FakeStorageProvider is an in-memory authority.StorageProvider: it never
// touches a real store, and records every OnUserLoad/OnGroupsLoad call so
// a test can assert on dispatch order and count.
type FakeStorageProvider struct {
	mu sync.Mutex

	Users  map[uint64]UserSnapshot
	Groups map[string]GroupSnapshot

	UserLoadCalls   []uint64
	GroupsLoadCalls int
}

// NewFakeStorageProvider returns an empty FakeStorageProvider.
func NewFakeStorageProvider() *FakeStorageProvider {
	return &FakeStorageProvider{
		Users:  make(map[uint64]UserSnapshot),
		Groups: make(map[string]GroupSnapshot),
	}
}

// OnUserLoad implements authority.StorageProvider.
func (f *FakeStorageProvider) OnUserLoad(core *authority.Core, userID uint64) {
	f.mu.Lock()
	snap, ok := f.Users[userID]
	f.UserLoadCalls = append(f.UserLoadCalls, userID)
	f.mu.Unlock()

	if !ok {
		return
	}
	core.CreateUser(userID, snap.Immunity, snap.Groups, snap.Perms)
}

// OnGroupsLoad implements authority.StorageProvider. Groups whose Parent
// is itself a fixture are created only after that parent, via the same
// topological pass storage/redisprovider.Provider.OnGroupsLoad uses.
func (f *FakeStorageProvider) OnGroupsLoad(core *authority.Core) {
	f.mu.Lock()
	f.GroupsLoadCalls++
	snapshots := make(map[string]GroupSnapshot, len(f.Groups))
	for name, snap := range f.Groups {
		snapshots[name] = snap
	}
	f.mu.Unlock()

	created := make(map[string]bool, len(snapshots))
	for len(created) < len(snapshots) {
		progressed := false
		for name, snap := range snapshots {
			if created[name] {
				continue
			}
			if _, parentIsFixture := snapshots[snap.Parent]; parentIsFixture && !created[snap.Parent] {
				continue
			}
			core.CreateGroup(name, snap.Perms, snap.Priority, snap.Parent)
			created[name] = true
			progressed = true
		}
		if !progressed {
			break
		}
	}
}
