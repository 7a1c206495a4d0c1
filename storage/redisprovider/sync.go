package redisprovider

import (
	"context"

	authority "github.com/ironforge/authority"
)

// Attach subscribes write-back handlers for every mutation event that
// changes persisted state, so the Redis snapshot stays in sync with core
// without the embedder having to call Save*/Delete* manually. It returns a
// Detach func that unregisters everything Attach registered.
func Attach(core *authority.Core, p *Provider) (detach func()) {
	ctx := context.Background()

	userCreateH := authority.NewCallbackHandle()
	userDeleteH := authority.NewCallbackHandle()
	userPermH := authority.NewCallbackHandle()
	userGroupH := authority.NewCallbackHandle()
	groupCreateH := authority.NewCallbackHandle()
	groupDeleteH := authority.NewCallbackHandle()
	groupPermH := authority.NewCallbackHandle()
	setParentH := authority.NewCallbackHandle()

	core.RegisterUserCreate(userCreateH, func(targetID uint64, immunity int, groupNames, perms []string) {
		_ = p.SaveUser(ctx, targetID, immunity, groupNames, perms)
	})
	core.RegisterUserDelete(userDeleteH, func(targetID uint64) {
		_ = p.DeleteUser(ctx, targetID)
	})
	core.RegisterUserPermission(userPermH, func(action authority.Action, targetID uint64, perm string, timestamp int64) {
		_ = p.mutateUserPerm(ctx, targetID, func(perms []string) []string {
			if action == authority.Remove {
				return removeTemporal(perms, perm)
			}
			return upsertTemporal(perms, perm, timestamp)
		})
	})
	core.RegisterUserGroup(userGroupH, func(action authority.Action, targetID uint64, group string, timestamp int64) {
		_ = p.mutateUserGroup(ctx, targetID, func(groups []string) []string {
			if action == authority.Remove {
				return removeTemporal(groups, group)
			}
			return upsertTemporal(groups, group, timestamp)
		})
	})
	core.RegisterGroupCreate(groupCreateH, func(name string, perms []string, priority int, parent string) {
		_ = p.SaveGroup(ctx, name, perms, priority, parent)
	})
	core.RegisterGroupDelete(groupDeleteH, func(name string) {
		_ = p.DeleteGroup(ctx, name)
	})
	core.RegisterGroupPermission(groupPermH, func(action authority.Action, groupName, perm string) {
		_ = p.mutateGroupPerm(ctx, groupName, func(perms []string) []string {
			if action == authority.Remove {
				return removeTemporal(perms, perm)
			}
			return upsertTemporal(perms, perm, 0)
		})
	})
	core.RegisterSetParent(setParentH, func(childName, parentName string) {
		_ = p.setGroupParent(ctx, childName, parentName)
	})

	return func() {
		core.UnregisterUserCreate(userCreateH)
		core.UnregisterUserDelete(userDeleteH)
		core.UnregisterUserPermission(userPermH)
		core.UnregisterUserGroup(userGroupH)
		core.UnregisterGroupCreate(groupCreateH)
		core.UnregisterGroupDelete(groupDeleteH)
		core.UnregisterGroupPermission(groupPermH)
		core.UnregisterSetParent(setParentH)
	}
}
