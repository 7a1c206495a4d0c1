package authority

import "github.com/ironforge/authority/internal/events"

// CallbackHandle identifies one registered callback across a Register/
// Unregister pair. NewCallbackHandle mints a fresh one; callers that want
// to unregister later must hold onto the handle they registered with.
type CallbackHandle = events.Handle

// NewCallbackHandle mints a fresh CallbackHandle.
func NewCallbackHandle() CallbackHandle {
	return events.NewHandle()
}

// Event function types, aliased from internal/events so callers building a
// callback literal see the same type Core.RegisterX expects. See
// internal/events for each one's exact firing point.
type (
	SetParentFunc       = events.SetParentFunc
	SetCookieGroupFunc  = events.SetCookieGroupFunc
	GroupPermissionFunc = events.GroupPermissionFunc
	GroupCreateFunc     = events.GroupCreateFunc
	GroupDeleteFunc     = events.GroupDeleteFunc
	LoadGroupsFunc      = events.LoadGroupsFunc

	UserPermissionFunc  = events.UserPermissionFunc
	UserSetCookieFunc   = events.UserSetCookieFunc
	UserGroupFunc       = events.UserGroupFunc
	UserCreateFunc      = events.UserCreateFunc
	UserDeleteFunc      = events.UserDeleteFunc
	PermExpirationFunc  = events.PermExpirationFunc
	GroupExpirationFunc = events.GroupExpirationFunc
	UserLoadFunc        = events.UserLoadFunc
	UserLoadedFunc      = events.UserLoadedFunc
)

// Register reports Success or CallbackAlreadyExist;
// Unregister reports Success or CallbackNotFound. Dispatch for every event
// kind below happens under that event kind's own Registry lock, inline
// with the mutation that caused it — see the manager method named in each
// comment — except UserLoad/UserLoaded/LoadGroups, which go through the
// async loadDispatcher (loaddispatcher.go).

// RegisterSetParent subscribes to GroupManager.SetParent.
func (c *Core) RegisterSetParent(h CallbackHandle, fn SetParentFunc) Status {
	return c.callbacks.setParent.Register(h, fn)
}

// UnregisterSetParent removes a handle registered with RegisterSetParent.
func (c *Core) UnregisterSetParent(h CallbackHandle) Status {
	return c.callbacks.setParent.Unregister(h)
}

// RegisterSetCookieGroup subscribes to GroupManager.SetCookieGroup.
func (c *Core) RegisterSetCookieGroup(h CallbackHandle, fn SetCookieGroupFunc) Status {
	return c.callbacks.setCookieGroup.Register(h, fn)
}

// UnregisterSetCookieGroup removes a handle registered with RegisterSetCookieGroup.
func (c *Core) UnregisterSetCookieGroup(h CallbackHandle) Status {
	return c.callbacks.setCookieGroup.Unregister(h)
}

// RegisterGroupPermission subscribes to AddPermissionGroup/RemovePermissionGroup.
func (c *Core) RegisterGroupPermission(h CallbackHandle, fn GroupPermissionFunc) Status {
	return c.callbacks.groupPermission.Register(h, fn)
}

// UnregisterGroupPermission removes a handle registered with RegisterGroupPermission.
func (c *Core) UnregisterGroupPermission(h CallbackHandle) Status {
	return c.callbacks.groupPermission.Unregister(h)
}

// RegisterGroupCreate subscribes to GroupManager.CreateGroup.
func (c *Core) RegisterGroupCreate(h CallbackHandle, fn GroupCreateFunc) Status {
	return c.callbacks.groupCreate.Register(h, fn)
}

// UnregisterGroupCreate removes a handle registered with RegisterGroupCreate.
func (c *Core) UnregisterGroupCreate(h CallbackHandle) Status {
	return c.callbacks.groupCreate.Unregister(h)
}

// RegisterGroupDelete subscribes to GroupManager.DeleteGroup.
func (c *Core) RegisterGroupDelete(h CallbackHandle, fn GroupDeleteFunc) Status {
	return c.callbacks.groupDelete.Register(h, fn)
}

// UnregisterGroupDelete removes a handle registered with RegisterGroupDelete.
func (c *Core) UnregisterGroupDelete(h CallbackHandle) Status {
	return c.callbacks.groupDelete.Unregister(h)
}

// RegisterLoadGroups subscribes to Core.LoadGroups. A StorageProvider
// wired through Builder.WithStorageProvider is already subscribed here;
// additional handlers run alongside it.
func (c *Core) RegisterLoadGroups(h CallbackHandle, fn LoadGroupsFunc) Status {
	return c.callbacks.loadGroups.Register(h, fn)
}

// UnregisterLoadGroups removes a handle registered with RegisterLoadGroups.
func (c *Core) UnregisterLoadGroups(h CallbackHandle) Status {
	return c.callbacks.loadGroups.Unregister(h)
}

// RegisterUserPermission subscribes to AddPermission/RemovePermission.
func (c *Core) RegisterUserPermission(h CallbackHandle, fn UserPermissionFunc) Status {
	return c.callbacks.userPermission.Register(h, fn)
}

// UnregisterUserPermission removes a handle registered with RegisterUserPermission.
func (c *Core) UnregisterUserPermission(h CallbackHandle) Status {
	return c.callbacks.userPermission.Unregister(h)
}

// RegisterUserSetCookie subscribes to UserManager.SetCookie.
func (c *Core) RegisterUserSetCookie(h CallbackHandle, fn UserSetCookieFunc) Status {
	return c.callbacks.userSetCookie.Register(h, fn)
}

// UnregisterUserSetCookie removes a handle registered with RegisterUserSetCookie.
func (c *Core) UnregisterUserSetCookie(h CallbackHandle) Status {
	return c.callbacks.userSetCookie.Unregister(h)
}

// RegisterUserGroup subscribes to AddGroup/RemoveGroup.
func (c *Core) RegisterUserGroup(h CallbackHandle, fn UserGroupFunc) Status {
	return c.callbacks.userGroup.Register(h, fn)
}

// UnregisterUserGroup removes a handle registered with RegisterUserGroup.
func (c *Core) UnregisterUserGroup(h CallbackHandle) Status {
	return c.callbacks.userGroup.Unregister(h)
}

// RegisterUserCreate subscribes to UserManager.CreateUser.
func (c *Core) RegisterUserCreate(h CallbackHandle, fn UserCreateFunc) Status {
	return c.callbacks.userCreate.Register(h, fn)
}

// UnregisterUserCreate removes a handle registered with RegisterUserCreate.
func (c *Core) UnregisterUserCreate(h CallbackHandle) Status {
	return c.callbacks.userCreate.Unregister(h)
}

// RegisterUserDelete subscribes to UserManager.DeleteUser.
func (c *Core) RegisterUserDelete(h CallbackHandle, fn UserDeleteFunc) Status {
	return c.callbacks.userDelete.Register(h, fn)
}

// UnregisterUserDelete removes a handle registered with RegisterUserDelete.
func (c *Core) UnregisterUserDelete(h CallbackHandle) Status {
	return c.callbacks.userDelete.Unregister(h)
}

// RegisterPermExpiration subscribes to the temp-permission timer callback.
func (c *Core) RegisterPermExpiration(h CallbackHandle, fn PermExpirationFunc) Status {
	return c.callbacks.permExpiration.Register(h, fn)
}

// UnregisterPermExpiration removes a handle registered with RegisterPermExpiration.
func (c *Core) UnregisterPermExpiration(h CallbackHandle) Status {
	return c.callbacks.permExpiration.Unregister(h)
}

// RegisterGroupExpiration subscribes to the temp-group-membership timer callback.
func (c *Core) RegisterGroupExpiration(h CallbackHandle, fn GroupExpirationFunc) Status {
	return c.callbacks.groupExpiration.Register(h, fn)
}

// UnregisterGroupExpiration removes a handle registered with RegisterGroupExpiration.
func (c *Core) UnregisterGroupExpiration(h CallbackHandle) Status {
	return c.callbacks.groupExpiration.Unregister(h)
}

// RegisterUserLoad subscribes to Core.LoadUser. A StorageProvider wired
// through Builder.WithStorageProvider is already subscribed here;
// additional handlers run alongside it.
func (c *Core) RegisterUserLoad(h CallbackHandle, fn UserLoadFunc) Status {
	return c.callbacks.userLoad.Register(h, fn)
}

// UnregisterUserLoad removes a handle registered with RegisterUserLoad.
func (c *Core) UnregisterUserLoad(h CallbackHandle) Status {
	return c.callbacks.userLoad.Unregister(h)
}

// RegisterUserLoaded subscribes to the UserLoaded event, fired after a
// storage provider finishes applying a user's persisted state.
func (c *Core) RegisterUserLoaded(h CallbackHandle, fn UserLoadedFunc) Status {
	return c.callbacks.userLoaded.Register(h, fn)
}

// UnregisterUserLoaded removes a handle registered with RegisterUserLoaded.
func (c *Core) UnregisterUserLoaded(h CallbackHandle) Status {
	return c.callbacks.userLoaded.Unregister(h)
}
