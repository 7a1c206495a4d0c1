package events

// Action distinguishes an add from a remove in every callback payload that
// reports a mutation rather than a pure lifecycle event.
type Action int

const (
	Add Action = iota
	Remove
)

func (a Action) String() string {
	if a == Remove {
		return "Remove"
	}
	return "Add"
}

// Group-kind callbacks, grounded on group_manager.h. The grounding
// source's pluginID parameter identifies which plugin across a process
// boundary made the call; this module has no such boundary, so it's
// dropped from every signature below.

// SetParentFunc fires after a group's parent is reassigned.
type SetParentFunc func(childName, parentName string)

// SetCookieGroupFunc fires after a cookie is set on a group.
type SetCookieGroupFunc func(groupName, cookieName string, value any)

// GroupPermissionFunc fires after a permission is added to or removed from
// a group.
type GroupPermissionFunc func(action Action, groupName, perm string)

// GroupCreateFunc fires after a group is successfully created.
type GroupCreateFunc func(name string, perms []string, priority int, parent string)

// GroupDeleteFunc fires before a group is deleted, while it can still be
// inspected.
type GroupDeleteFunc func(name string)

// LoadGroupsFunc fires when the core requests that group definitions be
// loaded from external storage.
type LoadGroupsFunc func()

// User-kind callbacks, grounded on user_manager.h.

// UserPermissionFunc fires after a permission is added to or removed from
// a user. timestamp is 0 for a permanent grant.
type UserPermissionFunc func(action Action, targetID uint64, perm string, timestamp int64)

// UserSetCookieFunc fires after a cookie is set on a user.
type UserSetCookieFunc func(targetID uint64, name string, value any)

// UserGroupFunc fires after a group is added to or removed from a user.
// timestamp is 0 for a permanent membership.
type UserGroupFunc func(action Action, targetID uint64, group string, timestamp int64)

// UserCreateFunc fires after a user is successfully created. immunity is
// -1 if the caller asked for it to be derived from group priority.
type UserCreateFunc func(targetID uint64, immunity int, groupNames []string, perms []string)

// UserDeleteFunc fires before a user is deleted, while it can still be
// inspected.
type UserDeleteFunc func(targetID uint64)

// PermExpirationFunc fires after a temporary permission expires, outside
// the users registry lock.
type PermExpirationFunc func(targetID uint64, perm string)

// GroupExpirationFunc fires after a temporary group membership expires,
// outside the users registry lock.
type GroupExpirationFunc func(targetID uint64, group string)

// UserLoadFunc fires when the core requests that a user's data be loaded
// from external storage. It does not guarantee the user already exists in
// memory.
type UserLoadFunc func(targetID uint64)

// UserLoadedFunc fires after a storage extension finishes applying a
// user's persisted state; the user is fully initialized from this point.
type UserLoadedFunc func(targetID uint64)
