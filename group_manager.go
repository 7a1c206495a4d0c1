package authority

import (
	"github.com/ironforge/authority/group"
	"github.com/ironforge/authority/internal/events"
	"github.com/ironforge/authority/node"
)

// CreateGroup registers a new named group with the given permanent
// permissions and priority, optionally parented under parentName ("" for a
// root-level group).
func (c *Core) CreateGroup(name string, perms []string, priority int, parentName string) Status {
	c.groupsMu.Lock()
	defer c.groupsMu.Unlock()

	if _, exists := c.groups[name]; exists {
		return GroupAlreadyExist
	}

	var parent *group.Group
	if parentName != "" {
		p, ok := c.groups[parentName]
		if !ok {
			return ParentGroupNotFound
		}
		parent = p
	}

	g := group.New(name, priority, parent)
	for _, perm := range perms {
		g.AddPermission(c.parsePerm(perm))
	}
	c.groups[name] = g

	c.metrics.Inc(MetricGroupCreated)
	c.logger.Info("group created", "name", name, "priority", priority, "parent", parentName)
	c.callbacks.groupCreate.Range(func(fn events.GroupCreateFunc) {
		fn(name, perms, priority, parentName)
	})
	return Success
}

// DeleteGroup removes name from the registry: dispatch GroupDelete first,
// then null every other group's dangling Parent pointer, then excise the
// group from every user's membership lists (killing any pending temp-group
// timer), then free it.
func (c *Core) DeleteGroup(name string) Status {
	c.groupsMu.Lock()
	defer c.groupsMu.Unlock()

	g, ok := c.groups[name]
	if !ok {
		return GroupNotFound
	}

	c.callbacks.groupDelete.Range(func(fn events.GroupDeleteFunc) { fn(name) })

	for _, other := range c.groups {
		if other.Parent == g {
			other.Parent = nil
		}
	}

	c.usersMu.Lock()
	for _, u := range c.users {
		if res := u.RemoveGroup(g); res.Found && res.Temp {
			c.timers.Kill(res.TimerID)
		}
	}
	c.usersMu.Unlock()

	delete(c.groups, name)
	c.metrics.Inc(MetricGroupDeleted)
	c.logger.Info("group deleted", "name", name)
	return Success
}

// SetParent reassigns child's Parent to parent ("" clears it to root-level),
// rejecting the change with ErrCycleDetected if parent's own chain already
// reaches child.
func (c *Core) SetParent(childName, parentName string) (Status, error) {
	c.groupsMu.Lock()
	defer c.groupsMu.Unlock()

	child, ok := c.groups[childName]
	if !ok {
		return ChildGroupNotFound, nil
	}

	if parentName == "" {
		child.Parent = nil
		c.callbacks.setParent.Range(func(fn events.SetParentFunc) { fn(childName, "") })
		return Success, nil
	}

	parent, ok := c.groups[parentName]
	if !ok {
		return ParentGroupNotFound, nil
	}
	if parent.Reaches(child) {
		c.metrics.Inc(MetricCycleRejected)
		return Success, ErrCycleDetected
	}

	child.Parent = parent
	c.callbacks.setParent.Range(func(fn events.SetParentFunc) { fn(childName, parentName) })
	return Success, nil
}

// GetParent returns the name of name's parent, or ParentGroupNotFound if it
// has none.
func (c *Core) GetParent(name string) (string, Status) {
	c.groupsMu.RLock()
	defer c.groupsMu.RUnlock()

	g, ok := c.groups[name]
	if !ok {
		return "", GroupNotFound
	}
	if g.Parent == nil {
		return "", ParentGroupNotFound
	}
	return g.Parent.Name, Success
}

// HasParentGroup reports whether parentName appears anywhere in childName's
// parent chain.
func (c *Core) HasParentGroup(childName, parentName string) (bool, Status) {
	c.groupsMu.RLock()
	defer c.groupsMu.RUnlock()

	child, ok := c.groups[childName]
	if !ok {
		return false, ChildGroupNotFound
	}
	parent, ok := c.groups[parentName]
	if !ok {
		return false, ParentGroupNotFound
	}
	return child.HasParent(parent), Success
}

// DumpPermissionsGroup returns every declared permission in name's own
// trie (not its parent chain's).
func (c *Core) DumpPermissionsGroup(name string) ([]string, Status) {
	c.groupsMu.RLock()
	defer c.groupsMu.RUnlock()

	g, ok := c.groups[name]
	if !ok {
		return nil, GroupNotFound
	}
	return g.Dump(), Success
}

// GetAllGroups returns every registered group name.
func (c *Core) GetAllGroups() []string {
	c.groupsMu.RLock()
	defer c.groupsMu.RUnlock()

	out := make([]string, 0, len(c.groups))
	for name := range c.groups {
		out = append(out, name)
	}
	return out
}

// HasPermissionGroup checks perm against name's own trie and parent chain.
func (c *Core) HasPermissionGroup(name, perm string) Status {
	c.groupsMu.RLock()
	defer c.groupsMu.RUnlock()

	g, ok := c.groups[name]
	if !ok {
		return GroupNotFound
	}
	switch g.HasPermission(c.parsePerm(perm)) {
	case node.Allow:
		return Allow
	case node.Disallow:
		return Disallow
	default:
		return PermNotFound
	}
}

// GetPriorityGroup returns name's priority.
func (c *Core) GetPriorityGroup(name string) (int, Status) {
	c.groupsMu.RLock()
	defer c.groupsMu.RUnlock()

	g, ok := c.groups[name]
	if !ok {
		return 0, GroupNotFound
	}
	return g.Priority, Success
}

// AddPermissionGroup declares perm on name's own trie. Takes both
// groupsMu and usersMu in write mode, since the change is
// visible to any HasPermission call walking this group's trie.
func (c *Core) AddPermissionGroup(name, perm string) Status {
	c.groupsMu.Lock()
	defer c.groupsMu.Unlock()
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	g, ok := c.groups[name]
	if !ok {
		return GroupNotFound
	}
	g.AddPermission(c.parsePerm(perm))
	c.metrics.Inc(MetricGroupPermissionAdded)

	c.callbacks.groupPermission.Range(func(fn events.GroupPermissionFunc) {
		fn(Add, name, perm)
	})
	return Success
}

// RemovePermissionGroup erases perm from name's own trie.
func (c *Core) RemovePermissionGroup(name, perm string) Status {
	c.groupsMu.Lock()
	defer c.groupsMu.Unlock()
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	g, ok := c.groups[name]
	if !ok {
		return GroupNotFound
	}
	g.RemovePermission(c.parsePerm(perm), c.timers)
	c.metrics.Inc(MetricGroupPermissionRemoved)

	c.callbacks.groupPermission.Range(func(fn events.GroupPermissionFunc) {
		fn(Remove, name, perm)
	})
	return Success
}

// GetCookieGroup looks up cookieName on name's own map, then its parent
// chain.
func (c *Core) GetCookieGroup(name, cookieName string) (any, Status) {
	c.groupsMu.RLock()
	defer c.groupsMu.RUnlock()

	g, ok := c.groups[name]
	if !ok {
		return nil, GroupNotFound
	}
	v, ok := g.Cookie(cookieName)
	if !ok {
		return nil, CookieNotFound
	}
	return v, Success
}

// SetCookieGroup sets cookieName on name's own map only (never a parent).
func (c *Core) SetCookieGroup(name, cookieName string, value any) Status {
	c.groupsMu.Lock()
	defer c.groupsMu.Unlock()
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	g, ok := c.groups[name]
	if !ok {
		return GroupNotFound
	}
	g.SetCookie(cookieName, value)

	c.callbacks.setCookieGroup.Range(func(fn events.SetCookieGroupFunc) {
		fn(name, cookieName, value)
	})
	return Success
}

// GetAllCookiesGroup returns a copy of name's own cookie map.
func (c *Core) GetAllCookiesGroup(name string) (map[string]any, Status) {
	c.groupsMu.RLock()
	defer c.groupsMu.RUnlock()

	g, ok := c.groups[name]
	if !ok {
		return nil, GroupNotFound
	}
	return g.AllCookies(), Success
}

// LoadGroups enqueues a LoadGroups dispatch on the async load dispatcher; a
// StorageProvider subscribed to it replays CreateGroup/AddPermissionGroup/
// etc. against c.
func (c *Core) LoadGroups() {
	c.loader.Emit(loadEvent{kind: loadEventGroups})
}

// GroupExists reports whether name is registered.
func (c *Core) GroupExists(name string) bool {
	c.groupsMu.RLock()
	defer c.groupsMu.RUnlock()

	_, ok := c.groups[name]
	return ok
}
