package authority

import (
	"strconv"
	"strings"
	"time"

	"github.com/ironforge/authority/group"
	"github.com/ironforge/authority/internal/events"
	"github.com/ironforge/authority/node"
	"github.com/ironforge/authority/timer"
	"github.com/ironforge/authority/user"
)

// splitTemporal splits a "<value> <unix_ts>" wire string into
// its value and timestamp. A string with no parseable trailing integer is
// treated as permanent (timestamp 0).
func splitTemporal(s string) (string, int64) {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return s, 0
	}
	ts, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return s, 0
	}
	return s[:i], ts
}

func (c *Core) now() time.Time {
	if c.cfg.Timer.TickSource != nil {
		return c.cfg.Timer.TickSource()
	}
	return time.Now()
}

func (c *Core) delayUntil(timestamp int64) time.Duration {
	d := time.Unix(timestamp, 0).Sub(c.now())
	if d < 0 {
		d = 0
	}
	return d
}

// CreateUser registers a new user, resolving groupNames (each optionally
// carrying a trailing " <unix_ts>" for temp membership) and perms (each
// optionally carrying the same) against the group registry and the
// permission precedence rules in user.New.
func (c *Core) CreateUser(userID uint64, immunity int, groupNames []string, perms []string) Status {
	var groups []*group.Group
	var tempGroups []user.TempGroupSpec

	c.groupsMu.RLock()
	for _, raw := range groupNames {
		name, ts := splitTemporal(raw)
		g, ok := c.groups[name]
		if !ok {
			c.groupsMu.RUnlock()
			return GroupNotFound
		}
		if ts == 0 {
			groups = append(groups, g)
		} else {
			tempGroups = append(tempGroups, user.TempGroupSpec{Group: g, Timestamp: ts})
		}
	}
	c.groupsMu.RUnlock()

	var perm []string
	var tempPerms []user.TempPermSpec
	for _, raw := range perms {
		val, ts := splitTemporal(raw)
		if ts == 0 {
			perm = append(perm, val)
		} else {
			tempPerms = append(tempPerms, user.TempPermSpec{Perm: val, Timestamp: ts})
		}
	}

	c.usersMu.Lock()
	if _, exists := c.users[userID]; exists {
		c.usersMu.Unlock()
		return UserAlreadyExist
	}
	result := user.New(immunity, groups, perm, tempPerms, tempGroups)
	c.users[userID] = result.User

	for _, p := range result.PendingTempPermNodes {
		c.scheduleTempPermTimer(userID, p)
	}
	for _, g := range result.PendingTempGroups {
		c.scheduleTempGroupTimer(userID, result.User, g)
	}
	c.usersMu.Unlock()

	c.metrics.Inc(MetricUserCreated)
	c.logger.Info("user created", "id", userID, "immunity", immunity)
	c.callbacks.userCreate.Range(func(fn events.UserCreateFunc) {
		fn(userID, immunity, groupNames, perms)
	})
	return Success
}

// scheduleTempPermTimer arranges p's expiry on the timer wheel and wires the
// returned id back into p.Node.TimerID. Must be called with usersMu held.
func (c *Core) scheduleTempPermTimer(userID uint64, p user.PendingTempPerm) {
	id := c.timers.Create(c.delayUntil(p.Node.Timestamp), func(uint32, []any) {
		c.expirePermission(userID, p.Perm)
	}, timer.FlagNone, nil)
	p.Node.TimerID = id
}

// expirePermission is the temp-permission timer callback: excise the entry
// under usersMu, then dispatch PermExpiration outside it.
func (c *Core) expirePermission(userID uint64, perm string) {
	c.usersMu.Lock()
	u, ok := c.users[userID]
	if ok {
		u.RemovePerm(c.parsePerm(perm), c.timers)
	}
	c.usersMu.Unlock()

	if !ok {
		return
	}
	c.metrics.Inc(MetricPermissionExpired)
	c.callbacks.permExpiration.Range(func(fn events.PermExpirationFunc) {
		fn(userID, perm)
	})
}

// scheduleTempGroupTimer arranges g's membership expiry and wires the
// returned id back into u's TempGroups entry. Must be called with usersMu
// held.
func (c *Core) scheduleTempGroupTimer(userID uint64, u *user.User, g *group.Group) {
	var timestamp int64
	for _, tg := range u.TempGroups {
		if tg.Group == g {
			timestamp = tg.Timestamp
			break
		}
	}
	id := c.timers.Create(c.delayUntil(timestamp), func(uint32, []any) {
		c.expireGroup(userID, g)
	}, timer.FlagNone, nil)
	u.SetTempGroupTimer(g, id)
}

// expireGroup is the temp-group timer callback, the GroupExpiration analog
// of expirePermission.
func (c *Core) expireGroup(userID uint64, g *group.Group) {
	c.usersMu.Lock()
	u, ok := c.users[userID]
	if ok {
		u.RemoveGroup(g)
	}
	c.usersMu.Unlock()

	if !ok {
		return
	}
	c.metrics.Inc(MetricGroupExpired)
	c.callbacks.groupExpiration.Range(func(fn events.GroupExpirationFunc) {
		fn(userID, g.Name)
	})
}

// DeleteUser dispatches UserDelete, then kills every pending timer anchored
// in the user's temp trie and temp-group list, then removes userID from
// the registry.
func (c *Core) DeleteUser(userID uint64) Status {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	u, ok := c.users[userID]
	if !ok {
		return TargetUserNotFound
	}

	c.callbacks.userDelete.Range(func(fn events.UserDeleteFunc) { fn(userID) })

	for _, tg := range u.TempGroups {
		c.timers.Kill(tg.TimerID)
	}
	killAllTimers(u.TempNodes, c.timers)

	delete(c.users, userID)
	c.metrics.Inc(MetricUserDeleted)
	c.logger.Info("user deleted", "id", userID)
	return Success
}

func killAllTimers(n *node.Node, killer node.TimerKiller) {
	n.Reset(killer)
}

// UserExists reports whether userID is registered.
func (c *Core) UserExists(userID uint64) bool {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	_, ok := c.users[userID]
	return ok
}

// LoadUser enqueues a UserLoad/UserLoaded dispatch on the async load
// dispatcher; a StorageProvider subscribed to UserLoad performs the actual
// load via CreateUser/AddPermission/etc. Returns immediately regardless of
// whether the dispatch has run yet.
func (c *Core) LoadUser(userID uint64) {
	c.loader.Emit(loadEvent{kind: loadEventUser, userID: userID})
}

// HasPermission resolves perm against userID's layered sources: temp-user
// trie, direct-user trie, each temp-group's parent chain, then each
// permanent group's parent chain, first non-PermNotFound result wins.
func (c *Core) HasPermission(userID uint64, perm string) (Status, PermType) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	u, ok := c.users[userID]
	if !ok {
		return TargetUserNotFound, NonePerm
	}
	verdict, permType := u.HasPermission(c.parsePerm(perm))
	switch verdict {
	case node.Allow:
		c.metrics.Inc(MetricPermissionGranted)
		return Allow, permType
	case node.Disallow:
		c.metrics.Inc(MetricPermissionDenied)
		return Disallow, permType
	default:
		return PermNotFound, NonePerm
	}
}

// CanAffectUser applies the immunity rule: a can affect b
// iff effective_immunity(a) >= effective_immunity(b).
func (c *Core) CanAffectUser(actorID, targetID uint64) (Status, error) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	a, ok := c.users[actorID]
	if !ok {
		return ActorUserNotFound, nil
	}
	b, ok := c.users[targetID]
	if !ok {
		return TargetUserNotFound, nil
	}
	if a.EffectiveImmunity() >= b.EffectiveImmunity() {
		return Allow, nil
	}
	return Disallow, nil
}

// HasGroup reports the kind of membership userID has in groupName, walking
// each membership's parent chain.
func (c *Core) HasGroup(userID uint64, groupName string) Status {
	c.groupsMu.RLock()
	g, ok := c.groups[groupName]
	c.groupsMu.RUnlock()
	if !ok {
		return GroupNotFound
	}

	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	u, ok := c.users[userID]
	if !ok {
		return TargetUserNotFound
	}
	for _, tg := range u.TempGroups {
		if tg.Group.Reaches(g) {
			return TemporalGroup
		}
	}
	for _, pg := range u.Groups {
		if pg.Reaches(g) {
			return PermanentGroup
		}
	}
	return GroupNotDefined
}

// GetUserGroups returns userID's memberships: a bare name for each
// permanent group, then "name timestamp" for each temporary one.
func (c *Core) GetUserGroups(userID uint64) ([]string, Status) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	u, ok := c.users[userID]
	if !ok {
		return nil, TargetUserNotFound
	}
	return u.GroupNames(), Success
}

// GetImmunity returns userID's effective immunity.
func (c *Core) GetImmunity(userID uint64) (int, Status) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	u, ok := c.users[userID]
	if !ok {
		return 0, TargetUserNotFound
	}
	return u.EffectiveImmunity(), Success
}

// SetImmunity overrides userID's explicit immunity value (-1 reverts to
// derived).
func (c *Core) SetImmunity(userID uint64, immunity int) Status {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	u, ok := c.users[userID]
	if !ok {
		return TargetUserNotFound
	}
	u.Immunity = immunity
	return Success
}

// AddPermission adds perm to userID, temporary if timestamp != 0, and
// dispatches UserPermission(Add, ...) unless dontBroadcast is set.
func (c *Core) AddPermission(userID uint64, perm string, timestamp int64, dontBroadcast bool) Status {
	c.usersMu.Lock()

	u, ok := c.users[userID]
	if !ok {
		c.usersMu.Unlock()
		return TargetUserNotFound
	}

	res := u.AddPerm(c.parsePerm(perm), timestamp, c.timers)
	if res.AlreadyGranted {
		c.usersMu.Unlock()
		return PermAlreadyGranted
	}
	if res.Node != nil && res.Node.TimerID == node.NoTimer {
		res.Node.Timestamp = timestamp
		id := c.timers.Create(c.delayUntil(timestamp), func(uint32, []any) {
			c.expirePermission(userID, perm)
		}, timer.FlagNone, nil)
		res.Node.TimerID = id
	} else if res.Node != nil {
		c.timers.Reschedule(res.Node.TimerID, c.delayUntil(timestamp))
	}
	c.usersMu.Unlock()

	c.metrics.Inc(MetricPermissionAdded)
	if !dontBroadcast {
		c.callbacks.userPermission.Range(func(fn events.UserPermissionFunc) {
			fn(Add, userID, perm, timestamp)
		})
	}
	return Success
}

// RemovePermission removes perm from userID's direct or temp trie,
// refusing group-owned perms.
func (c *Core) RemovePermission(userID uint64, perm string, dontBroadcast bool) Status {
	c.usersMu.Lock()

	u, ok := c.users[userID]
	if !ok {
		c.usersMu.Unlock()
		return TargetUserNotFound
	}

	ok2, wasTemp, _ := u.RemovePerm(c.parsePerm(perm), c.timers)
	c.usersMu.Unlock()

	if !ok2 {
		return PermNotFound
	}

	c.metrics.Inc(MetricPermissionRemoved)
	if !dontBroadcast {
		ts := int64(0)
		if wasTemp {
			ts = 1
		}
		c.callbacks.userPermission.Range(func(fn events.UserPermissionFunc) {
			fn(Remove, userID, perm, ts)
		})
	}
	return Success
}

// AddGroup adds userID to groupName, temporary if timestamp != 0.
func (c *Core) AddGroup(userID uint64, groupName string, timestamp int64, dontBroadcast bool) Status {
	c.groupsMu.RLock()
	g, ok := c.groups[groupName]
	c.groupsMu.RUnlock()
	if !ok {
		return GroupNotFound
	}

	c.usersMu.Lock()
	u, ok := c.users[userID]
	if !ok {
		c.usersMu.Unlock()
		return TargetUserNotFound
	}

	res := u.AddGroup(g, timestamp)
	switch res.Outcome {
	case user.AddGroupAlreadyExist:
		c.usersMu.Unlock()
		return GroupAlreadyExist
	case user.AddGroupRescheduled:
		c.timers.Reschedule(res.PriorTimerID, c.delayUntil(timestamp))
		c.usersMu.Unlock()
	case user.AddGroupPromoted:
		c.timers.Kill(res.PriorTimerID)
		c.usersMu.Unlock()
	case user.AddGroupAdded:
		if timestamp != 0 {
			id := c.timers.Create(c.delayUntil(timestamp), func(uint32, []any) {
				c.expireGroup(userID, g)
			}, timer.FlagNone, nil)
			u.SetTempGroupTimer(g, id)
		}
		c.usersMu.Unlock()
	}

	if !dontBroadcast {
		c.callbacks.userGroup.Range(func(fn events.UserGroupFunc) {
			fn(Add, userID, groupName, timestamp)
		})
	}
	return Success
}

// RemoveGroup removes userID's exact membership in groupName; unlike
// AddGroup it does not walk parent chains.
func (c *Core) RemoveGroup(userID uint64, groupName string, dontBroadcast bool) Status {
	c.groupsMu.RLock()
	g, ok := c.groups[groupName]
	c.groupsMu.RUnlock()
	if !ok {
		return GroupNotFound
	}

	c.usersMu.Lock()
	u, ok := c.users[userID]
	if !ok {
		c.usersMu.Unlock()
		return TargetUserNotFound
	}
	res := u.RemoveGroup(g)
	if res.Found && res.Temp {
		c.timers.Kill(res.TimerID)
	}
	c.usersMu.Unlock()

	if !res.Found {
		return GroupNotFound
	}

	if !dontBroadcast {
		c.callbacks.userGroup.Range(func(fn events.UserGroupFunc) {
			fn(Remove, userID, groupName, res.Timestamp)
		})
	}
	return Success
}

// GetCookie falls through userID's own cookie map, then each permanent
// group's chain; temp groups are never consulted.
func (c *Core) GetCookie(userID uint64, name string) (any, Status) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	u, ok := c.users[userID]
	if !ok {
		return nil, TargetUserNotFound
	}
	v, ok := u.Cookie(name)
	if !ok {
		return nil, CookieNotFound
	}
	return v, Success
}

// SetCookie sets name on userID's own cookie map only.
func (c *Core) SetCookie(userID uint64, name string, value any) Status {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	u, ok := c.users[userID]
	if !ok {
		return TargetUserNotFound
	}
	u.SetCookie(name, value)

	c.callbacks.userSetCookie.Range(func(fn events.UserSetCookieFunc) {
		fn(userID, name, value)
	})
	return Success
}

// GetAllCookies returns a copy of userID's own cookie map.
func (c *Core) GetAllCookies(userID uint64) (map[string]any, Status) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	u, ok := c.users[userID]
	if !ok {
		return nil, TargetUserNotFound
	}
	return u.AllCookies(), Success
}

// DumpPermissions concatenates userID's direct trie then its temp trie, in
// that order.
func (c *Core) DumpPermissions(userID uint64) ([]string, Status) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	u, ok := c.users[userID]
	if !ok {
		return nil, TargetUserNotFound
	}
	return u.Dump(), Success
}
