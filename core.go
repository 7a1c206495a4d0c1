package authority

import (
	"sync"

	"github.com/go-logr/logr"

	"github.com/ironforge/authority/fingerprint"
	"github.com/ironforge/authority/group"
	"github.com/ironforge/authority/internal/events"
	"github.com/ironforge/authority/timer"
	"github.com/ironforge/authority/user"
)

// Core is the process-wide group and user registries, their two
// reader-writer locks, the shared timer wheel, and the fifteen event
// registries, all reachable through one value passed by reference. There
// is exactly one intended instance per embedding host (authority/host.Facade
// wraps it as a singleton); nothing here is itself a singleton.
type Core struct {
	cfg    Config
	logger logr.Logger

	groupsMu sync.RWMutex
	groups   map[string]*group.Group

	usersMu sync.RWMutex
	users   map[uint64]*user.User

	timers    *timer.Wheel
	permCache *fingerprint.Cache

	callbacks registrySet

	metrics *Metrics
	loader  *loadDispatcher
}

// parsePerm resolves perm through the shared parse cache, memoizing hot
// repeated lookups of the same literal permission string.
func (c *Core) parsePerm(perm string) fingerprint.Fingerprint {
	return c.permCache.Get(perm)
}

// registrySet holds one events.Registry per event kind, each
// independently lockable so registration/dispatch on one event kind
// never contends with another.
type registrySet struct {
	setParent       *events.Registry[events.SetParentFunc]
	setCookieGroup  *events.Registry[events.SetCookieGroupFunc]
	groupPermission *events.Registry[events.GroupPermissionFunc]
	groupCreate     *events.Registry[events.GroupCreateFunc]
	groupDelete     *events.Registry[events.GroupDeleteFunc]
	loadGroups      *events.Registry[events.LoadGroupsFunc]

	userPermission  *events.Registry[events.UserPermissionFunc]
	userSetCookie   *events.Registry[events.UserSetCookieFunc]
	userGroup       *events.Registry[events.UserGroupFunc]
	userCreate      *events.Registry[events.UserCreateFunc]
	userDelete      *events.Registry[events.UserDeleteFunc]
	permExpiration  *events.Registry[events.PermExpirationFunc]
	groupExpiration *events.Registry[events.GroupExpirationFunc]
	userLoad        *events.Registry[events.UserLoadFunc]
	userLoaded      *events.Registry[events.UserLoadedFunc]
}

func newRegistrySet() registrySet {
	return registrySet{
		setParent:       events.NewRegistry[events.SetParentFunc](),
		setCookieGroup:  events.NewRegistry[events.SetCookieGroupFunc](),
		groupPermission: events.NewRegistry[events.GroupPermissionFunc](),
		groupCreate:     events.NewRegistry[events.GroupCreateFunc](),
		groupDelete:     events.NewRegistry[events.GroupDeleteFunc](),
		loadGroups:      events.NewRegistry[events.LoadGroupsFunc](),

		userPermission:  events.NewRegistry[events.UserPermissionFunc](),
		userSetCookie:   events.NewRegistry[events.UserSetCookieFunc](),
		userGroup:       events.NewRegistry[events.UserGroupFunc](),
		userCreate:      events.NewRegistry[events.UserCreateFunc](),
		userDelete:      events.NewRegistry[events.UserDeleteFunc](),
		permExpiration:  events.NewRegistry[events.PermExpirationFunc](),
		groupExpiration: events.NewRegistry[events.GroupExpirationFunc](),
		userLoad:        events.NewRegistry[events.UserLoadFunc](),
		userLoaded:      events.NewRegistry[events.UserLoadedFunc](),
	}
}

func newCore(cfg Config, logger logr.Logger) *Core {
	var clock timer.Clock
	if cfg.Timer.TickSource != nil {
		clock = timer.Clock(cfg.Timer.TickSource)
	}
	c := &Core{
		cfg:       cfg,
		logger:    logger,
		groups:    make(map[string]*group.Group),
		users:     make(map[uint64]*user.User),
		timers:    timer.New(clock),
		permCache: fingerprint.NewCache(cfg.Trie.ParseCacheSize),
		callbacks: newRegistrySet(),
		metrics:   NewMetrics(cfg.Metrics),
	}
	c.loader = newLoadDispatcher(c, cfg.Callback)
	return c
}

// Close stops the async load-event dispatcher, draining any events still
// queued. Callers that never invoke LoadUser/LoadGroups don't need to call
// this, but it's safe to call unconditionally during shutdown.
func (c *Core) Close() {
	if c == nil {
		return
	}
	c.loader.Close()
}

// CallbackDropped returns how many LoadUser/LoadGroups events were dropped
// under CallbackConfig.DropIfFull backpressure. The count is kept only when
// MetricsConfig.Enabled is set; otherwise it is always 0.
func (c *Core) CallbackDropped() uint64 {
	if c == nil {
		return 0
	}
	return c.metrics.Value(MetricCallbackDropped)
}

// RunFrame drives every pending temp-permission and temp-group timer whose
// deadline has passed. The embedding host's frame tick calls this; see
// authority/host.FrameTicker.
func (c *Core) RunFrame() {
	if c == nil {
		return
	}
	c.timers.RunFrame()
}
