package authority

import (
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/ironforge/authority/internal/events"
)

// Builder constructs a Core through a New().With...().Build() chain. The
// zero value is not usable; start from New().
type Builder struct {
	cfg    Config
	logger logr.Logger

	built bool
}

// New returns a Builder seeded with the default Config.
func New() *Builder {
	return &Builder{cfg: defaultConfig()}
}

// WithConfig replaces the Builder's Config wholesale.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// WithLogger sets the logr.Logger Core uses for state-transition logging.
// Build defaults to a stdr-backed logger when none is supplied.
func (b *Builder) WithLogger(l logr.Logger) *Builder {
	b.logger = l
	return b
}

// WithMaxSegments overrides TrieConfig.MaxSegments.
func (b *Builder) WithMaxSegments(n int) *Builder {
	b.cfg.Trie.MaxSegments = n
	return b
}

// WithParseCacheSize overrides TrieConfig.ParseCacheSize; 0 disables the
// parse cache entirely.
func (b *Builder) WithParseCacheSize(n int) *Builder {
	b.cfg.Trie.ParseCacheSize = n
	return b
}

// WithTickSource injects a deterministic clock for the timer wheel, for
// tests that need to control expiration without sleeping.
func (b *Builder) WithTickSource(ts TickSource) *Builder {
	b.cfg.Timer.TickSource = ts
	return b
}

// WithStorageProvider wires an optional StorageProvider; Build subscribes
// its OnUserLoad/OnGroupsLoad methods to the UserLoad/LoadGroups events.
func (b *Builder) WithStorageProvider(p StorageProvider) *Builder {
	b.cfg.Storage.Provider = p
	return b
}

// WithCallbackBuffering sets CallbackConfig.
func (b *Builder) WithCallbackBuffering(bufferSize int, dropIfFull bool) *Builder {
	b.cfg.Callback = CallbackConfig{BufferSize: bufferSize, DropIfFull: dropIfFull}
	return b
}

// WithMetrics toggles MetricsConfig.Enabled.
func (b *Builder) WithMetrics(enabled bool) *Builder {
	b.cfg.Metrics.Enabled = enabled
	return b
}

// Build validates the accumulated Config and returns a ready *Core. A
// Builder can only be used once; a second call returns
// ErrBuilderAlreadyBuilt.
func (b *Builder) Build() (*Core, error) {
	if b.built {
		return nil, ErrBuilderAlreadyBuilt
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger.GetSink() == nil {
		logger = stdr.New(log.Default())
	}

	core := newCore(b.cfg, logger)

	if p := b.cfg.Storage.Provider; p != nil {
		core.callbacks.userLoad.Register(events.NewHandle(), func(targetID uint64) {
			p.OnUserLoad(core, targetID)
		})
		core.callbacks.loadGroups.Register(events.NewHandle(), func() {
			p.OnGroupsLoad(core)
		})
	}

	b.built = true
	return core, nil
}
