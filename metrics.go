package authority

import "sync/atomic"

// MetricID names one counter Core tracks when Config.Metrics.Enabled is
// true: a group/user/permission lifecycle counter rather than a login or
// session one.
type MetricID uint16

const (
	MetricGroupCreated MetricID = iota
	MetricGroupDeleted
	MetricGroupPermissionAdded
	MetricGroupPermissionRemoved
	MetricUserCreated
	MetricUserDeleted
	MetricPermissionGranted
	MetricPermissionDenied
	MetricPermissionAdded
	MetricPermissionRemoved
	MetricPermissionExpired
	MetricGroupExpired
	MetricCycleRejected
	MetricCallbackDropped
	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds one atomic counter per MetricID. The zero value (and a nil
// *Metrics) is inert: every method is a no-op until NewMetrics sees
// MetricsConfig.Enabled.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot is a point-in-time copy of every counter, safe to hold
// and render after Core has moved on.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics builds a Metrics from cfg. Disabled metrics still exist (Inc is
// always safe to call) but never accumulate.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Enabled reports whether m is non-nil and was built with Enabled: true.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc increments id by one. A no-op on a disabled or nil Metrics, or an
// out-of-range id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value returns id's current count.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter. Returns an empty snapshot for a disabled
// or nil Metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	s := MetricsSnapshot{Counters: make(map[MetricID]uint64, int(metricIDCount))}
	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return s
}

// MetricsSnapshot exposes Core's Metrics to exporters (authority/metrics/export/...)
// without giving them write access to the Core.
func (c *Core) MetricsSnapshot() MetricsSnapshot {
	if c == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return c.metrics.Snapshot()
}

