package authority

import "errors"

var (
	// ErrNilCore names the nil-*Core condition. No Core method returns it:
	// Close, RunFrame, CallbackDropped and MetricsSnapshot treat a nil
	// receiver as a no-op.
	ErrNilCore = errors.New("authority: nil core")
	// ErrCycleDetected is returned by SetParent when the requested
	// parent's own chain already reaches the child, per SUPPLEMENTED
	// FEATURES item 10. It is not a Status because a cycle is an
	// engineering precondition failure, not a permission verdict.
	ErrCycleDetected = errors.New("authority: parent assignment would create a cycle")
	// ErrBuilderAlreadyBuilt is returned by Builder.Build on reuse.
	ErrBuilderAlreadyBuilt = errors.New("authority: builder already used")
	// ErrInvalidMaxSegments is returned by Builder.Build when
	// TrieConfig.MaxSegments is out of the supported range (0 through 64,
	// 0 meaning the default).
	ErrInvalidMaxSegments = errors.New("authority: TrieConfig.MaxSegments must be between 0 and 64")
	// ErrTimerNotFound is not returned by any code path in this module;
	// timer.Wheel's Kill and Reschedule treat an unknown id as a no-op.
	ErrTimerNotFound = errors.New("authority: timer not found")
)
