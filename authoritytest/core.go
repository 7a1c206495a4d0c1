package authoritytest

import (
	"testing"
	"time"

	authority "github.com/ironforge/authority"
)

// testStartTime is the default time BuildCore's Clock starts at. Fixed
// rather than time.Now() so a test's temp-permission/temp-group timestamps
// (Unix-second wire values) are reproducible across runs.
var testStartTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// BuildCore returns a *authority.Core suitable for a single test:
// metrics enabled, a fresh *Clock backing the timer wheel, and
// t.Cleanup registered to stop the async load dispatcher. opts can
// further configure the Builder before Build is called.
func BuildCore(t testing.TB, opts ...func(*authority.Builder)) (*authority.Core, *Clock) {
	t.Helper()

	clock := NewClock(testStartTime)
	b := authority.New().
		WithTickSource(clock.Source()).
		WithMetrics(true)
	for _, opt := range opts {
		opt(b)
	}

	core, err := b.Build()
	if err != nil {
		t.Fatalf("authoritytest.BuildCore: Build failed: %v", err)
	}
	t.Cleanup(core.Close)
	return core, clock
}
