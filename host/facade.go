package host

import (
	"sync"

	authority "github.com/ironforge/authority"
)

var (
	facadeMu sync.RWMutex
	facade   *authority.Core
)

// Facade returns the process-wide *authority.Core installed by InitFacade,
// or nil if none has been installed yet. A C ABI boundary can only ever hand
// extern "C" callers one instance, so this package models that single-
// instance constraint even though authority.Core itself places no limit on
// how many independent instances a Go embedder constructs.
func Facade() *authority.Core {
	facadeMu.RLock()
	defer facadeMu.RUnlock()
	return facade
}

// InitFacade installs core as the process-wide instance Facade returns.
// Only the first call wins; later calls report false and leave the
// existing instance in place.
func InitFacade(core *authority.Core) bool {
	facadeMu.Lock()
	defer facadeMu.Unlock()
	if facade != nil {
		return false
	}
	facade = core
	return true
}

// ResetFacade clears the singleton so a later InitFacade call can install
// a new instance. Production hosts never need this; it exists for tests
// that construct a fresh Facade per test case.
func ResetFacade() {
	facadeMu.Lock()
	defer facadeMu.Unlock()
	facade = nil
}
