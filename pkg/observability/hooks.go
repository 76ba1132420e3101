// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about catalog loads, prerequisite cycles and progress
// changes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    // ... run application
//	}
//
// The prerequisite engine reads the registered hooks when it is created
// unless it is given its own with prereq.WithHooks.
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the prerequisite engine.
type EngineHooks interface {
	// OnCatalogLoad records a completed catalog load (initial or reload).
	OnCatalogLoad(subjects, diagnostics int, duration time.Duration)

	// OnCycleDetected records a prerequisite edge dropped to break a cycle.
	OnCycleDetected(subject, via string)

	// OnStateChange records a progress transition for one subject.
	OnStateChange(code, from, to string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnCatalogLoad(int, int, time.Duration) {}
func (NoopEngineHooks) OnCycleDetected(string, string)        {}
func (NoopEngineHooks) OnStateChange(string, string, string)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any engine is created.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
}
