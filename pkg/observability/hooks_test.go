package observability

import (
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	h := NoopEngineHooks{}
	h.OnCatalogLoad(42, 1, time.Millisecond)
	h.OnCycleDetected("A", "B")
	h.OnStateChange("GAL1", "unset", "approved")
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}

	custom := &testEngineHooks{}
	SetEngineHooks(custom)
	if Engine() != custom {
		t.Error("SetEngineHooks should set custom hooks")
	}

	// Nil is ignored
	SetEngineHooks(nil)
	if Engine() != custom {
		t.Error("SetEngineHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset() should restore NoopEngineHooks")
	}
}

type testEngineHooks struct {
	NoopEngineHooks
}
