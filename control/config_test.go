// control/config_test.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"testing"
	"time"
)

func TestConfigStore_IntValue(t *testing.T) {
	cs := NewConfigStore()

	if got := cs.IntValue(KeyWorkers, 4); got != 4 {
		t.Errorf("Expected default 4 for missing key, got %d", got)
	}

	cs.SetConfig(map[string]any{KeyWorkers: 8})
	if got := cs.IntValue(KeyWorkers, 4); got != 8 {
		t.Errorf("Expected 8, got %d", got)
	}

	// Numbers decoded from JSON arrive as float64.
	cs.SetConfig(map[string]any{KeyWorkers: float64(6)})
	if got := cs.IntValue(KeyWorkers, 4); got != 6 {
		t.Errorf("Expected float64 coercion to 6, got %d", got)
	}

	cs.SetConfig(map[string]any{KeyWorkers: "not a number"})
	if got := cs.IntValue(KeyWorkers, 4); got != 4 {
		t.Errorf("Expected default for mistyped value, got %d", got)
	}
}

func TestConfigStore_BoolValue(t *testing.T) {
	cs := NewConfigStore()

	if cs.BoolValue(KeyPinWorkers, false) {
		t.Errorf("Expected default false for missing key")
	}
	cs.SetConfig(map[string]any{KeyPinWorkers: true})
	if !cs.BoolValue(KeyPinWorkers, false) {
		t.Errorf("Expected true after set")
	}
}

func TestConfigStore_SnapshotIsCopy(t *testing.T) {
	cs := NewConfigStore()
	cs.SetConfig(map[string]any{"a": 1})

	snap := cs.GetSnapshot()
	snap["a"] = 99
	if got := cs.IntValue("a", 0); got != 1 {
		t.Errorf("Expected store untouched by snapshot mutation, got %d", got)
	}
}

func TestConfigStore_OnReload(t *testing.T) {
	cs := NewConfigStore()

	calls := 0
	cs.OnReload(func() { calls++ })

	cs.SetConfig(map[string]any{KeyWorkers: 2})
	cs.SetConfig(map[string]any{KeyWorkers: 3})
	if calls != 2 {
		t.Errorf("Expected listener called per change, got %d", calls)
	}
}

func TestConfigStore_ListenerSeesNewValue(t *testing.T) {
	cs := NewConfigStore()

	var observed int
	cs.OnReload(func() {
		observed = cs.IntValue(KeyWorkers, -1)
	})
	cs.SetConfig(map[string]any{KeyWorkers: 7})
	if observed != 7 {
		t.Errorf("Expected listener to read the committed value, got %d", observed)
	}
}

func TestMetricsRegistry_SetAndMerge(t *testing.T) {
	mr := NewMetricsRegistry()

	before := mr.LastUpdated()
	mr.Set("uptime", 12)
	mr.Merge("taskq.", map[string]any{"workers": 4, "queue_depth": 0})

	snap := mr.GetSnapshot()
	if snap["uptime"] != 12 {
		t.Errorf("Expected uptime 12, got %v", snap["uptime"])
	}
	if snap["taskq.workers"] != 4 {
		t.Errorf("Expected prefixed merge, got %v", snap["taskq.workers"])
	}
	if snap["taskq.queue_depth"] != 0 {
		t.Errorf("Expected merged depth, got %v", snap["taskq.queue_depth"])
	}
	if !mr.LastUpdated().After(before) && mr.LastUpdated() == (time.Time{}) {
		t.Errorf("Expected LastUpdated to advance")
	}
}
