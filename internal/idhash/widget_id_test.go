package idhash

import "testing"

func TestComputeWidgetID_Deterministic(t *testing.T) {
	a := ComputeWidgetID("camp-1", "recent_purchase", "evt-1")
	b := ComputeWidgetID("camp-1", "recent_purchase", "evt-1")

	if a != b {
		t.Errorf("expected identical IDs for identical inputs, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64-character hex ID, got %d characters", len(a))
	}
}

func TestComputeWidgetID_DistinctInputs(t *testing.T) {
	base := ComputeWidgetID("camp-1", "recent_purchase", "evt-1")

	variants := []string{
		ComputeWidgetID("camp-2", "recent_purchase", "evt-1"),
		ComputeWidgetID("camp-1", "live_visitors", "evt-1"),
		ComputeWidgetID("camp-1", "recent_purchase", "evt-2"),
	}

	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with base ID", i)
		}
	}
}

func TestComputeWidgetID_SeparatorPreventsAmbiguity(t *testing.T) {
	// "ab"+"c" must not hash the same as "a"+"bc".
	a := ComputeWidgetID("ab", "c", "x")
	b := ComputeWidgetID("a", "bc", "x")

	if a == b {
		t.Error("field boundaries are ambiguous: different inputs produced the same ID")
	}
}
