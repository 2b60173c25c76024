package rating

import (
	"testing"

	"converso/internal/prng"
)

func TestTrackerDeltaNeverZeroAndBounded(t *testing.T) {
	tr := NewTracker(prng.NewSource("turns"))
	current := 1600
	for i := 0; i < 500; i++ {
		next, delta := tr.ApplyTurn(current)
		if delta == 0 {
			t.Fatalf("turn %d produced zero delta", i)
		}
		if delta > MaxTurnDelta || delta < -MaxTurnDelta {
			t.Fatalf("turn %d delta %d out of range", i, delta)
		}
		if next != current+delta {
			t.Fatalf("turn %d next=%d, want current+delta=%d", i, next, current+delta)
		}
		current = next
	}
}

func TestTrackerReproducible(t *testing.T) {
	a := NewTracker(prng.NewSource("same-key"))
	b := NewTracker(prng.NewSource("same-key"))
	ca, cb := 1600, 1600
	for i := 0; i < 50; i++ {
		var da, db int
		ca, da = a.ApplyTurn(ca)
		cb, db = b.ApplyTurn(cb)
		if da != db || ca != cb {
			t.Fatalf("turn %d diverged: (%d,%d) vs (%d,%d)", i, ca, da, cb, db)
		}
	}
}

func TestTrackerProducesBothSigns(t *testing.T) {
	tr := NewTracker(prng.NewSource("signs"))
	var pos, neg bool
	current := 1600
	for i := 0; i < 200 && !(pos && neg); i++ {
		var delta int
		current, delta = tr.ApplyTurn(current)
		if delta > 0 {
			pos = true
		} else {
			neg = true
		}
	}
	if !pos || !neg {
		t.Fatalf("expected both signs over 200 turns, got pos=%v neg=%v", pos, neg)
	}
}
