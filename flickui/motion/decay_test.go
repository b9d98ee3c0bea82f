package motion

import (
	"math"
	"testing"
)

func TestDecayStepExactIntegral(t *testing.T) {
	d := Decay{Rate: math.Ln2, MinVelocity: 2, MaxMillis: 8000}

	// One full second at halving rate: velocity halves, displacement is
	// v0·(1-1/2)/rate.
	dPos, next := d.step(100, 1000)
	if got, want := next, float32(50); math.Abs(float64(got-want)) > 1e-3 {
		t.Fatalf("expected velocity %v after 1s, got %v", want, got)
	}
	wantPos := 100 * 0.5 / math.Ln2
	if math.Abs(float64(dPos)-wantPos) > 1e-3 {
		t.Fatalf("expected displacement %.4f, got %v", wantPos, dPos)
	}
}

func TestDecayStepZeroInputs(t *testing.T) {
	d := DefaultDecay()
	if dPos, next := d.step(0, 16); dPos != 0 || next != 0 {
		t.Fatalf("expected zero velocity to stay settled, got dPos=%v next=%v", dPos, next)
	}
	if dPos, next := d.step(100, 0); dPos != 0 || next != 100 {
		t.Fatalf("expected zero dt to be a no-op, got dPos=%v next=%v", dPos, next)
	}
}

func TestDecayVelocityStrictlyDecreases(t *testing.T) {
	d := DefaultDecay()
	v := float32(720)
	for i := 0; i < 200; i++ {
		_, next := d.step(v, 16)
		if next >= v {
			t.Fatalf("step %d: expected velocity to decrease, %v -> %v", i, v, next)
		}
		if next <= 0 {
			t.Fatalf("step %d: velocity crossed zero: %v", i, next)
		}
		v = next
	}
}

func TestDecayHalvingFixtureTotal(t *testing.T) {
	// Velocity halves every second; a 720 deg/s fling converges toward
	// 720/ln2 degrees and crosses the 2 deg/s settle threshold just short
	// of that.
	d := Decay{Rate: math.Ln2, MinVelocity: 2, MaxMillis: 10000}

	ideal := d.Total(720)
	if math.Abs(float64(ideal)-1038.73) > 0.1 {
		t.Fatalf("expected ideal total ~1038.73, got %v", ideal)
	}

	var total float32
	v := float32(720)
	elapsed := uint32(0)
	for {
		dPos, next := d.step(v, 16)
		total += dPos
		v = next
		elapsed += 16
		if v < d.MinVelocity || elapsed >= d.MaxMillis {
			break
		}
		if elapsed > 20000 {
			t.Fatal("fling did not settle")
		}
	}

	if elapsed >= d.MaxMillis {
		t.Fatalf("expected settle threshold to trigger before the cap, ran %dms", elapsed)
	}
	if math.Abs(float64(total)-1035.9) > 1 {
		t.Fatalf("expected simulated total ~1035.9, got %v", total)
	}
	if total >= ideal {
		t.Fatalf("expected simulated total %v below ideal %v", total, ideal)
	}
}

func TestDecaySettleMillis(t *testing.T) {
	d := Decay{Rate: math.Ln2, MinVelocity: 2, MaxMillis: 10000}
	got := d.SettleMillis(720)
	if math.Abs(float64(got)-8491) > 5 {
		t.Fatalf("expected settle near 8491ms, got %d", got)
	}

	capped := Decay{Rate: math.Ln2, MinVelocity: 2, MaxMillis: 8000}
	if got := capped.SettleMillis(720); got != 8000 {
		t.Fatalf("expected settle capped at 8000ms, got %d", got)
	}

	if got := d.SettleMillis(0); got != 0 {
		t.Fatalf("expected zero velocity to settle at 0ms, got %d", got)
	}
	if got := d.SettleMillis(1); got != 0 {
		t.Fatalf("expected sub-threshold velocity to settle at 0ms, got %d", got)
	}
}

func TestDecayNormalizedFillsZeroFields(t *testing.T) {
	d := Decay{}.normalized()
	def := DefaultDecay()
	if d.Rate != def.Rate || d.MinVelocity != def.MinVelocity || d.MaxMillis != def.MaxMillis {
		t.Fatalf("expected defaults %+v, got %+v", def, d)
	}
}
