package gesture

import "testing"

func TestTapWithinBudgets(t *testing.T) {
	var r TapRecognizer
	if r.Handle(PointerEvent{ID: 0, Phase: PhaseDown, X: 100, Y: 100, Millis: 0}) {
		t.Fatal("down alone must not tap")
	}
	if !r.Handle(PointerEvent{ID: 0, Phase: PhaseUp, X: 103, Y: 98, Millis: 120}) {
		t.Fatal("expected a tap inside the slop and time budget")
	}
}

func TestTapRejectsSlowRelease(t *testing.T) {
	var r TapRecognizer
	r.Handle(PointerEvent{ID: 0, Phase: PhaseDown, X: 100, Y: 100, Millis: 0})
	if r.Handle(PointerEvent{ID: 0, Phase: PhaseUp, X: 100, Y: 100, Millis: 400}) {
		t.Fatal("expected a slow release to be rejected")
	}
}

func TestTapRejectsDrift(t *testing.T) {
	var r TapRecognizer
	r.Handle(PointerEvent{ID: 0, Phase: PhaseDown, X: 100, Y: 100, Millis: 0})
	r.Handle(PointerEvent{ID: 0, Phase: PhaseMove, X: 140, Y: 100, Millis: 50})
	if r.Handle(PointerEvent{ID: 0, Phase: PhaseUp, X: 100, Y: 100, Millis: 80}) {
		t.Fatal("expected drift past the slop to abort the tap")
	}
}

func TestTapSecondPointerAborts(t *testing.T) {
	var r TapRecognizer
	r.Handle(PointerEvent{ID: 0, Phase: PhaseDown, X: 100, Y: 100, Millis: 0})
	r.Handle(PointerEvent{ID: 1, Phase: PhaseDown, X: 200, Y: 100, Millis: 20})
	if r.Handle(PointerEvent{ID: 0, Phase: PhaseUp, X: 100, Y: 100, Millis: 60}) {
		t.Fatal("expected a second pointer to abort the tap")
	}
}

func TestTapCancelAborts(t *testing.T) {
	var r TapRecognizer
	r.Handle(PointerEvent{ID: 0, Phase: PhaseDown, X: 100, Y: 100, Millis: 0})
	r.Handle(PointerEvent{ID: 0, Phase: PhaseCancel, X: 100, Y: 100, Millis: 30})
	if r.Handle(PointerEvent{ID: 0, Phase: PhaseUp, X: 100, Y: 100, Millis: 60}) {
		t.Fatal("expected cancel to abort the tap")
	}
}

func TestTapCustomBudgets(t *testing.T) {
	r := TapRecognizer{MaxMillis: 500, SlopPx: 2}
	r.Handle(PointerEvent{ID: 0, Phase: PhaseDown, X: 0, Y: 0, Millis: 0})
	if !r.Handle(PointerEvent{ID: 0, Phase: PhaseUp, X: 1, Y: 1, Millis: 450}) {
		t.Fatal("expected tap inside widened time budget")
	}

	r.Handle(PointerEvent{ID: 0, Phase: PhaseDown, X: 0, Y: 0, Millis: 1000})
	if r.Handle(PointerEvent{ID: 0, Phase: PhaseUp, X: 3, Y: 0, Millis: 1050}) {
		t.Fatal("expected tightened slop to reject the tap")
	}
}
