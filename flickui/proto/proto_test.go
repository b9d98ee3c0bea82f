package proto

import "testing"

func TestPointerPayloadRoundTrip(t *testing.T) {
	cases := []struct {
		phase  PointerPhase
		id     uint8
		x, y   int16
		millis uint32
	}{
		{PointerDown, 0, 0, 0, 0},
		{PointerMove, 3, 160, 120, 1024},
		{PointerUp, 9, -5, 319, 4_000_000_000},
		{PointerCancel, 1, 32767, -32768, 99},
	}

	for _, tc := range cases {
		b := PointerPayload(tc.phase, tc.id, tc.x, tc.y, tc.millis)
		phase, id, x, y, millis, ok := DecodePointerPayload(b)
		if !ok {
			t.Fatalf("decode failed for %+v", tc)
		}
		if phase != tc.phase || id != tc.id || x != tc.x || y != tc.y || millis != tc.millis {
			t.Fatalf("round trip mismatch: got %v %d (%d,%d) @%d, want %+v", phase, id, x, y, millis, tc)
		}
	}
}

func TestDecodePointerPayloadRejectsBadInput(t *testing.T) {
	if _, _, _, _, _, ok := DecodePointerPayload(nil); ok {
		t.Fatal("expected decode of nil to fail")
	}
	if _, _, _, _, _, ok := DecodePointerPayload(make([]byte, 9)); ok {
		t.Fatal("expected decode of short buffer to fail")
	}
	b := PointerPayload(PointerDown, 0, 0, 0, 0)
	b[0] = byte(PointerCancel) + 1
	if _, _, _, _, _, ok := DecodePointerPayload(b); ok {
		t.Fatal("expected decode of unknown phase to fail")
	}
}

func TestWheelPayloadRoundTrip(t *testing.T) {
	b := WheelPayload(-1, 160, 120)
	dy, x, y, ok := DecodeWheelPayload(b)
	if !ok || dy != -1 || x != 160 || y != 120 {
		t.Fatalf("round trip mismatch: got %d (%d,%d) ok=%v", dy, x, y, ok)
	}
	if _, _, _, ok := DecodeWheelPayload(b[:4]); ok {
		t.Fatal("expected decode of short buffer to fail")
	}
}

func TestKeyPayloadRoundTrip(t *testing.T) {
	b := KeyPayload(42, true, 'q')
	code, press, r, ok := DecodeKeyPayload(b)
	if !ok || code != 42 || !press || r != 'q' {
		t.Fatalf("round trip mismatch: got %d %v %q ok=%v", code, press, r, ok)
	}
	if _, _, _, ok := DecodeKeyPayload(b[:3]); ok {
		t.Fatal("expected decode of short buffer to fail")
	}
}

func TestPanelPayloads(t *testing.T) {
	id, ok := DecodePanelSelectPayload(PanelSelectPayload(PanelTilt))
	if !ok || id != PanelTilt {
		t.Fatalf("expected PanelTilt, got %v ok=%v", id, ok)
	}
	if _, ok := DecodePanelSelectPayload(nil); ok {
		t.Fatal("expected decode of empty payload to fail")
	}

	op, ok := DecodePanelControlPayload(PanelControlPayload(PanelReset))
	if !ok || op != PanelReset {
		t.Fatalf("expected PanelReset, got %v ok=%v", op, ok)
	}
	if _, ok := DecodePanelControlPayload([]byte{255}); ok {
		t.Fatal("expected decode of unknown op to fail")
	}
}
