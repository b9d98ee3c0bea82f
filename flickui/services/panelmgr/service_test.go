package panelmgr

import (
	"testing"
	"time"

	"flick/flickui/kernel"
	"flick/flickui/proto"
)

type taskFunc func(*kernel.Context)

func (f taskFunc) Run(ctx *kernel.Context) { f(ctx) }

type harness struct {
	k     *kernel.Kernel
	inCap kernel.Capability

	spin    chan kernel.Message
	pinch   chan kernel.Message
	tilt    chan kernel.Message
	console chan kernel.Message
}

// newHarness starts a panel manager wired to collector tasks standing in
// for the four panels.
func newHarness(t *testing.T, initial proto.PanelID) *harness {
	t.Helper()
	k := kernel.New()
	t.Cleanup(k.Close)

	inEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	spinEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	pinchEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	tiltEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	consoleEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	h := &harness{
		k:       k,
		inCap:   inEP.Restrict(kernel.RightSend),
		spin:    make(chan kernel.Message, 16),
		pinch:   make(chan kernel.Message, 16),
		tilt:    make(chan kernel.Message, 16),
		console: make(chan kernel.Message, 16),
	}

	collect := func(ep kernel.Capability, out chan kernel.Message) {
		k.AddTask(taskFunc(func(ctx *kernel.Context) {
			ch, ok := ctx.RecvChan(ep)
			if !ok {
				return
			}
			for msg := range ch {
				out <- msg
			}
		}))
	}
	collect(spinEP.Restrict(kernel.RightRecv), h.spin)
	collect(pinchEP.Restrict(kernel.RightRecv), h.pinch)
	collect(tiltEP.Restrict(kernel.RightRecv), h.tilt)
	collect(consoleEP.Restrict(kernel.RightRecv), h.console)

	k.AddTask(New(
		inEP.Restrict(kernel.RightRecv),
		spinEP.Restrict(kernel.RightSend),
		pinchEP.Restrict(kernel.RightSend),
		tiltEP.Restrict(kernel.RightSend),
		consoleEP.Restrict(kernel.RightSend),
		logEP.Restrict(kernel.RightSend),
		initial,
	))
	return h
}

func (h *harness) send(t *testing.T, kind proto.Kind, payload []byte) {
	t.Helper()
	done := make(chan bool, 1)
	h.k.AddTask(taskFunc(func(ctx *kernel.Context) {
		done <- ctx.SendToCap(h.inCap, uint16(kind), payload, kernel.Capability{})
	}))
	select {
	case ok := <-done:
		if !ok {
			t.Fatalf("send %s failed", kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("send %s timed out", kind)
	}
}

func expectControl(t *testing.T, ch chan kernel.Message, want proto.PanelOp) {
	t.Helper()
	for {
		select {
		case msg := <-ch:
			if proto.Kind(msg.Kind) != proto.MsgPanelControl {
				continue
			}
			op, ok := proto.DecodePanelControlPayload(msg.Payload())
			if !ok {
				t.Fatal("bad control payload")
			}
			if op != want {
				t.Fatalf("expected %s, got %s", want, op)
			}
			return
		case <-time.After(2 * time.Second):
			t.Fatalf("no %s control arrived", want)
		}
	}
}

func expectKind(t *testing.T, ch chan kernel.Message, want proto.Kind) kernel.Message {
	t.Helper()
	select {
	case msg := <-ch:
		if proto.Kind(msg.Kind) != want {
			t.Fatalf("expected %s, got %s", want, proto.Kind(msg.Kind))
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("no %s message arrived", want)
		return kernel.Message{}
	}
}

func expectQuiet(t *testing.T, ch chan kernel.Message) {
	t.Helper()
	select {
	case msg := <-ch:
		t.Fatalf("unexpected %s message", proto.Kind(msg.Kind))
	case <-time.After(50 * time.Millisecond):
	}
}

func TestInitialPanelIsResumed(t *testing.T) {
	h := newHarness(t, proto.PanelSpin)
	expectControl(t, h.spin, proto.PanelResume)
	expectQuiet(t, h.pinch)
}

func TestSwitchPausesOldResumesNew(t *testing.T) {
	h := newHarness(t, proto.PanelSpin)
	expectControl(t, h.spin, proto.PanelResume)

	h.send(t, proto.MsgPanelSelect, proto.PanelSelectPayload(proto.PanelPinch))
	expectControl(t, h.spin, proto.PanelPause)
	expectControl(t, h.pinch, proto.PanelResume)
	expectQuiet(t, h.tilt)
}

func TestReselectActivePanelResets(t *testing.T) {
	h := newHarness(t, proto.PanelTilt)
	expectControl(t, h.tilt, proto.PanelResume)

	h.send(t, proto.MsgPanelSelect, proto.PanelSelectPayload(proto.PanelTilt))
	expectControl(t, h.tilt, proto.PanelReset)
}

func TestPointerGoesToActivePanelOnly(t *testing.T) {
	h := newHarness(t, proto.PanelSpin)
	expectControl(t, h.spin, proto.PanelResume)

	p := proto.PointerPayload(proto.PointerDown, 0, 10, 20, 5)
	h.send(t, proto.MsgPointer, p)

	msg := expectKind(t, h.spin, proto.MsgPointer)
	phase, id, x, y, millis, ok := proto.DecodePointerPayload(msg.Payload())
	if !ok || phase != proto.PointerDown || id != 0 || x != 10 || y != 20 || millis != 5 {
		t.Fatalf("pointer payload mangled: %v %v %v %v %v %v", phase, id, x, y, millis, ok)
	}
	expectQuiet(t, h.pinch)
	expectQuiet(t, h.console)
}
