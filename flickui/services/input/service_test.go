package input

import (
	"testing"
	"time"

	"flick/flickui/kernel"
	"flick/flickui/proto"
	"flick/hal"
)

type taskFunc func(*kernel.Context)

func (f taskFunc) Run(ctx *kernel.Context) { f(ctx) }

type fakePointer struct {
	ch    chan hal.PointerEvent
	wheel chan hal.WheelEvent
}

func (p *fakePointer) Events() <-chan hal.PointerEvent { return p.ch }
func (p *fakePointer) Wheel() <-chan hal.WheelEvent    { return p.wheel }

type fakeKeyboard struct {
	ch chan hal.KeyEvent
}

func (k *fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakeInput struct {
	kbd *fakeKeyboard
	ptr *fakePointer
}

func (in *fakeInput) Keyboard() hal.Keyboard { return in.kbd }
func (in *fakeInput) Pointer() hal.Pointer   { return in.ptr }

func newFakeInput() *fakeInput {
	return &fakeInput{
		kbd: &fakeKeyboard{ch: make(chan hal.KeyEvent, 16)},
		ptr: &fakePointer{
			ch:    make(chan hal.PointerEvent, 16),
			wheel: make(chan hal.WheelEvent, 16),
		},
	}
}

func startService(t *testing.T) (*fakeInput, chan kernel.Message, chan kernel.Message) {
	t.Helper()
	k := kernel.New()
	t.Cleanup(k.Close)

	panelEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	ctrlEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	panelMsgs := make(chan kernel.Message, 16)
	ctrlMsgs := make(chan kernel.Message, 16)
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
	collect(panelEP.Restrict(kernel.RightRecv), panelMsgs)
	collect(ctrlEP.Restrict(kernel.RightRecv), ctrlMsgs)

	in := newFakeInput()
	k.AddTask(New(in, panelEP.Restrict(kernel.RightSend), ctrlEP.Restrict(kernel.RightSend)))
	return in, panelMsgs, ctrlMsgs
}

func recvMsg(t *testing.T, ch chan kernel.Message) kernel.Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message arrived")
		return kernel.Message{}
	}
}

func TestPointerEventsBecomeMsgPointer(t *testing.T) {
	in, panelMsgs, _ := startService(t)

	in.ptr.ch <- hal.PointerEvent{ID: 3, Phase: hal.PointerDown, X: 42, Y: 99}

	msg := recvMsg(t, panelMsgs)
	if proto.Kind(msg.Kind) != proto.MsgPointer {
		t.Fatalf("expected pointer message, got %s", proto.Kind(msg.Kind))
	}
	phase, id, x, y, _, ok := proto.DecodePointerPayload(msg.Payload())
	if !ok || phase != proto.PointerDown || id != 3 || x != 42 || y != 99 {
		t.Fatalf("payload mismatch: %v %v %v %v", phase, id, x, y)
	}
}

func TestWheelEventsBecomeMsgWheel(t *testing.T) {
	in, panelMsgs, _ := startService(t)

	in.ptr.wheel <- hal.WheelEvent{Dy: -1, X: 5, Y: 6}

	msg := recvMsg(t, panelMsgs)
	if proto.Kind(msg.Kind) != proto.MsgWheel {
		t.Fatalf("expected wheel message, got %s", proto.Kind(msg.Kind))
	}
	dy, x, y, ok := proto.DecodeWheelPayload(msg.Payload())
	if !ok || dy != -1 || x != 5 || y != 6 {
		t.Fatalf("payload mismatch: %v %v %v", dy, x, y)
	}
}

func TestDigitKeySelectsPanel(t *testing.T) {
	in, panelMsgs, _ := startService(t)

	in.kbd.ch <- hal.KeyEvent{Press: true, Rune: '2'}

	msg := recvMsg(t, panelMsgs)
	if proto.Kind(msg.Kind) != proto.MsgPanelSelect {
		t.Fatalf("expected panel select, got %s", proto.Kind(msg.Kind))
	}
	id, ok := proto.DecodePanelSelectPayload(msg.Payload())
	if !ok || id != proto.PanelPinch {
		t.Fatalf("expected pinch panel, got %s", id)
	}
}

func TestEscapeRequestsShutdown(t *testing.T) {
	in, _, ctrlMsgs := startService(t)

	in.kbd.ch <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}

	msg := recvMsg(t, ctrlMsgs)
	if proto.Kind(msg.Kind) != proto.MsgShutdown {
		t.Fatalf("expected shutdown, got %s", proto.Kind(msg.Kind))
	}
}

func TestOtherKeysForwardToPanels(t *testing.T) {
	in, panelMsgs, _ := startService(t)

	in.kbd.ch <- hal.KeyEvent{Code: hal.KeyTab, Press: true}

	msg := recvMsg(t, panelMsgs)
	if proto.Kind(msg.Kind) != proto.MsgKey {
		t.Fatalf("expected key message, got %s", proto.Kind(msg.Kind))
	}
	code, press, _, ok := proto.DecodeKeyPayload(msg.Payload())
	if !ok || code != uint16(hal.KeyTab) || !press {
		t.Fatalf("payload mismatch: %v %v", code, press)
	}
}
