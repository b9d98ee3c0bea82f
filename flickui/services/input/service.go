// Package input bridges HAL input devices into kernel IPC. Pointer and
// wheel traffic goes to the panel manager; Escape and Ctrl-C become a
// shutdown request on the control endpoint.
package input

import (
	"flick/flickui/kernel"
	"flick/flickui/proto"
	"flick/hal"
)

const (
	// Down/up transitions drive gesture state machines and must not be
	// lost; moves are a stream and may be coalesced by dropping.
	transitionRetryTicks = 50
	keyRetryTicks        = 200
)

type Service struct {
	in       hal.Input
	panelCap kernel.Capability
	ctrlCap  kernel.Capability
}

func New(in hal.Input, panelCap, ctrlCap kernel.Capability) *Service {
	return &Service{in: in, panelCap: panelCap, ctrlCap: ctrlCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	if s.in == nil {
		return
	}

	var keyCh <-chan hal.KeyEvent
	if kbd := s.in.Keyboard(); kbd != nil {
		keyCh = kbd.Events()
	}
	var ptrCh <-chan hal.PointerEvent
	var wheelCh <-chan hal.WheelEvent
	if ptr := s.in.Pointer(); ptr != nil {
		ptrCh = ptr.Events()
		wheelCh = ptr.Wheel()
	}
	if keyCh == nil && ptrCh == nil {
		return
	}

	// Nil channels never fire in the select.
	for {
		select {
		case ev, ok := <-ptrCh:
			if !ok {
				return
			}
			s.pointer(ctx, ev)
		case ev, ok := <-wheelCh:
			if !ok {
				return
			}
			ctx.SendToCapResult(s.panelCap, uint16(proto.MsgWheel),
				proto.WheelPayload(ev.Dy, ev.X, ev.Y), kernel.Capability{})
		case ev, ok := <-keyCh:
			if !ok {
				return
			}
			s.key(ctx, ev)
		}
	}
}

func (s *Service) pointer(ctx *kernel.Context, ev hal.PointerEvent) {
	// hal and proto phases share values.
	p := proto.PointerPayload(proto.PointerPhase(ev.Phase), ev.ID, ev.X, ev.Y, uint32(ctx.NowTick()))
	if ev.Phase == hal.PointerMove {
		ctx.SendToCapResult(s.panelCap, uint16(proto.MsgPointer), p, kernel.Capability{})
		return
	}
	ctx.SendToCapRetry(s.panelCap, uint16(proto.MsgPointer), p, kernel.Capability{}, transitionRetryTicks)
}

func (s *Service) key(ctx *kernel.Context, ev hal.KeyEvent) {
	if ev.Press {
		switch {
		case ev.Code == hal.KeyEscape || ev.Rune == 0x03:
			ctx.SendToCapRetry(s.ctrlCap, uint16(proto.MsgShutdown), nil, kernel.Capability{}, keyRetryTicks)
			return
		case ev.Rune >= '1' && ev.Rune <= '4':
			p := proto.PanelSelectPayload(proto.PanelID(ev.Rune - '0'))
			ctx.SendToCapRetry(s.panelCap, uint16(proto.MsgPanelSelect), p, kernel.Capability{}, keyRetryTicks)
			return
		}
	}
	p := proto.KeyPayload(uint16(ev.Code), ev.Press, ev.Rune)
	ctx.SendToCapRetry(s.panelCap, uint16(proto.MsgKey), p, kernel.Capability{}, keyRetryTicks)
}
