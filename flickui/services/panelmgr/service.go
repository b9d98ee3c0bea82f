// Package panelmgr owns panel focus. It routes pointer, wheel, and key
// traffic to the active panel, cycles focus on Tab and the arrow keys, and
// pauses/resumes panels on switch. Selecting the active panel again sends
// it a reset.
package panelmgr

import (
	"flick/flickui/kernel"
	"flick/flickui/proto"
	"flick/hal"
)

const (
	// Pause/resume must land or two panels fight over the framebuffer.
	controlRetryTicks    = 200
	transitionRetryTicks = 50
)

type Service struct {
	inCap      kernel.Capability
	spinCap    kernel.Capability
	pinchCap   kernel.Capability
	tiltCap    kernel.Capability
	consoleCap kernel.Capability
	logCap     kernel.Capability

	active proto.PanelID
}

func New(inCap, spinCap, pinchCap, tiltCap, consoleCap, logCap kernel.Capability, initial proto.PanelID) *Service {
	if initial == proto.PanelNone {
		initial = proto.PanelSpin
	}
	return &Service{
		inCap:      inCap,
		spinCap:    spinCap,
		pinchCap:   pinchCap,
		tiltCap:    tiltCap,
		consoleCap: consoleCap,
		logCap:     logCap,
		active:     initial,
	}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.inCap)
	if !ok {
		return
	}

	s.control(ctx, s.panelCap(s.active), proto.PanelResume)
	s.logLine(ctx, "panel: "+s.active.String())

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgPointer, proto.MsgWheel:
			s.forward(ctx, &msg)
		case proto.MsgKey:
			s.key(ctx, &msg)
		case proto.MsgPanelSelect:
			id, ok := proto.DecodePanelSelectPayload(msg.Payload())
			if !ok {
				continue
			}
			s.switchTo(ctx, id)
		}
	}
}

// forward relays an input message to the active panel. Pointer transitions
// retry on a full mailbox; moves and wheel steps are droppable.
func (s *Service) forward(ctx *kernel.Context, msg *kernel.Message) {
	dst := s.panelCap(s.active)
	if !dst.Valid() {
		return
	}
	p := msg.Payload()
	if proto.Kind(msg.Kind) == proto.MsgPointer && len(p) > 0 &&
		proto.PointerPhase(p[0]) != proto.PointerMove {
		ctx.SendToCapRetry(dst, msg.Kind, p, kernel.Capability{}, transitionRetryTicks)
		return
	}
	ctx.SendToCapResult(dst, msg.Kind, p, kernel.Capability{})
}

func (s *Service) key(ctx *kernel.Context, msg *kernel.Message) {
	code, press, r, ok := proto.DecodeKeyPayload(msg.Payload())
	if !ok || !press {
		return
	}
	switch {
	case code == uint16(hal.KeyTab) || code == uint16(hal.KeyRight):
		s.switchTo(ctx, nextPanel(s.active))
	case code == uint16(hal.KeyLeft):
		s.switchTo(ctx, prevPanel(s.active))
	default:
		dst := s.panelCap(s.active)
		if !dst.Valid() {
			return
		}
		ctx.SendToCapRetry(dst, uint16(proto.MsgKey), proto.KeyPayload(code, press, r),
			kernel.Capability{}, controlRetryTicks)
	}
}

func (s *Service) switchTo(ctx *kernel.Context, id proto.PanelID) {
	if !s.panelCap(id).Valid() {
		return
	}
	if id == s.active {
		s.control(ctx, s.panelCap(id), proto.PanelReset)
		return
	}
	s.control(ctx, s.panelCap(s.active), proto.PanelPause)
	s.active = id
	s.control(ctx, s.panelCap(id), proto.PanelResume)
	s.logLine(ctx, "panel: "+id.String())
}

func (s *Service) control(ctx *kernel.Context, dst kernel.Capability, op proto.PanelOp) {
	if !dst.Valid() {
		return
	}
	ctx.SendToCapRetry(dst, uint16(proto.MsgPanelControl), proto.PanelControlPayload(op),
		kernel.Capability{}, controlRetryTicks)
}

func (s *Service) logLine(ctx *kernel.Context, line string) {
	if !s.logCap.Valid() {
		return
	}
	ctx.SendToCapResult(s.logCap, uint16(proto.MsgLogLine), []byte(line), kernel.Capability{})
}

func (s *Service) panelCap(id proto.PanelID) kernel.Capability {
	switch id {
	case proto.PanelSpin:
		return s.spinCap
	case proto.PanelPinch:
		return s.pinchCap
	case proto.PanelTilt:
		return s.tiltCap
	case proto.PanelConsole:
		return s.consoleCap
	default:
		return kernel.Capability{}
	}
}

func nextPanel(id proto.PanelID) proto.PanelID {
	switch id {
	case proto.PanelSpin:
		return proto.PanelPinch
	case proto.PanelPinch:
		return proto.PanelTilt
	case proto.PanelTilt:
		return proto.PanelConsole
	default:
		return proto.PanelSpin
	}
}

func prevPanel(id proto.PanelID) proto.PanelID {
	switch id {
	case proto.PanelSpin:
		return proto.PanelConsole
	case proto.PanelPinch:
		return proto.PanelSpin
	case proto.PanelTilt:
		return proto.PanelPinch
	default:
		return proto.PanelTilt
	}
}
