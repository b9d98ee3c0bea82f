// Package logger drains MsgLogLine messages to the HAL logger and mirrors
// each line to the on-screen console.
package logger

import (
	"flick/flickui/kernel"
	"flick/flickui/proto"
	"flick/hal"
)

type Service struct {
	log        hal.Logger
	ep         kernel.Capability
	consoleCap kernel.Capability
}

// New creates the logger service. consoleCap may be invalid; mirroring is
// then disabled.
func New(log hal.Logger, ep, consoleCap kernel.Capability) *Service {
	return &Service{log: log, ep: ep, consoleCap: consoleCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if msg.Kind != uint16(proto.MsgLogLine) {
			continue
		}
		line := msg.Payload()
		if s.log != nil {
			s.log.WriteLineBytes(line)
		}
		if s.consoleCap.Valid() {
			// Console lines start on a fresh row. Drop on a full mailbox:
			// logging never blocks the sender's loop.
			buf := make([]byte, len(line)+1)
			buf[0] = '\n'
			copy(buf[1:], line)
			ctx.SendToCapResult(s.consoleCap, uint16(proto.MsgConsoleWrite), buf, kernel.Capability{})
		}
	}
}
