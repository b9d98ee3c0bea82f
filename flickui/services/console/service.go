package console

import (
	"flick/flickui/kernel"
	"flick/flickui/proto"
	"flick/hal"
	"flick/internal/buildinfo"

	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	fontHeight = 10
	fontOffset = 6

	// ringLines bounds the replay history. Other panels own the framebuffer
	// while the console is inactive, so activation replays recent lines.
	ringLines = 32
)

// Service renders the log console panel: a tinyterm terminal drawn straight
// into the framebuffer. It only touches the display while active; writes
// that arrive while another panel is active land in a ring and are replayed
// on the next activation.
type Service struct {
	disp hal.Display
	ep   kernel.Capability

	fb hal.Framebuffer
	d  *fbDisplay
	t  *tinyterm.Terminal

	active bool
	dirty  bool

	ring    [ringLines][]byte
	ringLen int
	ringPos int
}

func New(disp hal.Display, ep kernel.Capability) *Service {
	return &Service{disp: disp, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok || s.disp == nil {
		return
	}
	s.fb = s.disp.Framebuffer()
	if s.fb == nil {
		return
	}
	s.d = newFBDisplay(s.fb)

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			next := ctx.WaitTick(last)
			if next <= last {
				return
			}
			last = next
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case <-tickCh:
			if s.active && s.dirty {
				s.t.Display()
				s.dirty = false
			}

		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.handle(&msg)
		}
	}
}

func (s *Service) handle(msg *kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgConsoleWrite:
		s.push(msg.Payload())
		if s.active {
			_, _ = s.t.Write(msg.Payload())
			s.dirty = true
		}

	case proto.MsgConsoleClear:
		s.ringLen, s.ringPos = 0, 0
		if s.active {
			s.redraw()
		}

	case proto.MsgPanelControl:
		op, ok := proto.DecodePanelControlPayload(msg.Payload())
		if !ok {
			return
		}
		switch op {
		case proto.PanelResume:
			s.active = true
			s.redraw()
		case proto.PanelPause:
			s.active = false
		case proto.PanelReset:
			s.ringLen, s.ringPos = 0, 0
			if s.active {
				s.redraw()
			}
		}
	}
}

// push appends a copy of the line to the replay ring. The payload aliases
// the caller's message and must not be retained.
func (s *Service) push(p []byte) {
	if len(p) == 0 {
		return
	}
	s.ring[s.ringPos] = append([]byte(nil), p...)
	s.ringPos = (s.ringPos + 1) % ringLines
	if s.ringLen < ringLines {
		s.ringLen++
	}
}

// redraw rebuilds the terminal from scratch and replays the ring. tinyterm
// keeps no scrollback, so this is the only way to restore the screen after
// another panel drew over it.
func (s *Service) redraw() {
	s.t = tinyterm.NewTerminal(s.d)
	s.t.Configure(&tinyterm.Config{
		Font:              &proggy.TinySZ8pt7b,
		FontHeight:        fontHeight,
		FontOffset:        fontOffset,
		UseSoftwareScroll: true,
	})
	s.fb.ClearRGB(0, 0, 0)
	_, _ = s.t.Write([]byte("flick console " + buildinfo.Short()))

	start := s.ringPos - s.ringLen
	if start < 0 {
		start += ringLines
	}
	for i := 0; i < s.ringLen; i++ {
		_, _ = s.t.Write(s.ring[(start+i)%ringLines])
	}

	s.t.Display()
	s.dirty = false
}
