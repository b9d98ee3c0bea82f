//go:build tinygo && baremetal && !pyportal

package hal

// New returns a generic baremetal HAL with no display or touch wired.
//
// The PyPortal is the supported embedded target; other boards get the serial
// console and the tick clock only.
func New() HAL {
	return &tinyGoHAL{
		logger: &serialLogger{},
		fb:     &stubFramebuffer{w: 320, h: 240, format: PixelFormatRGB565},
		kbd:    &stubKeyboard{},
		ptr:    &stubPointer{},
		t:      newTinyGoTime(),
	}
}

type tinyGoHAL struct {
	logger *serialLogger
	fb     Framebuffer
	kbd    Keyboard
	ptr    Pointer
	t      *tinyGoTime
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{kbd: h.kbd, ptr: h.ptr} }
func (h *tinyGoHAL) Time() Time       { return h.t }
