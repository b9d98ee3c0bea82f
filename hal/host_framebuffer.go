//go:build !tinygo

package hal

import "sync"

// hostFramebuffer is the in-memory RGB565 surface the panels draw into on
// the desktop. The window backend blits a snapshot of it into an ebiten
// image each frame; headless runs just let it accumulate.
//
// The mutex covers whole-buffer operations (clear, snapshot). Per-pixel
// writes go through Buffer() unlocked, same as on the embedded target where
// the panel task is the only writer.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

// Present is a no-op on the host; the window reads the buffer on its own
// 60 Hz draw cadence.
func (f *hostFramebuffer) Present() error { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fillRGB565(f.buf, rgb565(r, g, b))
}

// snapshotRGB565 copies the buffer for the window blit without holding the
// lock across the pixel conversion.
func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}
