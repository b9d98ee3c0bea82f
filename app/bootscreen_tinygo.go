//go:build tinygo && bootdebug

package app

import (
	"image/color"
	"sync"

	"flick/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var bootDiagOnce sync.Once

// bootStep marks a boot milestone: it publishes the step to the diag
// logger and paints it on screen. Only built with the bootdebug tag.
func bootStep(h hal.HAL, msg string) {
	bootDiagOnce.Do(func() { bootDiagStart(h) })
	bootScreen(h, msg)
}

func bootScreen(h hal.HAL, msg string) {
	bootDiagSetStep(msg)
	if h == nil {
		return
	}
	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}

	fb.ClearRGB(0, 0, 0)

	d := panicDisplay{fb: fb}
	font := &proggy.TinySZ8pt7b

	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	tinyfont.WriteLine(d, font, 0, 12, "flick boot", fg)
	tinyfont.WriteLine(d, font, 0, 26, msg, fg)
	_ = fb.Present()
}
