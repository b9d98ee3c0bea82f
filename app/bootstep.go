//go:build !(tinygo && bootdebug)

package app

import "flick/hal"

// bootStep is a no-op unless built with the bootdebug tag on TinyGo.
func bootStep(h hal.HAL, msg string) {}
