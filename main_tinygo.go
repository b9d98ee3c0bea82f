//go:build tinygo

package main

import (
	"flick/app"
	"flick/hal"
)

func main() {
	app.Run(hal.New())
}
