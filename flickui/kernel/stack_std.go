//go:build !tinygo

package kernel

import "runtime/debug"

func captureStack() []byte {
	s := debug.Stack()
	if len(s) > maxTrapStackBytes {
		s = s[:maxTrapStackBytes]
	}
	return s
}
