//go:build tinygo

package kernel

// Goroutine stack capture is unavailable on the embedded runtime.
func captureStack() []byte {
	return nil
}
