//go:build !tinygo

package hal

import (
	"os"

	"github.com/charmbracelet/log"
)

var hostLogVerbose bool

// SetVerbose lowers the host log threshold to debug. Call before New.
func SetVerbose(v bool) { hostLogVerbose = v }

type hostLogger struct {
	lg *log.Logger
}

func newHostLogger() *hostLogger {
	level := log.InfoLevel
	if hostLogVerbose {
		level = log.DebugLevel
	}
	return &hostLogger{lg: log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
	})}
}

func (l *hostLogger) WriteLineString(s string) { l.lg.Info(s) }
func (l *hostLogger) WriteLineBytes(b []byte)  { l.lg.Info(string(b)) }

func (l *hostLogger) debugf(format string, args ...any) { l.lg.Debugf(format, args...) }
