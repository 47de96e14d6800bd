package util

import "log"

// LoggingEnabled gates debug logging. Off by default because the stdio
// language server transport shares the process's standard streams; log
// output goes to stderr, which is safe to keep separate.
var LoggingEnabled = false

func LogF(format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	log.Printf(format, args...)
}
