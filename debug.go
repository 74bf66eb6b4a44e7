package neat

import (
	"log"
	"os"
)

var debugEnabled = os.Getenv("NEATCORE_DEBUG") != ""

// debug logs a formatted message when NEATCORE_DEBUG is set in the
// environment. Mirrors the teacher's GNEATDEBUG gate.
func debug(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf(format, args...)
	}
}
