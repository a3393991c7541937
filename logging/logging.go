/*package logging holds the logging mode shared by every fieldmap command and
the structured logger used to report field map construction.
*/
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// This is handled this way so that the mode doesn't need to be passed to
// every constructor in the project.
var (
	Mode Flag = Nil
	Log       = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// ParseFlag converts a mode name ("nil", "performance", or "debug") into a
// Flag.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nil", "none":
		return Nil, nil
	case "performance", "perf":
		return Performance, nil
	case "debug":
		return Debug, nil
	}
	return Nil, fmt.Errorf("I don't recognize the logging mode '%s'.", s)
}

// SetMode sets Mode and adjusts the level of Log to match it.
func SetMode(f Flag) {
	Mode = f
	switch f {
	case Nil:
		Log.SetLevel(logrus.WarnLevel)
	case Performance:
		Log.SetLevel(logrus.InfoLevel)
	case Debug:
		Log.SetLevel(logrus.DebugLevel)
	}
}

// SetOutput redirects Log.
func SetOutput(w io.Writer) { Log.SetOutput(w) }

// MemString returns a string containing various statistics on the current
// memory usage of the process.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}
