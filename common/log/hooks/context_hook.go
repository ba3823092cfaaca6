package hooks

import (
	"runtime"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Frames from logrus and from the hook itself are not reported as the caller.
var skippedFuncs = []string{"github.com/sirupsen/logrus.", "common/log/hooks.contextHook."}

type contextHook struct {
	depth int
}

// NewContextHook returns a hook that stamps each entry with the "file:line" of the
// code that logged it, trimmed to the path below the modelcheck module.
func NewContextHook() contextHook {
	return contextHook{depth: 16}
}

func (hook contextHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook contextHook) Fire(entry *log.Entry) error {
	pcs := make([]uintptr, hook.depth)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !isSkipped(frame.Function) {
			entry.Data["file:line"] = trimFile(frame.File) + ":" + strconv.Itoa(frame.Line)
			return nil
		}
		if !more {
			return nil
		}
	}
}

func isSkipped(function string) bool {
	for _, p := range skippedFuncs {
		if strings.Contains(function, p) {
			return true
		}
	}
	return false
}

func trimFile(file string) string {
	parts := strings.Split(file, "modelcheck/")
	return parts[len(parts)-1]
}
