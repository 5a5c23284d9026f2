// Package obslog is a small, hand-rolled structured logger for the
// Observer's step/latency/token accounting, in the same spirit as the
// teacher package's own logger: no third-party logging dependency, a
// handful of purpose-built methods instead of a generic Printf façade.
package obslog

import (
	"fmt"
	"time"
)

// Logger reports per-step observation bookkeeping. A nil *Logger is valid
// and silently discards everything, so attaching one is optional.
type Logger struct {
	enabled bool
}

// New returns a Logger that writes when enabled is true.
func New(enabled bool) *Logger {
	return &Logger{enabled: enabled}
}

func (l *Logger) Observation(step int, repr string, tokens int, latency time.Duration, discarded bool) {
	if l == nil || !l.enabled {
		return
	}
	note := ""
	if discarded {
		note = " (delta discarded, re-rendered full)"
	}
	fmt.Printf("[%s] step %d: %s, %d tokens, %s%s\n",
		timestamp(), step, repr, tokens, formatDuration(latency), note)
}

func (l *Logger) NavigationReset(url string) {
	if l == nil || !l.enabled {
		return
	}
	fmt.Printf("[%s] navigation detected, forcing full state: %s\n", timestamp(), url)
}

func (l *Logger) Error(context string, err error) {
	if l == nil || !l.enabled {
		return
	}
	fmt.Printf("[%s] error during %s: %v\n", timestamp(), context, err)
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
}
