package spotlight

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// globalDebug mirrors the most recently set Stage debug flag so that
// components without a Stage pointer can log state transitions. Only valid
// with a single Stage. Tour goroutines read it too.
var globalDebug atomic.Bool

// debugStats holds per-frame timing and state. Only populated when
// Stage.debug is true.
type debugStats struct {
	tickTime      time.Duration
	redrawTime    time.Duration
	compositeTime time.Duration
	phase         Phase
	alpha         float64
}

// debugLog prints timing and state stats to stderr.
func (s *Stage) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.tickTime + stats.redrawTime + stats.compositeTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[spotlight] tick: %v | redraw: %v | composite: %v | total: %v\n",
		stats.tickTime, stats.redrawTime, stats.compositeTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[spotlight] phase: %s | overlay: %.3f\n", stats.phase, stats.alpha)
}

// debugf prints a state-transition line to stderr in debug mode.
func debugf(format string, args ...any) {
	if !globalDebug.Load() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[spotlight] "+format+"\n", args...)
}
