package differ

import (
	"regexp"
	"strings"

	"github.com/sanjitr11/browserlens/state"
)

// timerPatterns catch nodes whose only content is a live clock, countdown,
// or relative timestamp — the single largest source of diff noise on real
// pages. Ported from differ/semantic_filter.py's _TIMER_PATTERNS.
var timerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`),
	regexp.MustCompile(`(?i)^\d+\s*(second|minute|hour|sec|min)s?\s*ago$`),
	regexp.MustCompile(`(?i)^(just now|moments ago)$`),
	regexp.MustCompile(`^\d{1,3}%$`),
}

var adHints = regexp.MustCompile(`(?i)(advertisement|sponsored|promoted|ad choice|ad by)`)

var noisyLiveRoles = map[string]bool{"status": true, "timer": true, "marquee": true, "log": true}

// SemanticFilter strips changes that are noise, not signal: ad slots,
// ticking timers, and chatty ARIA live regions. Idempotent by construction
// — it only ever removes entries, never adds or reorders them.
type SemanticFilter struct{}

func NewSemanticFilter() *SemanticFilter { return &SemanticFilter{} }

// Filter returns a new Delta with noisy added/removed/changed entries
// dropped. UnchangedCount and UnchangedSummary pass through unchanged.
func (f *SemanticFilter) Filter(d *state.Delta) *state.Delta {
	if d == nil {
		return d
	}
	out := &state.Delta{
		UnchangedCount:   d.UnchangedCount,
		UnchangedSummary: d.UnchangedSummary,
	}
	for _, n := range d.Added {
		if !isNoisyNode(n) {
			out.Added = append(out.Added, n)
		}
	}
	for _, n := range d.Removed {
		if !isNoisyNode(n) {
			out.Removed = append(out.Removed, n)
		}
	}
	for _, c := range d.Changed {
		if !isNoisyChange(c) {
			out.Changed = append(out.Changed, c)
		}
	}
	return out
}

func isNoisyNode(n *state.StateNode) bool {
	if adHints.MatchString(n.Name) {
		return true
	}
	if isTextLikeRole(n.Role) && matchesTimerPattern(n.Name) {
		return true
	}
	if n.Live != "" && noisyLiveRoles[n.Role] {
		return true
	}
	return false
}

func isTextLikeRole(role string) bool {
	return role == "text" || role == "StaticText" || role == "generic"
}

func matchesTimerPattern(s string) bool {
	trimmed := strings.TrimSpace(s)
	for _, p := range timerPatterns {
		if p.MatchString(trimmed) {
			return true
		}
	}
	return false
}

func isNoisyChange(c *state.NodeChange) bool {
	if adHints.MatchString(c.Name) {
		return true
	}
	if len(c.ChangedProps) == 1 {
		if v, ok := c.ChangedProps["value"]; ok && matchesTimerPattern(v[1]) {
			return true
		}
	}
	return false
}
