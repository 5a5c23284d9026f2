package differ

import (
	"fmt"
	"strings"

	"github.com/sanjitr11/browserlens/state"
)

// StateDiffer orchestrates snapshotting, tree diffing, and semantic
// filtering across observations. Ported from differ/differ.py's
// StateDiffer.
type StateDiffer struct {
	store      *SnapshotStore
	filter     *SemanticFilter
	forceFull  bool
}

func NewStateDiffer() *StateDiffer {
	return &StateDiffer{store: NewSnapshotStore(), filter: NewSemanticFilter()}
}

// ShouldUseFullState reports whether the next Diff call has no meaningful
// previous state to compare against — either this is the first
// observation, or ForceFullState was called since the last Diff.
func (d *StateDiffer) ShouldUseFullState() bool {
	return d.store.GetPrevious() == nil || d.forceFull
}

// AssignFullState assigns refs to every node of ps (via refFn) and records
// it as the new previous snapshot, without producing a Delta. Call this
// when ShouldUseFullState is true.
func (d *StateDiffer) AssignFullState(ps *state.PageState, refFn func(state.Fingerprint) string) {
	AssignRefs(ps, refFn)
	d.store.Update(ps)
	d.forceFull = false
}

// Diff compares ps against the stored previous state, assigns refs to ps's
// nodes, filters semantic noise from the result, and records ps as the new
// previous snapshot. Only valid when ShouldUseFullState is false.
func (d *StateDiffer) Diff(ps *state.PageState, refFn func(state.Fingerprint) string) *state.Delta {
	prev := d.store.GetPrevious()
	delta := DiffTrees(prev, ps, refFn)
	delta = d.filter.Filter(delta)
	delta.UnchangedSummary = summarizeUnchanged(prev, delta)

	d.store.Update(ps)
	d.forceFull = false
	return delta
}

// GetPreviousURL returns the URL of the last recorded snapshot, or "" if
// there isn't one yet.
func (d *StateDiffer) GetPreviousURL() string {
	prev := d.store.GetPrevious()
	if prev == nil {
		return ""
	}
	return prev.URL
}

// ForceFullState makes ShouldUseFullState report true until the next
// AssignFullState or Diff call, used by the Observer's navigation gate when
// the URL changes out from under an in-progress comparison. Diff itself
// does not check the flag.
func (d *StateDiffer) ForceFullState() {
	d.forceFull = true
}

// Reset clears the stored snapshot and any pending force-full-state flag.
func (d *StateDiffer) Reset() {
	d.store.Reset()
	d.forceFull = false
}

const maxLandmarks = 5

// summarizeUnchanged folds the stable part of the tree into one line,
// naming up to 5 untouched top-level landmarks with their leaf counts.
// Ported from differ/differ.py's _summarize_unchanged.
func summarizeUnchanged(prev *state.PageState, d *state.Delta) string {
	if prev == nil || prev.Root == nil {
		return fmt.Sprintf("%d nodes unchanged", d.UnchangedCount)
	}

	noisy := make(map[string]bool)
	for _, n := range d.Added {
		noisy[n.Ref] = true
	}
	for _, n := range d.Removed {
		noisy[n.Ref] = true
	}
	for _, c := range d.Changed {
		noisy[c.Ref] = true
	}

	var labels []string
	for _, child := range prev.Root.Children {
		if subtreeHasRefs(child, noisy) {
			continue
		}
		label := child.Name
		if label == "" {
			label = child.Role
		}
		count := countLeaves(child)
		if count > 1 {
			label = fmt.Sprintf("%s (%d items)", label, count)
		}
		labels = append(labels, label)
	}

	if len(labels) == 0 {
		return fmt.Sprintf("%d nodes unchanged", d.UnchangedCount)
	}

	shown := labels
	extra := 0
	if len(labels) > maxLandmarks {
		shown = labels[:maxLandmarks]
		extra = len(labels) - maxLandmarks
	}
	joined := strings.Join(shown, ", ")
	if extra > 0 {
		joined = fmt.Sprintf("%s and %d more", joined, extra)
	}
	return joined + " — unchanged"
}

func subtreeHasRefs(n *state.StateNode, refs map[string]bool) bool {
	if refs[n.Ref] {
		return true
	}
	for _, c := range n.Children {
		if subtreeHasRefs(c, refs) {
			return true
		}
	}
	return false
}

func countLeaves(n *state.StateNode) int {
	if len(n.Children) == 0 {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += countLeaves(c)
	}
	return total
}
