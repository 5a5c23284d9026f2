// Package refs assigns stable, human-readable identifiers to page nodes so
// an LLM agent can refer to the same element across observations even
// though the underlying DOM/AX node IDs change on every render.
package refs

import (
	"fmt"

	"github.com/sanjitr11/browserlens/state"
)

// Manager is a bijective fingerprint<->ref table with a monotonic counter.
// Not safe for concurrent use; BrowserLens observes one page at a time.
type Manager struct {
	counter  int
	fpToRef  map[state.Fingerprint]string
	refToFp  map[string]state.Fingerprint
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{
		fpToRef: make(map[state.Fingerprint]string),
		refToFp: make(map[string]state.Fingerprint),
	}
}

// GetOrCreate returns the existing ref for fp, or mints a new one.
func (m *Manager) GetOrCreate(fp state.Fingerprint) string {
	if ref, ok := m.fpToRef[fp]; ok {
		return ref
	}
	m.counter++
	ref := fmt.Sprintf("@e%d", m.counter)
	m.fpToRef[fp] = ref
	m.refToFp[ref] = fp
	return ref
}

// Lookup returns the fingerprint a ref was minted for, if any.
func (m *Manager) Lookup(ref string) (state.Fingerprint, bool) {
	fp, ok := m.refToFp[ref]
	return fp, ok
}

// Reset clears all refs and restarts the counter at zero.
func (m *Manager) Reset() {
	m.counter = 0
	m.fpToRef = make(map[state.Fingerprint]string)
	m.refToFp = make(map[string]state.Fingerprint)
}

// TotalRefs reports how many distinct refs have been minted.
func (m *Manager) TotalRefs() int {
	return len(m.fpToRef)
}
