package differ

import "github.com/sanjitr11/browserlens/state"

// SnapshotStore holds the single previous PageState a StateDiffer compares
// against. Trivial on purpose: BrowserLens never needs history beyond one
// step back.
type SnapshotStore struct {
	previous *state.PageState
}

func NewSnapshotStore() *SnapshotStore { return &SnapshotStore{} }

func (s *SnapshotStore) GetPrevious() *state.PageState { return s.previous }

func (s *SnapshotStore) Update(ps *state.PageState) { s.previous = ps }

func (s *SnapshotStore) Reset() { s.previous = nil }
