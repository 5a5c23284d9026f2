package differ

import (
	"testing"

	"github.com/sanjitr11/browserlens/refs"
	"github.com/sanjitr11/browserlens/state"
)

func refFn(m *refs.Manager) func(state.Fingerprint) string {
	return func(fp state.Fingerprint) string { return m.GetOrCreate(fp) }
}

func TestFirstObservationUsesFullState(t *testing.T) {
	d := NewStateDiffer()
	if !d.ShouldUseFullState() {
		t.Fatal("expected first observation to require full state")
	}

	m := refs.New()
	ps := &state.PageState{Root: &state.StateNode{Role: "region", Name: "root"}}
	d.AssignFullState(ps, refFn(m))

	if ps.Root.Ref == "" {
		t.Error("expected full-state assignment to set a ref")
	}
	if d.ShouldUseFullState() {
		t.Error("expected full state not to be needed after the first observation")
	}
}

func TestDiffDetectsAddedAndRemoved(t *testing.T) {
	d := NewStateDiffer()
	m := refs.New()

	old := &state.PageState{Root: &state.StateNode{
		Role: "region", Name: "root",
		Children: []*state.StateNode{{Role: "button", Name: "A"}},
	}}
	d.AssignFullState(old, refFn(m))

	new_ := &state.PageState{Root: &state.StateNode{
		Role: "region", Name: "root",
		Children: []*state.StateNode{{Role: "button", Name: "B"}},
	}}
	delta := d.Diff(new_, refFn(m))

	if len(delta.Added) != 1 || delta.Added[0].Name != "B" {
		t.Errorf("expected 1 added node named B, got %+v", delta.Added)
	}
	if len(delta.Removed) != 1 || delta.Removed[0].Name != "A" {
		t.Errorf("expected 1 removed node named A, got %+v", delta.Removed)
	}
}

func TestDiffDetectsPropertyChange(t *testing.T) {
	d := NewStateDiffer()
	m := refs.New()

	old := &state.PageState{Root: &state.StateNode{
		Role: "region", Name: "root",
		Children: []*state.StateNode{{Role: "checkbox", Name: "Agree", Checked: state.TriFalse}},
	}}
	d.AssignFullState(old, refFn(m))

	new_ := &state.PageState{Root: &state.StateNode{
		Role: "region", Name: "root",
		Children: []*state.StateNode{{Role: "checkbox", Name: "Agree", Checked: state.TriTrue}},
	}}
	delta := d.Diff(new_, refFn(m))

	if len(delta.Changed) != 1 {
		t.Fatalf("expected 1 changed node, got %d", len(delta.Changed))
	}
	chg, ok := delta.Changed[0].ChangedProps["checked"]
	if !ok || chg[0] != "false" || chg[1] != "true" {
		t.Errorf("unexpected checked change: %v", delta.Changed[0].ChangedProps)
	}
}

func TestDiffRefStability(t *testing.T) {
	d := NewStateDiffer()
	m := refs.New()

	old := &state.PageState{Root: &state.StateNode{
		Role: "region", Name: "root",
		Children: []*state.StateNode{{Role: "button", Name: "Submit"}},
	}}
	d.AssignFullState(old, refFn(m))
	submitRef := old.Root.Children[0].Ref

	new_ := &state.PageState{Root: &state.StateNode{
		Role: "region", Name: "root",
		Children: []*state.StateNode{{Role: "button", Name: "Submit", Disabled: true}},
	}}
	d.Diff(new_, refFn(m))

	if new_.Root.Children[0].Ref != submitRef {
		t.Errorf("expected ref to stay stable across an unrelated property change, got %q want %q",
			new_.Root.Children[0].Ref, submitRef)
	}
}

func TestSemanticFilterDropsTimerOnlyChange(t *testing.T) {
	filter := NewSemanticFilter()
	delta := &state.Delta{
		Changed: []*state.NodeChange{
			{Ref: "@e1", Role: "text", Name: "clock", ChangedProps: map[string][2]string{"value": {"12:00", "12:01"}}},
		},
	}
	out := filter.Filter(delta)
	if len(out.Changed) != 0 {
		t.Errorf("expected timer-only value change to be filtered, got %+v", out.Changed)
	}
}

func TestSemanticFilterDropsAdNode(t *testing.T) {
	filter := NewSemanticFilter()
	delta := &state.Delta{
		Added: []*state.StateNode{{Role: "generic", Name: "Sponsored content here"}},
	}
	out := filter.Filter(delta)
	if len(out.Added) != 0 {
		t.Errorf("expected ad node to be filtered, got %+v", out.Added)
	}
}

func TestSemanticFilterIsIdempotent(t *testing.T) {
	filter := NewSemanticFilter()
	delta := &state.Delta{
		Added: []*state.StateNode{
			{Role: "button", Name: "Buy now"},
			{Role: "generic", Name: "Advertisement"},
		},
	}
	once := filter.Filter(delta)
	twice := filter.Filter(once)
	if len(once.Added) != len(twice.Added) {
		t.Errorf("filter should be idempotent: once=%d twice=%d", len(once.Added), len(twice.Added))
	}
}

func TestEmptyDiffInvariant(t *testing.T) {
	d := NewStateDiffer()
	m := refs.New()

	ps := &state.PageState{Root: &state.StateNode{Role: "region", Name: "root"}}
	d.AssignFullState(ps, refFn(m))

	same := &state.PageState{Root: &state.StateNode{Role: "region", Name: "root"}}
	delta := d.Diff(same, refFn(m))

	if !delta.IsEmpty() {
		t.Errorf("expected empty delta for identical states, got %+v", delta)
	}
}
