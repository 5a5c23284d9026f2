package state

import "testing"

func TestFlatNodesPreservesOrder(t *testing.T) {
	root := &StateNode{
		Role: "region", Name: "root",
		Children: []*StateNode{
			{Role: "button", Name: "a"},
			{Role: "group", Name: "g", Children: []*StateNode{
				{Role: "link", Name: "c"},
			}},
			{Role: "button", Name: "b"},
		},
	}
	ps := &PageState{Root: root}

	got := ps.FlatNodes()
	want := []string{"root", "a", "g", "c", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(got), len(want))
	}
	for i, n := range got {
		if n.Name != want[i] {
			t.Errorf("node %d: got name %q, want %q", i, n.Name, want[i])
		}
	}
}

func TestDeltaIsEmpty(t *testing.T) {
	d := &Delta{}
	if !d.IsEmpty() {
		t.Error("zero-value delta should be empty")
	}
	d.Added = append(d.Added, &StateNode{Role: "button"})
	if d.IsEmpty() {
		t.Error("delta with an added node should not be empty")
	}
}

func TestOrigin(t *testing.T) {
	cases := map[string]string{
		"https://example.com/foo/bar?x=1": "https://example.com",
		"https://example.com":             "https://example.com",
		"http://localhost:8080/path":      "http://localhost:8080",
	}
	for in, want := range cases {
		s := &PageSignals{URL: in}
		if got := s.Origin(); got != want {
			t.Errorf("Origin(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTriStateString(t *testing.T) {
	if TriUnset.String() != "unset" || TriTrue.String() != "true" || TriFalse.String() != "false" {
		t.Error("unexpected TriState rendering")
	}
}
