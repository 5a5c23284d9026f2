package format

import (
	"strings"
	"testing"

	"github.com/sanjitr11/browserlens/state"
)

func TestFormatFullIncludesHeaderAndNodes(t *testing.T) {
	f := New()
	ps := &state.PageState{
		URL: "https://example.com", Title: "Example", Representation: state.A11yTree,
		Root: &state.StateNode{
			Role: "region", Name: "root", Ref: "@e1",
			Children: []*state.StateNode{{Role: "button", Name: "Submit", Ref: "@e2"}},
		},
	}

	out := f.FormatFull(ps, 1, 10000)
	if !strings.Contains(out, "[FULL PAGE STATE — step 1]") {
		t.Error("missing header")
	}
	if !strings.Contains(out, "URL: https://example.com") {
		t.Error("missing URL line")
	}
	if !strings.Contains(out, `button "Submit" [@e2]`) {
		t.Errorf("missing rendered child node, got:\n%s", out)
	}
}

func TestFormatFullMarksScreenshot(t *testing.T) {
	f := New()
	ps := &state.PageState{Root: &state.StateNode{Role: "region"}, Screenshot: []byte("jpeg")}
	out := f.FormatFull(ps, 1, 10000)
	if !strings.Contains(out, "[VISUAL: screenshot attached]") {
		t.Error("expected visual marker when screenshot is present")
	}
}

func TestFormatDeltaRendersSections(t *testing.T) {
	f := New()
	d := &state.Delta{
		Added:   []*state.StateNode{{Role: "button", Name: "New", Ref: "@e3"}},
		Removed: []*state.StateNode{{Role: "link", Name: "Old", Ref: "@e4"}},
		Changed: []*state.NodeChange{
			{Ref: "@e5", Role: "checkbox", Name: "Agree", ChangedProps: map[string][2]string{"checked": {"false", "true"}}},
		},
		UnchangedSummary: "nav, footer — unchanged",
	}

	out := f.FormatDelta(d, 3, 10000)
	if !strings.Contains(out, "[DELTA — step 3 — 3 change(s)]") {
		t.Errorf("missing or wrong header, got:\n%s", out)
	}
	if !strings.Contains(out, "ADDED:") || !strings.Contains(out, `button "New" [@e3]`) {
		t.Error("missing ADDED section")
	}
	if !strings.Contains(out, "REMOVED:") || !strings.Contains(out, `link "Old" [@e4]`) {
		t.Error("missing REMOVED section")
	}
	if !strings.Contains(out, "CHANGED:") || !strings.Contains(out, `checked: "false" → "true"`) {
		t.Error("missing CHANGED section")
	}
	if !strings.Contains(out, "UNCHANGED: nav, footer — unchanged") {
		t.Error("missing UNCHANGED summary")
	}
}

func TestFormatTruncatesToBudget(t *testing.T) {
	f := New()
	var children []*state.StateNode
	for i := 0; i < 2000; i++ {
		children = append(children, &state.StateNode{Role: "listitem", Name: "item text goes here", Ref: "@e1"})
	}
	ps := &state.PageState{Root: &state.StateNode{Role: "list", Children: children}}

	out := f.FormatFull(ps, 1, 20)
	if !strings.HasSuffix(out, "[... truncated to fit token budget ...]") {
		t.Error("expected truncation suffix for an oversized render")
	}
}
