package extract

import (
	"context"
	"testing"

	"github.com/sanjitr11/browserlens/pageio"
)

func TestA11yExtractorBuildsTree(t *testing.T) {
	page := pageio.NewFakePage("https://example.com", "Example")
	page.AXNodes = []pageio.AXNode{
		{NodeID: "1", ParentID: "", Role: "RootWebArea", Name: "Example", ChildIDs: []string{"2", "3"}},
		{NodeID: "2", ParentID: "1", Role: "button", Name: "Submit", ChildIDs: nil},
		{NodeID: "3", ParentID: "1", Role: "generic", Name: "", ChildIDs: nil}, // uninteresting, should be pruned
	}

	ext := NewA11yExtractor()
	ps, err := ext.Extract(context.Background(), page)
	if err != nil {
		t.Fatal(err)
	}
	if ps.Root == nil {
		t.Fatal("expected non-nil root")
	}
	if len(ps.Root.Children) != 1 {
		t.Fatalf("expected 1 surviving child (uninteresting generic pruned), got %d", len(ps.Root.Children))
	}
	if ps.Root.Children[0].Name != "Submit" {
		t.Errorf("got child name %q, want Submit", ps.Root.Children[0].Name)
	}
	if ps.Representation != "a11y_tree" {
		t.Errorf("representation = %q", ps.Representation)
	}
}

func TestA11yExtractorReparentsIgnoredNodes(t *testing.T) {
	page := pageio.NewFakePage("https://example.com", "Example")
	page.AXNodes = []pageio.AXNode{
		{NodeID: "1", ParentID: "", Role: "RootWebArea", ChildIDs: []string{"2"}},
		{NodeID: "2", ParentID: "1", Role: "generic", Ignored: true, ChildIDs: []string{"3"}},
		{NodeID: "3", ParentID: "2", Role: "link", Name: "Home", ChildIDs: nil},
	}

	ext := NewA11yExtractor()
	ps, err := ext.Extract(context.Background(), page)
	if err != nil {
		t.Fatal(err)
	}
	if len(ps.Root.Children) != 1 || ps.Root.Children[0].Name != "Home" {
		t.Fatalf("expected ignored node's child to be re-parented onto root, got %+v", ps.Root.Children)
	}
}

func TestDOMExtractorParsesInjectedJSON(t *testing.T) {
	page := pageio.NewFakePage("https://example.com", "Example")
	page.EvalResults[domExtractionJS] = `{"role":"generic","name":"","children":[{"role":"button","name":"Go","children":[]}]}`

	ext := NewDOMExtractor()
	ps, err := ext.Extract(context.Background(), page)
	if err != nil {
		t.Fatal(err)
	}
	if len(ps.Root.Children) != 1 || ps.Root.Children[0].Role != "button" {
		t.Fatalf("unexpected tree: %+v", ps.Root)
	}
}

func TestVisionExtractorAttachesScreenshot(t *testing.T) {
	page := pageio.NewFakePage("https://example.com", "Example")
	page.AXNodes = []pageio.AXNode{{NodeID: "1", ParentID: "", Role: "RootWebArea", Name: "x"}}
	page.ScreenshotData = []byte("jpeg-bytes")

	ext := NewVisionExtractor()
	ps, err := ext.Extract(context.Background(), page)
	if err != nil {
		t.Fatal(err)
	}
	if string(ps.Screenshot) != "jpeg-bytes" {
		t.Error("expected screenshot bytes to be attached")
	}
}

func TestHybridExtractorCropsSingleVisualRegion(t *testing.T) {
	page := pageio.NewFakePage("https://example.com", "Example")
	page.AXNodes = []pageio.AXNode{{NodeID: "1", ParentID: "", Role: "RootWebArea", Name: "x"}}
	page.EvalResults[visualRegionsJS] = `[{"x":10,"y":20,"width":300,"height":200}]`
	page.ScreenshotData = []byte("cropped")

	ext := NewHybridExtractor()
	ps, err := ext.Extract(context.Background(), page)
	if err != nil {
		t.Fatal(err)
	}
	if string(ps.Screenshot) != "cropped" {
		t.Error("expected cropped screenshot bytes")
	}
}

func TestHybridExtractorFullViewportWhenNoSingleRegion(t *testing.T) {
	page := pageio.NewFakePage("https://example.com", "Example")
	page.AXNodes = []pageio.AXNode{{NodeID: "1", ParentID: "", Role: "RootWebArea", Name: "x"}}
	page.EvalResults[visualRegionsJS] = `[]`
	page.ScreenshotData = []byte("full")

	ext := NewHybridExtractor()
	ps, err := ext.Extract(context.Background(), page)
	if err != nil {
		t.Fatal(err)
	}
	if string(ps.Screenshot) != "full" {
		t.Error("expected full-viewport screenshot bytes")
	}
}
