package extract

import (
	"context"

	"github.com/sanjitr11/browserlens/pageio"
	"github.com/sanjitr11/browserlens/state"
)

// A11yExtractor builds a PageState from the CDP accessibility tree alone.
// It is the cheapest representation that still carries real structure, and
// the Router's default choice for mostly-static, well-labeled pages.
type A11yExtractor struct{}

func NewA11yExtractor() *A11yExtractor { return &A11yExtractor{} }

func (e *A11yExtractor) RepresentationType() state.RepresentationType {
	return state.A11yTree
}

// Extract reads the accessibility tree. Spec §7: when the tree is
// unavailable (detached frame, disabled accessibility), extraction
// degrades to a single document node rather than failing the observation.
func (e *A11yExtractor) Extract(ctx context.Context, page pageio.Page) (*state.PageState, error) {
	root := &state.StateNode{Role: "document"}
	if nodes, err := page.AccessibilityTree(); err == nil {
		root = axTreeToStateTree(nodes)
	}

	return &state.PageState{
		Root:           root,
		URL:            page.URL(),
		Title:          page.Title(),
		Representation: state.A11yTree,
	}, nil
}
