package extract

import (
	"context"
	"fmt"

	"github.com/sanjitr11/browserlens/pageio"
	"github.com/sanjitr11/browserlens/state"
)

// VisionExtractor captures a full-page screenshot plus a thin
// accessibility skeleton, for pages where layout carries meaning the DOM
// and AX tree can't express (canvases, maps, image-heavy UIs).
type VisionExtractor struct {
	Quality  int
	MaxWidth int
}

func NewVisionExtractor() *VisionExtractor {
	return &VisionExtractor{Quality: 75, MaxWidth: 1280}
}

func (e *VisionExtractor) RepresentationType() state.RepresentationType {
	return state.Vision
}

// Extract captures the screenshot and an a11y skeleton alongside it. The
// screenshot is this representation's defining content and its failure is
// fatal; per spec §7, a missing a11y skeleton degrades to a bare document
// node instead.
func (e *VisionExtractor) Extract(ctx context.Context, page pageio.Page) (*state.PageState, error) {
	root := &state.StateNode{Role: "document"}
	if nodes, err := page.AccessibilityTree(); err == nil {
		root = axTreeToStateTree(nodes)
	}

	shot, err := page.Screenshot(pageio.ScreenshotOptions{FullPage: true, Quality: e.Quality, MaxWidth: e.MaxWidth})
	if err != nil {
		return nil, fmt.Errorf("vision extraction failed to capture screenshot: %w", err)
	}

	return &state.PageState{
		Root:           root,
		URL:            page.URL(),
		Title:          page.Title(),
		Representation: state.Vision,
		Screenshot:     shot,
	}, nil
}
