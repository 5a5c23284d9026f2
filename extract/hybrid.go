package extract

import (
	"context"
	"fmt"

	"github.com/sanjitr11/browserlens/pageio"
	"github.com/sanjitr11/browserlens/state"
	"github.com/tidwall/gjson"
)

// HybridExtractor combines the full accessibility tree with a screenshot
// cropped to the page's visual regions (canvas, WebGL, [data-visual]), or a
// full-viewport capture when there isn't exactly one such region.
// Grounded on extractors/hybrid.py's _capture_visual_regions.
type HybridExtractor struct {
	Quality          int
	FullPageQuality  int
}

func NewHybridExtractor() *HybridExtractor {
	return &HybridExtractor{Quality: 80, FullPageQuality: 75}
}

func (e *HybridExtractor) RepresentationType() state.RepresentationType {
	return state.Hybrid
}

const visualRegionsJS = `() => {
	const els = document.querySelectorAll('canvas, [data-canvas], [data-visual]');
	const boxes = [];
	for (const el of els) {
		const r = el.getBoundingClientRect();
		if (r.width > 0 && r.height > 0) {
			boxes.push({x: r.x, y: r.y, width: r.width, height: r.height});
		}
	}
	return JSON.stringify(boxes);
}`

// Extract combines the a11y tree with a screenshot. Per spec §7, a missing
// a11y tree degrades to a bare document node rather than failing the
// observation; the screenshot remains this representation's defining
// content and its failure is fatal.
func (e *HybridExtractor) Extract(ctx context.Context, page pageio.Page) (*state.PageState, error) {
	root := &state.StateNode{Role: "document"}
	if nodes, err := page.AccessibilityTree(); err == nil {
		root = axTreeToStateTree(nodes)
	}

	shot, err := e.captureVisualRegions(page)
	if err != nil {
		return nil, fmt.Errorf("hybrid extraction failed to capture screenshot: %w", err)
	}

	return &state.PageState{
		Root:           root,
		URL:            page.URL(),
		Title:          page.Title(),
		Representation: state.Hybrid,
		Screenshot:     shot,
	}, nil
}

type visualBox struct {
	X, Y, Width, Height float64
}

func (e *HybridExtractor) captureVisualRegions(page pageio.Page) ([]byte, error) {
	result, err := page.Eval(visualRegionsJS)
	var boxes []visualBox
	if err == nil {
		raw := result
		if result.Type == gjson.String {
			raw = gjson.Parse(result.String())
		}
		for _, b := range raw.Array() {
			boxes = append(boxes, visualBox{
				X:      b.Get("x").Float(),
				Y:      b.Get("y").Float(),
				Width:  b.Get("width").Float(),
				Height: b.Get("height").Float(),
			})
		}
	}

	if len(boxes) == 1 {
		b := boxes[0]
		x, y := b.X, b.Y
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		shot, err := page.Screenshot(pageio.ScreenshotOptions{
			Quality: e.Quality,
			Clip:    &pageio.ClipRegion{X: x, Y: y, Width: b.Width, Height: b.Height},
		})
		if err == nil {
			return shot, nil
		}
		// Fall through to a full-viewport capture on clip failure.
	}

	return page.Screenshot(pageio.ScreenshotOptions{Quality: e.FullPageQuality})
}
