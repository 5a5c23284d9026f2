// Package pageio defines the minimal capability BrowserLens needs from a
// live browser tab, and a go-rod-backed implementation of it. BrowserLens
// only ever observes a page through this interface; it never drives one.
package pageio

import "github.com/tidwall/gjson"

// AXNode is the raw shape of one CDP Accessibility.getFullAXTree node,
// before normalization into a state.StateNode.
type AXNode struct {
	NodeID     string
	ParentID   string
	Role       string
	Name       string
	Value      string
	Checked    string // "true" / "false" / "mixed" / ""
	Expanded   string // "true" / "false" / ""
	Disabled   bool
	Focused    bool
	Live       string
	Ignored    bool
	ChildIDs   []string
}

// ScreenshotOptions controls a capture request.
type ScreenshotOptions struct {
	FullPage bool
	Quality  int // JPEG quality, 0-100
	// MaxWidth downscales the capture before encoding, 0 means no resize.
	MaxWidth int
	// Clip restricts the capture to a region; a nil Clip captures the
	// full viewport (or full page, if FullPage is set).
	Clip *ClipRegion
}

// ClipRegion is a pixel rectangle in viewport coordinates.
type ClipRegion struct {
	X, Y, Width, Height float64
}

// Page is the capability surface BrowserLens extractors and the router's
// signal extractor are written against. Implementations must be safe to
// call repeatedly within a single observation; BrowserLens does not call
// concurrently into one Page.
type Page interface {
	URL() string
	Title() string

	// Eval runs a JavaScript expression of the form "() => ..." on the
	// page and returns its JSON-coerced result.
	Eval(js string) (gjson.Result, error)

	// AccessibilityTree returns the full CDP accessibility tree for the
	// current document.
	AccessibilityTree() ([]AXNode, error)

	// Screenshot captures pixels per opts and returns JPEG-encoded bytes.
	Screenshot(opts ScreenshotOptions) ([]byte, error)
}
