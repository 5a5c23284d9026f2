package pageio

import "github.com/tidwall/gjson"

// FakePage is an in-memory Page used by tests across the module; it avoids
// spinning up a real browser to exercise extractors, the router, and the
// differ in isolation.
type FakePage struct {
	URLValue   string
	TitleValue string
	EvalResults map[string]string // js -> raw JSON to parse into gjson.Result
	EvalErr     error
	AXNodes     []AXNode
	AXErr       error
	ScreenshotData []byte
	ScreenshotErr  error
}

// NewFakePage returns a FakePage with empty defaults.
func NewFakePage(url, title string) *FakePage {
	return &FakePage{
		URLValue:    url,
		TitleValue:  title,
		EvalResults: make(map[string]string),
	}
}

func (f *FakePage) URL() string   { return f.URLValue }
func (f *FakePage) Title() string { return f.TitleValue }

func (f *FakePage) Eval(js string) (gjson.Result, error) {
	if f.EvalErr != nil {
		return gjson.Result{}, f.EvalErr
	}
	raw, ok := f.EvalResults[js]
	if !ok {
		return gjson.Parse("null"), nil
	}
	return gjson.Parse(raw), nil
}

func (f *FakePage) AccessibilityTree() ([]AXNode, error) {
	return f.AXNodes, f.AXErr
}

func (f *FakePage) Screenshot(opts ScreenshotOptions) ([]byte, error) {
	return f.ScreenshotData, f.ScreenshotErr
}
