package pageio

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/tidwall/gjson"
	ximage "golang.org/x/image/draw"
)

// RodPage implements Page over a live go-rod tab. It follows the same
// wait-for-stability and mutex-free single-page-at-a-time usage pattern as
// the teacher browser package, trimmed to the observation-only surface
// BrowserLens needs: no navigation, clicking, typing, or tab management
// lives here, since the Router and Extractors never act on the page.
type RodPage struct {
	page            *rod.Page
	stabilityWindow time.Duration
	maxStabilityWait time.Duration
}

// NewRodPage wraps an already-navigated *rod.Page.
func NewRodPage(page *rod.Page) *RodPage {
	return &RodPage{
		page:             page,
		stabilityWindow:  300 * time.Millisecond,
		maxStabilityWait: 5 * time.Second,
	}
}

// WaitStable blocks until the page reports no DOM mutations for the
// configured stability window, or until the max wait elapses. It is not
// part of the Page interface, and nothing in BrowserLens calls it.
func (p *RodPage) WaitStable() error {
	done := make(chan error, 1)
	go func() {
		done <- p.page.WaitStable(p.stabilityWindow)
	}()
	select {
	case err := <-done:
		return err
	case <-time.After(p.maxStabilityWait):
		return nil
	}
}

func (p *RodPage) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (p *RodPage) Title() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.Title
}

func (p *RodPage) Eval(js string) (gjson.Result, error) {
	result, err := p.page.Eval(js)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("eval failed: %w", err)
	}
	return result.Value, nil
}

func (p *RodPage) AccessibilityTree() ([]AXNode, error) {
	tree, err := proto.AccessibilityGetFullAXTree{}.Call(p.page)
	if err != nil {
		return nil, fmt.Errorf("failed to get accessibility tree: %w", err)
	}

	nodes := make([]AXNode, 0, len(tree.Nodes))
	for _, n := range tree.Nodes {
		nodes = append(nodes, convertAXNode(n))
	}
	return nodes, nil
}

func convertAXNode(n *proto.AccessibilityAXNode) AXNode {
	out := AXNode{
		NodeID: string(n.NodeID),
		Ignored: n.Ignored,
	}
	if n.ParentID != nil {
		out.ParentID = string(*n.ParentID)
	}
	if n.Role != nil {
		out.Role = valueToString(n.Role.Value)
	}
	if n.Name != nil {
		out.Name = valueToString(n.Name.Value)
	}
	if n.Value != nil {
		out.Value = valueToString(n.Value.Value)
	}
	for _, prop := range n.Properties {
		switch prop.Name {
		case proto.AccessibilityAXPropertyNameChecked:
			out.Checked = valueToString(prop.Value.Value)
		case proto.AccessibilityAXPropertyNameExpanded:
			out.Expanded = valueToString(prop.Value.Value)
		case proto.AccessibilityAXPropertyNameDisabled:
			out.Disabled = valueToString(prop.Value.Value) == "true"
		case proto.AccessibilityAXPropertyNameFocused:
			out.Focused = valueToString(prop.Value.Value) == "true"
		case proto.AccessibilityAXPropertyNameLive:
			out.Live = valueToString(prop.Value.Value)
		}
	}
	for _, c := range n.ChildIds {
		out.ChildIDs = append(out.ChildIDs, string(c))
	}
	return out
}

func valueToString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// Screenshot captures the viewport (or, with opts.Clip set, a sub-region)
// and re-encodes it as JPEG at the requested quality, following the resize
// pipeline in the teacher's ScreenshotForLLM.
func (p *RodPage) Screenshot(opts ScreenshotOptions) ([]byte, error) {
	format := proto.PageCaptureScreenshotFormatPng
	req := &proto.PageCaptureScreenshot{Format: format}
	if opts.Clip != nil {
		req.Clip = &proto.PageViewport{
			X: opts.Clip.X, Y: opts.Clip.Y,
			Width: opts.Clip.Width, Height: opts.Clip.Height,
			Scale: 1,
		}
	}

	data, err := p.page.Screenshot(opts.FullPage, req)
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	quality := opts.Quality
	if quality <= 0 {
		quality = 80
	}
	return reencodeJPEG(data, quality, opts.MaxWidth)
}

func reencodeJPEG(pngData []byte, quality, maxWidth int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}
	if maxWidth > 0 {
		img = resizeToWidth(img, maxWidth)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeToWidth scales img down to maxWidth, preserving aspect ratio, using
// the same bilinear scaler the teacher's ScreenshotForLLM uses. Screenshot
// applies it when ScreenshotOptions.MaxWidth is set.
func resizeToWidth(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth {
		return img
	}
	newW := maxWidth
	newH := int(float64(h) * float64(newW) / float64(w))
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	ximage.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
