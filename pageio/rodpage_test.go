package pageio

import (
	"image"
	"testing"
)

func TestResizeToWidthPreservesAspectRatio(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 500))
	out := resizeToWidth(src, 200)
	b := out.Bounds()
	if b.Dx() != 200 {
		t.Errorf("width = %d, want 200", b.Dx())
	}
	if b.Dy() != 100 {
		t.Errorf("height = %d, want 100 (aspect preserved)", b.Dy())
	}
}

func TestResizeToWidthNoOpWhenAlreadySmall(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	out := resizeToWidth(src, 200)
	if out.Bounds().Dx() != 100 {
		t.Error("should not upscale")
	}
}

func TestFakePageEval(t *testing.T) {
	p := NewFakePage("https://example.com", "Example")
	p.EvalResults["() => 1"] = `42`
	result, err := p.Eval("() => 1")
	if err != nil {
		t.Fatal(err)
	}
	if result.Int() != 42 {
		t.Errorf("got %v, want 42", result.Int())
	}

	if _, err := p.Eval("() => unknown"); err != nil {
		t.Fatal("unregistered js should not error, just return null")
	}
}
