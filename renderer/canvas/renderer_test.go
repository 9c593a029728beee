package canvasrenderer

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/ByLCY/texscope/config"
	"github.com/ByLCY/texscope/errors"
	"github.com/ByLCY/texscope/layout"
	"github.com/ByLCY/texscope/paragraph"
)

func loadResult(t *testing.T, hover int) *layout.Result {
	t.Helper()
	data, err := os.ReadFile("../../paragraph/testdata/fox.trace")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	g, err := paragraph.Parse(string(data), nil)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	opts := layout.BuildOptions{}
	if hover >= 0 {
		opts.Hover.Enter(hover)
	}
	res, err := layout.Build(g, opts)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return res
}

func TestRenderSVG(t *testing.T) {
	out, err := NewRenderer(FormatSVG).Render(loadResult(t, -1))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "<svg") {
		t.Fatalf("expected svg document, got %q", string(out[:min(len(out), 80)]))
	}
}

func TestRenderPDFWithHover(t *testing.T) {
	out, err := NewRenderer(FormatPDF).Render(loadResult(t, 5))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", string(out[:min(len(out), 8)]))
	}
}

func TestRenderPNG(t *testing.T) {
	style := config.Default().Style
	style.Scale = 50
	style.PNGResolution = 1
	style.Background = "#ffffff"
	out, err := NewRendererWithOptions(Options{Format: FormatPNG, Style: style}).Render(loadResult(t, 3))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Fatalf("expected PNG signature")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := NewRenderer("bmp").Render(loadResult(t, -1))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("expected INVALID_FORMAT, got %v", err)
	}
}

func TestRenderNilResult(t *testing.T) {
	_, err := NewRenderer(FormatSVG).Render(nil)
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Fatalf("expected RENDER_FAILED, got %v", err)
	}
}

func TestRenderBadColor(t *testing.T) {
	style := config.Default().Style
	style.Stroke = "black"
	_, err := NewRendererWithOptions(Options{Style: style}).Render(loadResult(t, -1))
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Fatalf("expected RENDER_FAILED, got %v", err)
	}
}

func TestUnknownFontFallsBack(t *testing.T) {
	style := config.Default().Style
	style.Font = "embed:missing"
	if _, err := NewRendererWithOptions(Options{Style: style}).Render(loadResult(t, -1)); err != nil {
		t.Fatalf("expected fallback font, got %v", err)
	}
}
