package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/texscope/config"
	"github.com/ByLCY/texscope/errors"
	"github.com/ByLCY/texscope/fonts"
	"github.com/ByLCY/texscope/layout"
	"github.com/ByLCY/texscope/renderer"
)

// 画布渲染器支持的输出格式。
const (
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// 弹出框相对圆半径的尺寸，与圆左侧相切。
const (
	popupOffset = 2.5
	popupWidth  = 2.5
	popupHeight = 2.0
)

// Renderer 基于 github.com/tdewolff/canvas 绘制布局结果。
type Renderer struct {
	format string
	style  config.Style

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options 配置画布渲染器。
type Options struct {
	Format string // svg（默认）、pdf 或 png
	Style  config.Style
}

// NewRenderer 使用默认样式创建渲染器。
func NewRenderer(format string) *Renderer {
	return NewRendererWithOptions(Options{Format: format, Style: config.Default().Style})
}

// NewRendererWithOptions 使用指定样式创建渲染器。
func NewRendererWithOptions(opts Options) *Renderer {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = FormatSVG
	}
	return &Renderer{format: format, style: opts.Style}
}

// Render 按配置的格式输出布局结果。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, errors.New(errors.ErrCodeRenderFailed, "渲染结果为空")
	}
	switch r.format {
	case FormatSVG, FormatPDF, FormatPNG:
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "不支持的输出格式 %q", r.format)
	}

	c, err := r.draw(result)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "绘制断点图失败")
	}

	width, height := result.ViewBox.Width*r.style.Scale, result.ViewBox.Height*r.style.Scale
	var buf bytes.Buffer
	switch r.format {
	case FormatSVG:
		writer := svg.New(&buf, width, height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "写入 SVG 失败")
		}
	case FormatPDF:
		writer := pdf.New(&buf, width, height, nil)
		writer.SetInfo("Paragraph breakpoints", "", "tracingparagraphs", "", "texscope")
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "写入 PDF 失败")
		}
	case FormatPNG:
		img := rasterizer.Draw(c, canvas.DPMM(r.style.PNGResolution), canvas.DefaultColorSpace)
		if err := png.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "写入 PNG 失败")
		}
	}
	return buf.Bytes(), nil
}

// draw 把归一化坐标按 scale（mm/单位）放大到画布上，视口左上角为原点。
func (r *Renderer) draw(result *layout.Result) (*canvas.Canvas, error) {
	stroke, err := config.ParseColor(r.style.Stroke)
	if err != nil {
		return nil, err
	}
	muted, err := config.ParseColor(r.style.MutedStroke)
	if err != nil {
		return nil, err
	}
	popupFill, err := config.ParseColor(r.style.PopupFill)
	if err != nil {
		return nil, err
	}

	scale := r.style.Scale
	vb := result.ViewBox
	width, height := vb.Width*scale, vb.Height*scale
	toPage := func(x, y float64) (float64, float64) {
		return (x - vb.X) * scale, (y - vb.Y) * scale
	}

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	if r.style.Background != "" {
		bg, err := config.ParseColor(r.style.Background)
		if err != nil {
			return nil, err
		}
		ctx.SetFillColor(bg)
		ctx.SetStrokeColor(transparent)
		ctx.DrawPath(0, 0, canvas.Rectangle(width, height))
	}

	labelFace, err := r.fontFace(toPt(r.style.LabelSize*scale), stroke)
	if err != nil {
		return nil, err
	}
	popupFace, err := r.fontFace(toPt(r.style.PopupSize*scale), stroke)
	if err != nil {
		return nil, err
	}

	// 先画边，圆与标签覆盖在上面
	for _, e := range result.Edges {
		col, w := color.Color(muted), r.style.StrokeWidth
		if e.Highlighted {
			col, w = stroke, r.style.EmphasisStrokeWidth
		}
		x1, y1 := toPage(e.X1, e.Y1)
		x2, y2 := toPage(e.X2, e.Y2)
		ctx.SetStrokeColor(col)
		ctx.SetStrokeWidth(w * scale)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(x2-x1, y2-y1)
		ctx.DrawPath(x1, y1, p)
	}

	radius := result.Radius * scale
	for _, pt := range result.Points {
		cx, cy := toPage(pt.X, pt.Y)
		drawCentered(ctx, labelFace, pt.Label, cx, cy)

		w := r.style.StrokeWidth
		if pt.Highlighted {
			w = r.style.EmphasisStrokeWidth
		}
		ctx.SetFillColor(transparent)
		ctx.SetStrokeColor(stroke)
		ctx.SetStrokeWidth(w * scale)
		ctx.DrawPath(cx, cy, canvas.Circle(radius))

		if !pt.Highlighted {
			continue
		}
		px := cx - popupOffset*radius
		ctx.SetFillColor(popupFill)
		ctx.SetStrokeColor(transparent)
		ctx.DrawPath(px-popupWidth/2*radius, cy-radius, canvas.Rectangle(popupWidth*radius, popupHeight*radius))
		ctx.DrawText(px, cy, canvas.NewTextLine(popupFace, pt.Popup, canvas.Center))
	}
	return c, nil
}

var transparent = color.RGBA{0, 0, 0, 0}

// drawCentered 让文字的视觉中心落在 (x, y)。
func drawCentered(ctx *canvas.Context, face *canvas.FontFace, s string, x, y float64) {
	if s == "" {
		return
	}
	metrics := face.Metrics()
	baseline := y + (metrics.Ascent-metrics.Descent)/2
	ctx.DrawText(x, baseline, canvas.NewTextLine(face, s, canvas.Center))
}

func (r *Renderer) fontFace(sizePt float64, col color.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily()
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, col, canvas.FontRegular, canvas.FontNormal), nil
}

// ensureFontFamily 只加载一次字体；配置的字体不可用时回退到内置默认字体。
func (r *Renderer) ensureFontFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if r.family != nil {
		return r.family, nil
	}
	family := canvas.NewFontFamily("texscope")
	data, err := fonts.Load(r.style.Font)
	if err != nil {
		if data, err = fonts.Load(fonts.Default); err != nil {
			return nil, err
		}
	}
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}
	r.family = family
	return family, nil
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
