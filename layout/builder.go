package layout

import (
	"fmt"
	"math"

	"github.com/ByLCY/texscope/binding"
	"github.com/ByLCY/texscope/paragraph"
)

// radiusDivisor 让相邻两行/两列的圆之间留出空隙。
const radiusDivisor = 2.2

// Build 把断点图映射到归一化平面：x = lineIndex / 列数，y = lineNumber / 行数。
// 两个分母都至少为 1，只有根节点或只有一列时不会出现 0/0。
func Build(g *paragraph.Graph, opts BuildOptions) (*Result, error) {
	if g == nil || g.Len() == 0 {
		return nil, fmt.Errorf("layout: 断点图为空")
	}
	labelTpl := opts.LabelTemplate
	if labelTpl == "" {
		labelTpl = DefaultLabelTemplate
	}
	popupTpl := opts.PopupTemplate
	if popupTpl == "" {
		popupTpl = DefaultPopupTemplate
	}

	columns := max(g.Columns()-1, 1)
	rows := max(g.MaxLines, 1)
	radius := 1 / float64(max(columns, rows)) / radiusDivisor

	path := opts.Hover.Path(g)
	highlighted := paragraph.Set(path)

	res := &Result{
		Graph:   g,
		ViewBox: DefaultViewBox,
		Columns: columns,
		Rows:    rows,
		Radius:  radius,
		Points:  make([]Point, 0, g.Len()),
		Path:    path,
	}

	centers := make(map[int]Vec, g.Len())
	for _, n := range g.Nodes {
		c := Vec{
			X: float64(n.LineIndex) / float64(columns),
			Y: float64(n.LineNumber) / float64(rows),
		}
		centers[n.Breakpoint] = c
		fields := NodeFields(n)
		res.Points = append(res.Points, Point{
			Breakpoint:  n.Breakpoint,
			X:           c.X,
			Y:           c.Y,
			Label:       binding.Interpolate(labelTpl, fields),
			Popup:       binding.Interpolate(popupTpl, fields),
			Highlighted: highlighted[n.Breakpoint],
		})
	}

	for _, e := range g.Edges() {
		seg, ok := ShrinkSegment(centers[e.From], centers[e.To], radius)
		if !ok {
			continue
		}
		res.Edges = append(res.Edges, Edge{
			From:        e.From,
			To:          e.To,
			Segment:     seg,
			Highlighted: highlighted[e.From],
		})
	}
	return res, nil
}

// ShrinkSegment 将线段 a→b 的两个端点各自沿单位向量向对方移动 r，
// 使连线止于圆周而不是圆心。a 与 b 重合时方向无定义，返回 false。
func ShrinkSegment(a, b Vec, r float64) (Segment, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	norm := math.Hypot(dx, dy)
	if norm == 0 {
		return Segment{}, false
	}
	ux, uy := dx/norm, dy/norm
	return Segment{
		X1: a.X + ux*r,
		Y1: a.Y + uy*r,
		X2: b.X - ux*r,
		Y2: b.Y - uy*r,
	}, true
}

// NodeFields 把节点展开为模板可引用的字段。
func NodeFields(n paragraph.Node) map[string]any {
	potentials := make([]any, 0, len(n.Potentials))
	for _, p := range n.Potentials {
		potentials = append(potentials, map[string]any{
			"previousBreakpoint": p.Previous,
			"demerits":           p.Demerits,
		})
	}
	fields := map[string]any{
		"breakpoint":     n.Breakpoint,
		"totalDemerits":  n.TotalDemerits,
		"classification": n.Classification,
		"lineNumber":     n.LineNumber,
		"lineIndex":      n.LineIndex,
		"potentials":     potentials,
		"potentialCount": len(n.Potentials),
	}
	if n.Previous != nil {
		fields["previousBreakpoint"] = *n.Previous
	}
	return fields
}
