package layout

import "github.com/ByLCY/texscope/paragraph"

// 该文件定义坐标映射的结果，供渲染器与调试 JSON 共用。
// 所有坐标都在归一化平面内：x、y 均落在 [0,1]，视口另外留出边距。

// ViewBox 是固定的逻辑视口。
type ViewBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultViewBox 左侧多留 0.2 给悬停时弹出的罚分标签。
var DefaultViewBox = ViewBox{X: -0.2, Y: -0.1, Width: 1.3, Height: 1.2}

// Result 保存一次布局的全部图元。
type Result struct {
	Graph   *paragraph.Graph `json:"-"`
	ViewBox ViewBox          `json:"viewBox"`
	Columns int              `json:"columns"` // 横向分母（至少为 1）
	Rows    int              `json:"rows"`    // 纵向分母（至少为 1）
	Radius  float64          `json:"radius"`
	Points  []Point          `json:"points"`
	Edges   []Edge           `json:"edges"`
	Path    []int            `json:"path,omitempty"` // 高亮路径，悬停节点在前
}

// Point 表示一个断点的圆形标记。
type Point struct {
	Breakpoint  int     `json:"breakpoint"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Label       string  `json:"label"`
	Popup       string  `json:"popup"`
	Highlighted bool    `json:"highlighted,omitempty"`
}

// Vec 是平面上的一个点。
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment 表示一条线段。
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Edge 连接节点与其前驱，两端已按半径收缩到圆周上。
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
	Segment
	Highlighted bool `json:"highlighted,omitempty"`
}

// Point 按断点编号查找标记。
func (r *Result) Point(breakpoint int) (Point, bool) {
	for _, p := range r.Points {
		if p.Breakpoint == breakpoint {
			return p, true
		}
	}
	return Point{}, false
}
