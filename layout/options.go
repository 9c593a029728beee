package layout

import "github.com/ByLCY/texscope/paragraph"

// 默认标签模板，占位符由 binding.Interpolate 解析。
const (
	DefaultLabelTemplate = "${breakpoint}"
	DefaultPopupTemplate = "${totalDemerits}"
)

// BuildOptions 配置坐标映射阶段。
type BuildOptions struct {
	Hover         paragraph.HoverState // 空闲时不高亮任何路径
	LabelTemplate string               // 圆内文字，留空使用 DefaultLabelTemplate
	PopupTemplate string               // 悬停弹出框文字，留空使用 DefaultPopupTemplate
}
