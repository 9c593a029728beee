package layout

// pt 与 mm 之间的换算常量。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)
