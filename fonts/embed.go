package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
)

// Default 是标签默认使用的字体，与 TeX 的 cmr10 同源。
const Default = "lmroman10-regular"

var builtin = map[string][]byte{
	"lmroman10-regular": lmroman10regular.TTF,
	"lmroman10-bold":    lmroman10bold.TTF,
	"lmroman10-italic":  lmroman10italic.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:lmroman10-regular" 或直接 "lmroman10-regular"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "embed:"))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 未知字体", name)
	}
	return data, nil
}

// Names 列出全部内置字体名。
func Names() []string {
	return []string{"lmroman10-regular", "lmroman10-bold", "lmroman10-italic"}
}
