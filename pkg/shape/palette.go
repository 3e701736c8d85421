package shape

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette 字符到涂色颜色的映射，用于以文本形式编写涂色网格
type Palette map[rune]PaintColor

// DefaultPalette 默认调色板：'.' 透明，'#' 不透明白色
func DefaultPalette() Palette {
	return Palette{
		'.': {},
		' ': {},
		'#': {R: 1, G: 1, B: 1, A: 1},
	}
}

// ParsePaintColor 解析 "#rrggbb" 或 "#rgb" 形式的颜色并附加 alpha
func ParsePaintColor(hex string, alpha float64) (PaintColor, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return PaintColor{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	if alpha < 0 || alpha > 1 {
		return PaintColor{}, fmt.Errorf("alpha %v out of range [0, 1]", alpha)
	}
	return PaintColor{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// FromPaletteRows 使用调色板把字符行转换为涂色网格，再构建形状
//
// 参数：
//   - id: 形状ID
//   - rows: 字符行，每个字符必须出现在调色板中
//   - palette: 调色板，为 nil 时使用 DefaultPalette
//
// 返回：
//   - *Footprint: 构建好的形状
//   - error: 出现未知字符或网格非法时返回错误
func FromPaletteRows(id string, rows []string, palette Palette) (*Footprint, error) {
	if palette == nil {
		palette = DefaultPalette()
	}
	grid := make(PaintGrid, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		grid[y] = make([]PaintColor, len(runes))
		for x, r := range runes {
			c, ok := palette[r]
			if !ok {
				return nil, fmt.Errorf("shape %q: row %d col %d: rune %q not in palette", id, y, x, r)
			}
			grid[y][x] = c
		}
	}
	return FromPaintGrid(id, grid)
}
