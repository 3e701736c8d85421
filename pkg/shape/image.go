package shape

import (
	"fmt"
	"image"
	"image/color"
	"io"

	// 注册涂色网格可用的图片格式
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// FromImage 把图片的每个像素视为一个涂色格子并构建形状
// 图片必须是边长为奇数的正方形
func FromImage(id string, img image.Image) (*Footprint, error) {
	b := img.Bounds()
	grid := make(PaintGrid, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		grid[y] = make([]PaintColor, b.Dx())
		for x := 0; x < b.Dx(); x++ {
			grid[y][x] = toPaintColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return FromPaintGrid(id, grid)
}

// DecodeImage 解码 PNG / BMP / WebP 图片并构建形状
func DecodeImage(id string, r io.Reader) (*Footprint, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("shape %q: failed to decode paint image: %w", id, err)
	}
	fp, err := FromImage(id, img)
	if err != nil {
		return nil, fmt.Errorf("shape %q (%s image): %w", id, format, err)
	}
	return fp, nil
}

// toPaintColor 转换为非预乘的 0~1 浮点颜色
func toPaintColor(c color.Color) PaintColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return PaintColor{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}
