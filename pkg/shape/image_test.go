package shape

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/gonewx/rangers/pkg/types"
)

// newDiagonalImage 创建 3x3 对角线图片
func newDiagonalImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for i := 0; i < 3; i++ {
		img.Set(i, i, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return img
}

func TestFromImage(t *testing.T) {
	fp, err := FromImage("diag", newDiagonalImage())
	if err != nil {
		t.Fatalf("FromImage() error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if !fp.Occupies(types.Coord{X: i, Y: i}) {
			t.Errorf("(%d,%d) should be occupied", i, i)
		}
	}
	if fp.OccupiedCount() != 3 {
		t.Errorf("OccupiedCount() = %d, want 3", fp.OccupiedCount())
	}
}

// TestDecodeImagePNG 测试 PNG 涂色图片解码
func TestDecodeImagePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, newDiagonalImage()); err != nil {
		t.Fatalf("png.Encode() error: %v", err)
	}

	fp, err := DecodeImage("diag", &buf)
	if err != nil {
		t.Fatalf("DecodeImage() error: %v", err)
	}
	if fp.String() != "#..\n.#.\n..#" {
		t.Errorf("unexpected footprint:\n%s", fp)
	}
}

// TestDecodeImageBMP 测试 BMP 涂色图片解码
// 不透明图片的每个像素都视为占用
func TestDecodeImageBMP(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	img.SetGray(1, 1, color.Gray{Y: 255})

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("bmp.Encode() error: %v", err)
	}

	fp, err := DecodeImage("opaque", &buf)
	if err != nil {
		t.Fatalf("DecodeImage() error: %v", err)
	}
	if fp.Size() != 3 {
		t.Errorf("Size() = %d, want 3", fp.Size())
	}
	if fp.OccupiedCount() != 9 {
		t.Errorf("OccupiedCount() = %d, want 9", fp.OccupiedCount())
	}
}

func TestDecodeImageRejectsEvenSize(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("png.Encode() error: %v", err)
	}
	if _, err := DecodeImage("even", &buf); err == nil {
		t.Error("expected error for even-sized image")
	}
}

func TestDecodeImageGarbage(t *testing.T) {
	if _, err := DecodeImage("junk", bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected decode error")
	}
}
