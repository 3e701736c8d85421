package shape

import (
	"math"
	"testing"
)

func TestParsePaintColor(t *testing.T) {
	c, err := ParsePaintColor("#ff8000", 0.75)
	if err != nil {
		t.Fatalf("ParsePaintColor() error: %v", err)
	}
	if math.Abs(c.R-1) > 1e-9 || math.Abs(c.G-128.0/255) > 1e-9 || c.B != 0 || c.A != 0.75 {
		t.Errorf("unexpected color: %+v", c)
	}

	if _, err := ParsePaintColor("not-a-color", 1); err == nil {
		t.Error("expected error for invalid hex")
	}
	if _, err := ParsePaintColor("#ffffff", 1.5); err == nil {
		t.Error("expected error for alpha out of range")
	}
}

// TestFromPaletteRows 测试调色板中半透明颜色不计为占用
func TestFromPaletteRows(t *testing.T) {
	faint, _ := ParsePaintColor("#ff0000", 0.3)
	solid, _ := ParsePaintColor("#ff0000", 1)
	palette := Palette{'.': {}, 'f': faint, 'r': solid}

	fp, err := FromPaletteRows("claw", []string{"r.r", ".f.", "r.r"}, palette)
	if err != nil {
		t.Fatalf("FromPaletteRows() error: %v", err)
	}
	if fp.OccupiedCount() != 4 {
		t.Errorf("OccupiedCount() = %d, want 4", fp.OccupiedCount())
	}

	if _, err := FromPaletteRows("bad", []string{"z"}, palette); err == nil {
		t.Error("expected error for rune missing from palette")
	}
}

func TestFromPaletteRowsDefaultPalette(t *testing.T) {
	fp, err := FromPaletteRows("dot", []string{"...", ".#.", "..."}, nil)
	if err != nil {
		t.Fatalf("FromPaletteRows() error: %v", err)
	}
	if fp.OccupiedCount() != 1 {
		t.Errorf("OccupiedCount() = %d, want 1", fp.OccupiedCount())
	}
}
