package config

import (
	"os"
	"testing"
)

// TestLoadShippedData 加载项目 data/ 目录下的实际数据文件
func TestLoadShippedData(t *testing.T) {
	data, err := LoadAll(os.DirFS("../../data"))
	if err != nil {
		t.Fatalf("LoadAll(data/) failed: %v", err)
	}

	if data.Battle.BoardWidth != 15 || data.Battle.BoardHeight != 15 {
		t.Errorf("Expected a 15x15 board, got %dx%d", data.Battle.BoardWidth, data.Battle.BoardHeight)
	}

	// 图片定义的形状
	ring, ok := data.Shapes.Footprint("ring")
	if !ok {
		t.Fatal("Expected image shape 'ring'")
	}
	if ring.Size() != 5 || ring.OccupiedCount() != 8 {
		t.Errorf("ring: expected size 5 with 8 cells, got size %d with %d cells", ring.Size(), ring.OccupiedCount())
	}

	// alpha 0.4 的行不占用
	claw, _ := data.Shapes.Footprint("claw")
	if claw.OccupiedCount() != 18 {
		t.Errorf("claw: expected 18 cells, got %d", claw.OccupiedCount())
	}

	for _, c := range data.Creatures.Creatures {
		if _, err := data.Shapes.Resolve(c.EnemyShapePool); err != nil {
			t.Errorf("creature %s: %v", c.ID, err)
		}
		if _, err := data.Shapes.Resolve(c.AllyShapePool); err != nil {
			t.Errorf("creature %s: %v", c.ID, err)
		}
	}
}
