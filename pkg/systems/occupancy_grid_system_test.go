package systems

import (
	"errors"
	"testing"

	"github.com/gonewx/rangers/pkg/config"
	"github.com/gonewx/rangers/pkg/ecs"
	"github.com/gonewx/rangers/pkg/types"
)

func newTestGrid(bounds config.BoardBounds) *OccupancyGridSystem {
	return NewOccupancyGridSystem(ecs.NewEntityManager(), bounds)
}

// TestMarkUnmarkBalanced 成对的 Mark/Unmark 之后网格为空
func TestMarkUnmarkBalanced(t *testing.T) {
	grid := newTestGrid(config.BoardBounds{})

	coords := []types.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -3, Y: 7}, {X: 0, Y: 0}}
	sides := []types.Side{types.SideAlly, types.SideEnemy, types.SideAlly, types.SideEnemy}

	for i := range coords {
		grid.Mark(coords[i], sides[i])
	}
	if grid.Len() != 3 {
		t.Fatalf("Expected 3 live cells, got %d", grid.Len())
	}
	if got := grid.StateAt(types.Coord{X: 0, Y: 0}); got != types.CellClash {
		t.Errorf("Expected (0,0) to be clash, got %s", got)
	}

	// 逆序撤销
	for i := len(coords) - 1; i >= 0; i-- {
		if err := grid.Unmark(coords[i], sides[i]); err != nil {
			t.Fatalf("Unmark(%v, %s) failed: %v", coords[i], sides[i], err)
		}
	}
	if grid.Len() != 0 {
		t.Errorf("Expected empty grid after balanced unmarks, got %d live cells", grid.Len())
	}
	for _, c := range coords {
		if got := grid.StateAt(c); got != types.CellEmpty {
			t.Errorf("Expected %v to be empty, got %s", c, got)
		}
	}
}

// TestUnmarkBelowZero 计数不能变为负数
func TestUnmarkBelowZero(t *testing.T) {
	grid := newTestGrid(config.BoardBounds{})
	c := types.Coord{X: 2, Y: 2}

	t.Run("absent cell", func(t *testing.T) {
		err := grid.Unmark(c, types.SideAlly)
		if !errors.Is(err, ErrInvariantViolation) {
			t.Fatalf("Expected ErrInvariantViolation, got %v", err)
		}
		var invErr *InvariantError
		if !errors.As(err, &invErr) {
			t.Fatalf("Expected *InvariantError, got %T", err)
		}
		if invErr.Coord != c || invErr.Side != types.SideAlly {
			t.Errorf("Unexpected error details: %+v", invErr)
		}
	})

	t.Run("other side present", func(t *testing.T) {
		grid.Mark(c, types.SideEnemy)
		err := grid.Unmark(c, types.SideAlly)
		if !errors.Is(err, ErrInvariantViolation) {
			t.Fatalf("Expected ErrInvariantViolation, got %v", err)
		}
		// 不截断：敌方计数保持不变
		ally, enemy := grid.Counts(c)
		if ally != 0 || enemy != 1 {
			t.Errorf("Expected counts (0,1) after rejected unmark, got (%d,%d)", ally, enemy)
		}
	})
}

// TestStateAtQuadrants StateAt 覆盖四种计数组合
func TestStateAtQuadrants(t *testing.T) {
	grid := newTestGrid(config.BoardBounds{})

	empty := types.Coord{X: 0, Y: 0}
	ally := types.Coord{X: 1, Y: 0}
	enemy := types.Coord{X: 2, Y: 0}
	clash := types.Coord{X: 3, Y: 0}

	grid.Mark(ally, types.SideAlly)
	grid.Mark(ally, types.SideAlly)
	grid.Mark(enemy, types.SideEnemy)
	grid.Mark(clash, types.SideAlly)
	grid.Mark(clash, types.SideEnemy)

	tests := []struct {
		coord types.Coord
		want  types.CellState
	}{
		{empty, types.CellEmpty},
		{ally, types.CellAlly},
		{enemy, types.CellEnemy},
		{clash, types.CellClash},
	}
	for _, tt := range tests {
		if got := grid.StateAt(tt.coord); got != tt.want {
			t.Errorf("StateAt(%v) = %s, want %s", tt.coord, got, tt.want)
		}
	}
}

func TestAllCoordinatesInState(t *testing.T) {
	grid := newTestGrid(config.BoardBounds{Width: 3, Height: 2})

	grid.Mark(types.Coord{X: 2, Y: 1}, types.SideEnemy)
	grid.Mark(types.Coord{X: 0, Y: 1}, types.SideEnemy)
	grid.Mark(types.Coord{X: 1, Y: 0}, types.SideEnemy)
	grid.Mark(types.Coord{X: 0, Y: 0}, types.SideAlly)

	enemies := grid.AllCoordinatesInState(types.CellEnemy)
	want := []types.Coord{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}}
	if len(enemies) != len(want) {
		t.Fatalf("Expected %d enemy cells, got %v", len(want), enemies)
	}
	for i := range want {
		if enemies[i] != want[i] {
			t.Errorf("enemy cells[%d] = %v, want %v", i, enemies[i], want[i])
		}
	}

	empties := grid.AllCoordinatesInState(types.CellEmpty)
	wantEmpty := []types.Coord{{X: 2, Y: 0}, {X: 1, Y: 1}}
	if len(empties) != len(wantEmpty) {
		t.Fatalf("Expected %d empty cells, got %v", len(wantEmpty), empties)
	}
	for i := range wantEmpty {
		if empties[i] != wantEmpty[i] {
			t.Errorf("empty cells[%d] = %v, want %v", i, empties[i], wantEmpty[i])
		}
	}

	unbounded := newTestGrid(config.BoardBounds{})
	if got := unbounded.AllCoordinatesInState(types.CellEmpty); len(got) != 0 {
		t.Errorf("Expected no empty cells on an unbounded grid, got %v", got)
	}
}

func TestClear(t *testing.T) {
	grid := newTestGrid(config.BoardBounds{})

	shared := types.Coord{X: 1, Y: 1}
	grid.Mark(shared, types.SideAlly)
	grid.Mark(shared, types.SideEnemy)
	grid.Mark(types.Coord{X: 5, Y: 5}, types.SideEnemy)
	grid.Mark(types.Coord{X: 6, Y: 5}, types.SideAlly)

	grid.Clear(types.SideEnemy)
	if grid.Len() != 2 {
		t.Errorf("Expected 2 live cells after clearing enemy, got %d", grid.Len())
	}
	if got := grid.StateAt(shared); got != types.CellAlly {
		t.Errorf("Expected shared cell to become ally, got %s", got)
	}

	grid.ClearAll()
	if grid.Len() != 0 {
		t.Errorf("Expected empty grid after ClearAll, got %d", grid.Len())
	}
}

func TestInBounds(t *testing.T) {
	grid := newTestGrid(config.BoardBounds{Width: 15, Height: 15})
	if !grid.InBounds(types.Coord{X: 14, Y: 0}) {
		t.Error("Expected (14,0) in bounds")
	}
	if grid.InBounds(types.Coord{X: 15, Y: 0}) {
		t.Error("Expected (15,0) out of bounds")
	}
	// Mark 不受范围限制
	grid.Mark(types.Coord{X: -1, Y: -1}, types.SideEnemy)
	if got := grid.StateAt(types.Coord{X: -1, Y: -1}); got != types.CellEnemy {
		t.Errorf("Expected overhanging cell to be tracked, got %s", got)
	}
}
