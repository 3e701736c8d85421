package systems

import (
	"sort"

	"github.com/gonewx/rangers/pkg/components"
	"github.com/gonewx/rangers/pkg/config"
	"github.com/gonewx/rangers/pkg/ecs"
	"github.com/gonewx/rangers/pkg/types"
)

// OccupancyGridSystem 管理战场占用网格
//
// 网格无界，坐标可以是任意整数；每个格子记录敌我两方各有多少个形状覆盖。
// 计数永远不为负，两方都归零的格子会从存储中删除。
// 可选的 bounds 只用于 InBounds 查询和枚举空格子，不限制 Mark。
type OccupancyGridSystem struct {
	entityManager *ecs.EntityManager
	gridEntity    ecs.EntityID
	bounds        config.BoardBounds
}

// NewOccupancyGridSystem 创建占用网格系统，并创建持有网格组件的实体
// 参数:
//   - em: EntityManager 实例
//   - bounds: 棋盘范围，零值表示无界
//
// 返回:
//   - *OccupancyGridSystem: 网格系统实例
func NewOccupancyGridSystem(em *ecs.EntityManager, bounds config.BoardBounds) *OccupancyGridSystem {
	gridEntity := em.CreateEntity()
	em.AddComponent(gridEntity, &components.OccupancyGridComponent{
		Cells: make(map[types.Coord]*components.CellOccupancy),
	})

	return &OccupancyGridSystem{
		entityManager: em,
		gridEntity:    gridEntity,
		bounds:        bounds,
	}
}

// GridEntity 返回网格实体ID
func (s *OccupancyGridSystem) GridEntity() ecs.EntityID {
	return s.gridEntity
}

// Bounds 返回棋盘范围
func (s *OccupancyGridSystem) Bounds() config.BoardBounds {
	return s.bounds
}

func (s *OccupancyGridSystem) cells() map[types.Coord]*components.CellOccupancy {
	grid, ok := ecs.GetComponent[*components.OccupancyGridComponent](s.entityManager, s.gridEntity)
	if !ok {
		// 网格实体由本系统独占，组件缺失说明实体被外部销毁
		panic("OccupancyGridSystem: grid entity lost its OccupancyGridComponent")
	}
	return grid.Cells
}

// Mark 在格子上增加一方的计数
func (s *OccupancyGridSystem) Mark(c types.Coord, side types.Side) {
	cells := s.cells()
	cell, ok := cells[c]
	if !ok {
		cell = &components.CellOccupancy{}
		cells[c] = cell
	}
	if side == types.SideAlly {
		cell.Ally++
	} else {
		cell.Enemy++
	}
}

// Unmark 在格子上减少一方的计数
//
// 计数已为 0 时返回 *InvariantError，不做截断，网格保持不变。
// 两方计数都归零后删除该格子。
func (s *OccupancyGridSystem) Unmark(c types.Coord, side types.Side) error {
	cells := s.cells()
	cell, ok := cells[c]
	if !ok {
		return &InvariantError{Coord: c, Side: side, Count: 0}
	}

	if side == types.SideAlly {
		if cell.Ally <= 0 {
			return &InvariantError{Coord: c, Side: side, Count: cell.Ally}
		}
		cell.Ally--
	} else {
		if cell.Enemy <= 0 {
			return &InvariantError{Coord: c, Side: side, Count: cell.Enemy}
		}
		cell.Enemy--
	}

	if cell.Empty() {
		delete(cells, c)
	}
	return nil
}

// Counts 返回格子上两方的计数
func (s *OccupancyGridSystem) Counts(c types.Coord) (ally, enemy int) {
	if cell, ok := s.cells()[c]; ok {
		return cell.Ally, cell.Enemy
	}
	return 0, 0
}

// StateAt 返回格子的分类状态
func (s *OccupancyGridSystem) StateAt(c types.Coord) types.CellState {
	return types.ClassifyCounts(s.Counts(c))
}

// AllCoordinatesInState 返回处于指定状态的所有格子，按 (Y, X) 排序
//
// 对 CellEmpty 只枚举棋盘范围内的空格子，网格无界时返回空结果。
func (s *OccupancyGridSystem) AllCoordinatesInState(state types.CellState) []types.Coord {
	cells := s.cells()
	var out []types.Coord

	if state == types.CellEmpty {
		if s.bounds.Unbounded() {
			return out
		}
		for y := 0; y < s.bounds.Height; y++ {
			for x := 0; x < s.bounds.Width; x++ {
				c := types.Coord{X: x, Y: y}
				if _, ok := cells[c]; !ok {
					out = append(out, c)
				}
			}
		}
		return out
	}

	for c, cell := range cells {
		if types.ClassifyCounts(cell.Ally, cell.Enemy) == state {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Clear 清零一方在所有格子上的计数
func (s *OccupancyGridSystem) Clear(side types.Side) {
	cells := s.cells()
	for c, cell := range cells {
		if side == types.SideAlly {
			cell.Ally = 0
		} else {
			cell.Enemy = 0
		}
		if cell.Empty() {
			delete(cells, c)
		}
	}
}

// ClearAll 清空整个网格
func (s *OccupancyGridSystem) ClearAll() {
	cells := s.cells()
	for c := range cells {
		delete(cells, c)
	}
}

// Len 返回存活（至少一方计数大于 0）的格子数量
func (s *OccupancyGridSystem) Len() int {
	return len(s.cells())
}

// InBounds 判断坐标是否在棋盘范围内，无界时总是返回 true
func (s *OccupancyGridSystem) InBounds(c types.Coord) bool {
	return s.bounds.Contains(c)
}
