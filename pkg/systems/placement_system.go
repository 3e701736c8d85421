package systems

import (
	"fmt"

	"github.com/gonewx/rangers/pkg/components"
	"github.com/gonewx/rangers/pkg/ecs"
	"github.com/gonewx/rangers/pkg/shape"
	"github.com/gonewx/rangers/pkg/types"
)

// PlacedShape 一次放置的只读视图
// ID 是放置实例的身份：两次放置即使形状和位置相同，ID 也不同
type PlacedShape struct {
	ID        ecs.EntityID
	Footprint *shape.Footprint
	Base      types.Coord
	Side      types.Side
	OwnerID   string
}

// Cells 返回该放置覆盖的网格坐标
func (p PlacedShape) Cells() []types.Coord {
	local := p.Footprint.Cells()
	out := make([]types.Coord, len(local))
	for i, c := range local {
		out[i] = p.Base.Add(c)
	}
	return out
}

// Covers 判断该放置是否覆盖网格坐标 c
func (p PlacedShape) Covers(c types.Coord) bool {
	return p.Footprint.Covers(p.Base, c)
}

// PlacementSystem 在占用网格上放置和移除攻击形状
//
// 每个放置实例是一个带 PlacementComponent 的实体。
// 网格计数只通过本系统修改，保证每次 Unmark 都有对应的 Mark。
type PlacementSystem struct {
	entityManager *ecs.EntityManager
	grid          *OccupancyGridSystem

	// OnGridChanged 网格发生变化时调用（用于刷新伤害预览）
	OnGridChanged func()

	// OnShapeRemoved 单个我方形状被移除时调用，参数为所属生物ID
	// 批量清空不会触发
	OnShapeRemoved func(ownerID string)
}

// NewPlacementSystem 创建放置系统
// 参数:
//   - em: EntityManager 实例
//   - grid: 占用网格系统
//
// 返回:
//   - *PlacementSystem: 放置系统实例
func NewPlacementSystem(em *ecs.EntityManager, grid *OccupancyGridSystem) *PlacementSystem {
	return &PlacementSystem{
		entityManager: em,
		grid:          grid,
	}
}

// AddShape 放置一个攻击形状
//
// 形状的每个占用格子 base+c 都会按 side 计数加一；形状可以超出棋盘范围。
// 参数:
//   - fp: 攻击形状
//   - base: 形状局部 (0,0) 对应的网格坐标
//   - side: 阵营
//   - ownerID: 我方生物ID，敌方传空字符串
//
// 返回:
//   - PlacedShape: 新的放置实例
//   - error: 形状为空或阵营非法时返回 ErrInvalidPlacement
func (s *PlacementSystem) AddShape(fp *shape.Footprint, base types.Coord, side types.Side, ownerID string) (PlacedShape, error) {
	if fp == nil {
		return PlacedShape{}, fmt.Errorf("nil footprint: %w", ErrInvalidPlacement)
	}
	if !side.Valid() {
		return PlacedShape{}, fmt.Errorf("unknown side %d: %w", side, ErrInvalidPlacement)
	}

	for _, c := range fp.Cells() {
		s.grid.Mark(base.Add(c), side)
	}

	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.PlacementComponent{
		Footprint: fp,
		Base:      base,
		Side:      side,
		OwnerID:   ownerID,
	})

	s.notifyGridChanged()
	return PlacedShape{ID: id, Footprint: fp, Base: base, Side: side, OwnerID: ownerID}, nil
}

// RemoveShape 移除一个放置实例
//
// 按放置时的阵营逐格减计数并销毁实体。
// 实例已被移除时返回 ErrShapeNotFound；网格计数越界时返回 *InvariantError。
func (s *PlacementSystem) RemoveShape(id ecs.EntityID) error {
	p, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("remove shape %d: %w", id, ErrShapeNotFound)
	}

	if err := s.unmarkCells(p); err != nil {
		return err
	}
	s.entityManager.DestroyEntity(id)

	if p.Side == types.SideAlly && s.OnShapeRemoved != nil {
		s.OnShapeRemoved(p.OwnerID)
	}
	s.notifyGridChanged()
	return nil
}

// RemoveAllByOwner 移除某个我方生物的所有放置
// 返回移除的数量
func (s *PlacementSystem) RemoveAllByOwner(ownerID string) (int, error) {
	removed := 0
	for _, p := range s.Shapes(types.SideAlly) {
		if p.OwnerID != ownerID {
			continue
		}
		if err := s.RemoveShape(p.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// FindShapeOccupying 按放置顺序查找第一个覆盖坐标 c 的指定阵营形状
func (s *PlacementSystem) FindShapeOccupying(c types.Coord, side types.Side) (PlacedShape, bool) {
	for _, p := range s.Shapes(side) {
		if p.Covers(c) {
			return p, true
		}
	}
	return PlacedShape{}, false
}

// Get 按ID获取放置实例
func (s *PlacementSystem) Get(id ecs.EntityID) (PlacedShape, bool) {
	comp, ok := ecs.GetComponent[*components.PlacementComponent](s.entityManager, id)
	if !ok {
		return PlacedShape{}, false
	}
	return PlacedShape{
		ID:        id,
		Footprint: comp.Footprint,
		Base:      comp.Base,
		Side:      comp.Side,
		OwnerID:   comp.OwnerID,
	}, true
}

// Shapes 按放置顺序返回指定阵营的所有放置实例
func (s *PlacementSystem) Shapes(side types.Side) []PlacedShape {
	var out []PlacedShape
	for _, id := range ecs.GetEntitiesWith[*components.PlacementComponent](s.entityManager) {
		p, ok := s.Get(id)
		if ok && p.Side == side {
			out = append(out, p)
		}
	}
	return out
}

// Count 返回所有存活的放置实例数量
func (s *PlacementSystem) Count() int {
	return len(ecs.GetEntitiesWith[*components.PlacementComponent](s.entityManager))
}

// ClearSide 移除一方的所有放置，只触发一次网格变化事件
func (s *PlacementSystem) ClearSide(side types.Side) error {
	for _, p := range s.Shapes(side) {
		if err := s.unmarkCells(p); err != nil {
			return err
		}
		s.entityManager.DestroyEntity(p.ID)
	}
	s.notifyGridChanged()
	return nil
}

// ClearAll 移除双方的所有放置并清空网格，只触发一次网格变化事件
func (s *PlacementSystem) ClearAll() {
	for _, id := range ecs.GetEntitiesWith[*components.PlacementComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.grid.ClearAll()
	s.notifyGridChanged()
}

func (s *PlacementSystem) unmarkCells(p PlacedShape) error {
	for _, c := range p.Cells() {
		if err := s.grid.Unmark(c, p.Side); err != nil {
			return fmt.Errorf("remove shape %d (%s): %w", p.ID, p.Footprint.ID(), err)
		}
	}
	return nil
}

func (s *PlacementSystem) notifyGridChanged() {
	if s.OnGridChanged != nil {
		s.OnGridChanged()
	}
}
