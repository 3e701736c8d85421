package systems

import (
	"github.com/gonewx/rangers/pkg/config"
	"github.com/gonewx/rangers/pkg/types"
)

// GridReader 伤害结算需要的只读网格视图
// OccupancyGridSystem 实现了该接口
type GridReader interface {
	StateAt(c types.Coord) types.CellState
	AllCoordinatesInState(state types.CellState) []types.Coord
}

// DamagePreview 当前网格下的伤害预测
type DamagePreview struct {
	ToAllies float64
	ToEnemy  float64
	PerCell  map[types.Coord]int // 每个敌方格子对我方造成的伤害
}

// DamageResolver 根据占用网格计算双方伤害
//
// 敌方格子（仅被敌方覆盖）对我方的伤害为 1，每有一个正交相邻的敌方格子加 1；
// 开启 AdjacentAlliesReduceDamage 时，每有一个正交相邻的我方格子减 1，单格最低为 1。
// 冲突格子（双方都覆盖）不造成伤害。
// 对敌伤害默认为我方格子数量，开启 SymmetricEnemyDamage 时使用镜像公式。
//
// 所有方法都不修改网格。
type DamageResolver struct {
	Rules config.DamageRules
}

// NewDamageResolver 创建伤害结算器
func NewDamageResolver(rules config.DamageRules) *DamageResolver {
	return &DamageResolver{Rules: rules}
}

// CellDamage 返回格子 c 对我方造成的伤害，非敌方格子返回 0
func (r *DamageResolver) CellDamage(grid GridReader, c types.Coord) int {
	if grid.StateAt(c) != types.CellEnemy {
		return 0
	}
	return cellDamage(grid, c, types.CellEnemy, types.CellAlly, r.Rules.AdjacentAlliesReduceDamage)
}

// cellDamage max(1, 1 + 同方相邻数 - 对方相邻数)，对方相邻数只在 reduce 为 true 时计入
func cellDamage(grid GridReader, c types.Coord, own, opposing types.CellState, reduce bool) int {
	damage := 1
	for _, n := range c.Neighbors4() {
		switch grid.StateAt(n) {
		case own:
			damage++
		case opposing:
			if reduce {
				damage--
			}
		}
	}
	if damage < 1 {
		damage = 1
	}
	return damage
}

// DamageToAllies 所有敌方格子的伤害之和
func (r *DamageResolver) DamageToAllies(grid GridReader) float64 {
	total := 0
	for _, c := range grid.AllCoordinatesInState(types.CellEnemy) {
		total += cellDamage(grid, c, types.CellEnemy, types.CellAlly, r.Rules.AdjacentAlliesReduceDamage)
	}
	return float64(total)
}

// DamageToEnemy 我方对敌方造成的伤害
func (r *DamageResolver) DamageToEnemy(grid GridReader) float64 {
	allyCells := grid.AllCoordinatesInState(types.CellAlly)
	if !r.Rules.SymmetricEnemyDamage {
		return float64(len(allyCells))
	}

	total := 0
	for _, c := range allyCells {
		total += cellDamage(grid, c, types.CellAlly, types.CellEnemy, r.Rules.AdjacentAlliesReduceDamage)
	}
	return float64(total)
}

// PreviewPerCell 返回每个敌方格子的伤害，用于伤害数字显示
func (r *DamageResolver) PreviewPerCell(grid GridReader) map[types.Coord]int {
	enemyCells := grid.AllCoordinatesInState(types.CellEnemy)
	out := make(map[types.Coord]int, len(enemyCells))
	for _, c := range enemyCells {
		out[c] = cellDamage(grid, c, types.CellEnemy, types.CellAlly, r.Rules.AdjacentAlliesReduceDamage)
	}
	return out
}

// Preview 一次性计算双方伤害和每格伤害
func (r *DamageResolver) Preview(grid GridReader) DamagePreview {
	perCell := r.PreviewPerCell(grid)
	toAllies := 0
	for _, d := range perCell {
		toAllies += d
	}
	return DamagePreview{
		ToAllies: float64(toAllies),
		ToEnemy:  r.DamageToEnemy(grid),
		PerCell:  perCell,
	}
}
