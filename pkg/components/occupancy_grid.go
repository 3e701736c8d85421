package components

import "github.com/gonewx/rangers/pkg/types"

// CellOccupancy 单个格子上两方的占用计数
// 计数表示有多少个已放置的形状覆盖了这个格子
type CellOccupancy struct {
	Ally  int
	Enemy int
}

// Empty 两方计数是否都为 0
func (c *CellOccupancy) Empty() bool {
	return c.Ally == 0 && c.Enemy == 0
}

// OccupancyGridComponent 标识占用网格实体
//
// Cells 是稀疏存储：只保存至少有一方计数大于 0 的格子。
// 两方计数同时归零的条目会被立即删除。
type OccupancyGridComponent struct {
	Cells map[types.Coord]*CellOccupancy
}
