package components

import (
	"github.com/gonewx/rangers/pkg/shape"
	"github.com/gonewx/rangers/pkg/types"
)

// PlacementComponent 已放置形状的记录
// 每个放置实例对应一个实体，实体ID即放置实例的身份，也决定了放置顺序
type PlacementComponent struct {
	Footprint *shape.Footprint // 共享的攻击形状
	Base      types.Coord      // 形状局部 (0,0) 在网格上的位置
	Side      types.Side       // 所属阵营
	OwnerID   string           // 放置该形状的我方生物ID，敌方为空
}
