package components

import (
	"github.com/gonewx/rangers/pkg/ecs"
	"github.com/gonewx/rangers/pkg/shape"
)

// CreatureComponent 参战生物
type CreatureComponent struct {
	ID        string  // 生物ID，在一场战斗中唯一
	Name      string  // 显示名
	HealthMax float64 // 贡献给生命池的最大生命值
}

// AttackPoolComponent 攻击形状池
//
// Remaining 是本轮尚未抽取的形状，抽空后从 Base 重新填充。
// 同一个形状可以在 Base 中出现多次，抽取时按位置移除。
type AttackPoolComponent struct {
	Base      []*shape.Footprint
	Remaining []*shape.Footprint
}

// AttackOptionsComponent 本回合提供给我方生物的候选攻击
type AttackOptionsComponent struct {
	Options   []*shape.Footprint
	Committed bool         // 是否已放置本回合的攻击
	Placement ecs.EntityID // 已放置形状的实体，未放置时为 ecs.InvalidEntity
}
