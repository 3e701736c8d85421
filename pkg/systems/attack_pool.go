package systems

import (
	"errors"
	"math/rand"

	"github.com/gonewx/rangers/pkg/components"
	"github.com/gonewx/rangers/pkg/shape"
)

// ErrEmptyAttackPool 攻击形状池的基础池为空，无法抽取
var ErrEmptyAttackPool = errors.New("attack pool is empty")

// NewAttackPool 创建攻击形状池，Remaining 初始为 Base 的副本
func NewAttackPool(base []*shape.Footprint) *components.AttackPoolComponent {
	pool := &components.AttackPoolComponent{
		Base: append([]*shape.Footprint(nil), base...),
	}
	pool.Remaining = append([]*shape.Footprint(nil), pool.Base...)
	return pool
}

// DrawAttack 从剩余池中随机抽取一个形状并按位置移除
//
// 剩余池为空时先从基础池重新填充，因此每一轮中基础池的每个元素恰好被抽到一次。
// 基础池为空时返回 ErrEmptyAttackPool。
func DrawAttack(pool *components.AttackPoolComponent, rng *rand.Rand) (*shape.Footprint, error) {
	if len(pool.Base) == 0 {
		return nil, ErrEmptyAttackPool
	}
	if len(pool.Remaining) == 0 {
		pool.Remaining = append([]*shape.Footprint(nil), pool.Base...)
	}

	i := rng.Intn(len(pool.Remaining))
	fp := pool.Remaining[i]
	pool.Remaining = append(pool.Remaining[:i], pool.Remaining[i+1:]...)
	return fp, nil
}
