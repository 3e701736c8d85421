package utils

import (
	"math/rand"
	"time"
)

// NewRand 创建随机数生成器
// seed 为 0 时使用当前时间作为种子，其他值保证结果可复现
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
