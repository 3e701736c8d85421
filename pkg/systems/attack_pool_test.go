package systems

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/gonewx/rangers/pkg/shape"
)

// TestDrawAttackCycles 每轮中基础池的每个元素恰好被抽到一次
func TestDrawAttackCycles(t *testing.T) {
	a := shape.MustFromRows("a", "#")
	b := shape.MustFromRows("b", "#")
	// 同一个形状出现两次，按位置移除
	pool := NewAttackPool([]*shape.Footprint{a, b, a})
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 3; round++ {
		counts := map[*shape.Footprint]int{}
		for i := 0; i < 3; i++ {
			fp, err := DrawAttack(pool, rng)
			if err != nil {
				t.Fatalf("DrawAttack failed: %v", err)
			}
			counts[fp]++
		}
		if counts[a] != 2 || counts[b] != 1 {
			t.Errorf("round %d: expected a twice and b once, got a=%d b=%d", round, counts[a], counts[b])
		}
		if len(pool.Remaining) != 0 {
			t.Errorf("round %d: expected exhausted pool, %d remaining", round, len(pool.Remaining))
		}
	}
	if len(pool.Base) != 3 {
		t.Errorf("Expected base pool untouched, got %d entries", len(pool.Base))
	}
}

func TestDrawAttackEmptyPool(t *testing.T) {
	pool := NewAttackPool(nil)
	if _, err := DrawAttack(pool, rand.New(rand.NewSource(1))); !errors.Is(err, ErrEmptyAttackPool) {
		t.Errorf("Expected ErrEmptyAttackPool, got %v", err)
	}
}
