package systems

import (
	"errors"
	"fmt"

	"github.com/gonewx/rangers/pkg/types"
)

var (
	// ErrInvariantViolation 网格计数将变为负数等内部一致性被破坏的情况
	// 这类错误表示程序缺陷，调用方不应尝试恢复
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrShapeNotFound 要移除的放置实例不存在（已被移除）
	ErrShapeNotFound = errors.New("placed shape not found")

	// ErrInvalidPlacement 放置、撤回或提交请求被拒绝，状态不变
	ErrInvalidPlacement = errors.New("invalid placement")

	// ErrNotAllCommitted 仍有我方生物未放置本回合的攻击
	ErrNotAllCommitted = fmt.Errorf("not all allies have committed: %w", ErrInvalidPlacement)
)

// InvariantError 描述一次网格计数越界
type InvariantError struct {
	Coord types.Coord
	Side  types.Side
	Count int // 操作前的计数
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("unmark %s at %s would make count negative (current %d)", e.Side, e.Coord, e.Count)
}

// Unwrap 使 errors.Is(err, ErrInvariantViolation) 成立
func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}
