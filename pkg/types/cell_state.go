package types

// CellState 格子的占用分类
// 完全由该格子上双方的计数决定，不保存任何额外状态
type CellState int

const (
	// CellEmpty 双方计数都为 0
	CellEmpty CellState = iota
	// CellAlly 只有我方占用
	CellAlly
	// CellEnemy 只有敌方占用
	CellEnemy
	// CellClash 双方同时占用（冲突格）
	CellClash
)

// String 返回格子状态的字符串表示
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellAlly:
		return "ally"
	case CellEnemy:
		return "enemy"
	case CellClash:
		return "clash"
	default:
		return "unknown"
	}
}

// ClassifyCounts 根据双方计数对格子进行分类
//
// 参数：
//   - ally: 我方计数
//   - enemy: 敌方计数
//
// 返回：
//   - CellState: (0,0) empty, (>0,0) ally, (0,>0) enemy, (>0,>0) clash
func ClassifyCounts(ally, enemy int) CellState {
	hasAlly := ally > 0
	hasEnemy := enemy > 0
	switch {
	case hasAlly && hasEnemy:
		return CellClash
	case hasAlly:
		return CellAlly
	case hasEnemy:
		return CellEnemy
	default:
		return CellEmpty
	}
}
