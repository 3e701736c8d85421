// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// Side 标识一个攻击形状属于哪一方
type Side int

const (
	// SideAlly 我方（玩家的生物）
	SideAlly Side = iota
	// SideEnemy 敌方
	SideEnemy
)

// String 返回阵营的字符串表示
func (s Side) String() string {
	switch s {
	case SideAlly:
		return "ally"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Valid 判断阵营值是否合法
func (s Side) Valid() bool {
	return s == SideAlly || s == SideEnemy
}
