package components

// CombatStateComponent 一场战斗的数值状态
//
// 我方所有参战生物共享一个生命池，MaxAllyHealth 为各生物 HealthMax 之和。
// 生命值扣减不做下限截断，可能为负数。
type CombatStateComponent struct {
	EnemyHealth    float64
	MaxEnemyHealth float64
	AllyHealth     float64
	MaxAllyHealth  float64

	Turn  int // 已开始的敌方回合数，第一回合为 1
	Wave  int // 波次编号，单敌人战斗恒为 1
	Phase BattlePhase

	// AllyOrder 参战我方生物ID，保持 StartBattle 传入的顺序
	AllyOrder []string
}
