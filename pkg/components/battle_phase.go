package components

// BattlePhase 战斗阶段
type BattlePhase string

// BattlePhase 常量
const (
	// BattlePhaseIdle 尚未开始战斗
	BattlePhaseIdle BattlePhase = "idle"

	// BattlePhaseEnemyPlacing 敌方正在放置攻击（同步完成，外部一般观察不到）
	BattlePhaseEnemyPlacing BattlePhase = "enemy_placing"

	// BattlePhasePlayerSelecting 等待我方生物放置攻击
	BattlePhasePlayerSelecting BattlePhase = "player_selecting"

	// BattlePhaseResolving 正在结算伤害
	BattlePhaseResolving BattlePhase = "resolving"

	// BattlePhaseContinuing 本回合结算完毕，战斗继续
	BattlePhaseContinuing BattlePhase = "continuing"

	// BattlePhaseWon 敌方生命值归零，我方胜利
	BattlePhaseWon BattlePhase = "won"

	// BattlePhaseLost 我方生命池归零，我方失败
	BattlePhaseLost BattlePhase = "lost"
)

// IsTerminal 战斗是否已结束
func (p BattlePhase) IsTerminal() bool {
	return p == BattlePhaseWon || p == BattlePhaseLost
}
