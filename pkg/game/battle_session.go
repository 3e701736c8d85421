package game

import (
	"fmt"
	"math/rand"

	"github.com/gonewx/rangers/pkg/config"
	"github.com/gonewx/rangers/pkg/ecs"
	"github.com/gonewx/rangers/pkg/systems"
)

// BattleSession 一场战斗的组合根
//
// 每个会话拥有独立的实体管理器、网格、放置系统和随机数生成器，
// 多个会话之间不共享任何可变状态。
type BattleSession struct {
	Data *config.GameData

	EntityManager *ecs.EntityManager
	Grid          *systems.OccupancyGridSystem
	Placement     *systems.PlacementSystem
	Resolver      *systems.DamageResolver
	Turns         *systems.BattleTurnSystem
}

// NewBattleSession 根据静态数据创建战斗会话
//
// 参数：
//   - data: LoadAll 加载的静态数据
//   - settings: 设置管理器，可为 nil（此时直接使用 battle.yaml 中的规则）
//   - rng: 随机数生成器
//
// 返回：
//   - *BattleSession: 处于 idle 阶段的会话
func NewBattleSession(data *config.GameData, settings *SettingsManager, rng *rand.Rand) *BattleSession {
	battleCfg := *data.Battle
	if settings != nil {
		battleCfg.Rules = settings.Rules()
	}

	em := ecs.NewEntityManager()
	grid := systems.NewOccupancyGridSystem(em, battleCfg.Bounds())
	placement := systems.NewPlacementSystem(em, grid)
	resolver := systems.NewDamageResolver(battleCfg.Rules)
	turns := systems.NewBattleTurnSystem(em, grid, placement, resolver, &battleCfg, rng)

	return &BattleSession{
		Data:          data,
		EntityManager: em,
		Grid:          grid,
		Placement:     placement,
		Resolver:      resolver,
		Turns:         turns,
	}
}

// Start 按生物ID开始战斗
//
// 敌方使用 healthMaxEnemy 和 enemyShapePool，
// 我方每个生物使用 healthMaxAlly 和 allyShapePool。
func (s *BattleSession) Start(enemyID string, allyIDs []string) error {
	enemyCfg, ok := s.Data.Creatures.Creature(enemyID)
	if !ok {
		return fmt.Errorf("unknown enemy creature %q: %w", enemyID, systems.ErrInvalidPlacement)
	}
	enemyPool, err := s.Data.Shapes.Resolve(enemyCfg.EnemyShapePool)
	if err != nil {
		return fmt.Errorf("enemy %s: %w", enemyID, err)
	}

	allies := make([]systems.AllySetup, 0, len(allyIDs))
	for _, id := range allyIDs {
		allyCfg, ok := s.Data.Creatures.Creature(id)
		if !ok {
			return fmt.Errorf("unknown ally creature %q: %w", id, systems.ErrInvalidPlacement)
		}
		pool, err := s.Data.Shapes.Resolve(allyCfg.AllyShapePool)
		if err != nil {
			return fmt.Errorf("ally %s: %w", id, err)
		}
		allies = append(allies, systems.AllySetup{
			ID:        allyCfg.ID,
			Name:      allyCfg.Name,
			HealthMax: allyCfg.HealthMaxAlly,
			Pool:      pool,
		})
	}

	return s.Turns.StartBattle(systems.EnemySetup{
		ID:        enemyCfg.ID,
		Name:      enemyCfg.Name,
		HealthMax: enemyCfg.HealthMaxEnemy,
		Pool:      enemyPool,
	}, allies)
}
