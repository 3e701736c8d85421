package systems

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/rangers/pkg/components"
	"github.com/gonewx/rangers/pkg/config"
	"github.com/gonewx/rangers/pkg/ecs"
	"github.com/gonewx/rangers/pkg/shape"
	"github.com/gonewx/rangers/pkg/types"
)

// EnemySetup 敌方参战数据
type EnemySetup struct {
	ID        string
	Name      string
	HealthMax float64
	Pool      []*shape.Footprint
}

// AllySetup 我方参战生物数据
type AllySetup struct {
	ID        string
	Name      string
	HealthMax float64 // 贡献给我方生命池的生命值
	Pool      []*shape.Footprint
}

// TurnResult 一次回合结算的结果
type TurnResult struct {
	Turn           int
	DamageToAllies float64
	DamageToEnemy  float64
	AllyHealth     float64 // 结算后的我方生命池，可能为负
	EnemyHealth    float64 // 结算后的敌方生命值，可能为负
	Phase          components.BattlePhase
}

// BattleCallbacks 战斗事件回调，未设置的回调会被忽略
type BattleCallbacks struct {
	OnGridChanged  func()
	OnShapeRemoved func(allyID string)
	OnTurnResolved func(result TurnResult)
	OnBattleEnded  func(won bool)
}

// BattleTurnSystem 战斗回合状态机
//
// 阶段流转：idle → enemy_placing → player_selecting → resolving → continuing | won | lost，
// continuing 会立即进入下一个敌方回合。所有步骤都是同步调用。
//
// 遵循零耦合原则：
// - 通过构造参数获得网格、放置系统和伤害结算器
// - 通过 BattleCallbacks 向表现层通知变化
type BattleTurnSystem struct {
	entityManager *ecs.EntityManager
	grid          *OccupancyGridSystem
	placement     *PlacementSystem
	resolver      *DamageResolver
	config        *config.BattleConfig
	rng           *rand.Rand

	// stateEntity 持有 CombatStateComponent 的实体
	stateEntity ecs.EntityID
	enemyEntity ecs.EntityID
	allies      map[string]ecs.EntityID

	enemyPlacement ecs.EntityID

	callbacks BattleCallbacks
}

// NewBattleTurnSystem 创建战斗回合系统
//
// 参数：
//   - em: 实体管理器
//   - grid: 占用网格系统
//   - placement: 放置系统，其回调由本系统接管
//   - resolver: 伤害结算器
//   - cfg: 战斗配置
//   - rng: 抽取攻击形状使用的随机数生成器
//
// 返回：
//   - 战斗回合系统实例，处于 idle 阶段
func NewBattleTurnSystem(
	em *ecs.EntityManager,
	grid *OccupancyGridSystem,
	placement *PlacementSystem,
	resolver *DamageResolver,
	cfg *config.BattleConfig,
	rng *rand.Rand,
) *BattleTurnSystem {
	if cfg == nil {
		cfg = config.DefaultBattleConfig()
	}

	system := &BattleTurnSystem{
		entityManager: em,
		grid:          grid,
		placement:     placement,
		resolver:      resolver,
		config:        cfg,
		rng:           rng,
		allies:        make(map[string]ecs.EntityID),
	}

	system.stateEntity = em.CreateEntity()
	em.AddComponent(system.stateEntity, &components.CombatStateComponent{
		Phase: components.BattlePhaseIdle,
	})

	placement.OnGridChanged = system.handleGridChanged
	placement.OnShapeRemoved = system.handleShapeRemoved

	return system
}

// SetCallbacks 设置事件回调
func (s *BattleTurnSystem) SetCallbacks(callbacks BattleCallbacks) {
	s.callbacks = callbacks
}

func (s *BattleTurnSystem) state() *components.CombatStateComponent {
	state, ok := ecs.GetComponent[*components.CombatStateComponent](s.entityManager, s.stateEntity)
	if !ok {
		panic("BattleTurnSystem: state entity lost its CombatStateComponent")
	}
	return state
}

func (s *BattleTurnSystem) options(allyID string) (*components.AttackOptionsComponent, bool) {
	entity, ok := s.allies[allyID]
	if !ok {
		return nil, false
	}
	return ecs.GetComponent[*components.AttackOptionsComponent](s.entityManager, entity)
}

// StartBattle 开始一场新战斗
//
// 校验失败时返回 ErrInvalidPlacement 包装的错误，状态不变。
// 成功时清理上一场战斗的数据，初始化生命值并执行第一个敌方回合。
func (s *BattleTurnSystem) StartBattle(enemy EnemySetup, allies []AllySetup) error {
	if err := validateSetup(enemy, allies); err != nil {
		return err
	}

	s.resetBattle()

	s.enemyEntity = s.entityManager.CreateEntity()
	s.entityManager.AddComponent(s.enemyEntity, &components.CreatureComponent{
		ID:        enemy.ID,
		Name:      enemy.Name,
		HealthMax: enemy.HealthMax,
	})
	s.entityManager.AddComponent(s.enemyEntity, NewAttackPool(enemy.Pool))

	state := s.state()
	state.AllyOrder = make([]string, 0, len(allies))
	allyHealth := 0.0
	for _, ally := range allies {
		entity := s.entityManager.CreateEntity()
		s.entityManager.AddComponent(entity, &components.CreatureComponent{
			ID:        ally.ID,
			Name:      ally.Name,
			HealthMax: ally.HealthMax,
		})
		s.entityManager.AddComponent(entity, NewAttackPool(ally.Pool))
		s.entityManager.AddComponent(entity, &components.AttackOptionsComponent{})
		s.allies[ally.ID] = entity
		state.AllyOrder = append(state.AllyOrder, ally.ID)
		allyHealth += ally.HealthMax
	}

	state.EnemyHealth = enemy.HealthMax
	state.MaxEnemyHealth = enemy.HealthMax
	state.AllyHealth = allyHealth
	state.MaxAllyHealth = allyHealth
	state.Turn = 0
	state.Wave = 1

	log.Printf("[BattleTurnSystem] Battle started: enemy=%s (hp %.0f), %d allies (pool hp %.0f)",
		enemy.ID, enemy.HealthMax, len(allies), allyHealth)

	return s.runEnemyTurn()
}

func validateSetup(enemy EnemySetup, allies []AllySetup) error {
	if enemy.ID == "" {
		return fmt.Errorf("enemy id is required: %w", ErrInvalidPlacement)
	}
	if enemy.HealthMax <= 0 {
		return fmt.Errorf("enemy %s: health must be positive, got %v: %w", enemy.ID, enemy.HealthMax, ErrInvalidPlacement)
	}
	if len(enemy.Pool) == 0 {
		return fmt.Errorf("enemy %s: %w", enemy.ID, ErrEmptyAttackPool)
	}
	if len(allies) == 0 {
		return fmt.Errorf("at least one ally is required: %w", ErrInvalidPlacement)
	}

	seen := make(map[string]bool, len(allies))
	for i, ally := range allies {
		if ally.ID == "" {
			return fmt.Errorf("ally %d: id is required: %w", i, ErrInvalidPlacement)
		}
		if seen[ally.ID] {
			return fmt.Errorf("ally %s: duplicate id: %w", ally.ID, ErrInvalidPlacement)
		}
		seen[ally.ID] = true
		if ally.HealthMax <= 0 {
			return fmt.Errorf("ally %s: health must be positive, got %v: %w", ally.ID, ally.HealthMax, ErrInvalidPlacement)
		}
		if len(ally.Pool) == 0 {
			return fmt.Errorf("ally %s: %w", ally.ID, ErrEmptyAttackPool)
		}
	}
	return nil
}

// resetBattle 销毁上一场战斗的生物实体并清空网格
func (s *BattleTurnSystem) resetBattle() {
	s.placement.ClearAll()
	s.enemyPlacement = ecs.InvalidEntity

	if s.enemyEntity != ecs.InvalidEntity {
		s.entityManager.DestroyEntity(s.enemyEntity)
		s.enemyEntity = ecs.InvalidEntity
	}
	for id, entity := range s.allies {
		s.entityManager.DestroyEntity(entity)
		delete(s.allies, id)
	}

	*s.state() = components.CombatStateComponent{Phase: components.BattlePhaseIdle}
}

// runEnemyTurn 清空网格、放置敌方攻击并为每个我方生物抽取候选攻击
func (s *BattleTurnSystem) runEnemyTurn() error {
	state := s.state()
	state.Phase = components.BattlePhaseEnemyPlacing

	s.placement.ClearAll()
	s.enemyPlacement = ecs.InvalidEntity

	pool, ok := ecs.GetComponent[*components.AttackPoolComponent](s.entityManager, s.enemyEntity)
	if !ok {
		return fmt.Errorf("enemy entity %d has no attack pool", s.enemyEntity)
	}
	fp, err := DrawAttack(pool, s.rng)
	if err != nil {
		return fmt.Errorf("draw enemy attack: %w", err)
	}
	placed, err := s.placement.AddShape(fp, s.config.EnemyAnchor, types.SideEnemy, "")
	if err != nil {
		return fmt.Errorf("place enemy attack: %w", err)
	}
	s.enemyPlacement = placed.ID
	state.Turn++

	for _, allyID := range state.AllyOrder {
		entity := s.allies[allyID]
		allyPool, ok := ecs.GetComponent[*components.AttackPoolComponent](s.entityManager, entity)
		if !ok {
			return fmt.Errorf("ally %s has no attack pool", allyID)
		}
		opts, _ := s.options(allyID)
		opts.Options = opts.Options[:0]
		for i := 0; i < s.config.OptionsPerAlly; i++ {
			option, err := DrawAttack(allyPool, s.rng)
			if err != nil {
				return fmt.Errorf("draw attack for ally %s: %w", allyID, err)
			}
			opts.Options = append(opts.Options, option)
		}
		opts.Committed = false
		opts.Placement = ecs.InvalidEntity
	}

	state.Phase = components.BattlePhasePlayerSelecting
	log.Printf("[BattleTurnSystem] Turn %d: enemy placed %s at %s", state.Turn, fp.ID(), s.config.EnemyAnchor)
	return nil
}

// SubmitPlacement 我方生物放置一个候选攻击
//
// 参数：
//   - allyID: 我方生物ID
//   - optionIndex: 候选攻击下标
//   - target: 拖放的目标格子，形状中心对齐到该格子
//
// 返回：
//   - error: 阶段不对、生物未知、下标越界、目标超出棋盘或已放置时返回
//     ErrInvalidPlacement 包装的错误，状态不变
func (s *BattleTurnSystem) SubmitPlacement(allyID string, optionIndex int, target types.Coord) error {
	if err := s.requirePhase(components.BattlePhasePlayerSelecting); err != nil {
		return err
	}
	opts, ok := s.options(allyID)
	if !ok {
		return fmt.Errorf("unknown ally %q: %w", allyID, ErrInvalidPlacement)
	}
	if optionIndex < 0 || optionIndex >= len(opts.Options) {
		return fmt.Errorf("ally %s: option index %d out of range [0, %d): %w",
			allyID, optionIndex, len(opts.Options), ErrInvalidPlacement)
	}
	if !s.grid.InBounds(target) {
		return fmt.Errorf("ally %s: target %s is outside the board: %w", allyID, target, ErrInvalidPlacement)
	}
	if opts.Committed {
		return fmt.Errorf("ally %s has already placed this turn: %w", allyID, ErrInvalidPlacement)
	}

	option := opts.Options[optionIndex]
	placed, err := s.placement.AddShape(option, option.BaseFor(target), types.SideAlly, allyID)
	if err != nil {
		return err
	}
	opts.Committed = true
	opts.Placement = placed.ID

	log.Printf("[BattleTurnSystem] Ally %s placed %s at %s", allyID, option.ID(), target)
	return nil
}

// RetractPlacement 撤回我方生物本回合的放置
// 未放置时什么也不做
func (s *BattleTurnSystem) RetractPlacement(allyID string) error {
	if err := s.requirePhase(components.BattlePhasePlayerSelecting); err != nil {
		return err
	}
	if _, ok := s.allies[allyID]; !ok {
		return fmt.Errorf("unknown ally %q: %w", allyID, ErrInvalidPlacement)
	}

	removed, err := s.placement.RemoveAllByOwner(allyID)
	s.mustHoldInvariants(err)
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Printf("[BattleTurnSystem] Ally %s retracted %d placement(s)", allyID, removed)
	}
	return nil
}

// RemoveAtCell 点击撤销：移除按放置顺序第一个覆盖 target 的我方形状
// 返回是否移除了形状
func (s *BattleTurnSystem) RemoveAtCell(target types.Coord) (bool, error) {
	if err := s.requirePhase(components.BattlePhasePlayerSelecting); err != nil {
		return false, err
	}

	placed, ok := s.placement.FindShapeOccupying(target, types.SideAlly)
	if !ok {
		return false, nil
	}
	err := s.placement.RemoveShape(placed.ID)
	s.mustHoldInvariants(err)
	if err != nil {
		return false, err
	}
	log.Printf("[BattleTurnSystem] Removed %s of ally %s at %s", placed.Footprint.ID(), placed.OwnerID, target)
	return true, nil
}

// CanCommit 是否所有我方生物都已放置
func (s *BattleTurnSystem) CanCommit() bool {
	if s.state().Phase != components.BattlePhasePlayerSelecting {
		return false
	}
	ready, total := s.ReadyCount()
	return ready == total
}

// ReadyCount 返回已放置的我方生物数量和总数
func (s *BattleTurnSystem) ReadyCount() (ready, total int) {
	for _, allyID := range s.state().AllyOrder {
		total++
		if opts, ok := s.options(allyID); ok && opts.Committed {
			ready++
		}
	}
	return ready, total
}

// CommitTurn 结算本回合
//
// 双方伤害基于同一个网格快照计算并同时扣减，不做下限截断。
// 我方生命池 ≤ 0 时判负（优先检查），否则敌方生命值 ≤ 0 时判胜，
// 否则战斗继续并立即开始下一个敌方回合。
// 仍有我方生物未放置时返回 ErrNotAllCommitted，状态不变。
func (s *BattleTurnSystem) CommitTurn() (TurnResult, error) {
	if err := s.requirePhase(components.BattlePhasePlayerSelecting); err != nil {
		return TurnResult{}, err
	}
	if ready, total := s.ReadyCount(); ready != total {
		return TurnResult{}, fmt.Errorf("%d/%d ready: %w", ready, total, ErrNotAllCommitted)
	}

	state := s.state()
	state.Phase = components.BattlePhaseResolving

	toAllies := s.resolver.DamageToAllies(s.grid)
	toEnemy := s.resolver.DamageToEnemy(s.grid)
	state.AllyHealth -= toAllies
	state.EnemyHealth -= toEnemy

	switch {
	case state.AllyHealth <= 0:
		state.Phase = components.BattlePhaseLost
	case state.EnemyHealth <= 0:
		state.Phase = components.BattlePhaseWon
	default:
		state.Phase = components.BattlePhaseContinuing
	}

	result := TurnResult{
		Turn:           state.Turn,
		DamageToAllies: toAllies,
		DamageToEnemy:  toEnemy,
		AllyHealth:     state.AllyHealth,
		EnemyHealth:    state.EnemyHealth,
		Phase:          state.Phase,
	}
	log.Printf("[BattleTurnSystem] Turn %d resolved: allies took %.0f (hp %.0f), enemy took %.0f (hp %.0f) -> %s",
		result.Turn, toAllies, result.AllyHealth, toEnemy, result.EnemyHealth, result.Phase)

	if s.callbacks.OnTurnResolved != nil {
		s.callbacks.OnTurnResolved(result)
	}

	if state.Phase.IsTerminal() {
		won := state.Phase == components.BattlePhaseWon
		log.Printf("[BattleTurnSystem] Battle ended: won=%v", won)
		if s.callbacks.OnBattleEnded != nil {
			s.callbacks.OnBattleEnded(won)
		}
		return result, nil
	}

	if err := s.runEnemyTurn(); err != nil {
		return result, err
	}
	return result, nil
}

// Phase 返回当前阶段
func (s *BattleTurnSystem) Phase() components.BattlePhase {
	return s.state().Phase
}

// State 返回战斗状态的副本
func (s *BattleTurnSystem) State() components.CombatStateComponent {
	state := *s.state()
	state.AllyOrder = append([]string(nil), state.AllyOrder...)
	return state
}

// AttackOptions 返回我方生物本回合的候选攻击
func (s *BattleTurnSystem) AttackOptions(allyID string) ([]*shape.Footprint, bool) {
	opts, ok := s.options(allyID)
	if !ok {
		return nil, false
	}
	return append([]*shape.Footprint(nil), opts.Options...), true
}

// IsCommitted 我方生物本回合是否已放置
func (s *BattleTurnSystem) IsCommitted(allyID string) bool {
	opts, ok := s.options(allyID)
	return ok && opts.Committed
}

// EnemyAttack 返回本回合敌方放置的攻击
func (s *BattleTurnSystem) EnemyAttack() (PlacedShape, bool) {
	if s.enemyPlacement == ecs.InvalidEntity {
		return PlacedShape{}, false
	}
	return s.placement.Get(s.enemyPlacement)
}

// Preview 当前网格下的伤害预测
func (s *BattleTurnSystem) Preview() DamagePreview {
	return s.resolver.Preview(s.grid)
}

func (s *BattleTurnSystem) requirePhase(want components.BattlePhase) error {
	if phase := s.state().Phase; phase != want {
		return fmt.Errorf("battle is in phase %s, want %s: %w", phase, want, ErrInvalidPlacement)
	}
	return nil
}

// mustHoldInvariants 网格计数越界属于不可恢复的程序缺陷
func (s *BattleTurnSystem) mustHoldInvariants(err error) {
	if err != nil && errors.Is(err, ErrInvariantViolation) {
		log.Printf("[BattleTurnSystem] FATAL: %v", err)
		panic(err)
	}
}

func (s *BattleTurnSystem) handleGridChanged() {
	if s.callbacks.OnGridChanged != nil {
		s.callbacks.OnGridChanged()
	}
}

// handleShapeRemoved 我方形状被移除后，其所属生物恢复为未放置
func (s *BattleTurnSystem) handleShapeRemoved(allyID string) {
	if opts, ok := s.options(allyID); ok {
		opts.Committed = false
		opts.Placement = ecs.InvalidEntity
	}
	if s.callbacks.OnShapeRemoved != nil {
		s.callbacks.OnShapeRemoved(allyID)
	}
}
