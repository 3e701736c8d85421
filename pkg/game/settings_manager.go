package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/rangers/pkg/config"
)

// BattleSettings 玩家可调整的战斗设置
// 这些设置是全局的，覆盖 battle.yaml 中的规则默认值
type BattleSettings struct {
	// 规则设置
	AdjacentAlliesReduceDamage bool `yaml:"adjacentAlliesReduceDamage"` // 相邻我方格子降低敌方伤害
	SymmetricEnemyDamage       bool `yaml:"symmetricEnemyDamage"`       // 对敌伤害使用相邻加成

	// 显示设置
	ShowDamageNumbers bool `yaml:"showDamageNumbers"` // 是否显示每格伤害预测数字
}

// DefaultSettings 根据配置文件中的规则生成默认设置
func DefaultSettings(rules config.DamageRules) *BattleSettings {
	return &BattleSettings{
		AdjacentAlliesReduceDamage: rules.AdjacentAlliesReduceDamage,
		SymmetricEnemyDamage:       rules.SymmetricEnemyDamage,
		ShowDamageNumbers:          true,
	}
}

// ApplyTo 用设置覆盖伤害规则
func (s *BattleSettings) ApplyTo(rules *config.DamageRules) {
	rules.AdjacentAlliesReduceDamage = s.AdjacentAlliesReduceDamage
	rules.SymmetricEnemyDamage = s.SymmetricEnemyDamage
}

// SettingsManager 设置管理器
// 负责战斗设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager     // gdata 跨平台存储管理器，可为 nil（降级模式）
	defaults     config.DamageRules // 配置文件中的规则默认值
	settings     *BattleSettings    // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "battle"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - defaults: 未保存过设置时使用的规则默认值
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方检查，加载失败不会导致创建失败
func NewSettingsManager(gdataManager *gdata.Manager, defaults config.DamageRules) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     defaults,
		settings:     DefaultSettings(defaults),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或尚未保存过设置，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings(sm.defaults)
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings(sm.defaults)
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings(sm.defaults)
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 先填入默认值，旧版本保存的数据缺少的字段保持默认
	loaded := DefaultSettings(sm.defaults)
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings(sm.defaults)
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Reset 恢复为配置文件中的默认值
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) Reset() {
	sm.settings = DefaultSettings(sm.defaults)
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *BattleSettings {
	return sm.settings
}

// Rules 返回应用了当前设置的伤害规则
func (sm *SettingsManager) Rules() config.DamageRules {
	rules := sm.defaults
	sm.settings.ApplyTo(&rules)
	return rules
}

// SetAdjacentAlliesReduceDamage 设置相邻我方格子减伤规则
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetAdjacentAlliesReduceDamage(enabled bool) {
	sm.settings.AdjacentAlliesReduceDamage = enabled
}

// SetSymmetricEnemyDamage 设置对敌伤害是否使用相邻加成
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSymmetricEnemyDamage(enabled bool) {
	sm.settings.SymmetricEnemyDamage = enabled
}

// SetShowDamageNumbers 设置是否显示伤害预测数字
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetShowDamageNumbers(enabled bool) {
	sm.settings.ShowDamageNumbers = enabled
}
