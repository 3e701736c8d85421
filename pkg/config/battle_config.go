package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/rangers/pkg/types"
)

// 战斗默认参数
const (
	// DefaultBoardSize 默认可见棋盘边长（15x15）
	DefaultBoardSize = 15

	// DefaultOptionsPerAlly 每回合给每个我方生物提供的候选攻击数量
	DefaultOptionsPerAlly = 2
)

// DamageRules 伤害结算的可调规则
type DamageRules struct {
	// AdjacentAlliesReduceDamage 敌方格子每有一个正交相邻的我方格子，伤害减 1（最低为 1）
	AdjacentAlliesReduceDamage bool `yaml:"adjacentAlliesReduceDamage"`

	// SymmetricEnemyDamage 对敌伤害也使用相邻加成公式
	// 关闭时（默认）对敌伤害 = 我方格子数量
	SymmetricEnemyDamage bool `yaml:"symmetricEnemyDamage"`
}

// BoardBounds 棋盘可放置范围
// Width 或 Height 为 0 表示无界
type BoardBounds struct {
	Width  int
	Height int
}

// Unbounded 是否无界
func (b BoardBounds) Unbounded() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Contains 判断坐标是否在范围内，无界时总是返回 true
func (b BoardBounds) Contains(c types.Coord) bool {
	if b.Unbounded() {
		return true
	}
	return c.X >= 0 && c.Y >= 0 && c.X < b.Width && c.Y < b.Height
}

// BattleConfig 战斗配置（battle.yaml）
type BattleConfig struct {
	BoardWidth     int         `yaml:"boardWidth"`     // 棋盘宽度，默认 15
	BoardHeight    int         `yaml:"boardHeight"`    // 棋盘高度，默认 15
	EnemyAnchor    types.Coord `yaml:"enemyAnchor"`    // 敌方攻击形状的放置基准点，默认 (0,0)
	OptionsPerAlly int         `yaml:"optionsPerAlly"` // 每个我方生物每回合的候选攻击数，默认 2
	Rules          DamageRules `yaml:"rules"`          // 伤害规则
}

// DefaultBattleConfig 返回默认战斗配置
func DefaultBattleConfig() *BattleConfig {
	cfg := &BattleConfig{}
	applyBattleDefaults(cfg)
	return cfg
}

// Bounds 返回棋盘范围
func (c *BattleConfig) Bounds() BoardBounds {
	return BoardBounds{Width: c.BoardWidth, Height: c.BoardHeight}
}

// LoadBattleConfig 从YAML文件加载战斗配置
//
// 参数：
//
//	path - 配置文件路径
//
// 返回：
//
//	*BattleConfig - 解析并补全默认值后的配置
//	error - 读取、解析或校验失败时返回错误
func LoadBattleConfig(path string) (*BattleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read battle config file %s: %w", path, err)
	}
	cfg, err := ParseBattleConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseBattleConfig 解析 battle.yaml 内容
func ParseBattleConfig(data []byte) (*BattleConfig, error) {
	var cfg BattleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse battle config YAML: %w", err)
	}

	applyBattleDefaults(&cfg)

	if err := validateBattleConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid battle config: %w", err)
	}
	return &cfg, nil
}

// applyBattleDefaults 为缺失字段设置默认值
func applyBattleDefaults(cfg *BattleConfig) {
	if cfg.BoardWidth == 0 {
		cfg.BoardWidth = DefaultBoardSize
	}
	if cfg.BoardHeight == 0 {
		cfg.BoardHeight = DefaultBoardSize
	}
	if cfg.OptionsPerAlly == 0 {
		cfg.OptionsPerAlly = DefaultOptionsPerAlly
	}
}

func validateBattleConfig(cfg *BattleConfig) error {
	if cfg.BoardWidth < 0 || cfg.BoardHeight < 0 {
		return fmt.Errorf("board size cannot be negative, got %dx%d", cfg.BoardWidth, cfg.BoardHeight)
	}
	if cfg.OptionsPerAlly < 0 {
		return fmt.Errorf("optionsPerAlly cannot be negative, got %d", cfg.OptionsPerAlly)
	}
	return nil
}
