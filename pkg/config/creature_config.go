package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CreatureConfig 生物配置
// 同一个生物既可以作为敌人出现，也可以被捕获后作为我方参战
type CreatureConfig struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`           // 显示名，默认为 ID
	Description    string   `yaml:"description"`    // 描述（可选）
	HealthMaxAlly  float64  `yaml:"healthMaxAlly"`  // 作为我方时贡献给生命池的最大生命值
	HealthMaxEnemy float64  `yaml:"healthMaxEnemy"` // 作为敌人时的最大生命值
	EnemyShapePool []string `yaml:"enemyShapePool"` // 作为敌人时的攻击形状池
	AllyShapePool  []string `yaml:"allyShapePool"`  // 作为我方时的攻击形状池
}

// CreaturesConfig 生物库配置（creatures.yaml）
type CreaturesConfig struct {
	Creatures []CreatureConfig `yaml:"creatures"`

	byID map[string]*CreatureConfig
}

// LoadCreaturesConfig 从YAML文件加载生物库配置
func LoadCreaturesConfig(path string) (*CreaturesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read creatures config file %s: %w", path, err)
	}
	cfg, err := ParseCreaturesConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseCreaturesConfig 解析 creatures.yaml 内容
func ParseCreaturesConfig(data []byte) (*CreaturesConfig, error) {
	var cfg CreaturesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse creatures config YAML: %w", err)
	}

	for i := range cfg.Creatures {
		if cfg.Creatures[i].Name == "" {
			cfg.Creatures[i].Name = cfg.Creatures[i].ID
		}
	}

	if err := validateCreaturesConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid creatures config: %w", err)
	}

	cfg.byID = make(map[string]*CreatureConfig, len(cfg.Creatures))
	for i := range cfg.Creatures {
		cfg.byID[cfg.Creatures[i].ID] = &cfg.Creatures[i]
	}
	return &cfg, nil
}

func validateCreaturesConfig(cfg *CreaturesConfig) error {
	if len(cfg.Creatures) == 0 {
		return fmt.Errorf("at least one creature is required")
	}

	seen := make(map[string]bool, len(cfg.Creatures))
	for i, c := range cfg.Creatures {
		if c.ID == "" {
			return fmt.Errorf("creature %d: id is required", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("creature %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = true

		if c.HealthMaxAlly <= 0 {
			return fmt.Errorf("creature %q: healthMaxAlly must be positive, got %v", c.ID, c.HealthMaxAlly)
		}
		if c.HealthMaxEnemy <= 0 {
			return fmt.Errorf("creature %q: healthMaxEnemy must be positive, got %v", c.ID, c.HealthMaxEnemy)
		}
		if len(c.EnemyShapePool) == 0 {
			return fmt.Errorf("creature %q: enemyShapePool cannot be empty", c.ID)
		}
		if len(c.AllyShapePool) == 0 {
			return fmt.Errorf("creature %q: allyShapePool cannot be empty", c.ID)
		}
	}
	return nil
}

// Creature 按ID查找生物配置
func (c *CreaturesConfig) Creature(id string) (*CreatureConfig, bool) {
	cc, ok := c.byID[id]
	return cc, ok
}

// validateShapeRefs 校验所有形状池引用的形状都存在于形状库中
func (c *CreaturesConfig) validateShapeRefs(lib *ShapeLibrary) error {
	for _, cc := range c.Creatures {
		for _, id := range cc.EnemyShapePool {
			if _, ok := lib.Footprint(id); !ok {
				return fmt.Errorf("creature %q: enemyShapePool references unknown shape %q", cc.ID, id)
			}
		}
		for _, id := range cc.AllyShapePool {
			if _, ok := lib.Footprint(id); !ok {
				return fmt.Errorf("creature %q: allyShapePool references unknown shape %q", cc.ID, id)
			}
		}
	}
	return nil
}
