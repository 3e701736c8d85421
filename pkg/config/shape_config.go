package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/rangers/pkg/shape"
)

// Rarity 攻击形状的稀有度
type Rarity string

// Rarity 常量
const (
	RarityCommon Rarity = "common"
	RarityRare   Rarity = "rare"
	RarityEpic   Rarity = "epic"
)

// PaletteEntry 调色板条目
type PaletteEntry struct {
	Color string  `yaml:"color"` // "#rrggbb"
	Alpha float64 `yaml:"alpha"` // 0.0 ~ 1.0
}

// ShapeDefinition 单个攻击形状的定义
// Rows 与 Image 二选一
type ShapeDefinition struct {
	ID     string   `yaml:"id"`
	Rarity Rarity   `yaml:"rarity"` // 默认 common
	Rows   []string `yaml:"rows"`   // 按调色板解释的字符行
	Image  string   `yaml:"image"`  // 相对于数据目录的涂色图片路径（png/bmp/webp）
}

// ShapesConfig 攻击形状库配置（shapes.yaml）
type ShapesConfig struct {
	Palette map[string]PaletteEntry `yaml:"palette"` // 键必须是单个字符，为空时使用默认调色板
	Shapes  []ShapeDefinition       `yaml:"shapes"`
}

// ShapeLibrary 构建完成的形状库
type ShapeLibrary struct {
	footprints map[string]*shape.Footprint
	rarity     map[string]Rarity
	order      []string
}

// LoadShapesConfig 从YAML文件加载形状库配置
func LoadShapesConfig(path string) (*ShapesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shapes config file %s: %w", path, err)
	}
	cfg, err := ParseShapesConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseShapesConfig 解析 shapes.yaml 内容
func ParseShapesConfig(data []byte) (*ShapesConfig, error) {
	var cfg ShapesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse shapes config YAML: %w", err)
	}

	for i := range cfg.Shapes {
		if cfg.Shapes[i].Rarity == "" {
			cfg.Shapes[i].Rarity = RarityCommon
		}
	}

	if err := validateShapesConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid shapes config: %w", err)
	}
	return &cfg, nil
}

func validateShapesConfig(cfg *ShapesConfig) error {
	if len(cfg.Shapes) == 0 {
		return fmt.Errorf("at least one shape is required")
	}

	for key := range cfg.Palette {
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("palette key %q must be a single character", key)
		}
	}

	validRarity := map[Rarity]bool{
		RarityCommon: true,
		RarityRare:   true,
		RarityEpic:   true,
	}
	seen := make(map[string]bool, len(cfg.Shapes))
	for i, def := range cfg.Shapes {
		if def.ID == "" {
			return fmt.Errorf("shape %d: id is required", i)
		}
		if seen[def.ID] {
			return fmt.Errorf("shape %d: duplicate id %q", i, def.ID)
		}
		seen[def.ID] = true

		if !validRarity[def.Rarity] {
			return fmt.Errorf("shape %q: rarity must be one of: common, rare, epic, got %q", def.ID, def.Rarity)
		}
		hasRows := len(def.Rows) > 0
		hasImage := def.Image != ""
		if hasRows == hasImage {
			return fmt.Errorf("shape %q: exactly one of rows or image is required", def.ID)
		}
	}
	return nil
}

// buildPalette 把配置中的调色板转换为 shape.Palette
func (cfg *ShapesConfig) buildPalette() (shape.Palette, error) {
	if len(cfg.Palette) == 0 {
		return shape.DefaultPalette(), nil
	}
	palette := make(shape.Palette, len(cfg.Palette))
	for key, entry := range cfg.Palette {
		r, _ := utf8.DecodeRuneInString(key)
		c, err := shape.ParsePaintColor(entry.Color, entry.Alpha)
		if err != nil {
			return nil, fmt.Errorf("palette %q: %w", key, err)
		}
		palette[r] = c
	}
	return palette, nil
}

// BuildShapeLibrary 根据配置构建所有攻击形状
//
// 参数：
//   - cfg: 已校验的形状库配置
//   - fsys: 用于读取涂色图片的文件系统，可为 nil（此时不允许 image 定义）
//
// 返回：
//   - *ShapeLibrary: 形状库
//   - error: 任一形状构建失败时返回错误
func BuildShapeLibrary(cfg *ShapesConfig, fsys fs.FS) (*ShapeLibrary, error) {
	palette, err := cfg.buildPalette()
	if err != nil {
		return nil, err
	}

	lib := &ShapeLibrary{
		footprints: make(map[string]*shape.Footprint, len(cfg.Shapes)),
		rarity:     make(map[string]Rarity, len(cfg.Shapes)),
		order:      make([]string, 0, len(cfg.Shapes)),
	}
	for _, def := range cfg.Shapes {
		var fp *shape.Footprint
		if def.Image != "" {
			if fsys == nil {
				return nil, fmt.Errorf("shape %q: image %s needs a data filesystem", def.ID, def.Image)
			}
			data, err := fs.ReadFile(fsys, def.Image)
			if err != nil {
				return nil, fmt.Errorf("shape %q: failed to read image: %w", def.ID, err)
			}
			fp, err = shape.DecodeImage(def.ID, bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
		} else {
			fp, err = shape.FromPaletteRows(def.ID, def.Rows, palette)
			if err != nil {
				return nil, err
			}
		}
		if fp.OccupiedCount() == 0 {
			return nil, fmt.Errorf("shape %q: no occupied cells", def.ID)
		}
		lib.footprints[def.ID] = fp
		lib.rarity[def.ID] = def.Rarity
		lib.order = append(lib.order, def.ID)
	}
	return lib, nil
}

// Footprint 按ID查找形状
func (l *ShapeLibrary) Footprint(id string) (*shape.Footprint, bool) {
	fp, ok := l.footprints[id]
	return fp, ok
}

// Rarity 返回形状的稀有度
func (l *ShapeLibrary) Rarity(id string) Rarity {
	return l.rarity[id]
}

// IDs 按配置顺序返回所有形状ID
func (l *ShapeLibrary) IDs() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Resolve 把ID列表解析为形状列表，重复ID保留为多个元素
func (l *ShapeLibrary) Resolve(ids []string) ([]*shape.Footprint, error) {
	out := make([]*shape.Footprint, 0, len(ids))
	for _, id := range ids {
		fp, ok := l.footprints[id]
		if !ok {
			return nil, fmt.Errorf("unknown shape %q", id)
		}
		out = append(out, fp)
	}
	return out, nil
}
