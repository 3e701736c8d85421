package config

import (
	"fmt"
	"io/fs"
)

// 数据目录中的配置文件名
const (
	BattleConfigFile    = "battle.yaml"
	ShapesConfigFile    = "shapes.yaml"
	CreaturesConfigFile = "creatures.yaml"
)

// GameData 一次加载得到的全部静态数据
type GameData struct {
	Battle    *BattleConfig
	Shapes    *ShapeLibrary
	Creatures *CreaturesConfig
}

// LoadAll 从数据文件系统加载战斗、形状和生物配置
//
// 参数：
//   - fsys: 数据根目录（嵌入数据或 os.DirFS）
//
// 返回：
//   - *GameData: 全部静态数据，形状引用已校验
//   - error: 任一文件读取、解析或交叉校验失败时返回错误
func LoadAll(fsys fs.FS) (*GameData, error) {
	battleData, err := fs.ReadFile(fsys, BattleConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", BattleConfigFile, err)
	}
	battle, err := ParseBattleConfig(battleData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", BattleConfigFile, err)
	}

	shapesData, err := fs.ReadFile(fsys, ShapesConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ShapesConfigFile, err)
	}
	shapesCfg, err := ParseShapesConfig(shapesData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ShapesConfigFile, err)
	}
	lib, err := BuildShapeLibrary(shapesCfg, fsys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ShapesConfigFile, err)
	}

	creaturesData, err := fs.ReadFile(fsys, CreaturesConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", CreaturesConfigFile, err)
	}
	creatures, err := ParseCreaturesConfig(creaturesData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CreaturesConfigFile, err)
	}
	if err := creatures.validateShapeRefs(lib); err != nil {
		return nil, fmt.Errorf("%s: %w", CreaturesConfigFile, err)
	}

	return &GameData{
		Battle:    battle,
		Shapes:    lib,
		Creatures: creatures,
	}, nil
}
