package main

import (
	"fmt"
	"os"

	"github.com/gonewx/rangers/pkg/config"
)

func main() {
	dir := "data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	fsys := os.DirFS(dir)

	data, err := config.LoadAll(fsys)
	if err != nil {
		fmt.Printf("❌ 数据校验失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确\n")
	fmt.Printf("✅ 棋盘 %dx%d，敌方基准点 %s\n", data.Battle.BoardWidth, data.Battle.BoardHeight, data.Battle.EnemyAnchor)
	fmt.Printf("✅ 形状数量: %d\n", len(data.Shapes.IDs()))
	fmt.Printf("✅ 生物数量: %d\n", len(data.Creatures.Creatures))

	// 未被任何形状池引用的形状
	used := make(map[string]bool)
	for _, c := range data.Creatures.Creatures {
		for _, id := range c.EnemyShapePool {
			used[id] = true
		}
		for _, id := range c.AllyShapePool {
			used[id] = true
		}
	}
	unused := 0
	for _, id := range data.Shapes.IDs() {
		if !used[id] {
			fmt.Printf("⚠️  形状 %s 未被任何生物使用\n", id)
			unused++
		}
	}

	if unused == 0 {
		fmt.Printf("✅ 所有形状都被引用\n")
	}
}
