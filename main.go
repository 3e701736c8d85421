package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/rangers/pkg/config"
	"github.com/gonewx/rangers/pkg/embedded"
	"github.com/gonewx/rangers/pkg/game"
	"github.com/gonewx/rangers/pkg/utils"
)

var (
	dataDir        = flag.String("data", "", "数据目录（为空时使用嵌入数据）")
	enemyID        = flag.String("enemy", "mossback", "敌方生物ID")
	allyIDs        = flag.String("allies", "emberfox,reedling", "我方生物ID，逗号分隔")
	seed           = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	battles        = flag.Int("n", 1, "模拟的战斗场数")
	maxTurns       = flag.Int("max-turns", 100, "每场战斗的回合上限")
	reduceAdjacent = flag.Bool("reduce-adjacent", false, "开启相邻我方格子减伤规则（覆盖设置）")
	useSettings    = flag.Bool("settings", false, "读取已保存的战斗设置")
	verbose        = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(dataFS)

	data, err := loadGameData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	settings, err := openSettings(data.Battle.Rules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *reduceAdjacent {
		settings.SetAdjacentAlliesReduceDamage(true)
	}

	allies := strings.Split(*allyIDs, ",")
	rng := utils.NewRand(*seed)

	wins := 0
	totalTurns := 0
	for i := 0; i < *battles; i++ {
		session := game.NewBattleSession(data, settings, rng)
		if err := session.Start(*enemyID, allies); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		outcome, err := game.NewAutoPlayer(session).PlayBattle(*maxTurns)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: battle %d: %v\n", i+1, err)
			os.Exit(1)
		}

		state := session.Turns.State()
		result := "LOST"
		if outcome.Won {
			wins++
			result = "WON"
		}
		totalTurns += outcome.Turns
		fmt.Printf("battle %d: %s after %d turns (allies %.0f/%.0f, enemy %.0f/%.0f)\n",
			i+1, result, outcome.Turns,
			state.AllyHealth, state.MaxAllyHealth, state.EnemyHealth, state.MaxEnemyHealth)
	}

	if *battles > 0 {
		fmt.Printf("won %d/%d, average %.1f turns\n", wins, *battles, float64(totalTurns)/float64(*battles))
	}
}

// loadGameData 从 -data 指定的目录或嵌入数据加载静态数据
func loadGameData() (*config.GameData, error) {
	var fsys fs.FS
	if *dataDir != "" {
		fsys = os.DirFS(*dataDir)
	} else {
		sub, err := embedded.DataFS()
		if err != nil {
			return nil, err
		}
		fsys = sub
	}
	return config.LoadAll(fsys)
}

// openSettings 创建设置管理器，未指定 -settings 时使用内存设置
func openSettings(defaults config.DamageRules) (*game.SettingsManager, error) {
	var gdataManager *gdata.Manager
	if *useSettings {
		m, err := gdata.Open(gdata.Config{AppName: "rangers"})
		if err != nil {
			log.Printf("[Main] Warning: Failed to open settings storage: %v (using in-memory settings)", err)
		} else {
			gdataManager = m
		}
	}
	return game.NewSettingsManager(gdataManager, defaults)
}
