package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/gonewx/rangers/pkg/components"
	"github.com/gonewx/rangers/pkg/config"
	"github.com/gonewx/rangers/pkg/systems"
	"github.com/gonewx/rangers/pkg/types"
)

// BattleOutcome 一场自动战斗的结果
type BattleOutcome struct {
	Won     bool
	Turns   int
	Results []systems.TurnResult
}

// AutoPlayer 贪心自动玩家
//
// 每个我方生物依次在所有候选攻击和棋盘格子中选择使
// (对敌伤害 - 对我方伤害) 最大的放置，平局时取先遍历到的。
type AutoPlayer struct {
	session *BattleSession
}

// NewAutoPlayer 创建自动玩家
func NewAutoPlayer(session *BattleSession) *AutoPlayer {
	return &AutoPlayer{session: session}
}

// PlayTurn 为所有未放置的我方生物放置攻击并结算本回合
func (p *AutoPlayer) PlayTurn() (systems.TurnResult, error) {
	turns := p.session.Turns
	for _, allyID := range turns.State().AllyOrder {
		if turns.IsCommitted(allyID) {
			continue
		}
		option, target, ok := p.bestPlacement(allyID)
		if !ok {
			return systems.TurnResult{}, fmt.Errorf("ally %s has no legal placement", allyID)
		}
		if err := turns.SubmitPlacement(allyID, option, target); err != nil {
			return systems.TurnResult{}, err
		}
	}
	return turns.CommitTurn()
}

// PlayBattle 自动进行战斗直到结束或达到回合上限
func (p *AutoPlayer) PlayBattle(maxTurns int) (BattleOutcome, error) {
	var outcome BattleOutcome
	for i := 0; i < maxTurns; i++ {
		result, err := p.PlayTurn()
		if err != nil {
			return outcome, err
		}
		outcome.Results = append(outcome.Results, result)
		outcome.Turns = result.Turn
		if result.Phase.IsTerminal() {
			outcome.Won = result.Phase == components.BattlePhaseWon
			return outcome, nil
		}
	}
	log.Printf("[AutoPlayer] Warning: battle not finished after %d turns", maxTurns)
	return outcome, nil
}

// bestPlacement 枚举候选攻击和棋盘格子，返回得分最高的放置
func (p *AutoPlayer) bestPlacement(allyID string) (int, types.Coord, bool) {
	options, ok := p.session.Turns.AttackOptions(allyID)
	if !ok || len(options) == 0 {
		return 0, types.Coord{}, false
	}

	bounds := p.session.Grid.Bounds()
	width, height := bounds.Width, bounds.Height
	if bounds.Unbounded() {
		// 无界棋盘按默认尺寸搜索
		width, height = config.DefaultBoardSize, config.DefaultBoardSize
	}

	bestScore := 0.0
	bestOption, bestTarget, found := 0, types.Coord{}, false
	for i, fp := range options {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				target := types.Coord{X: x, Y: y}
				overlay := newOverlayGrid(p.session.Grid)
				base := fp.BaseFor(target)
				for _, c := range fp.Cells() {
					overlay.extra[base.Add(c)]++
				}
				score := p.session.Resolver.DamageToEnemy(overlay) - p.session.Resolver.DamageToAllies(overlay)
				if !found || score > bestScore {
					bestScore, bestOption, bestTarget, found = score, i, target, true
				}
			}
		}
	}
	return bestOption, bestTarget, found
}

// overlayGrid 在真实网格上叠加假设的我方计数，不修改真实网格
type overlayGrid struct {
	base  *systems.OccupancyGridSystem
	extra map[types.Coord]int
}

func newOverlayGrid(base *systems.OccupancyGridSystem) *overlayGrid {
	return &overlayGrid{base: base, extra: make(map[types.Coord]int)}
}

func (o *overlayGrid) StateAt(c types.Coord) types.CellState {
	ally, enemy := o.base.Counts(c)
	return types.ClassifyCounts(ally+o.extra[c], enemy)
}

func (o *overlayGrid) AllCoordinatesInState(state types.CellState) []types.Coord {
	candidates := make(map[types.Coord]bool)
	for _, s := range []types.CellState{types.CellAlly, types.CellEnemy, types.CellClash} {
		for _, c := range o.base.AllCoordinatesInState(s) {
			candidates[c] = true
		}
	}
	for c := range o.extra {
		candidates[c] = true
	}

	var out []types.Coord
	for c := range candidates {
		if o.StateAt(c) == state {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
