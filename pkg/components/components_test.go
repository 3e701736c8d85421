package components

import "testing"

func TestCellOccupancyEmpty(t *testing.T) {
	tests := []struct {
		name string
		cell CellOccupancy
		want bool
	}{
		{"both zero", CellOccupancy{}, true},
		{"ally only", CellOccupancy{Ally: 1}, false},
		{"enemy only", CellOccupancy{Enemy: 2}, false},
		{"both", CellOccupancy{Ally: 1, Enemy: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBattlePhaseIsTerminal(t *testing.T) {
	terminal := map[BattlePhase]bool{
		BattlePhaseIdle:            false,
		BattlePhaseEnemyPlacing:    false,
		BattlePhasePlayerSelecting: false,
		BattlePhaseResolving:       false,
		BattlePhaseContinuing:      false,
		BattlePhaseWon:             true,
		BattlePhaseLost:            true,
	}
	for phase, want := range terminal {
		if got := phase.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", phase, got, want)
		}
	}
}
