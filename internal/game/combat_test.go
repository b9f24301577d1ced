package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		source     Cell
		target     Cell
		wantSource Cell
		wantTarget Cell
	}{
		{
			name:       "reinforcement adds up",
			source:     Cell{Faction: Ally, Units: 5},
			target:     Cell{Faction: Ally, Units: 3},
			wantSource: Cell{Faction: Ally, Units: 0},
			wantTarget: Cell{Faction: Ally, Units: 8},
		},
		{
			name:       "enemy reinforcement adds up",
			source:     Cell{Faction: Enemy, Units: 1},
			target:     Cell{Faction: Enemy, Units: 90, BuildingLevel: 2},
			wantSource: Cell{Faction: Enemy, Units: 0},
			wantTarget: Cell{Faction: Enemy, Units: 91, BuildingLevel: 2},
		},
		{
			name:       "attrition conquers",
			source:     Cell{Faction: Ally, Units: 10},
			target:     Cell{Faction: Enemy, Units: 4},
			wantSource: Cell{Faction: Ally, Units: 0},
			wantTarget: Cell{Faction: Ally, Units: 6},
		},
		{
			name:       "outnumbered attacker still repaints target",
			source:     Cell{Faction: Ally, Units: 3},
			target:     Cell{Faction: Enemy, Units: 10},
			wantSource: Cell{Faction: Ally, Units: 0},
			wantTarget: Cell{Faction: Ally, Units: 7},
		},
		{
			name:       "equal forces leave an empty conquered cell",
			source:     Cell{Faction: Enemy, Units: 6},
			target:     Cell{Faction: Ally, Units: 6},
			wantSource: Cell{Faction: Enemy, Units: 0},
			wantTarget: Cell{Faction: Enemy, Units: 0},
		},
		{
			name:       "neutral target keeps its building",
			source:     Cell{Faction: Enemy, Units: 20, BuildingLevel: 1},
			target:     Cell{Faction: Neutral, Units: 8, BuildingLevel: 1},
			wantSource: Cell{Faction: Enemy, Units: 0, BuildingLevel: 1},
			wantTarget: Cell{Faction: Enemy, Units: 12, BuildingLevel: 1},
		},
		{
			name:       "selection is cleared",
			source:     Cell{Faction: Ally, Units: 2, Selected: true},
			target:     Cell{Faction: Neutral, Units: 1, Selected: true},
			wantSource: Cell{Faction: Ally, Units: 0},
			wantTarget: Cell{Faction: Ally, Units: 1},
		},
		{
			name:       "neutral source does nothing",
			source:     Cell{Faction: Neutral, Units: 40},
			target:     Cell{Faction: Ally, Units: 1},
			wantSource: Cell{Faction: Neutral, Units: 40},
			wantTarget: Cell{Faction: Ally, Units: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Resolve(tc.source, tc.target)
			assert.Equal(t, tc.wantSource, result.Source)
			assert.Equal(t, tc.wantTarget, result.Target)
			assert.Equal(t, tc.target.Faction, result.PreviousOwner)
		})
	}
}

func TestResolve_ReinforcedFlag(t *testing.T) {
	assert.True(t, Resolve(Cell{Faction: Ally, Units: 1}, Cell{Faction: Ally}).Reinforced)
	assert.False(t, Resolve(Cell{Faction: Ally, Units: 1}, Cell{Faction: Enemy}).Reinforced)
	assert.False(t, Resolve(Cell{Faction: Ally, Units: 1}, Cell{Faction: Neutral}).Reinforced)
}

func TestMoveUnits_EffectOrder(t *testing.T) {
	g := newTestGame(t, 1)
	place(g, 5, 2, Cell{Faction: Ally, Units: 5})
	place(g, 5, 3, Cell{Faction: Ally, Units: 3})

	_, err := g.CellTapped(5, 2)
	assert.NoError(t, err)
	selected := g.SelectedCount()

	effects := g.MoveUnits(Coord{5, 2}, Coord{5, 3})

	want := make([]EffectType, 0, selected+4)
	for i := 0; i < selected; i++ {
		want = append(want, EffectSelectionChanged)
	}
	want = append(want, EffectCellUpdated, EffectCellUpdated, EffectSelectedCountChanged, EffectMovementStarted)
	assert.Equal(t, want, effectTypes(effects))

	dst, _ := g.Cell(5, 3)
	assert.Equal(t, 8, dst.Units)
	assertInvariants(t, g)
}

func TestMoveUnits_OutnumberedAttackerRepaints(t *testing.T) {
	g := newTestGame(t, 1)
	place(g, 5, 2, Cell{Faction: Ally, Units: 3})
	place(g, 5, 3, Cell{Faction: Enemy, Units: 10, BuildingLevel: 1})

	g.MoveUnits(Coord{5, 2}, Coord{5, 3})

	dst, _ := g.Cell(5, 3)
	assert.Equal(t, Cell{Faction: Ally, Units: 7, BuildingLevel: 1}, dst)
	src, _ := g.Cell(5, 2)
	assert.Equal(t, Cell{Faction: Ally}, src)
	assertInvariants(t, g)
}

func TestMoveUnits_OutOfBounds(t *testing.T) {
	g := newTestGame(t, 1)
	assert.Nil(t, g.MoveUnits(Coord{0, 0}, Coord{-1, 0}))
}
