package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestGame creates an initialized game whose every cell is a neutral
// cell with the given unit count, so tests can place pieces explicitly.
func newTestGame(t *testing.T, neutralUnits int) *GameState {
	t.Helper()

	g, err := NewGame(DefaultRules(), 1)
	require.NoError(t, err)
	g.InitializeGameField()

	g.forEach(func(_, _ int, c *Cell) {
		*c = Cell{Faction: Neutral, Units: neutralUnits}
	})
	return g
}

// place writes a cell directly, bypassing notifications.
func place(g *GameState, row, column int, c Cell) {
	g.cells[row][column] = c
}

// effectTypes lists the types of a batch of effects in order.
func effectTypes(effects []Effect) []EffectType {
	types := make([]EffectType, len(effects))
	for i, e := range effects {
		types[i] = e.Type
	}
	return types
}

// assertInvariants checks unit and building bounds plus the single-anchor rule.
func assertInvariants(t *testing.T, g *GameState) {
	t.Helper()

	g.forEach(func(row, column int, c *Cell) {
		require.GreaterOrEqual(t, c.Units, 0, "cell (%d,%d) units", row, column)
		require.GreaterOrEqual(t, c.BuildingLevel, 0, "cell (%d,%d) level", row, column)
		require.LessOrEqual(t, c.BuildingLevel, MaxBuildingLevel, "cell (%d,%d) level", row, column)
	})
	if g.anchor == nil {
		return
	}
	a, ok := g.Cell(g.anchor.Row, g.anchor.Column)
	require.True(t, ok, "anchor must be on the field")
	require.True(t, a.Selected, "anchor must be selected")
}
