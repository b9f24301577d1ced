package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndTurn_Sequence(t *testing.T) {
	g := newTestGame(t, 1)
	place(g, 9, 2, Cell{Faction: Ally, Units: 5, BuildingLevel: 1})
	place(g, 0, 2, Cell{Faction: Enemy, Units: 5, BuildingLevel: 1})

	_, err := g.CellTapped(9, 2)
	require.NoError(t, err)
	selected := g.SelectedCount()
	require.NotZero(t, selected)

	effects := g.EndTurn()

	want := []EffectType{EffectCellUpdated, EffectTurnChanged}
	for i := 0; i < selected; i++ {
		want = append(want, EffectSelectionChanged)
	}
	want = append(want, EffectSelectedCountChanged)
	assert.Equal(t, want, effectTypes(effects))

	assert.False(t, effects[1].IsPlayerTurn)
	assert.False(t, g.IsPlayerTurn)
	assert.Zero(t, g.SelectedCount())

	ally, _ := g.Cell(9, 2)
	enemy, _ := g.Cell(0, 2)
	assert.Equal(t, 5+g.Rules.IncomeRates[0], ally.Units, "ending faction is paid once")
	assert.Equal(t, 5, enemy.Units)

	g.EndTurn()
	assert.True(t, g.IsPlayerTurn)
	enemy, _ = g.Cell(0, 2)
	assert.Equal(t, 5+g.Rules.IncomeRates[0], enemy.Units)
}

func TestCountdown_DeadlineBased(t *testing.T) {
	r := DefaultRules()
	c := NewCountdown(r)
	start := time.Date(2025, 10, 9, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, r.TurnDuration, c.Remaining(start), "an unstarted countdown shows the full duration")
	assert.False(t, c.Expired(start))

	c.Reset(start)
	assert.Equal(t, start.Add(r.TurnDuration), c.Deadline())
	assert.Equal(t, r.TurnDuration, c.Remaining(start))
	assert.Equal(t, 20*time.Second, c.Remaining(start.Add(10*time.Second)))

	// A long suspension is absorbed by recomputing from the deadline.
	assert.Zero(t, c.Remaining(start.Add(time.Hour)))
	assert.True(t, c.Expired(start.Add(r.TurnDuration)))

	c.Reset(start.Add(time.Hour))
	assert.Equal(t, r.TurnDuration, c.Remaining(start.Add(time.Hour)))
}

func TestCountdown_Emphasis(t *testing.T) {
	c := NewCountdown(DefaultRules())

	assert.Equal(t, EmphasisNormal, c.Emphasis(30*time.Second))
	assert.Equal(t, EmphasisNormal, c.Emphasis(16*time.Second))
	assert.Equal(t, EmphasisMid, c.Emphasis(15*time.Second))
	assert.Equal(t, EmphasisMid, c.Emphasis(7*time.Second))
	assert.Equal(t, EmphasisLow, c.Emphasis(6*time.Second))
	assert.Equal(t, EmphasisLow, c.Emphasis(0))
}

func TestDisplaySeconds(t *testing.T) {
	assert.Equal(t, 30, DisplaySeconds(30*time.Second))
	assert.Equal(t, 30, DisplaySeconds(29*time.Second+time.Millisecond))
	assert.Equal(t, 1, DisplaySeconds(time.Millisecond))
	assert.Equal(t, 0, DisplaySeconds(0))
	assert.Equal(t, 0, DisplaySeconds(-time.Second))
}

func TestRules_Validate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	broken := []func(r *Rules){
		func(r *Rules) { r.Width = 0 },
		func(r *Rules) { r.Height = 1 },
		func(r *Rules) { r.StartBuildingCount = 0 },
		func(r *Rules) { r.StartBuildingCount = 26 },
		func(r *Rules) { r.NeutralMaxUnits = 0 },
		func(r *Rules) { r.UpgradeCosts[1] = -1 },
		func(r *Rules) { r.IncomeRates[0] = -1 },
		func(r *Rules) { r.TurnDuration = 0 },
		func(r *Rules) { r.SettleDelay = -time.Second },
		func(r *Rules) { r.LowThreshold = 0.7 },
	}
	for i, mutate := range broken {
		r := DefaultRules()
		mutate(&r)
		assert.ErrorIs(t, r.Validate(), ErrInvalidRules, "case %d", i)

		_, err := NewGame(r, 1)
		assert.Error(t, err, "case %d", i)
	}
}
