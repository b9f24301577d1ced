package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"forest-wars/internal/bot"
	"forest-wars/internal/game"
	"forest-wars/internal/protocol"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinner(t *testing.T) {
	tests := []struct {
		name  string
		ally  factionStats
		enemy factionStats
		want  game.Faction
	}{
		{"more cells", factionStats{cells: 5, units: 1}, factionStats{cells: 4, units: 50}, game.Ally},
		{"enemy cells", factionStats{cells: 2}, factionStats{cells: 3}, game.Enemy},
		{"units break ties", factionStats{cells: 3, units: 10}, factionStats{cells: 3, units: 12}, game.Enemy},
		{"draw", factionStats{cells: 3, units: 10}, factionStats{cells: 3, units: 10}, game.Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runStats{ally: tt.ally, enemy: tt.enemy}.winner())
		})
	}
}

func TestAggregate(t *testing.T) {
	all := []runStats{
		{turns: 10, ally: factionStats{cells: 5}, enemy: factionStats{cells: 1}},
		{turns: 20, ally: factionStats{cells: 1}, enemy: factionStats{cells: 5}},
		{turns: 30, ally: factionStats{cells: 2}, enemy: factionStats{cells: 2}},
	}

	allyWins, enemyWins, draws, avg := aggregate(all)
	assert.Equal(t, 1, allyWins)
	assert.Equal(t, 1, enemyWins)
	assert.Equal(t, 1, draws)
	assert.InDelta(t, 20.0, avg, 0.001)

	_, _, _, avg = aggregate(nil)
	assert.Zero(t, avg)
}

func TestRenderField(t *testing.T) {
	snap := game.Snapshot{
		Width:  2,
		Height: 2,
		Cells: [][]game.Cell{
			{{Faction: game.Enemy, Units: 10, BuildingLevel: 1}, {Faction: game.Neutral, Units: 7}},
			{{Faction: game.Ally, Units: 3, Selected: true}, {Faction: game.Ally, Units: 120, BuildingLevel: 2}},
		},
	}

	assert.Equal(t, "E 10/1  .  7/0 \nA  3/0* A120/2 \n", renderField(snap))
	assert.Equal(t, 2, cellsOf(snap, game.Ally))

	var f factionStats
	f.fill(snap, game.Ally)
	assert.Equal(t, factionStats{cells: 2, units: 123, buildings: 1, levels: 2}, f)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b\n", indent("a\nb\n", "  "))
	assert.Equal(t, "", indent("", "  "))
}

func weakNeutralRules() game.Rules {
	rules := game.DefaultRules()
	rules.NeutralMinUnits = 1
	rules.NeutralMaxUnits = 1
	rules.SettleDelay = 0
	return rules
}

func TestReplayScript(t *testing.T) {
	script := strings.Join([]string{
		`# opening`,
		`{"type":"initialize_field"}`,
		`{"type":"cell_tapped","payload":{"row":9,"column":2}}`,
		`{"type":"cell_tapped","payload":{"row":8,"column":2}}`,
		`{"type":"end_turn"}`,
		``,
		`{"type":"cell_tapped","payload":{"row":5,"column":0}}`,
	}, "\n")
	path := filepath.Join(t.TempDir(), "script.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))

	var events bytes.Buffer
	stats, err := replayScript(path, weakNeutralRules(), 1, &events, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.operations)
	assert.Equal(t, 1, stats.inert)
	assert.False(t, stats.playerTurn)
	assert.Equal(t, 4, stats.ally.cells)
	assert.Equal(t, 12+2+12+9, stats.ally.units)

	lines := 0
	scanner := bufio.NewScanner(&events)
	for scanner.Scan() {
		var msg protocol.Message
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &msg))
		assert.NotEmpty(t, msg.ID)
		lines++
	}
	assert.Equal(t, stats.notifications, lines)
}

func TestReplayScriptRejectsUnknownOperation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"turn_changed"}`+"\n"), 0644))

	_, err := replayScript(path, weakNeutralRules(), 1, nil, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestRunKeepsEventsWrittenBeforeAFailure(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.jsonl")
	events := filepath.Join(dir, "events.jsonl")
	require.NoError(t, os.WriteFile(script, []byte(`{"type":"initialize_field"}`+"\n"+`{"type":"bogus"}`+"\n"), 0644))

	var stdout bytes.Buffer
	err := run(options{
		runs:       1,
		turns:      1,
		rulesPath:  filepath.Join(dir, "missing-rules.yaml"),
		logLevel:   "error",
		eventsPath: events,
		scriptPath: script,
	}, &stdout, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(events)
	require.NoError(t, err)
	rules := game.DefaultRules()
	assert.Equal(t, rules.Width*rules.Height+1, strings.Count(string(data), "\n"),
		"every notification of the field initialization is on disk")
}

func TestRunRejectsNonPositiveRuns(t *testing.T) {
	err := run(options{runs: 0, turns: 1, rulesPath: filepath.Join(t.TempDir(), "none.yaml")}, io.Discard, io.Discard)
	assert.Error(t, err)
}

func TestRunMatch(t *testing.T) {
	stats, err := runMatch(1, 42, 10, game.DefaultRules(), bot.Aggressive, bot.Defensive, nil, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.runIndex)
	assert.LessOrEqual(t, stats.turns, 10)
	assert.Positive(t, stats.turns)
	assert.NotEmpty(t, stats.field)
	assert.Equal(t, game.DefaultRules().Height, strings.Count(stats.field, "\n"))
}
