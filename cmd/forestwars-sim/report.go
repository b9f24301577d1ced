package main

import (
	"fmt"
	"io"
	"strings"

	"forest-wars/internal/game"
)

type factionStats struct {
	moves     int
	upgrades  int
	cells     int
	units     int
	buildings int
	levels    int
}

// fill records the faction's holdings at the end of a match.
func (f *factionStats) fill(snap game.Snapshot, faction game.Faction) {
	f.cells, f.units, f.buildings, f.levels = 0, 0, 0, 0
	for _, row := range snap.Cells {
		for _, c := range row {
			if c.Faction != faction {
				continue
			}
			f.cells++
			f.units += c.Units
			if c.BuildingLevel > 0 {
				f.buildings++
				f.levels += c.BuildingLevel
			}
		}
	}
}

type runStats struct {
	runIndex int
	seed     int64
	turns    int

	ally  factionStats
	enemy factionStats
	field string
}

// winner ranks by cells held, then units; Neutral means a draw.
func (r runStats) winner() game.Faction {
	switch {
	case r.ally.cells > r.enemy.cells:
		return game.Ally
	case r.enemy.cells > r.ally.cells:
		return game.Enemy
	case r.ally.units > r.enemy.units:
		return game.Ally
	case r.enemy.units > r.ally.units:
		return game.Enemy
	default:
		return game.Neutral
	}
}

// eliminated reports whether a faction lost every cell.
func (r runStats) eliminated() bool {
	return r.ally.cells == 0 || r.enemy.cells == 0
}

type scriptStats struct {
	operations    int
	inert         int
	notifications int
	playerTurn    bool

	ally  factionStats
	enemy factionStats
	field string
}

func cellsOf(snap game.Snapshot, faction game.Faction) int {
	n := 0
	for _, row := range snap.Cells {
		for _, c := range row {
			if c.Faction == faction {
				n++
			}
		}
	}
	return n
}

// renderField draws the field one row per line. Each cell is its faction
// letter, unit count and building level; an asterisk marks a selection.
func renderField(snap game.Snapshot) string {
	var b strings.Builder
	for _, row := range snap.Cells {
		for column, c := range row {
			if column > 0 {
				b.WriteByte(' ')
			}
			sel := ' '
			if c.Selected {
				sel = '*'
			}
			fmt.Fprintf(&b, "%c%3d/%d%c", factionLetter(c.Faction), c.Units, c.BuildingLevel, sel)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func factionLetter(f game.Faction) byte {
	switch f {
	case game.Ally:
		return 'A'
	case game.Enemy:
		return 'E'
	default:
		return '.'
	}
}

func writeFaction(w io.Writer, name string, f factionStats) {
	fmt.Fprintf(w, "  %-5s cells=%d units=%d buildings=%d levels=%d moves=%d upgrades=%d\n",
		name, f.cells, f.units, f.buildings, f.levels, f.moves, f.upgrades)
}

func writeRun(w io.Writer, r runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", r.runIndex, r.seed)
	fmt.Fprintf(w, "  turns=%d winner=%s eliminated=%t\n", r.turns, r.winner(), r.eliminated())
	writeFaction(w, "ally", r.ally)
	writeFaction(w, "enemy", r.enemy)
	fmt.Fprint(w, indent(r.field, "    "))
	fmt.Fprintln(w)
}

// aggregate sums wins over all runs.
func aggregate(all []runStats) (allyWins, enemyWins, draws int, avgTurns float64) {
	if len(all) == 0 {
		return 0, 0, 0, 0
	}
	total := 0
	for _, r := range all {
		switch r.winner() {
		case game.Ally:
			allyWins++
		case game.Enemy:
			enemyWins++
		default:
			draws++
		}
		total += r.turns
	}
	return allyWins, enemyWins, draws, float64(total) / float64(len(all))
}

func writeAggregate(w io.Writer, all []runStats) {
	allyWins, enemyWins, draws, avgTurns := aggregate(all)
	fmt.Fprintf(w, "=== Aggregate ===\n")
	fmt.Fprintf(w, "  runs=%d ally_wins=%d enemy_wins=%d draws=%d avg_turns=%.1f\n", len(all), allyWins, enemyWins, draws, avgTurns)
}

func writeScriptReport(w io.Writer, path string, s scriptStats) {
	fmt.Fprintf(w, "=== Forest Wars Script Replay ===\n")
	fmt.Fprintf(w, "script=%s operations=%d inert=%d notifications=%d player_turn=%t\n",
		path, s.operations, s.inert, s.notifications, s.playerTurn)
	writeFaction(w, "ally", s.ally)
	writeFaction(w, "enemy", s.enemy)
	fmt.Fprint(w, indent(s.field, "    "))
}

func indent(text, prefix string) string {
	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}
