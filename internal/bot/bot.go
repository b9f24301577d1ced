// Package bot implements a computer opponent. A bot plays exactly like a
// human: it only taps, double taps and ends turns.
package bot

import (
	"math/rand"
	"sort"

	"forest-wars/internal/game"

	"github.com/rs/zerolog"
)

// Personality defines bot behavior.
type Personality int

const (
	Aggressive Personality = iota
	Defensive
)

// String returns the personality name.
func (p Personality) String() string {
	switch p {
	case Defensive:
		return "Defensive"
	default:
		return "Aggressive"
	}
}

// ParsePersonality maps a name to a personality, defaulting to Aggressive.
func ParsePersonality(s string) Personality {
	switch s {
	case "defensive", "Defensive":
		return Defensive
	default:
		return Aggressive
	}
}

// Game is the part of a session a bot plays through.
type Game interface {
	Snapshot() game.Snapshot
	Rules() game.Rules
	CellTapped(row, column int) []game.Effect
	CellDoubleTapped(row, column int) []game.Effect
	EndTurn() []game.Effect
}

// Bot plays one faction.
type Bot struct {
	Faction     game.Faction
	Personality Personality

	// MaxMoves caps the moves made in one turn.
	MaxMoves int

	rng    *rand.Rand
	logger zerolog.Logger
}

// New creates a bot for a playing faction.
func New(f game.Faction, p Personality, seed int64, logger zerolog.Logger) *Bot {
	return &Bot{
		Faction:     f,
		Personality: p,
		MaxMoves:    3,
		rng:         rand.New(rand.NewSource(seed)),
		logger:      logger.With().Str("component", "bot").Str("faction", f.String()).Str("personality", p.String()).Logger(),
	}
}

// TurnSummary describes what a bot did in one turn.
type TurnSummary struct {
	Moves    int
	Upgrades int
	Ended    bool
}

type move struct {
	from, to game.Coord
	score    int
}

// PlayTurn plays the bot's turn to the end. It does nothing when the bot's
// faction is not active.
func (b *Bot) PlayTurn(g Game) TurnSummary {
	var summary TurnSummary
	if activeFaction(g.Snapshot()) != b.Faction {
		return summary
	}

	rules := g.Rules()
	summary.Upgrades += b.upgrade(g, rules)

	// Cells that received units this turn do not move again.
	arrived := make(map[game.Coord]bool)
	for summary.Moves < b.MaxMoves {
		snap := g.Snapshot()
		if activeFaction(snap) != b.Faction {
			return summary
		}
		m, ok := b.bestMove(snap, arrived)
		if !ok {
			break
		}
		if !b.play(g, m) {
			break
		}
		arrived[m.to] = true
		summary.Moves++
	}

	summary.Upgrades += b.upgrade(g, rules)

	if activeFaction(g.Snapshot()) == b.Faction {
		g.EndTurn()
		summary.Ended = true
	}
	b.logger.Debug().Int("moves", summary.Moves).Int("upgrades", summary.Upgrades).Msg("turn played")
	return summary
}

// play taps the source then the target. A target the session did not
// highlight is abandoned by tapping the source again.
func (b *Bot) play(g Game, m move) bool {
	g.CellTapped(m.from.Row, m.from.Column)

	snap := g.Snapshot()
	if snap.Anchor == nil || *snap.Anchor != m.from {
		return false
	}
	if !snap.Cells[m.to.Row][m.to.Column].Selected {
		g.CellTapped(m.from.Row, m.from.Column)
		return false
	}

	g.CellTapped(m.to.Row, m.to.Column)
	return true
}

// upgrade double taps every affordable building, keeping the reserve the
// personality wants. Returns the number of upgrades made.
func (b *Bot) upgrade(g Game, rules game.Rules) int {
	upgrades := 0
	for {
		snap := g.Snapshot()
		if activeFaction(snap) != b.Faction || snap.Anchor != nil {
			return upgrades
		}

		upgraded := false
		for row := range snap.Cells {
			for column, c := range snap.Cells[row] {
				if c.Faction != b.Faction {
					continue
				}
				// Only defensive bots found new buildings.
				if c.BuildingLevel == 0 && b.Personality != Defensive {
					continue
				}
				cost, ok := rules.UpgradeCost(c.BuildingLevel)
				if !ok || c.Units < cost+b.reserve(cost) {
					continue
				}
				g.CellDoubleTapped(row, column)
				after := g.Snapshot().Cells[row][column]
				if after.BuildingLevel > c.BuildingLevel {
					upgrades++
					upgraded = true
				}
			}
		}
		if !upgraded {
			return upgrades
		}
	}
}

// reserve is the garrison kept on a building after paying an upgrade.
func (b *Bot) reserve(cost int) int {
	if b.Personality == Aggressive {
		return cost
	}
	return 0
}

// bestMove picks the highest scoring legal move, ties broken randomly.
func (b *Bot) bestMove(snap game.Snapshot, arrived map[game.Coord]bool) (move, bool) {
	var moves []move
	for row := range snap.Cells {
		for column, src := range snap.Cells[row] {
			from := game.Coord{Row: row, Column: column}
			if src.Faction != b.Faction || src.Units == 0 || arrived[from] {
				continue
			}
			for _, to := range neighbors(snap, from) {
				dst := snap.Cells[to.Row][to.Column]
				if !game.CanTarget(src, dst) {
					continue
				}
				if score, ok := b.score(src, dst); ok {
					moves = append(moves, move{from: from, to: to, score: score})
				}
			}
		}
	}
	if len(moves) == 0 {
		return move{}, false
	}

	b.rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].score > moves[j].score })
	return moves[0], true
}

// score rates a move from src into dst; false rejects it. Only captures
// are considered: the mover must end up owning dst.
func (b *Bot) score(src, dst game.Cell) (int, bool) {
	if dst.Faction == src.Faction || src.Units <= dst.Units {
		return 0, false
	}
	margin := src.Units - dst.Units

	switch b.Personality {
	case Defensive:
		// Never strip a building unless the capture wins a building.
		if src.BuildingLevel > 0 && dst.BuildingLevel == 0 {
			return 0, false
		}
		if margin < dst.Units {
			return 0, false
		}
		return dst.BuildingLevel*100 + margin, true
	default:
		score := dst.BuildingLevel*100 - dst.Units
		if dst.Faction != game.Neutral {
			score += 50
		}
		return score, true
	}
}

func neighbors(snap game.Snapshot, c game.Coord) []game.Coord {
	candidates := []game.Coord{
		{Row: c.Row - 1, Column: c.Column},
		{Row: c.Row + 1, Column: c.Column},
		{Row: c.Row, Column: c.Column - 1},
		{Row: c.Row, Column: c.Column + 1},
	}
	out := candidates[:0]
	for _, n := range candidates {
		if n.Row >= 0 && n.Row < snap.Height && n.Column >= 0 && n.Column < snap.Width {
			out = append(out, n)
		}
	}
	return out
}

func activeFaction(snap game.Snapshot) game.Faction {
	if snap.IsPlayerTurn {
		return game.Ally
	}
	return game.Enemy
}
