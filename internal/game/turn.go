package game

import "time"

// EndTurn closes the active faction's turn: income for the ending faction,
// then the turn flips, then the selection is cleared. Resetting the
// countdown is left to the owner of the timer.
func (g *GameState) EndTurn() []Effect {
	ending := g.ActiveFaction()

	effects := g.AddUnitsToBuildings(ending)

	g.IsPlayerTurn = !g.IsPlayerTurn
	effects = append(effects, Effect{Type: EffectTurnChanged, IsPlayerTurn: g.IsPlayerTurn})

	effects = append(effects, g.DeselectAll()...)
	return effects
}

// Countdown paces a turn against the wall clock. Remaining time is always
// recomputed from an absolute deadline, so suspension of the host process
// does not cause drift.
type Countdown struct {
	Duration time.Duration

	deadline time.Time
	mid      float64
	low      float64
}

// NewCountdown creates a countdown for the rules' turn duration. It is not
// running until Reset is called.
func NewCountdown(rules Rules) *Countdown {
	return &Countdown{
		Duration: rules.TurnDuration,
		mid:      rules.MidThreshold,
		low:      rules.LowThreshold,
	}
}

// Reset starts a full period at now.
func (c *Countdown) Reset(now time.Time) {
	c.deadline = now.Add(c.Duration)
}

// Deadline returns the absolute end of the current period.
func (c *Countdown) Deadline() time.Time {
	return c.deadline
}

// Remaining returns the time left at now, never negative.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if c.deadline.IsZero() {
		return c.Duration
	}
	remaining := c.deadline.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether the period is over at now.
func (c *Countdown) Expired(now time.Time) bool {
	return !c.deadline.IsZero() && c.Remaining(now) == 0
}

// Emphasis returns the display emphasis for a remaining duration.
func (c *Countdown) Emphasis(remaining time.Duration) Emphasis {
	if c.Duration <= 0 {
		return EmphasisNormal
	}
	fraction := float64(remaining) / float64(c.Duration)
	switch {
	case fraction <= c.low:
		return EmphasisLow
	case fraction <= c.mid:
		return EmphasisMid
	default:
		return EmphasisNormal
	}
}

// DisplaySeconds rounds a remaining duration up to whole seconds, the way a
// countdown is shown to players.
func DisplaySeconds(remaining time.Duration) int {
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}
