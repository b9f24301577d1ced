// Package session runs one Forest Wars game: it serializes every input,
// drives the turn countdown and delivers notifications in order.
package session

import (
	"sync"
	"time"

	"forest-wars/internal/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sink receives notifications in the order they were produced. A sink may
// call back into the session.
type Sink func(game.Effect)

// Options configures a session.
type Options struct {
	Rules  game.Rules
	Seed   int64 // zero picks a time-based seed
	Logger zerolog.Logger
	Clock  Clock
	Sink   Sink

	// ManualTicks disables the countdown goroutine; the owner calls Tick.
	ManualTicks bool
}

// Session is one game. All methods are safe for concurrent use; game state
// has a single writer at a time.
type Session struct {
	ID string

	mu        sync.Mutex
	state     *game.GameState
	countdown *game.Countdown
	clock     Clock
	logger    zerolog.Logger
	manual    bool
	closed    bool

	tickerGen    int
	stopTicker   chan struct{}
	lastSeconds  int
	lastEmphasis game.Emphasis

	queueMu  sync.Mutex
	queue    []game.Effect
	flushing bool
	sink     Sink
}

// New creates a session. The field is empty until InitializeGameField.
func New(opts Options) (*Session, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	state, err := game.NewGame(opts.Rules, seed)
	if err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}

	id := uuid.New().String()
	s := &Session{
		ID:        id,
		state:     state,
		countdown: game.NewCountdown(opts.Rules),
		clock:     clock,
		logger:    opts.Logger.With().Str("component", "session").Str("session", id).Logger(),
		manual:    opts.ManualTicks,
		sink:      opts.Sink,
	}
	s.logger.Debug().Int64("seed", seed).Int("width", opts.Rules.Width).Int("height", opts.Rules.Height).Msg("session created")
	return s, nil
}

// InitializeGameField populates the field and starts the countdown.
func (s *Session) InitializeGameField() []game.Effect {
	return s.apply(func() []game.Effect {
		effects := s.state.InitializeGameField()
		effects = append(effects, s.startCountdown()...)
		s.logger.Info().Msg("game field initialized")
		return effects
	})
}

// ResetField regenerates the field and restarts the countdown.
func (s *Session) ResetField() []game.Effect {
	return s.apply(func() []game.Effect {
		effects := s.state.ResetField()
		effects = append(effects, s.startCountdown()...)
		s.logger.Info().Msg("game field reset")
		return effects
	})
}

// CellTapped handles a tap. Illegal taps are ignored.
func (s *Session) CellTapped(row, column int) []game.Effect {
	return s.apply(func() []game.Effect {
		effects, err := s.state.CellTapped(row, column)
		if err != nil {
			s.logger.Debug().Err(err).Int("row", row).Int("column", column).Msg("tap ignored")
			return nil
		}
		for _, e := range effects {
			if e.Type == game.EffectMovementStarted {
				s.logger.Debug().Int("row", e.Row).Int("column", e.Column).Msg("units moved")
				return append(effects, s.scheduleSettle()...)
			}
		}
		return effects
	})
}

// CellDoubleTapped upgrades a building. Illegal double taps are ignored.
func (s *Session) CellDoubleTapped(row, column int) []game.Effect {
	return s.apply(func() []game.Effect {
		effects, err := s.state.CellDoubleTapped(row, column)
		if err != nil {
			s.logger.Debug().Err(err).Int("row", row).Int("column", column).Msg("double tap ignored")
			return nil
		}
		return effects
	})
}

// EndTurn ends the active turn: income, turn flip, deselection, countdown
// reset.
func (s *Session) EndTurn() []game.Effect {
	return s.apply(func() []game.Effect {
		if !s.state.Initialized() {
			s.logger.Debug().Err(game.ErrNotInitialized).Msg("end turn ignored")
			return nil
		}
		return s.endTurn()
	})
}

// Close stops the countdown. Pending movement notifications are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.stopTickerLocked()
}

// endTurn runs the turn boundary. Caller holds mu.
func (s *Session) endTurn() []game.Effect {
	effects := s.state.EndTurn()
	effects = append(effects, s.startCountdown()...)
	s.logger.Info().Bool("player_turn", s.state.IsPlayerTurn).Msg("turn changed")
	return effects
}

// apply runs fn as the single writer, then delivers its effects in order.
func (s *Session) apply(fn func() []game.Effect) []game.Effect {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	effects := fn()
	s.enqueue(effects)
	s.mu.Unlock()

	s.flush()
	return effects
}

// scheduleSettle signals the end of the movement animation after the
// settle delay. Without a delay the completion is returned for immediate
// delivery. Caller holds mu.
func (s *Session) scheduleSettle() []game.Effect {
	delay := s.state.Rules.SettleDelay
	if delay <= 0 {
		return []game.Effect{game.MovementCompleted()}
	}

	time.AfterFunc(delay, func() {
		s.apply(func() []game.Effect {
			return []game.Effect{game.MovementCompleted()}
		})
	})
	return nil
}

func (s *Session) enqueue(effects []game.Effect) {
	if len(effects) == 0 {
		return
	}
	s.queueMu.Lock()
	s.queue = append(s.queue, effects...)
	s.queueMu.Unlock()
}

// flush delivers queued effects. Only one goroutine delivers at a time; a
// flush requested during delivery is picked up by the active loop.
func (s *Session) flush() {
	s.queueMu.Lock()
	if s.flushing || s.sink == nil {
		if s.sink == nil {
			s.queue = nil
		}
		s.queueMu.Unlock()
		return
	}
	s.flushing = true
	for len(s.queue) > 0 {
		batch := s.queue
		s.queue = nil
		s.queueMu.Unlock()

		for _, e := range batch {
			s.sink(e)
		}

		s.queueMu.Lock()
	}
	s.flushing = false
	s.queueMu.Unlock()
}
