package session

import (
	"time"

	"forest-wars/internal/game"
)

// Tick recomputes the countdown from the wall clock. It emits a tick when
// the displayed seconds or the emphasis change, and on expiry ends the turn.
func (s *Session) Tick() []game.Effect {
	return s.apply(s.tick)
}

// Resume recomputes the countdown after the host process was suspended.
// A turn that expired meanwhile is advanced exactly once.
func (s *Session) Resume() []game.Effect {
	return s.apply(func() []game.Effect {
		s.logger.Debug().Dur("remaining", s.countdown.Remaining(s.clock.Now())).Msg("resumed")
		return s.tick()
	})
}

// tick is the countdown step. Caller holds mu.
func (s *Session) tick() []game.Effect {
	if !s.state.Initialized() {
		return nil
	}

	now := s.clock.Now()
	if s.countdown.Expired(now) {
		s.logger.Debug().Msg("countdown expired")
		effects := []game.Effect{game.CountdownExpired()}
		return append(effects, s.endTurn()...)
	}

	remaining := s.countdown.Remaining(now)
	seconds := game.DisplaySeconds(remaining)
	emphasis := s.countdown.Emphasis(remaining)
	if seconds == s.lastSeconds && emphasis == s.lastEmphasis {
		return nil
	}
	s.lastSeconds = seconds
	s.lastEmphasis = emphasis
	return []game.Effect{game.CountdownTick(remaining, emphasis)}
}

// startCountdown begins a full countdown period and restarts the ticker.
// Caller holds mu.
func (s *Session) startCountdown() []game.Effect {
	now := s.clock.Now()
	s.countdown.Reset(now)

	full := s.countdown.Remaining(now)
	s.lastSeconds = game.DisplaySeconds(full)
	s.lastEmphasis = s.countdown.Emphasis(full)

	if !s.manual {
		s.restartTickerLocked()
	}
	return []game.Effect{game.CountdownTick(full, s.lastEmphasis)}
}

// restartTickerLocked replaces the running ticker goroutine, so at most one
// ticker drives the session. Caller holds mu.
func (s *Session) restartTickerLocked() {
	s.stopTickerLocked()

	s.tickerGen++
	gen := s.tickerGen
	stop := make(chan struct{})
	s.stopTicker = stop
	interval := s.state.Rules.TickInterval

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.tickFromTicker(gen)
			}
		}
	}()
}

// tickFromTicker ticks unless a newer ticker has replaced gen.
func (s *Session) tickFromTicker(gen int) {
	s.apply(func() []game.Effect {
		if gen != s.tickerGen {
			return nil
		}
		return s.tick()
	})
}

func (s *Session) stopTickerLocked() {
	if s.stopTicker != nil {
		close(s.stopTicker)
		s.stopTicker = nil
	}
}
