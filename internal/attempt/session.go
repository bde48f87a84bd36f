package attempt

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"hexweave/pkg/core"
	"hexweave/pkg/wfc"
)

// Session drives one solve a step at a time for interactive viewers. A
// contradiction restarts the solve with the next seed until MaxAttempts is
// reached.
type Session[P comparable] struct {
	cfg   Config
	build Builder[P]

	seed    int64
	attempt int
	runID   uuid.UUID
	c       *wfc.Collapser[P]
	failed  error
}

// NewSession prepares a session; call Reset before stepping.
func NewSession[P comparable](cfg Config, build Builder[P]) *Session[P] {
	return &Session[P]{cfg: cfg.normalized(), build: build}
}

// Reset starts over from seed.
func (s *Session[P]) Reset(seed int64) error {
	s.seed = seed
	s.attempt = 0
	s.failed = nil
	return s.start()
}

func (s *Session[P]) start() error {
	seed := s.seed + int64(s.attempt)
	c, err := s.build(core.NewRNG(seed).Noise())
	if err != nil {
		s.c = nil
		s.failed = eris.Wrapf(err, "attempt %d: build solver", s.attempt+1)
		return s.failed
	}
	s.c = c
	s.runID = uuid.New()
	s.cfg.Logger.Debug("session attempt started",
		slog.String("run", s.runID.String()),
		slog.Int("attempt", s.attempt+1),
		slog.Int64("seed", seed),
	)
	return nil
}

// Step advances the current attempt by one collapse. On a contradiction the
// next attempt is started and Step returns no error unless attempts are
// exhausted.
func (s *Session[P]) Step() (done bool, err error) {
	if s.failed != nil {
		return false, s.failed
	}
	if s.c == nil {
		return false, errors.New("attempt: session not reset")
	}
	done, err = s.c.Step()
	if err == nil {
		return done, nil
	}
	if !errors.Is(err, wfc.ErrContradiction) {
		s.failed = eris.Wrapf(err, "attempt %d", s.attempt+1)
		return false, s.failed
	}
	s.cfg.Logger.Info("session attempt contradicted",
		slog.String("run", s.runID.String()),
		slog.Int("attempt", s.attempt+1),
		slog.Any("err", err),
	)
	if s.attempt+1 >= s.cfg.MaxAttempts {
		s.failed = fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, s.cfg.MaxAttempts, err)
		return false, s.failed
	}
	s.attempt++
	return false, s.start()
}

// Attempt is the one-based number of the running attempt.
func (s *Session[P]) Attempt() int { return s.attempt + 1 }

// Seed is the seed of the running attempt.
func (s *Session[P]) Seed() int64 { return s.seed + int64(s.attempt) }

// RunID identifies the running attempt in logs.
func (s *Session[P]) RunID() uuid.UUID { return s.runID }

// Done reports whether the current attempt completed.
func (s *Session[P]) Done() bool { return s.c != nil && s.c.Done() }

// Failed returns the terminal error, if any.
func (s *Session[P]) Failed() error { return s.failed }

// Collapser exposes the running attempt's solver for rendering.
func (s *Session[P]) Collapser() *wfc.Collapser[P] { return s.c }
