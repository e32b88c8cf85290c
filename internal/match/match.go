// internal/match/match.go
//
// Driving loop that pits a petitioner against an oracle.
// Responsibilities:
//   - Alternate PrepareGuess → Oracle.Guess → SubmitFeedback until a match.
//   - Report every round to an optional observer (the presenter).
//   - Surface terminal conditions (stumped, guess budget exhausted) as errors.

package match

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordler/internal/game"
	"github.com/robalobadob/wordler/internal/solver"
)

// Round is one guess and the oracle's answer to it.
type Round struct {
	Guess   string
	Outcome game.Outcome
}

// Result summarizes a finished game.
type Result struct {
	Answer  string  // the matching guess; empty when the game did not end in a match
	Rounds  int     // guesses asked of the oracle
	History []Round // every round, in order
}

// Observer is told about each round as it happens.
type Observer interface {
	Round(n int, r Round)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(n int, r Round)

func (f ObserverFunc) Round(n int, r Round) { f(n, r) }

// Option configures Play.
type Option func(*config)

type config struct {
	observer Observer
}

// WithObserver reports every round to o.
func WithObserver(o Observer) Option {
	return func(c *config) { c.observer = o }
}

// Play runs one game to completion. The returned Result covers the rounds
// played even when err is non-nil; err wraps solver.ErrStumped,
// game.ErrTooManyGuesses, or whatever the collaborators returned.
func Play(o game.Oracle, p solver.Petitioner, opts ...Option) (Result, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	var res Result
	for n := 1; ; n++ {
		guess, err := p.PrepareGuess()
		if err != nil {
			return res, fmt.Errorf("round %d: prepare guess: %w", n, err)
		}

		out, err := o.Guess(guess)
		if err != nil {
			return res, fmt.Errorf("round %d: oracle: %w", n, err)
		}
		res.Rounds = n

		r := Round{Guess: guess, Outcome: out}
		res.History = append(res.History, r)
		if cfg.observer != nil {
			cfg.observer.Round(n, r)
		}
		log.Debug().Int("round", n).Str("guess", guess).Bool("match", out.Match).
			Stringer("feedback", out.Feedback).Msg("round")

		if out.Match {
			res.Answer = guess
			return res, nil
		}
		if err := p.SubmitFeedback(out.Feedback); err != nil {
			return res, fmt.Errorf("round %d: feedback: %w", n, err)
		}
	}
}
