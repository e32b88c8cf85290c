// Package solver implements the guessing side of the game: petitioners that
// propose words and absorb the oracle's feedback.
//
// A petitioner is a strict two-state machine. The proper sequence of calls is
//
//	New
//	until a correct guess or the oracle's guess limit:
//	    PrepareGuess
//	    SubmitFeedback
package solver

import (
	"errors"

	"github.com/robalobadob/wordler/internal/game"
)

// Petitioner proposes guesses and narrows its options from feedback.
type Petitioner interface {
	// PrepareGuess returns a word satisfying everything learned so far.
	// Calling it while a guess is outstanding returns ErrAwaitingFeedback.
	PrepareGuess() (string, error)

	// SubmitFeedback reports the oracle's judgment of the outstanding guess.
	// Calling it with no guess outstanding returns ErrUnexpectedFeedback.
	SubmitFeedback(fb game.Feedback) error
}

var (
	ErrEmptyDictionary       = errors.New("no dictionary words of the requested length")
	ErrStumped               = errors.New("could not determine a word fitting all constraints")
	ErrAwaitingFeedback      = errors.New("cannot prepare a new guess while awaiting feedback on a previous guess")
	ErrUnexpectedFeedback    = errors.New("cannot provide new feedback without a new guess")
	ErrInappropriateFeedback = errors.New("feedback provided is inappropriate for the provided guess")
)
