// internal/game/types.go
//
// Core type definitions for the oracle side of the game.
// Defines:
//   - Disposition: per-position judgment of a guess.
//   - Feedback: the ordered dispositions for one guess.
//   - Outcome: either a match or a mismatch carrying feedback.

package game

import (
	"errors"
	"fmt"
	"strings"
)

// Disposition represents the evaluation result for a single position of a guess.
type Disposition uint8

const (
	// NotInWord: the letter does not appear in the secret.
	NotInWord Disposition = iota
	// WrongPosition: the letter appears somewhere else in the secret.
	WrongPosition
	// Correct: the letter appears at this position in the secret.
	Correct
	// Missing: the guess was shorter than the secret; nothing to judge here.
	Missing
	// Extra: the guess was longer than the secret; this letter was not judged.
	Extra
)

// String returns the lowercase name of the disposition.
func (d Disposition) String() string {
	switch d {
	case NotInWord:
		return "not_in_word"
	case WrongPosition:
		return "wrong_position"
	case Correct:
		return "correct"
	case Missing:
		return "missing"
	case Extra:
		return "extra"
	}
	return fmt.Sprintf("disposition(%d)", uint8(d))
}

// Symbol returns the one-character form used by Feedback.String and ParseFeedback.
func (d Disposition) Symbol() byte {
	switch d {
	case NotInWord:
		return '.'
	case WrongPosition:
		return 'y'
	case Correct:
		return 'g'
	case Missing:
		return '-'
	case Extra:
		return '+'
	}
	return '?'
}

// Feedback is the full ordered disposition sequence for one guess.
type Feedback []Disposition

// String renders feedback compactly, e.g. "gy..g".
func (f Feedback) String() string {
	var b strings.Builder
	b.Grow(len(f))
	for _, d := range f {
		b.WriteByte(d.Symbol())
	}
	return b.String()
}

// AllCorrect reports whether every position is Correct.
func (f Feedback) AllCorrect() bool {
	for _, d := range f {
		if d != Correct {
			return false
		}
	}
	return true
}

// ErrBadFeedback is returned by ParseFeedback for unrecognized symbols.
var ErrBadFeedback = errors.New("game: unrecognized feedback symbol")

// ParseFeedback reads the compact text form of feedback.
// Accepted symbols (case-insensitive):
//
//	g        Correct
//	y        WrongPosition
//	. b x    NotInWord
//	-        Missing
//	+        Extra
//
// Whitespace is ignored so "g y . . g" parses the same as "gy..g".
func ParseFeedback(s string) (Feedback, error) {
	fb := make(Feedback, 0, len(s))
	for i, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\r', '\n':
			continue
		case 'g':
			fb = append(fb, Correct)
		case 'y':
			fb = append(fb, WrongPosition)
		case '.', 'b', 'x':
			fb = append(fb, NotInWord)
		case '-':
			fb = append(fb, Missing)
		case '+':
			fb = append(fb, Extra)
		default:
			return nil, fmt.Errorf("%w %q at offset %d", ErrBadFeedback, r, i)
		}
	}
	return fb, nil
}

// Outcome is the oracle's answer to a guess.
// Match is true when the guess equals the secret; Feedback is nil in that case.
type Outcome struct {
	Match    bool
	Feedback Feedback
}

// Matched is the outcome of a correct guess.
func Matched() Outcome { return Outcome{Match: true} }

// Mismatched wraps feedback for an incorrect guess.
func Mismatched(fb Feedback) Outcome { return Outcome{Feedback: fb} }

// Game holds the state of a single oracle-backed session (used by the HTTP server).
type Game struct {
	ID         string   // Unique game identifier.
	Length     int      // Number of letters in the secret.
	MaxGuesses int      // Guess budget; 0 means unlimited.
	Guesses    []string // Guesses made so far.
	Finished   bool     // True once the game is over (won or lost).
	Won        bool     // True if the game was finished with a match.

	oracle *MemoryOracle
}
