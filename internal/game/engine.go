// internal/game/engine.go
//
// Feedback engine and session state transitions.
// Responsibilities:
//   - Score a guess against a secret, position by position, by character.
//   - Apply guesses to a Game, tracking playing → won/lost.
//
// Notes:
//   - Scoring is NOT frequency-aware: a guess letter is WrongPosition whenever
//     the secret contains it anywhere, even if that occurrence is already
//     accounted for by another position. Solvers are built against this rule.

package game

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Score judges guess against secret.
//
// Identical strings are a Match. Otherwise the feedback has one disposition per
// position up to max(len(guess), len(secret)), counted in characters:
//   - shared prefix: Correct, WrongPosition or NotInWord;
//   - secret longer: Missing for each unguessed secret character;
//   - guess longer: Extra for each trailing guess character.
//
// Score panics if it would return all-Correct feedback for a mismatch; that
// can only happen for strings that differ in bytes but not in decoded
// characters (invalid UTF-8), which callers must not pass.
func Score(secret, guess string) Outcome {
	if guess == secret {
		return Matched()
	}
	want := []rune(secret)
	have := []rune(guess)

	fb := make(Feedback, 0, max(len(want), len(have)))
	for i := range min(len(want), len(have)) {
		switch {
		case have[i] == want[i]:
			fb = append(fb, Correct)
		case strings.ContainsRune(secret, have[i]):
			fb = append(fb, WrongPosition)
		default:
			fb = append(fb, NotInWord)
		}
	}
	for range len(want) - len(have) {
		fb = append(fb, Missing)
	}
	for range len(have) - len(want) {
		fb = append(fb, Extra)
	}

	if fb.AllCorrect() {
		panic("game: all-correct feedback for a mismatched guess")
	}
	return Mismatched(fb)
}

var (
	ErrGameFinished = errors.New("game finished")
	ErrBadGuess     = errors.New("invalid guess")
)

// NewGame starts a session around secret with the given guess budget.
func NewGame(id, secret string, maxGuesses int) *Game {
	return &Game{
		ID:         id,
		Length:     utf8.RuneCountInString(secret),
		MaxGuesses: maxGuesses,
		Guesses:    []string{},
		oracle:     NewMemoryOracle(secret, 0),
	}
}

// ApplyGuess scores a guess and mutates the session state.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be non-empty after trimming.
//
// State transitions:
//   - Match → Finished = true, Won = true.
//   - Else if the number of guesses reaches MaxGuesses → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (Outcome, error) {
	if g.Finished {
		return Outcome{}, ErrGameFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if guess == "" || !utf8.ValidString(guess) {
		return Outcome{}, ErrBadGuess
	}

	out, err := g.oracle.Guess(guess)
	if err != nil {
		return Outcome{}, err
	}
	g.Guesses = append(g.Guesses, guess)

	if out.Match {
		g.Finished, g.Won = true, true
	} else if g.MaxGuesses > 0 && len(g.Guesses) >= g.MaxGuesses {
		g.Finished = true
	}
	return out, nil
}

// Resign ends an unfinished game as a loss. A finished game is left as is.
func (g *Game) Resign() {
	g.Finished = true
}

// State reports a coarse string representation of the session state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// Secret reveals the answer once the session is over, and "" before that.
func (g *Game) Secret() string {
	if !g.Finished {
		return ""
	}
	return g.oracle.secret
}
