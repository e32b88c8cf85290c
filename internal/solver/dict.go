package solver

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordler/internal/game"
)

// Chooser picks an index in [0, n) among the current candidates, which are
// presented in dictionary order.
type Chooser func(n int) int

// Option configures a DictSolver.
type Option func(*DictSolver)

// WithRand draws guesses from rng instead of the global source.
func WithRand(rng *rand.Rand) Option {
	return func(s *DictSolver) { s.choose = rng.IntN }
}

// WithChooser replaces random selection, e.g. with a deterministic stub.
func WithChooser(c Chooser) Option {
	return func(s *DictSolver) { s.choose = c }
}

type letterSet map[rune]struct{}

func (ls letterSet) has(r rune) bool {
	_, ok := ls[r]
	return ok
}

// DictSolver guesses uniformly at random from the dictionary words that are
// still consistent with every piece of feedback received.
//
// Constraints are only ever added, so the candidate set only ever shrinks.
// Letters are tracked in independent sets and combined with a strict AND: a
// letter once reported NotInWord excludes every word containing it, even if a
// later guess reports the same letter elsewhere. The scoring rule is not
// frequency-aware, so with repeated letters this can empty the candidate set;
// the solver then reports ErrStumped.
type DictSolver struct {
	words []string
	runes [][]rune
	alive *bitset.BitSet

	outstanding string
	awaiting    bool

	known    []rune      // known[i] is the letter at position i, or 0
	wrongAt  []letterSet // letters known not to be at position i
	unplaced letterSet   // letters in the word, position unknown
	absent   letterSet   // letters not in the word

	choose Chooser
}

// New builds a solver over the words of dictionary that are exactly length
// characters long. Duplicates are dropped. The dictionary is consumed once.
func New(length int, dictionary iter.Seq[string], opts ...Option) (*DictSolver, error) {
	s := &DictSolver{
		known:    make([]rune, length),
		wrongAt:  make([]letterSet, length),
		unplaced: letterSet{},
		absent:   letterSet{},
		choose:   rand.IntN,
	}
	for i := range s.wrongAt {
		s.wrongAt[i] = letterSet{}
	}

	seen := make(map[string]struct{})
	for w := range dictionary {
		if utf8.RuneCountInString(w) != length {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		s.words = append(s.words, w)
		s.runes = append(s.runes, []rune(w))
	}
	if len(s.words) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrEmptyDictionary, length)
	}

	s.alive = bitset.New(uint(len(s.words)))
	for i := range s.words {
		s.alive.Set(uint(i))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// PrepareGuess picks a candidate and marks it outstanding.
func (s *DictSolver) PrepareGuess() (string, error) {
	if s.awaiting {
		return "", ErrAwaitingFeedback
	}
	n := int(s.alive.Count())
	if n == 0 {
		return "", ErrStumped
	}
	k := s.choose(n)
	if k < 0 || k >= n {
		panic(fmt.Sprintf("solver: chooser returned %d for %d candidates", k, n))
	}

	i, _ := s.alive.NextSet(0)
	for ; k > 0; k-- {
		i, _ = s.alive.NextSet(i + 1)
	}
	s.outstanding = s.words[i]
	s.awaiting = true
	return s.outstanding, nil
}

// SubmitFeedback absorbs the judgment of the outstanding guess and narrows the
// candidate set. Feedback must be exactly as long as the guess; on
// ErrInappropriateFeedback nothing changes and the guess stays outstanding,
// so the caller may resubmit corrected feedback for it.
//
// This solver only guesses words of the target length, so Missing or Extra
// dispositions mean the oracle broke its contract; SubmitFeedback panics.
func (s *DictSolver) SubmitFeedback(fb game.Feedback) error {
	if !s.awaiting {
		return ErrUnexpectedFeedback
	}
	guess := []rune(s.outstanding)
	if len(fb) != len(guess) {
		return fmt.Errorf("%w: %d dispositions for %d letters", ErrInappropriateFeedback, len(fb), len(guess))
	}
	for i, d := range fb {
		if d == game.Missing || d == game.Extra {
			panic(fmt.Sprintf("solver: %v at position %d for a guess of the target length", d, i))
		}
	}

	for i, d := range fb {
		ch := guess[i]
		switch d {
		case game.NotInWord:
			s.absent[ch] = struct{}{}
		case game.WrongPosition:
			s.wrongAt[i][ch] = struct{}{}
			s.unplaced[ch] = struct{}{}
		case game.Correct:
			s.known[i] = ch
			delete(s.unplaced, ch)
		}
	}

	for i, ok := s.alive.NextSet(0); ok; i, ok = s.alive.NextSet(i + 1) {
		if !s.admits(s.runes[i]) {
			s.alive.Clear(i)
		}
	}

	s.outstanding = ""
	s.awaiting = false
	return nil
}

// admits reports whether word satisfies every accumulated constraint.
func (s *DictSolver) admits(word []rune) bool {
	for _, ch := range word {
		if s.absent.has(ch) {
			return false
		}
	}
	for i, ch := range word {
		if k := s.known[i]; k != 0 && k != ch {
			return false
		}
		if s.wrongAt[i].has(ch) {
			return false
		}
	}
	for need := range s.unplaced {
		if !slices.Contains(word, need) {
			return false
		}
	}
	return true
}

// Remaining returns the number of candidates still in play.
func (s *DictSolver) Remaining() int { return int(s.alive.Count()) }

// Candidates returns the words still in play, in dictionary order.
func (s *DictSolver) Candidates() []string {
	out := make([]string, 0, s.alive.Count())
	for i, ok := s.alive.NextSet(0); ok; i, ok = s.alive.NextSet(i + 1) {
		out = append(out, s.words[i])
	}
	return out
}

// Outstanding returns the guess awaiting feedback, if any.
func (s *DictSolver) Outstanding() (string, bool) { return s.outstanding, s.awaiting }
