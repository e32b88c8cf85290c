package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Oracle knows a secret word and judges guesses against it.
type Oracle interface {
	// WordLength returns the number of characters in the secret.
	WordLength() int

	// Guess returns Match, or Mismatch feedback, for word.
	// An error means the oracle will not (or cannot) answer.
	Guess(word string) (Outcome, error)
}

var (
	ErrTooManyGuesses = errors.New("the oracle will answer no more questions")
	ErrNoSecret       = errors.New("no secret word of the requested length")
)

// MemoryOracle holds the secret in memory and scores guesses with Score.
// MaxGuesses bounds the number of questions it answers; 0 means unlimited.
type MemoryOracle struct {
	secret     string
	guesses    int
	MaxGuesses int
}

// NewMemoryOracle returns an oracle for secret.
func NewMemoryOracle(secret string, maxGuesses int) *MemoryOracle {
	return &MemoryOracle{secret: secret, MaxGuesses: maxGuesses}
}

// RandomMemoryOracle picks a secret of length characters from dictionary.
// rng may be nil to use the global source.
func RandomMemoryOracle(dictionary []string, length, maxGuesses int, rng *rand.Rand) (*MemoryOracle, error) {
	var pool []string
	for _, w := range dictionary {
		if utf8.RuneCountInString(w) == length {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoSecret, length)
	}
	pick := rand.IntN
	if rng != nil {
		pick = rng.IntN
	}
	return NewMemoryOracle(pool[pick(len(pool))], maxGuesses), nil
}

func (o *MemoryOracle) WordLength() int { return utf8.RuneCountInString(o.secret) }

// Guess counts every call, including the one that exceeds the budget.
func (o *MemoryOracle) Guess(word string) (Outcome, error) {
	o.guesses++
	if o.MaxGuesses > 0 && o.guesses > o.MaxGuesses {
		return Outcome{}, ErrTooManyGuesses
	}
	return Score(o.secret, word), nil
}

// Guesses returns how many questions have been asked so far.
func (o *MemoryOracle) Guesses() int { return o.guesses }

// Reveal returns the secret.
func (o *MemoryOracle) Reveal() string { return o.secret }

// HumanOracle lets a person hold the secret: it asks for the word length up
// front and for feedback on every guess.
type HumanOracle struct {
	in     *bufio.Reader
	out    io.Writer
	length int
}

// ErrOracleGone is returned when the person stops answering (EOF).
var ErrOracleGone = errors.New("oracle input closed")

// NewHumanOracle prompts on out and reads the secret's length from in.
func NewHumanOracle(in io.Reader, out io.Writer) (*HumanOracle, error) {
	o := &HumanOracle{in: bufio.NewReader(in), out: out}
	for {
		fmt.Fprint(o.out, "How many letters are in your word? ")
		line, err := o.readLine()
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n > 0 {
			o.length = n
			return o, nil
		}
		fmt.Fprintln(o.out, "Please enter a positive number.")
	}
}

func (o *HumanOracle) WordLength() int { return o.length }

// Guess shows word and reads feedback in the ParseFeedback form.
// A line of all 'g' for the whole word is a match. Malformed or wrongly sized
// lines are rejected and asked for again.
func (o *HumanOracle) Guess(word string) (Outcome, error) {
	want := utf8.RuneCountInString(word)
	for {
		fmt.Fprintf(o.out, "Guess: %s\nFeedback (g=correct y=elsewhere .=absent): ", word)
		line, err := o.readLine()
		if err != nil {
			return Outcome{}, err
		}
		fb, err := ParseFeedback(line)
		if err != nil {
			fmt.Fprintln(o.out, err)
			continue
		}
		if len(fb) != want {
			fmt.Fprintf(o.out, "Expected %d symbols, got %d.\n", want, len(fb))
			continue
		}
		if fb.AllCorrect() {
			return Matched(), nil
		}
		return Mismatched(fb), nil
	}
}

func (o *HumanOracle) readLine() (string, error) {
	line, err := o.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", ErrOracleGone
		}
		return "", fmt.Errorf("read oracle input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
