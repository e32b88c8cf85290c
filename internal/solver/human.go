package solver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordler/internal/game"
)

// ErrNoInput is returned when the person stops typing guesses (EOF).
var ErrNoInput = errors.New("petitioner input closed")

// HumanPetitioner collects guesses typed by a person. Feedback is shown by
// the presenter, so SubmitFeedback only advances the state machine.
type HumanPetitioner struct {
	in       *bufio.Reader
	out      io.Writer
	awaiting bool
}

// NewHumanPetitioner announces the word length on out and reads guesses from in.
func NewHumanPetitioner(length int, in io.Reader, out io.Writer) *HumanPetitioner {
	fmt.Fprintf(out, "You must guess a word of %d characters.\n", length)
	return &HumanPetitioner{in: bufio.NewReader(in), out: out}
}

// PrepareGuess prompts and returns the next non-empty line, lowercased.
func (h *HumanPetitioner) PrepareGuess() (string, error) {
	if h.awaiting {
		return "", ErrAwaitingFeedback
	}
	for {
		fmt.Fprint(h.out, "> ")
		line, err := h.in.ReadString('\n')
		word := strings.ToLower(strings.TrimSpace(line))
		if word != "" {
			h.awaiting = true
			return word, nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		if err != nil {
			return "", fmt.Errorf("read guess: %w", err)
		}
	}
}

func (h *HumanPetitioner) SubmitFeedback(game.Feedback) error {
	if !h.awaiting {
		return ErrUnexpectedFeedback
	}
	h.awaiting = false
	return nil
}
