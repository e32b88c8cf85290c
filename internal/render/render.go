// Package render draws feedback for people: as plain text, or as colored
// tiles on a terminal. Renderers only read the feedback they are given.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/robalobadob/wordler/internal/game"
)

// Renderer turns a guess and its feedback into one display line.
type Renderer interface {
	Render(guess string, fb game.Feedback) string
}

// Mode selects between plain and colored output.
type Mode string

const (
	Auto   Mode = "auto"
	Always Mode = "always"
	Never  Mode = "never"
)

// ParseMode validates a --color flag value.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case Auto, Always, Never:
		return m, nil
	}
	return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
}

// For picks a renderer for w. In Auto mode color is used only when w is a terminal.
func For(w io.Writer, m Mode) Renderer {
	switch m {
	case Always:
		return NewColor(w)
	case Never:
		return Plain{}
	}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return NewColor(w)
	}
	return Plain{}
}

// cells pairs each feedback position with the guess letter shown there.
// Missing positions have no letter and show '_'.
func cells(guess string, fb game.Feedback) []string {
	letters := []rune(guess)
	out := make([]string, len(fb))
	for i, d := range fb {
		switch {
		case d == game.Missing || i >= len(letters):
			out[i] = "_"
		default:
			out[i] = string(letters[i])
		}
	}
	return out
}

// Plain renders "radio  gy..g": the guess, then the compact feedback.
type Plain struct{}

func (Plain) Render(guess string, fb game.Feedback) string {
	if fb == nil {
		return strings.ToUpper(guess) + "  " + strings.Repeat("g", len([]rune(guess)))
	}
	return strings.ToUpper(strings.Join(cells(guess, fb), "")) + "  " + fb.String()
}

// Color renders one tile per position, colored by disposition.
type Color struct {
	tiles map[game.Disposition]lipgloss.Style
}

var (
	colorCorrect = lipgloss.Color("#538D4E")
	colorPresent = lipgloss.Color("#B59F3B")
	colorAbsent  = lipgloss.Color("#3A3A3C")
	colorInvalid = lipgloss.Color("#E74C3C")
	colorText    = lipgloss.Color("#FFFFFF")
)

// NewColor builds tile styles bound to w's color profile.
func NewColor(w io.Writer) *Color {
	r := lipgloss.NewRenderer(w)
	tile := r.NewStyle().Bold(true).Foreground(colorText).Padding(0, 1)
	return &Color{tiles: map[game.Disposition]lipgloss.Style{
		game.Correct:       tile.Background(colorCorrect),
		game.WrongPosition: tile.Background(colorPresent),
		game.NotInWord:     tile.Background(colorAbsent),
		game.Missing:       tile.Background(colorInvalid),
		game.Extra:         tile.Background(colorInvalid),
	}}
}

func (c *Color) Render(guess string, fb game.Feedback) string {
	if fb == nil {
		fb = make(game.Feedback, len([]rune(guess)))
		for i := range fb {
			fb[i] = game.Correct
		}
	}
	var b strings.Builder
	for i, letter := range cells(guess, fb) {
		b.WriteString(c.tiles[fb[i]].Render(strings.ToUpper(letter)))
	}
	return b.String()
}
