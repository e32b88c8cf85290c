package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordler/internal/daily"
	"github.com/robalobadob/wordler/internal/game"
	"github.com/robalobadob/wordler/internal/match"
	"github.com/robalobadob/wordler/internal/render"
	"github.com/robalobadob/wordler/internal/solver"
)

// seeded returns a PCG-backed source for seed, or nil (global source) for 0.
func seeded(seed, stream uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, stream))
}

// printRounds writes every round through r as it is played.
func printRounds(w io.Writer, r render.Renderer) match.Option {
	return match.WithObserver(match.ObserverFunc(func(n int, rd match.Round) {
		fmt.Fprintf(w, "%2d  %s\n", n, r.Render(rd.Guess, rd.Outcome.Feedback))
	}))
}

func newPlayCmd(cfg Config) *cobra.Command {
	var (
		length     = cfg.WordLength
		maxGuesses = cfg.MaxGuesses
		today      bool
		color      = "auto"
		seed       uint64
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Guess a hidden word",
		Long: `Guess a word the program has picked. Each guess is answered with one
mark per letter: green when the letter is in place, yellow when the word
holds it elsewhere, gray when the word does not hold it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := render.ParseMode(color)
			if err != nil {
				return err
			}
			dict, err := loadDictionary(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			var oracle *game.MemoryOracle
			if today {
				secret := daily.Secret(time.Now(), cfg.DailySalt, dict.OfLength(length))
				if secret == "" {
					return fmt.Errorf("%w: %d", game.ErrNoSecret, length)
				}
				oracle = game.NewMemoryOracle(secret, maxGuesses)
			} else {
				oracle, err = game.RandomMemoryOracle(dict.Words(), length, maxGuesses, seeded(seed, 0))
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			p := solver.NewHumanPetitioner(oracle.WordLength(), cmd.InOrStdin(), out)
			res, err := match.Play(oracle, p, printRounds(out, render.For(out, mode)))
			switch {
			case err == nil:
				fmt.Fprintf(out, "Solved in %d!\n", res.Rounds)
			case errors.Is(err, game.ErrTooManyGuesses):
				fmt.Fprintf(out, "Out of guesses. The word was %q.\n", oracle.Reveal())
			case errors.Is(err, solver.ErrNoInput):
				fmt.Fprintf(out, "\nGiving up? The word was %q.\n", oracle.Reveal())
			default:
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&length, "length", length, "letters in the secret word")
	cmd.Flags().IntVar(&maxGuesses, "max-guesses", maxGuesses, "guess budget (0 for unlimited)")
	cmd.Flags().BoolVar(&today, "daily", false, "play today's word")
	cmd.Flags().StringVar(&color, "color", color, "colored tiles: auto, always or never")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for picking the word (0 for random)")
	return cmd
}
