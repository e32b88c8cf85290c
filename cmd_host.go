package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordler/internal/game"
	"github.com/robalobadob/wordler/internal/match"
	"github.com/robalobadob/wordler/internal/solver"
)

func newHostCmd(cfg Config) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Think of a word and let the solver guess it",
		Long: `Think of a word. The solver guesses; answer each guess with one symbol
per letter: g (right letter, right place), y (right letter, wrong place)
or . (letter not in the word).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := loadDictionary(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			oracle, err := game.NewHumanOracle(cmd.InOrStdin(), out)
			if errors.Is(err, game.ErrOracleGone) {
				return nil
			}
			if err != nil {
				return err
			}

			var opts []solver.Option
			if rng := seeded(seed, 0); rng != nil {
				opts = append(opts, solver.WithRand(rng))
			}
			s, err := solver.New(oracle.WordLength(), slices.Values(dict.Words()), opts...)
			if err != nil {
				return fmt.Errorf("no %d-letter words: %w", oracle.WordLength(), err)
			}

			res, err := match.Play(oracle, s)
			switch {
			case err == nil:
				fmt.Fprintf(out, "Your word is %q. Got it in %d.\n", res.Answer, res.Rounds)
			case errors.Is(err, solver.ErrStumped):
				fmt.Fprintln(out, "I'm stumped. Either your word is not in my dictionary or some feedback was off.")
			case errors.Is(err, game.ErrOracleGone):
				fmt.Fprintln(out)
			default:
				return err
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the solver's choices (0 for random)")
	return cmd
}
