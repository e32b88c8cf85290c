package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordler/internal/game"
	"github.com/robalobadob/wordler/internal/match"
	"github.com/robalobadob/wordler/internal/render"
	"github.com/robalobadob/wordler/internal/solver"
	"github.com/robalobadob/wordler/internal/words"
)

type botOptions struct {
	answer     string
	length     int
	maxGuesses int
	seed       uint64
	games      int
	parallel   int
	color      string
}

func newBotCmd(cfg Config) *cobra.Command {
	opts := botOptions{
		length:     cfg.WordLength,
		maxGuesses: cfg.MaxGuesses,
		games:      1,
		parallel:   runtime.GOMAXPROCS(0),
		color:      "auto",
	}
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Let the solver play against a hidden word",
		Long: `Let the solver play against a hidden word. With --games above 1 the
solver plays that many independent games and prints a summary instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := loadDictionary(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if opts.games > 1 {
				return runBench(cmd, dict, opts)
			}
			return runBot(cmd.OutOrStdout(), dict, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.answer, "answer", "", "secret word (default: random)")
	f.IntVar(&opts.length, "length", opts.length, "letters in a random secret")
	f.IntVar(&opts.maxGuesses, "max-guesses", opts.maxGuesses, "guess budget (0 for unlimited)")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for secrets and guesses (0 for random)")
	f.IntVar(&opts.games, "games", opts.games, "number of games to play")
	f.IntVar(&opts.parallel, "parallel", opts.parallel, "games played at once")
	f.StringVar(&opts.color, "color", opts.color, "colored tiles: auto, always or never")
	return cmd
}

// newBotGame builds one oracle/solver pair. stream separates the random
// sequences of games sharing a seed.
func newBotGame(dict *words.Dictionary, o botOptions, stream uint64) (*game.MemoryOracle, *solver.DictSolver, error) {
	rng := seeded(o.seed, stream)

	var oracle *game.MemoryOracle
	if o.answer != "" {
		secret, ok := words.Normalize(o.answer)
		if !ok {
			return nil, nil, fmt.Errorf("answer %q is not a word", o.answer)
		}
		oracle = game.NewMemoryOracle(secret, o.maxGuesses)
	} else {
		var err error
		oracle, err = game.RandomMemoryOracle(dict.Words(), o.length, o.maxGuesses, rng)
		if err != nil {
			return nil, nil, err
		}
	}

	var sopts []solver.Option
	if rng != nil {
		sopts = append(sopts, solver.WithRand(rng))
	}
	s, err := solver.New(oracle.WordLength(), slices.Values(dict.Words()), sopts...)
	if err != nil {
		return nil, nil, err
	}
	return oracle, s, nil
}

func runBot(out io.Writer, dict *words.Dictionary, o botOptions) error {
	mode, err := render.ParseMode(o.color)
	if err != nil {
		return err
	}
	oracle, s, err := newBotGame(dict, o, 0)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Choosing among %d words of %d letters.\n", s.Remaining(), oracle.WordLength())

	res, err := match.Play(oracle, s, printRounds(out, render.For(out, mode)))
	switch {
	case err == nil:
		fmt.Fprintf(out, "Solved %q in %d.\n", res.Answer, res.Rounds)
	case errors.Is(err, solver.ErrStumped):
		fmt.Fprintf(out, "Stumped after %d; the word was %q.\n", res.Rounds, oracle.Reveal())
	case errors.Is(err, game.ErrTooManyGuesses):
		fmt.Fprintf(out, "Out of guesses after %d; the word was %q.\n", res.Rounds, oracle.Reveal())
	default:
		return err
	}
	return nil
}

func runBench(cmd *cobra.Command, dict *words.Dictionary, o botOptions) error {
	setup := func(i int) (game.Oracle, solver.Petitioner, error) {
		oracle, s, err := newBotGame(dict, o, uint64(i))
		if err != nil {
			return nil, nil, err
		}
		return oracle, s, nil
	}
	log.Info().Int("games", o.games).Int("parallel", o.parallel).Msg("benchmark started")
	sum, err := match.RunMany(cmd.Context(), o.games, o.parallel, setup)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "games:     %d\n", sum.Games)
	fmt.Fprintf(out, "wins:      %d (%.1f%%)\n", sum.Wins, 100*float64(sum.Wins)/float64(max(sum.Games, 1)))
	fmt.Fprintf(out, "stumped:   %d\n", sum.Stumped)
	fmt.Fprintf(out, "exhausted: %d\n", sum.Exhausted)
	fmt.Fprintf(out, "mean:      %.2f guesses\n", sum.MeanRounds())
	for _, r := range sum.Distribution() {
		fmt.Fprintf(out, "  %2d: %d\n", r, sum.Rounds[r])
	}
	return nil
}
