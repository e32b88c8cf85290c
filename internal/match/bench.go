package match

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordler/internal/game"
	"github.com/robalobadob/wordler/internal/solver"
)

// Setup builds the oracle and petitioner for game i.
type Setup func(i int) (game.Oracle, solver.Petitioner, error)

// Summary aggregates many independent games.
type Summary struct {
	Games     int         `json:"games"`
	Wins      int         `json:"wins"`
	Stumped   int         `json:"stumped"`
	Exhausted int         `json:"exhausted"` // oracle ran out of patience
	Rounds    map[int]int `json:"rounds"`    // winning round → games
}

// MeanRounds is the average number of guesses in won games.
func (s Summary) MeanRounds() float64 {
	if s.Wins == 0 {
		return 0
	}
	total := 0
	for r, n := range s.Rounds {
		total += r * n
	}
	return float64(total) / float64(s.Wins)
}

// Distribution lists winning rounds in ascending order.
func (s Summary) Distribution() []int {
	out := make([]int, 0, len(s.Rounds))
	for r := range s.Rounds {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// RunMany plays games independent games, at most parallel at a time. Each game
// gets its own oracle and petitioner from setup, so nothing is shared between
// goroutines. Losses are counted, not returned; any other error stops the run.
func RunMany(ctx context.Context, games, parallel int, setup Setup) (Summary, error) {
	sum := Summary{Rounds: map[int]int{}}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i := range games {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, p, err := setup(i)
			if err != nil {
				return err
			}
			res, err := Play(o, p)

			mu.Lock()
			defer mu.Unlock()
			sum.Games++
			switch {
			case err == nil:
				sum.Wins++
				sum.Rounds[res.Rounds]++
			case errors.Is(err, solver.ErrStumped):
				sum.Stumped++
				log.Debug().Int("game", i).Int("rounds", res.Rounds).Msg("solver stumped")
			case errors.Is(err, game.ErrTooManyGuesses):
				sum.Exhausted++
			default:
				return err
			}
			return nil
		})
	}
	err := g.Wait()
	return sum, err
}
