package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// gamesStarted counts oracle sessions.
	// Labels: kind (random, fixed, daily)
	gamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordler",
		Subsystem: "oracle",
		Name:      "games_started_total",
		Help:      "Oracle games started over HTTP",
	}, []string{"kind"})

	// guessesScored counts answered guesses.
	// Labels: outcome (match, mismatch)
	guessesScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordler",
		Subsystem: "oracle",
		Name:      "guesses_total",
		Help:      "Guesses answered by the HTTP oracle",
	}, []string{"outcome"})

	// gamesFinished counts sessions that reached a terminal state.
	// Labels: state (won, lost)
	gamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordler",
		Subsystem: "oracle",
		Name:      "games_finished_total",
		Help:      "Oracle games that were won or lost",
	}, []string{"state"})

	// solveRounds is the number of guesses a server-side bot match took.
	// Labels: result (solved, stumped, exhausted)
	solveRounds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wordler",
		Subsystem: "solver",
		Name:      "rounds",
		Help:      "Guesses per bot match run by POST /solve",
		Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10, 15, 20},
	}, []string{"result"})

	// sessionsSwept counts finished games dropped from the store.
	sessionsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wordler",
		Subsystem: "store",
		Name:      "swept_total",
		Help:      "Finished games removed from the session store",
	})
)
