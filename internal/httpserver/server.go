// internal/httpserver/server.go
//
// HTTP oracle surface.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Oracle endpoints: POST /game/new, POST /game/guess, POST /game/resign.
//   - Daily endpoints: mounted under /daily.
//   - Bot endpoint: POST /solve runs a solver against a memory oracle.
//
// Notes:
//   - Games live in the session store; a signed token (see token.go) names
//     the game on every guess.
//   - Guesses are scored as-is: any length, any word. Length mismatches come
//     back as missing/extra positions.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordler/internal/game"
	"github.com/robalobadob/wordler/internal/match"
	"github.com/robalobadob/wordler/internal/solver"
	"github.com/robalobadob/wordler/internal/store"
	"github.com/robalobadob/wordler/internal/words"
)

// Config holds server settings. Zero values fall back to defaults in New.
type Config struct {
	JWTSecret  string        // HS256 key for game tokens
	TokenTTL   time.Duration // token lifetime (default 24h)
	DailySalt  string        // salt for the daily secret
	MaxGuesses int           // default guess budget; 0 means unlimited
	WordLength int           // default secret length (default 5)
	Origin     string        // CORS origin (default http://localhost:5173)
	SweepEvery time.Duration // how often finished games are dropped (default 10m)
}

// Server bundles router, session store and dictionary.
type Server struct {
	r     *chi.Mux
	store store.Store
	dict  *words.Dictionary
	cfg   Config
	now   func() time.Time

	// guards Game mutation; the store only guards the map
	mu sync.Mutex
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, dict *words.Dictionary, cfg Config) *Server {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev_secret_change_me"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.WordLength <= 0 {
		cfg.WordLength = 5
	}
	if cfg.Origin == "" {
		cfg.Origin = "http://localhost:5173"
	}
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = 10 * time.Minute
	}
	s := &Server{r: chi.NewRouter(), store: st, dict: dict, cfg: cfg, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.Origin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordler","endpoints":["/health","/metrics","POST /game/new","POST /game/guess","POST /game/resign","POST /daily/new","POST /solve"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"words":   s.dict.Len(),
			"lengths": s.dict.Lengths(),
			"games":   s.store.Len(),
		})
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Post("/game/resign", s.handleResign)
	s.r.Post("/solve", s.handleSolve)
	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Run serves on addr until ctx is done, sweeping finished games meanwhile.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go s.sweepLoop(ctx)

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

type sweeper interface {
	Sweep(maxAge time.Duration) int
}

func (s *Server) sweepLoop(ctx context.Context) {
	sw, ok := s.store.(sweeper)
	if !ok {
		return
	}
	t := time.NewTicker(s.cfg.SweepEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := sw.Sweep(s.cfg.SweepEvery); n > 0 {
				sessionsSwept.Add(float64(n))
				log.Debug().Int("swept", n).Msg("dropped finished games")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows a single browser origin to call the API.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	http.Error(w, `{"error":"`+code+`"}`, status)
}

// decodeOptional reads a JSON body into v; an empty body leaves v untouched.
func decodeOptional(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// bearerToken extracts a token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Length     int    `json:"length"`     // secret length for random games
	MaxGuesses *int   `json:"maxGuesses"` // nil means server default
	Answer     string `json:"answer"`     // optional fixed secret (testing)
	Daily      bool   `json:"daily"`      // use the day's secret
}

type newGameRes struct {
	GameID     string `json:"gameId"`
	Token      string `json:"token"`
	Length     int    `json:"length"`
	MaxGuesses int    `json:"maxGuesses"`
	Date       string `json:"date,omitempty"`
}

// budget resolves a requested guess budget against the server default.
func (s *Server) budget(req *int) (int, bool) {
	if req == nil {
		return s.cfg.MaxGuesses, true
	}
	return *req, *req >= 0
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	budget, ok := s.budget(req.MaxGuesses)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_max_guesses")
		return
	}

	switch {
	case req.Daily:
		date, secret := s.dailySecret()
		if secret == "" {
			writeError(w, http.StatusServiceUnavailable, "no_daily_word")
			return
		}
		s.startGame(w, r, secret, budget, "daily", date)
	case req.Answer != "":
		secret, ok := words.Normalize(req.Answer)
		if !ok {
			writeError(w, http.StatusBadRequest, "bad_answer")
			return
		}
		s.startGame(w, r, secret, budget, "fixed", "")
	default:
		n := req.Length
		if n <= 0 {
			n = s.cfg.WordLength
		}
		secret := s.dict.Random(n, nil)
		if secret == "" {
			writeError(w, http.StatusUnprocessableEntity, "no_words_of_length")
			return
		}
		s.startGame(w, r, secret, budget, "random", "")
	}
}

// startGame stores a new session around secret and answers with its token.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, secret string, budget int, kind, date string) {
	g := game.NewGame(uuid.NewString(), secret, budget)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, err := signGameToken([]byte(s.cfg.JWTSecret), g.ID, s.now(), s.cfg.TokenTTL)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "token_failed")
		return
	}
	gamesStarted.WithLabelValues(kind).Inc()
	log.Info().Str("gameId", g.ID).Str("kind", kind).Int("length", g.Length).Int("maxGuesses", budget).Msg("game started")

	writeJSON(w, http.StatusOK, newGameRes{
		GameID:     g.ID,
		Token:      tok,
		Length:     g.Length,
		MaxGuesses: budget,
		Date:       date,
	})
}

type guessReq struct {
	Token string `json:"token"` // may instead arrive as a bearer token
	Guess string `json:"guess"`
}

type guessRes struct {
	Outcome      string   `json:"outcome"` // "match" | "mismatch"
	Feedback     string   `json:"feedback,omitempty"`
	Dispositions []string `json:"dispositions,omitempty"`
	State        string   `json:"state"` // "playing" | "won" | "lost"
	Guesses      int      `json:"guesses"`
	Answer       string   `json:"answer,omitempty"` // revealed once finished
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Token == "" {
		req.Token = bearerToken(r)
	}
	id, err := parseGameToken([]byte(s.cfg.JWTSecret), req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "bad_token")
		return
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}

	// Save runs under s.mu too: the store snapshots g.Finished.
	var saveErr error
	s.mu.Lock()
	out, err := g.ApplyGuess(req.Guess)
	res := guessRes{State: g.State(), Guesses: len(g.Guesses), Answer: g.Secret()}
	won := g.Won
	if err == nil {
		saveErr = s.store.Save(r.Context(), g)
	}
	s.mu.Unlock()

	switch {
	case errors.Is(err, game.ErrGameFinished) && won:
		writeError(w, http.StatusConflict, "game_finished")
		return
	case errors.Is(err, game.ErrGameFinished):
		writeError(w, http.StatusTooManyRequests, "too_many_guesses")
		return
	case errors.Is(err, game.ErrBadGuess):
		writeError(w, http.StatusBadRequest, "bad_guess")
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", id).Msg("apply guess")
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return
	}
	if saveErr != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	if out.Match {
		res.Outcome = "match"
	} else {
		res.Outcome = "mismatch"
		res.Feedback = out.Feedback.String()
		for _, d := range out.Feedback {
			res.Dispositions = append(res.Dispositions, d.String())
		}
	}
	guessesScored.WithLabelValues(res.Outcome).Inc()
	if res.State != "playing" {
		gamesFinished.WithLabelValues(res.State).Inc()
		log.Info().Str("gameId", id).Str("state", res.State).Int("guesses", res.Guesses).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, res)
}

type resignReq struct {
	Token string `json:"token"` // may instead arrive as a bearer token
}

type resignRes struct {
	Answer  string `json:"answer"`
	Guesses int    `json:"guesses"`
}

// handleResign gives up a game: the answer is revealed and the session is
// dropped from the store, so later guesses on its token get 404.
func (s *Server) handleResign(w http.ResponseWriter, r *http.Request) {
	var req resignReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Token == "" {
		req.Token = bearerToken(r)
	}
	id, err := parseGameToken([]byte(s.cfg.JWTSecret), req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "bad_token")
		return
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}

	s.mu.Lock()
	wasPlaying := !g.Finished
	g.Resign()
	res := resignRes{Answer: g.Secret(), Guesses: len(g.Guesses)}
	err = s.store.Delete(r.Context(), id)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}

	if wasPlaying {
		gamesFinished.WithLabelValues("lost").Inc()
	}
	log.Info().Str("gameId", id).Int("guesses", res.Guesses).Msg("game resigned")
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------ SOLVE --------------------------------------

type solveReq struct {
	Answer     string  `json:"answer"`     // secret; random when empty
	Length     int     `json:"length"`     // length of the random secret
	MaxGuesses *int    `json:"maxGuesses"` // nil means server default
	Seed       *uint64 `json:"seed"`       // fixes the solver's choices
}

type solveRound struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"`
}

type solveRes struct {
	Answer  string       `json:"answer"`
	Result  string       `json:"result"` // "solved" | "stumped" | "exhausted"
	Rounds  int          `json:"rounds"`
	History []solveRound `json:"history"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	budget, ok := s.budget(req.MaxGuesses)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_max_guesses")
		return
	}

	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewPCG(*req.Seed, *req.Seed))
	}

	secret := req.Answer
	if secret == "" {
		n := req.Length
		if n <= 0 {
			n = s.cfg.WordLength
		}
		secret = s.dict.Random(n, rng)
	} else if secret, ok = words.Normalize(secret); !ok {
		writeError(w, http.StatusBadRequest, "bad_answer")
		return
	}
	if secret == "" {
		writeError(w, http.StatusUnprocessableEntity, "no_words_of_length")
		return
	}

	oracle := game.NewMemoryOracle(secret, budget)
	var opts []solver.Option
	if rng != nil {
		opts = append(opts, solver.WithRand(rng))
	}
	ds, err := solver.New(oracle.WordLength(), slices.Values(s.dict.Words()), opts...)
	if errors.Is(err, solver.ErrEmptyDictionary) {
		writeError(w, http.StatusUnprocessableEntity, "empty_dictionary")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "solver_failed")
		return
	}

	result, err := match.Play(oracle, ds)
	res := solveRes{Answer: secret, Rounds: result.Rounds, History: make([]solveRound, 0, len(result.History))}
	for _, rd := range result.History {
		fb := rd.Outcome.Feedback.String()
		if rd.Outcome.Match {
			fb = strings.Repeat("g", oracle.WordLength())
		}
		res.History = append(res.History, solveRound{Guess: rd.Guess, Feedback: fb})
	}
	switch {
	case err == nil:
		res.Result = "solved"
	case errors.Is(err, solver.ErrStumped):
		res.Result = "stumped"
	case errors.Is(err, game.ErrTooManyGuesses):
		res.Result = "exhausted"
	default:
		log.Error().Err(err).Str("answer", secret).Msg("solve")
		writeError(w, http.StatusInternalServerError, "solver_failed")
		return
	}
	solveRounds.WithLabelValues(res.Result).Observe(float64(res.Rounds))
	writeJSON(w, http.StatusOK, res)
}
