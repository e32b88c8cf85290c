package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordler/internal/daily"
	"github.com/robalobadob/wordler/internal/store"
	"github.com/robalobadob/wordler/internal/words"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T, list ...string) *Server {
	t.Helper()
	if len(list) == 0 {
		list = strings.Fields("adieu audio radio ratio")
	}
	return New(store.NewMemoryStore(), words.New(list), Config{JWTSecret: testSecret, MaxGuesses: 6, DailySalt: "salt"})
}

type header struct{ k, v string }

func do(t *testing.T, s *Server, method, path string, body any, hdrs ...header) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	for _, h := range hdrs {
		req.Header.Set(h.k, h.v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, rec)["error"]
}

func newGame(t *testing.T, s *Server, body map[string]any) newGameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/new", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[newGameRes](t, rec)
}

func guess(t *testing.T, s *Server, token, word string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, s, http.MethodPost, "/game/guess", map[string]string{"token": token, "guess": word})
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGameWin(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, map[string]any{"answer": "Radio", "maxGuesses": 3})
	assert.Equal(t, 5, g.Length)
	assert.Equal(t, 3, g.MaxGuesses)
	assert.NotEmpty(t, g.GameID)

	rec := guess(t, s, g.Token, "adieu")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[guessRes](t, rec)
	assert.Equal(t, "mismatch", res.Outcome)
	assert.Equal(t, "yyy..", res.Feedback)
	assert.Equal(t, []string{"wrong_position", "wrong_position", "wrong_position", "not_in_word", "not_in_word"}, res.Dispositions)
	assert.Equal(t, "playing", res.State)
	assert.Empty(t, res.Answer)

	res = decode[guessRes](t, guess(t, s, g.Token, "RADIO"))
	assert.Equal(t, "match", res.Outcome)
	assert.Empty(t, res.Feedback)
	assert.Equal(t, "won", res.State)
	assert.Equal(t, 2, res.Guesses)
	assert.Equal(t, "radio", res.Answer)

	rec = guess(t, s, g.Token, "radio")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "game_finished", errorCode(t, rec))
}

func TestGameBudgetExhausted(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, map[string]any{"answer": "radio", "maxGuesses": 1})

	res := decode[guessRes](t, guess(t, s, g.Token, "ratio"))
	assert.Equal(t, "lost", res.State)
	assert.Equal(t, "radio", res.Answer)

	rec := guess(t, s, g.Token, "radio")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "too_many_guesses", errorCode(t, rec))
}

func TestGuessLengthMismatch(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, map[string]any{"answer": "radio"})

	res := decode[guessRes](t, guess(t, s, g.Token, "rad"))
	assert.Equal(t, "ggg--", res.Feedback)
	assert.Equal(t, "missing", res.Dispositions[4])

	res = decode[guessRes](t, guess(t, s, g.Token, "radios"))
	assert.Equal(t, "ggggg+", res.Feedback)
}

func TestGuessTokens(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, nil)

	rec := guess(t, s, "not-a-token", "radio")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	forged, err := signGameToken([]byte("other"), g.GameID, time.Now(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, guess(t, s, forged, "radio").Code)

	expired, err := signGameToken([]byte(testSecret), g.GameID, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, guess(t, s, expired, "radio").Code)

	ghost, err := signGameToken([]byte(testSecret), "ghost", time.Now(), time.Hour)
	require.NoError(t, err)
	rec = guess(t, s, ghost, "radio")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))

	rec = do(t, s, http.MethodPost, "/game/guess", map[string]string{"guess": "audio"},
		header{"Authorization", "Bearer " + g.Token})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewGameValidation(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/game/new", map[string]any{"answer": "it's"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_answer", errorCode(t, rec))

	rec = do(t, s, http.MethodPost, "/game/new", map[string]any{"length": 9})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/new", map[string]any{"maxGuesses": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/game/new", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/guess", map[string]string{"guess": "radio"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRandomGameUsesDictionary(t *testing.T) {
	s := newTestServer(t, "cat", "dog", "radio")
	g := newGame(t, s, map[string]any{"length": 3, "maxGuesses": 0})
	assert.Equal(t, 3, g.Length)

	// Both candidates are scored; one of them must match.
	won := false
	for _, w := range []string{"cat", "dog"} {
		rec := guess(t, s, g.Token, w)
		if rec.Code != http.StatusOK {
			break
		}
		if decode[guessRes](t, rec).Outcome == "match" {
			won = true
			break
		}
	}
	assert.True(t, won)
}

func TestDaily(t *testing.T) {
	s := newTestServer(t)
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	want := daily.Secret(now, "salt", []string{"adieu", "audio", "radio", "ratio"})

	rec := do(t, s, http.MethodGet, "/daily/today", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dailyTodayRes{Date: "2026-10-19", Length: 5}, decode[dailyTodayRes](t, rec))

	rec = do(t, s, http.MethodPost, "/daily/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	a := decode[newGameRes](t, rec)
	assert.Equal(t, "2026-10-19", a.Date)

	b := newGame(t, s, map[string]any{"daily": true})
	assert.NotEqual(t, a.GameID, b.GameID)

	for _, tok := range []string{a.Token, b.Token} {
		res := decode[guessRes](t, guess(t, s, tok, want))
		assert.Equal(t, "match", res.Outcome)
	}
}

func TestDailyWithoutWords(t *testing.T) {
	s := newTestServer(t, "cat")
	rec := do(t, s, http.MethodPost, "/daily/new", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSolve(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/solve", map[string]any{"answer": "radio", "seed": 7})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[solveRes](t, rec)
	assert.Equal(t, "solved", res.Result)
	assert.Equal(t, res.Rounds, len(res.History))
	last := res.History[len(res.History)-1]
	assert.Equal(t, solveRound{Guess: "radio", Feedback: "ggggg"}, last)

	res = decode[solveRes](t, do(t, s, http.MethodPost, "/solve", map[string]any{"answer": "zzzzz"}))
	assert.Equal(t, "stumped", res.Result)

	rec = do(t, s, http.MethodPost, "/solve", map[string]any{"answer": "zz"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "empty_dictionary", errorCode(t, rec))
}

func TestSolveExhausted(t *testing.T) {
	s := newTestServer(t, "aaaaa", "bbbbb", "ccccc", "ddddd")
	rec := do(t, s, http.MethodPost, "/solve", map[string]any{"answer": "eeeee", "maxGuesses": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[solveRes](t, rec)
	assert.Equal(t, "exhausted", res.Result)
	assert.Equal(t, 2, res.Rounds)
}

func TestDebugAndMetrics(t *testing.T) {
	s := newTestServer(t, "cat", "dog", "radio")
	newGame(t, s, map[string]any{"answer": "cat"})

	rec := do(t, s, http.MethodGet, "/debug/words", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"words":3,"lengths":{"3":2,"5":1},"games":1}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wordler_oracle_games_started_total")
}

func TestParseGameToken(t *testing.T) {
	tok, err := signGameToken([]byte("k"), "g1", time.Now(), time.Minute)
	require.NoError(t, err)
	id, err := parseGameToken([]byte("k"), tok)
	require.NoError(t, err)
	assert.Equal(t, "g1", id)

	_, err = parseGameToken([]byte("k"), "")
	require.ErrorIs(t, err, ErrBadToken)
}

func TestResign(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, map[string]any{"answer": "radio"})
	require.Equal(t, http.StatusOK, guess(t, s, g.Token, "audio").Code)

	rec := do(t, s, http.MethodPost, "/game/resign", map[string]string{"token": g.Token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, resignRes{Answer: "radio", Guesses: 1}, decode[resignRes](t, rec))
	assert.Zero(t, s.store.Len())

	rec = guess(t, s, g.Token, "radio")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/resign", nil, header{"Authorization", "Bearer " + g.Token})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/resign", map[string]string{"token": "junk"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Guesses and sweeps touch the same games from different goroutines; run
// with -race.
func TestConcurrentGuessesAndSweep(t *testing.T) {
	st := store.NewMemoryStore()
	s := New(st, words.New(strings.Fields("adieu audio radio ratio")), Config{JWTSecret: testSecret, MaxGuesses: 3})

	tokens := make([]string, 8)
	for i := range tokens {
		tokens[i] = newGame(t, s, map[string]any{"answer": "radio"}).Token
	}

	stop := make(chan struct{})
	swept := make(chan int)
	go func() {
		n := 0
		for {
			select {
			case <-stop:
				swept <- n
				return
			default:
				n += st.Sweep(0)
			}
		}
	}()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = map[int]int{}
	)
	for _, tok := range tokens {
		for _, w := range []string{"adieu", "audio", "ratio", "radio"} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				body := strings.NewReader(`{"token":"` + tok + `","guess":"` + w + `"}`)
				rec := httptest.NewRecorder()
				s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/game/guess", body))
				mu.Lock()
				codes[rec.Code]++
				mu.Unlock()
			}()
		}
	}
	wg.Wait()
	close(stop)
	<-swept

	for code := range codes {
		assert.Contains(t, []int{http.StatusOK, http.StatusNotFound, http.StatusConflict, http.StatusTooManyRequests}, code)
	}
	assert.Positive(t, codes[http.StatusOK])
}
