// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenge.
// Exposes two endpoints under /daily:
//   - POST /daily/new   → start a game around today's secret
//   - GET  /daily/today → today's date key and word length (never the word)
//
// Every game started on the same UTC date gets the same secret, chosen
// deterministically from date + salt. Guesses go through POST /game/guess
// like any other game.

package httpserver

import (
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordler/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Get("/today", s.handleDailyToday)
	})
}

// dailySecret returns today's date key and secret, or "" when the
// dictionary has no words of the configured length.
func (s *Server) dailySecret() (date, secret string) {
	now := s.now().UTC()
	return daily.DateKey(now), daily.Secret(now, s.cfg.DailySalt, s.dict.OfLength(s.cfg.WordLength))
}

type dailyNewReq struct {
	MaxGuesses *int `json:"maxGuesses"`
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req dailyNewReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	budget, ok := s.budget(req.MaxGuesses)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_max_guesses")
		return
	}
	date, secret := s.dailySecret()
	if secret == "" {
		writeError(w, http.StatusServiceUnavailable, "no_daily_word")
		return
	}
	s.startGame(w, r, secret, budget, "daily", date)
}

type dailyTodayRes struct {
	Date   string `json:"date"`
	Length int    `json:"length"`
}

func (s *Server) handleDailyToday(w http.ResponseWriter, r *http.Request) {
	date, secret := s.dailySecret()
	if secret == "" {
		writeError(w, http.StatusServiceUnavailable, "no_daily_word")
		return
	}
	writeJSON(w, http.StatusOK, dailyTodayRes{Date: date, Length: utf8.RuneCountInString(secret)})
}
