package web

import (
	"dominaria/internal/back"
	"dominaria/internal/util"
	"encoding/json"
	"net/http"
	"time"
)

func (s *Server) searchCommanders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.error(w, util.ErrPublic("missing `q` parameter"))
		return
	}

	commanders, err := s.back.SearchCommanders(query)
	if err != nil {
		s.error(w, err)
		return
	}

	s.cache(w, "public", 1*time.Hour)
	s.response(w, http.StatusOK, commanders)
}

func (s *Server) submitGame(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PlayedAt   string
		Winner     string
		Commanders map[string]string
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	playedAt, err := time.Parse("2006-01-02", payload.PlayedAt)
	if err != nil {
		s.error(w, util.ErrPublic("PlayedAt must be a YYYY-MM-DD date"))
		return
	}

	game, deltas, err := s.back.SubmitGame(back.GameSubmission{
		PlayedAt:   playedAt,
		Winner:     payload.Winner,
		Commanders: payload.Commanders,
	})
	if err != nil {
		s.error(w, err)
		return
	}

	s.response(w, http.StatusCreated, struct {
		Game   back.Game
		Deltas map[string]float64
	}{game, deltas})
}
