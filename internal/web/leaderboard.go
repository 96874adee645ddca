package web

import (
	"net/http"
	"strconv"
	"time"
)

func (s *Server) getLeaderboard(w http.ResponseWriter, _ *http.Request) {
	leaderboard, err := s.back.GetLeaderboard()
	if err != nil {
		s.error(w, err)
		return
	}

	s.cache(w, "public", 1*time.Minute)
	s.response(w, http.StatusOK, leaderboard)
}

func (s *Server) getCommanderStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.back.GetCommanderStats()
	if err != nil {
		s.error(w, err)
		return
	}

	s.cache(w, "public", 1*time.Minute)
	s.response(w, http.StatusOK, stats)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}

	history, err := s.back.GetGameHistory(page)
	if err != nil {
		s.error(w, err)
		return
	}

	s.cache(w, "public", 1*time.Minute)
	s.response(w, http.StatusOK, history)
}
