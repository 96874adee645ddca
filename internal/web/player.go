package web

import (
	"dominaria/internal/util"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

func (s *Server) getPlayers(w http.ResponseWriter, _ *http.Request) {
	players, err := s.back.GetPlayers()
	if err != nil {
		s.error(w, err)
		return
	}

	s.response(w, http.StatusOK, players)
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDFromURL(r)
	if err != nil {
		s.error(w, err)
		return
	}

	player, err := s.back.GetPlayerByID(id)
	if err != nil {
		s.error(w, err)
		return
	}

	s.response(w, http.StatusOK, player)
}

func (s *Server) getPlayerRecentCommanders(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDFromURL(r)
	if err != nil {
		s.error(w, err)
		return
	}

	commanders, err := s.back.GetPlayerRecentCommanders(id)
	if err != nil {
		s.error(w, err)
		return
	}

	s.response(w, http.StatusOK, commanders)
}

func (s *Server) registerPlayer(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	player, err := s.back.RegisterPlayer(payload.Name)
	if err != nil {
		s.error(w, err)
		return
	}

	s.response(w, http.StatusCreated, player)
}

func (s *Server) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDFromURL(r)
	if err != nil {
		s.error(w, err)
		return
	}

	if err := s.back.DeletePlayer(id); err != nil {
		s.error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func playerIDFromURL(r *http.Request) (util.UUIDAsBlob, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return util.UUIDAsBlob{}, util.ErrPublic("invalid player ID")
	}

	return util.UUIDAsBlob(id), nil
}
