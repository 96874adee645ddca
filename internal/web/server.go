package web

import (
	"database/sql"
	"dominaria/internal/back"
	"dominaria/internal/config"
	"dominaria/internal/util"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/", noContent)

	r.Get("/v1/leaderboard", s.getLeaderboard)
	r.Get("/v1/leaderboard/commanders", s.getCommanderStats)
	r.Get("/v1/history", s.getHistory)
	r.Get("/v1/players", s.getPlayers)
	r.Get("/v1/player/{id}", s.getPlayer)
	r.Get("/v1/player/{id}/commanders", s.getPlayerRecentCommanders)
	r.Get("/v1/commanders", s.searchCommanders)

	r.Post("/v1/auth", s.authenticate)

	r.Group(func(r chi.Router) {
		r.Use(s.adminOnly)

		r.Post("/v1/games", s.submitGame)
		r.Post("/v1/players", s.registerPlayer)
		r.Delete("/v1/player/{id}", s.deletePlayer)
		r.Get("/v1/export.json", s.exportJSON)
		r.Get("/v1/export.csv", s.exportCSV)
		r.Post("/v1/backup", s.backupDatabase)
	})

	return r
}

type Server struct {
	http   *http.Server
	back   *back.Back
	config *config.Config
}

func NewServer(back *back.Back, conf *config.Config) *Server {
	s := &Server{
		back:   back,
		config: conf,
	}

	s.http = &http.Server{
		Addr:         conf.Listen,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  10 * time.Second,
		Handler:      s.setupRouter(),
	}

	return s
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	log.Println("info: starting HTTP server")
	wg.Add(1)
	defer wg.Done()

	go func() {
		err := s.http.ListenAndServe()
		if err == http.ErrServerClosed {
			log.Println("info: HTTP server closed")
			return
		}

		log.Fatalf("webserver crashed: %s", err)
	}()

	<-done
	if err := s.http.Close(); err != nil {
		log.Printf("warning: unable to close webserver: %s", err)
	}
}

func (s *Server) response(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(data)
	if err != nil {
		log.Printf("error: unable to marshal response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)

	if _, err := w.Write(response); err != nil {
		log.Printf("error: unable to send response: %s", err)
	}
}

// error sends user errors back with their message, anything else is logged
// and kept opaque.
func (s *Server) error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, util.ErrPublic("")):
		s.response(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, sql.ErrNoRows):
		w.WriteHeader(http.StatusNotFound)
	default:
		log.Printf("error: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *Server) cache(w http.ResponseWriter, scope string, d time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("%s,max-age=%d", scope, d/time.Second))
}
