package web

import (
	"fmt"
	"log"
	"net/http"
	"time"
)

func (s *Server) exportJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", exportFileName("json"))

	if err := s.back.ExportJSON(w); err != nil {
		// Too late for a status code, the dump is streamed.
		log.Printf("error: unable to export JSON: %s", err)
	}
}

func (s *Server) exportCSV(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", exportFileName("csv"))

	if err := s.back.ExportCSV(w); err != nil {
		log.Printf("error: unable to export CSV: %s", err)
	}
}

func (s *Server) backupDatabase(w http.ResponseWriter, _ *http.Request) {
	path, err := s.back.BackupDatabase()
	if err != nil {
		s.error(w, err)
		return
	}

	s.response(w, http.StatusCreated, map[string]string{"path": path})
}

func exportFileName(ext string) string {
	return fmt.Sprintf(
		`attachment; filename="dominaria_export_%s.%s"`,
		time.Now().Format("20060102_150405"), ext,
	)
}
