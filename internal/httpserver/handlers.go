package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/skillcoder/replica-alerter/internal/logic/monitor"
)

type statusResponse struct {
	Healthy bool               `json:"healthy"`
	LastRun monitor.RunSummary `json:"lastRun"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.monitor.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	// Ready and healthy coincide here: both mean the loop is running and the
	// last pass is recent enough.
	s.handleHealthz(w, r)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := statusResponse{
		Healthy: s.monitor.Ping(ctx) == nil,
		LastRun: s.monitor.LastRun(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.ErrorContext(ctx, "failed to encode status response",
			"error", err,
		)
	}
}
