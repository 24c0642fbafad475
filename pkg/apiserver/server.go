// Package apiserver exposes the engine over a narrow JSON HTTP surface:
// evaluate a case, list loaded rule sets, trigger a reload. All persistence
// and document rendering live with the surrounding platform; the server
// here is a thin adapter over the aggregator.
package apiserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/decision"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/engerrors"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/observability/logging"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/repository"
)

// Server wires the evaluation endpoints onto an aggregator and repository.
type Server struct {
	aggregator *decision.Aggregator
	repo       *repository.Repository
}

// New builds a Server.
func New(aggregator *decision.Aggregator, repo *repository.Repository) *Server {
	return &Server{aggregator: aggregator, repo: repo}
}

// Routes returns the server's HTTP mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/evaluate", s.handleEvaluate)
	mux.HandleFunc("/api/v1/rulesets", s.handleRulesets)
	mux.HandleFunc("/api/v1/rulesets/reload", s.handleReload)
	return mux
}

// ListenAndServe starts the server on the given port with conservative
// timeouts. Blocks until the listener fails.
func (s *Server) ListenAndServe(port int) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	logging.Infof("Eligibility API listening on port %d", port)
	return srv.ListenAndServe()
}

// statusFor maps the engine's error taxonomy onto HTTP. Incomplete input is
// the caller's to fix (422); an unsupported jurisdiction is a 404;
// configuration defects are 500s and logged loudly.
func statusFor(err error) int {
	var incomplete *engerrors.IncompleteInputError
	var unsupported *engerrors.UnsupportedJurisdictionError
	var config *engerrors.ConfigurationError
	switch {
	case errors.As(err, &incomplete):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unsupported):
		return http.StatusNotFound
	case errors.As(err, &config):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
