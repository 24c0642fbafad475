package apiserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/decision"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/engerrors"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/observability/logging"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/rules"
)

type errorResponse struct {
	Error string `json:"error"`
	// FieldPath names the missing fact for incomplete-input errors, so the
	// question flow knows what to ask next.
	FieldPath string `json:"field_path,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var incomplete *engerrors.IncompleteInputError
	if errors.As(err, &incomplete) {
		resp.FieldPath = incomplete.FieldPath
	}
	var config *engerrors.ConfigurationError
	if errors.As(err, &config) {
		logging.Errorf("Configuration error surfaced to API: %v", err)
	}
	writeJSON(w, statusFor(err), resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleEvaluate runs one case evaluation. The request body is a
// decision.Request; the response is the full decision record.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req decision.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if req.Jurisdiction == "" || req.Product == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "jurisdiction and product are required"})
		return
	}

	rec, err := s.aggregator.Evaluate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type rulesetSummary struct {
	Version       string `json:"version"`
	Jurisdiction  string `json:"jurisdiction"`
	Product       string `json:"product"`
	EffectiveFrom string `json:"effective_from"`
	EffectiveTo   string `json:"effective_to,omitempty"`
	Routes        int    `json:"routes"`
	Grounds       int    `json:"grounds"`
	Blockers      int    `json:"blockers"`
	Source        string `json:"source"`
}

func (s *Server) handleRulesets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	all := s.repo.All()
	out := make([]rulesetSummary, 0, len(all))
	for _, rs := range all {
		out = append(out, summarize(rs))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rulesets": out})
}

// handleReload rebuilds the rule-set index from disk. Concurrent
// evaluations keep seeing the old index until the new one is published
// whole.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.repo.Reload(); err != nil {
		logging.Errorf("Rule-set reload failed, previous index kept: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func summarize(rs *rules.RuleSet) rulesetSummary {
	return rulesetSummary{
		Version:       rs.Version,
		Jurisdiction:  rs.Jurisdiction,
		Product:       rs.Product,
		EffectiveFrom: rs.EffectiveFrom.String(),
		EffectiveTo:   rs.EffectiveTo.String(),
		Routes:        len(rs.Routes),
		Grounds:       len(rs.Grounds),
		Blockers:      len(rs.Blockers),
		Source:        rs.Audit.Source,
	}
}
