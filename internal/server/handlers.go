package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bizplan/internal/core"
	"bizplan/internal/store"
)

// maxFormBytes bounds the submitted form body.
const maxFormBytes = 1 << 20

// HealthResponse reports component checks
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// KeyStatus describes a configured secret without revealing it
type KeyStatus struct {
	Exists  bool   `json:"exists"`
	Length  int    `json:"length"`
	Preview string `json:"preview,omitempty"`
}

// EnvCheckResponse is returned by /api/env-check
type EnvCheckResponse struct {
	Status     string               `json:"status"`
	Variables  map[string]KeyStatus `json:"variables"`
	Generation GenerationStatus     `json:"generation"`
}

// GenerationStatus reports whether model generation can run
type GenerationStatus struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"store": "ok", "generation": "ok"}
	status, code := "ok", http.StatusOK

	if _, err := s.plans.Latest(r.Context()); err != nil && !errors.Is(err, store.ErrNotFound) {
		checks["store"] = "error"
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	if ok, _ := s.planner.Available(); !ok {
		checks["generation"] = "unavailable"
	}

	s.respondJSON(w, code, HealthResponse{Status: status, Checks: checks})
}

// handleEnvCheck handles GET /api/env-check
func (s *Server) handleEnvCheck(w http.ResponseWriter, r *http.Request) {
	ok, reason := s.planner.Available()
	gen := GenerationStatus{Available: ok}
	if reason != nil {
		gen.Reason = reason.Error()
	}

	s.respondJSON(w, http.StatusOK, EnvCheckResponse{
		Status:     "Environment check completed",
		Variables:  map[string]KeyStatus{"GEMINI_API_KEY": describeKey(s.geminiKey)},
		Generation: gen,
	})
}

// describeKey reports a key's presence, length and a masked preview.
func describeKey(key string) KeyStatus {
	st := KeyStatus{Exists: key != "", Length: len(key)}
	if len(key) > 6 {
		st.Preview = key[:3] + "..." + key[len(key)-3:]
	}
	return st
}

// handleCreatePlan handles POST /api/plans
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var in core.BusinessPlanInput
	body := http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result := s.planner.Generate(r.Context(), in)

	if err := s.plans.Save(r.Context(), *result); err != nil {
		s.log.Error("Failed to save business plan", "error", err, "plan_id", result.ID)
		s.respondError(w, http.StatusInternalServerError, "Failed to save the business plan")
		return
	}

	w.Header().Set("Location", "/api/plans/"+result.ID)
	s.respondPlan(w, r, http.StatusCreated, *result)
}

// handleLatestPlan handles GET /api/plans/latest
func (s *Server) handleLatestPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.plans.Latest(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "No business plan has been saved yet")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve the business plan")
		return
	}
	s.respondPlan(w, r, http.StatusOK, plan)
}

// handleGetPlan handles GET /api/plans/{id}
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := planID(r)
	plan, err := s.plans.Load(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "Business plan not found: "+id)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve the business plan")
		return
	}
	s.respondPlan(w, r, http.StatusOK, plan)
}

// respondPlan writes plan, dropping the raw model text unless ?raw=true.
func (s *Server) respondPlan(w http.ResponseWriter, r *http.Request, status int, plan core.PlanResult) {
	if raw, _ := strconv.ParseBool(r.URL.Query().Get("raw")); !raw {
		plan.RawResponse = ""
	}
	s.respondJSON(w, status, plan)
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes a JSON error body
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"status":  status,
			"message": message,
		},
	})
}
