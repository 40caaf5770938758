package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizplan/internal/core"
	"bizplan/internal/store"
)

// PlanPageData is the view model for templates/plan.html
type PlanPageData struct {
	Plan     core.PlanResult
	Initials string
	Sections []SectionView
}

// SectionView is one rendered plan section
type SectionView struct {
	Title  string
	Fields []FieldView
}

// FieldView is one rendered plan field
type FieldView struct {
	Label   string
	Value   string
	Missing bool
}

// planID returns the {id} URL parameter
func planID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// handlePlanPage handles GET /plans/{id}; the id "latest" shows the most
// recently saved plan.
func (s *Server) handlePlanPage(w http.ResponseWriter, r *http.Request) {
	id := planID(r)

	var (
		plan core.PlanResult
		err  error
	)
	if id == "latest" {
		plan, err = s.plans.Latest(r.Context())
	} else {
		plan, err = s.plans.Load(r.Context(), id)
	}
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Business plan not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("Failed to load business plan", "error", err, "plan_id", id)
		http.Error(w, "Failed to load business plan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, "plan.html", newPlanPageData(plan)); err != nil {
		s.log.Error("Failed to render plan page", "error", err, "plan_id", id)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func newPlanPageData(plan core.PlanResult) PlanPageData {
	data := PlanPageData{Plan: plan, Initials: initials(plan.BusinessName)}
	if plan.Data == nil {
		return data
	}

	for _, section := range plan.Data.Sections {
		view := SectionView{Title: section.Title}
		for _, f := range section.Fields {
			label := f.Key
			if spec, ok := core.LookupField(section.Key, f.Key); ok && len(spec.Labels) > 0 {
				label = spec.Labels[0]
			}
			view.Fields = append(view.Fields, FieldView{
				Label:   label,
				Value:   f.Value,
				Missing: f.Value == "" || f.Value == core.NotSpecified,
			})
		}
		data.Sections = append(data.Sections, view)
	}
	return data
}
