package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"crop-survey-system/internal/application"
	"crop-survey-system/internal/domain"
)

// MissionHandler обробляє HTTP-запити, пов'язані з місіями
type MissionHandler struct {
	planningService *application.PlanningService
}

// NewMissionHandler створює новий MissionHandler
func NewMissionHandler(planningService *application.PlanningService) *MissionHandler {
	return &MissionHandler{
		planningService: planningService,
	}
}

// RegisterRoutes реєструє маршрути для MissionHandler
func (h *MissionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/missions/{id}", func(r chi.Router) {
		r.Get("/", h.GetMission)
		r.Get("/plan-file", h.GetPlanFile)
		r.Put("/status", h.UpdateStatus)
	})
}

// GetMission обробляє GET /missions/{id}
func (h *MissionHandler) GetMission(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid mission ID", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	mission, err := h.planningService.GetMission(ctx, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(mission); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetPlanFile обробляє GET /missions/{id}/plan-file і віддає JSON-артефакт
// плану, який дрон завантажує перед стартом
func (h *MissionHandler) GetPlanFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid mission ID", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	dataReader, err := h.planningService.GetPlanArtifact(ctx, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	defer dataReader.Close()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=flight_plan_%s.json", id))

	if _, err := io.Copy(w, dataReader); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateStatus обробляє PUT /missions/{id}/status
func (h *MissionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid mission ID", http.StatusBadRequest)
		return
	}

	var request struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status := domain.MissionStatus(request.Status)
	switch status {
	case domain.MissionStatusPlanned, domain.MissionStatusActive, domain.MissionStatusCompleted, domain.MissionStatusAborted:
	default:
		http.Error(w, "Invalid mission status", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if err := h.planningService.UpdateMissionStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
