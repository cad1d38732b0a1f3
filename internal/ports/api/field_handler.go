package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"crop-survey-system/internal/application"
	"crop-survey-system/internal/domain"
	"crop-survey-system/pkg/planner"
)

// FieldHandler обробляє HTTP-запити, пов'язані з полями
type FieldHandler struct {
	fieldService     *application.FieldService
	planningService  *application.PlanningService
	detectionService *application.DetectionService
}

// NewFieldHandler створює новий FieldHandler
func NewFieldHandler(fieldService *application.FieldService, planningService *application.PlanningService, detectionService *application.DetectionService) *FieldHandler {
	return &FieldHandler{
		fieldService:     fieldService,
		planningService:  planningService,
		detectionService: detectionService,
	}
}

// RegisterRoutes реєструє маршрути для FieldHandler
func (h *FieldHandler) RegisterRoutes(r chi.Router) {
	r.Route("/fields", func(r chi.Router) {
		r.Get("/", h.ListFields)
		r.Post("/", h.CreateField)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetField)
			r.Delete("/", h.DeleteField)
			r.Post("/plan", h.PlanMissions)
			r.Get("/missions", h.ListMissions)
			r.Get("/detections", h.ListDetections)
			r.Get("/media", h.ListMedia)
			r.Post("/media", h.UploadMedia)
			r.Get("/media/{key}", h.GetMedia)
		})
	})
}

// ListFields обробляє GET /fields
func (h *FieldHandler) ListFields(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields, err := h.fieldService.ListFields(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(fields); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateField обробляє POST /fields
func (h *FieldHandler) CreateField(w http.ResponseWriter, r *http.Request) {
	var field domain.Field
	if err := json.NewDecoder(r.Body).Decode(&field); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if err := h.fieldService.CreateField(ctx, &field); err != nil {
		var configErr *planner.ConfigError
		if errors.As(err, &configErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&field); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetField обробляє GET /fields/{id}
func (h *FieldHandler) GetField(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid field ID", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	field, err := h.fieldService.GetField(ctx, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(field); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteField обробляє DELETE /fields/{id}
func (h *FieldHandler) DeleteField(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid field ID", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if err := h.fieldService.DeleteField(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PlanMissions обробляє POST /fields/{id}/plan
func (h *FieldHandler) PlanMissions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid field ID", http.StatusBadRequest)
		return
	}

	var req application.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	missions, err := h.planningService.PlanMissions(ctx, id, req)
	if err != nil {
		var configErr *planner.ConfigError
		switch {
		case errors.As(err, &configErr):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, planner.ErrFieldObstructed):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(missions); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListMissions обробляє GET /fields/{id}/missions
func (h *FieldHandler) ListMissions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid field ID", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	missions, err := h.planningService.ListMissionsByField(ctx, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(missions); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListDetections обробляє GET /fields/{id}/detections
func (h *FieldHandler) ListDetections(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid field ID", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	var detections []*domain.Detection
	if kind := r.URL.Query().Get("kind"); kind != "" {
		detections, err = h.detectionService.ListByKind(ctx, id, domain.DetectionKind(kind))
	} else {
		detections, err = h.detectionService.ListByField(ctx, id)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(detections); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListMedia обробляє GET /fields/{id}/media
func (h *FieldHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid field ID", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	keys, err := h.fieldService.ListMedia(ctx, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(keys); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UploadMedia обробляє POST /fields/{id}/media
func (h *FieldHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid field ID", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 100*1024*1024) // Обмеження 100 МБ
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error retrieving file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := handler.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx := r.Context()
	objectKey, err := h.fieldService.SaveMedia(ctx, id, handler.Filename, contentType, file, handler.Size)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := map[string]string{
		"object_key": objectKey,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetMedia обробляє GET /fields/{id}/media/{key}
func (h *FieldHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(chi.URLParam(r, "key"))
	if err != nil {
		http.Error(w, "Invalid object key", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	dataReader, err := h.fieldService.GetMedia(ctx, key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer dataReader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", key))

	if _, err := io.Copy(w, dataReader); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
