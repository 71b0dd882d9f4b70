package resolver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Ware71/CIAGA-sub002/pkg/common/logger"
	"github.com/Ware71/CIAGA-sub002/pkg/common/models"
	"github.com/Ware71/CIAGA-sub002/pkg/course"
)

type HTTPHandler struct {
	service *Service
	maxBody int64
}

func NewHTTPHandler(service *Service, maxBody int64) *HTTPHandler {
	return &HTTPHandler{service: service, maxBody: maxBody}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/courses/resolve", h.handleResolve).Methods(http.MethodPost)
	router.HandleFunc("/courses/{id}", h.handleGetCourse).Methods(http.MethodGet)
}

func (h *HTTPHandler) handleResolve(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.WithError(err).Warn("invalid resolve payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Resolve(r.Context(), req)
	if err != nil {
		if IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Log.WithError(err).Error("resolution failed")
		// A persistence failure mid-resolution still reports the course
		// id so the caller can retry without re-creating the course.
		status := http.StatusInternalServerError
		if result != nil && result.CourseID != "" {
			writeJSON(w, status, map[string]interface{}{
				"error":     "resolution failed",
				"course_id": result.CourseID,
			})
			return
		}
		http.Error(w, "internal error", status)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	crs, err := h.service.GetCourse(r.Context(), id)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			http.Error(w, "course not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to fetch course")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, crs)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
