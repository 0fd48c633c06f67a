package subject

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ceyquest-server/internal/models"

	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	var grade *int
	if raw := r.URL.Query().Get("grade"); raw != "" {
		g, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "grade must be an integer", http.StatusBadRequest)
			return
		}
		grade = &g
	}

	subjects, err := h.service.ListSubjects(grade)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subjects)
}

func (h *Handler) GetSubject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid subject id", http.StatusBadRequest)
		return
	}

	subject, err := h.service.GetSubject(id)
	if err != nil {
		if errors.Is(err, models.ErrSubjectNotFound) {
			http.Error(w, "Subject not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subject)
}

func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid subject id", http.StatusBadRequest)
		return
	}

	resources, err := h.service.ListResources(id, r.URL.Query().Get("type"))
	if err != nil {
		if errors.Is(err, models.ErrSubjectNotFound) {
			http.Error(w, "Subject not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resources)
}

func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid resource id", http.StatusBadRequest)
		return
	}

	resource, err := h.service.GetResource(id)
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			http.Error(w, "Resource not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resource)
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
