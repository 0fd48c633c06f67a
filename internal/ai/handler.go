package ai

import (
	"encoding/json"
	"errors"
	"net/http"

	"ceyquest-server/internal/auth"
	"ceyquest-server/internal/models"

	"gorm.io/gorm"
)

type Handler struct {
	client *Client
	db     *gorm.DB
}

func NewHandler(client *Client, db *gorm.DB) *Handler {
	return &Handler{client: client, db: db}
}

type ChatRequest struct {
	Message   string `json:"message"`
	SubjectID *uint  `json:"subject_id"`
	Grade     *int   `json:"grade"`
}

type ChatResponse struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

// Chat answers a tutoring question with the caller's grade and optional
// subject as prompt context.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	var profile models.Profile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "User profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	subjectContext := ""
	if req.SubjectID != nil {
		var subject models.Subject
		if err := h.db.First(&subject, *req.SubjectID).Error; err == nil {
			subjectContext = subject.Name
		}
	}

	grade := profile.Grade
	if req.Grade != nil {
		grade = *req.Grade
	}

	response := h.client.GenerateResponse(r.Context(), req.Message, subjectContext, grade)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ChatResponse{Response: response, Sources: nil})
}

type GenerateQuestionRequest struct {
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Grade      int    `json:"grade"`
	Difficulty string `json:"difficulty"`
}

func (h *Handler) GenerateQuestion(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Subject == "" || req.Topic == "" {
		http.Error(w, "subject and topic are required", http.StatusBadRequest)
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	question, err := h.client.GenerateQuizQuestion(r.Context(), req.Subject, req.Topic, req.Grade, req.Difficulty)
	if err != nil || question == nil {
		http.Error(w, "Failed to generate quiz question", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(question)
}
