package quiz

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ceyquest-server/internal/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuestionsRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/quizzes/{id}/questions", handler.GetQuestions).Methods("GET")
	return router
}

func TestQuestionsEndpointNeverLeaksAnswerKey(t *testing.T) {
	db := newTestDB(t)
	handler := NewHandler(NewService(NewRepository(db), nil))

	qz := seedQuiz(t, db, "Geography")
	require.NoError(t, db.Create(&models.QuizQuestion{
		QuizID:        qz.ID,
		QuestionText:  "Capital of Sri Lanka?",
		OptionA:       "Colombo",
		OptionB:       "Kandy",
		OptionC:       "Galle",
		OptionD:       "Jaffna",
		CorrectAnswer: "A",
		Explanation:   "Colombo is the commercial capital.",
	}).Error)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/quizzes/%d/questions", qz.ID), nil)
	rec := httptest.NewRecorder()
	newQuestionsRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.False(t, strings.Contains(body, "correct_answer"), "answer key leaked: %s", body)
	assert.False(t, strings.Contains(body, "explanation"), "explanation leaked: %s", body)
	assert.Contains(t, body, "Capital of Sri Lanka?")
}

func TestQuestionsEndpointUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	handler := NewHandler(NewService(NewRepository(db), nil))

	req := httptest.NewRequest(http.MethodGet, "/api/quizzes/999/questions", nil)
	rec := httptest.NewRecorder()
	newQuestionsRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitAttemptRequiresAuthenticatedUser(t *testing.T) {
	db := newTestDB(t)
	handler := NewHandler(NewService(NewRepository(db), nil))

	router := mux.NewRouter()
	router.HandleFunc("/api/quizzes/{id}/submit", handler.SubmitAttempt).Methods("POST")

	// No authenticated user on the context at all.
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/1/submit", strings.NewReader(`{"score":5,"total_questions":10}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.QuizAttempt{}).Count(&count).Error)
	assert.Zero(t, count, "unauthenticated submit must not write")
}
