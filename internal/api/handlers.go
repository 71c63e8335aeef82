package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/terra-clan/interview-console/internal/storage"
)

// Response helpers. Bodies are bare JSON per the wire contract: a plain
// array or object on success, {"error": message} on failure.

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// createRequest carries the user-editable fields of a create call.
type createRequest struct {
	QuestionText    string `json:"question_text"`
	Category        string `json:"category"`
	Difficulty      string `json:"difficulty"`
	ReferenceAnswer string `json:"reference_answer"`
}

// updateRequest carries a partial update; absent fields stay unchanged.
type updateRequest struct {
	QuestionText    *string `json:"question_text"`
	Category        *string `json:"category"`
	Difficulty      *string `json:"difficulty"`
	ReferenceAnswer *string `json:"reference_answer"`
}

type signupRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "service not ready")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.repo.ListQuestions(r.Context())
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list questions")
		return
	}
	if questions == nil {
		questions = []*storage.Question{}
	}
	respondJSON(w, http.StatusOK, questions)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	question, err := s.repo.GetQuestion(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrQuestionNotFound) {
			respondError(w, http.StatusNotFound, "question not found")
			return
		}
		slog.Error("failed to get question", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to get question")
		return
	}
	respondJSON(w, http.StatusOK, question)
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.QuestionText) == "" {
		respondError(w, http.StatusBadRequest, "question_text is required")
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		respondError(w, http.StatusBadRequest, "category is required")
		return
	}
	difficulty, ok := canonicalDifficulty(req.Difficulty)
	if !ok {
		respondError(w, http.StatusBadRequest, "difficulty must be Easy, Medium or Hard")
		return
	}

	question := &storage.Question{
		ID:              uuid.NewString(),
		QuestionText:    req.QuestionText,
		Category:        req.Category,
		Competency:      req.Category,
		Difficulty:      difficulty,
		ReferenceAnswer: req.ReferenceAnswer,
		CreateAt:        time.Now().UTC(),
	}

	if err := s.repo.CreateQuestion(r.Context(), question); err != nil {
		slog.Error("failed to create question", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create question")
		return
	}

	slog.Info("question created", "id", question.ID, "category", question.Category)
	respondJSON(w, http.StatusCreated, question)
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.QuestionText != nil && strings.TrimSpace(*req.QuestionText) == "" {
		respondError(w, http.StatusBadRequest, "question_text must not be empty")
		return
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		respondError(w, http.StatusBadRequest, "category must not be empty")
		return
	}
	if req.Difficulty != nil {
		difficulty, ok := canonicalDifficulty(*req.Difficulty)
		if !ok {
			respondError(w, http.StatusBadRequest, "difficulty must be Easy, Medium or Hard")
			return
		}
		req.Difficulty = &difficulty
	}

	question, err := s.repo.UpdateQuestion(r.Context(), id, storage.Patch{
		QuestionText:    req.QuestionText,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
		ReferenceAnswer: req.ReferenceAnswer,
	})
	if err != nil {
		if errors.Is(err, storage.ErrQuestionNotFound) {
			respondError(w, http.StatusNotFound, "question not found")
			return
		}
		slog.Error("failed to update question", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to update question")
		return
	}

	slog.Info("question updated", "id", id)
	respondJSON(w, http.StatusOK, question)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.repo.DeleteQuestion(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrQuestionNotFound) {
			respondError(w, http.StatusNotFound, "question not found")
			return
		}
		slog.Error("failed to delete question", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "failed to delete question")
		return
	}

	slog.Info("question deleted", "id", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "question deleted"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		respondError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	signup := &storage.Signup{
		Email:     email,
		Username:  email[:at],
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateSignup(r.Context(), signup); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			respondError(w, http.StatusConflict, "email already registered")
			return
		}
		slog.Error("failed to create signup", "error", err, "email", email)
		respondError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	slog.Info("user signed up", "username", signup.Username)
	respondJSON(w, http.StatusOK, map[string]string{
		"message":  "Signup successful",
		"username": signup.Username,
	})
}

// canonicalDifficulty normalizes the difficulty casing, accepting any casing
// of the three levels.
func canonicalDifficulty(difficulty string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "easy":
		return "Easy", true
	case "medium":
		return "Medium", true
	case "hard":
		return "Hard", true
	}
	return "", false
}
