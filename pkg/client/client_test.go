package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListQuestionsAttachesTokenVerbatim(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Question{{ID: "1", QuestionText: "q", Category: "Go", Difficulty: "Easy"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	questions, err := c.ListQuestions(context.Background(), "my-opaque-token")
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if gotAuth != "my-opaque-token" {
		t.Errorf("expected verbatim Authorization header, got %q", gotAuth)
	}
	if len(questions) != 1 || questions[0].ID != "1" {
		t.Errorf("unexpected questions: %+v", questions)
	}
}

func TestListQuestionsOmitsHeaderWithoutToken(t *testing.T) {
	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).ListQuestions(context.Background(), ""); err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if hadAuth {
		t.Error("Authorization header should not be attached for an empty token")
	}
}

func TestListQuestionsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListQuestions(context.Background(), "")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", statusErr.Status)
	}
	if statusErr.Body != "boom" {
		t.Errorf("expected raw body to be carried, got %q", statusErr.Body)
	}
}

func TestGetQuestionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetQuestion(context.Background(), "missing", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "Question not found" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestCreateQuestionForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateQuestion(context.Background(), Draft{QuestionText: "q", Category: "Go", Difficulty: "Easy"}, "user-token")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err.Error() != "Forbidden: Admin access required" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestMutationsRequireToken(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	if _, err := c.CreateQuestion(ctx, Draft{QuestionText: "q", Category: "c"}, ""); !errors.Is(err, ErrTokenUnavailable) {
		t.Errorf("create without token: expected ErrTokenUnavailable, got %v", err)
	}
	if _, err := c.UpdateQuestion(ctx, "1", Update{}, ""); !errors.Is(err, ErrTokenUnavailable) {
		t.Errorf("update without token: expected ErrTokenUnavailable, got %v", err)
	}
	if err := c.DeleteQuestion(ctx, "1", ""); !errors.Is(err, ErrTokenUnavailable) {
		t.Errorf("delete without token: expected ErrTokenUnavailable, got %v", err)
	}

	if calls != 0 {
		t.Errorf("expected no network calls without a token, got %d", calls)
	}
}

func TestUpdateQuestionSendsOnlyProvidedFields(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(Question{ID: "1", Category: "X"})
	}))
	defer srv.Close()

	category := "X"
	if _, err := New(srv.URL).UpdateQuestion(context.Background(), "1", Update{Category: &category}, "admin"); err != nil {
		t.Fatalf("UpdateQuestion failed: %v", err)
	}

	if len(body) != 1 {
		t.Errorf("expected a single field in the body, got %v", body)
	}
	if body["category"] != "X" {
		t.Errorf("expected category field, got %v", body)
	}
}

func TestUpdateQuestionErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		_, err := New(srv.URL).UpdateQuestion(context.Background(), "1", Update{}, "admin")
		srv.Close()
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.want, err)
		}
	}
}

func TestDeleteQuestionSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := New(srv.URL).DeleteQuestion(context.Background(), "1", "admin"); err != nil {
		t.Fatalf("DeleteQuestion failed: %v", err)
	}
}

func TestSignupSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "email already registered"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Signup(context.Background(), "a@b.com")
	if err == nil || err.Error() != "email already registered" {
		t.Fatalf("expected server-supplied message, got %v", err)
	}
}

func TestSignupFallbackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Signup(context.Background(), "a@b.com")
	if err == nil || err.Error() != "signup failed" {
		t.Fatalf("expected generic signup failure, got %v", err)
	}
}

func TestMalformedJSONIsGenericFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListQuestions(context.Background(), "")
	if err == nil {
		t.Fatal("expected an error for a malformed body")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
		t.Errorf("parse failure must not map to a typed API error, got %v", err)
	}
}
