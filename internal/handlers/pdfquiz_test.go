package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"pdfquiz-gateway/internal/models"
	"pdfquiz-gateway/internal/services"
)

func newTestRouter(backendURL string) http.Handler {
	h := NewPDFQuizHandler(services.NewBackendClient(backendURL))

	r := chi.NewRouter()
	r.Post("/api/pdf-quizzes/upload", h.Upload)
	r.Get("/api/pdf-quizzes/quiz/{id}", h.GetQuiz)
	r.Post("/api/pdf-quizzes/quiz/{id}/submit", h.SubmitQuiz)
	return r
}

func TestUpload_RelaysBackendResponse(t *testing.T) {
	var backendCalls int
	var forwarded []byte

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls++
		forwarded, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id": 12, "title": "Quiz: Lecture 1", "message": "PDF uploaded and quiz generated successfully! Quiz ID: 12"}`))
	}))
	defer backend.Close()

	body := `{"title":"Lecture 1","file_content":"JVBERi0xLjQ="}`
	req := httptest.NewRequest(http.MethodPost, "/api/pdf-quizzes/upload", strings.NewReader(body))
	rr := httptest.NewRecorder()

	newTestRouter(backend.URL).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if backendCalls != 1 {
		t.Errorf("Expected exactly one backend call, got %d", backendCalls)
	}
	if string(forwarded) != body {
		t.Errorf("Expected body forwarded unmodified, got %q", forwarded)
	}

	var resp models.UploadResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.ID != 12 || resp.Title != "Quiz: Lecture 1" {
		t.Errorf("Unexpected relayed response: %+v", resp)
	}
}

func TestGetQuiz_Backend404(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Quiz not found"}`))
	}))
	defer backend.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/pdf-quizzes/quiz/99", nil)
	rr := httptest.NewRecorder()

	newTestRouter(backend.URL).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rr.Code)
	}

	var errResp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if errResp.Error != "Quiz not found" {
		t.Errorf("Expected backend message relayed, got %q", errResp.Error)
	}
}

func TestGetQuiz_BackendDown(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/pdf-quizzes/quiz/1", nil)
	rr := httptest.NewRecorder()

	newTestRouter(backend.URL).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}

	var errResp models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&errResp)
	if errResp.Error != "Internal server error" {
		t.Errorf("Expected fixed internal error message, got %q", errResp.Error)
	}
}

func TestUpload_InvalidJSONBody(t *testing.T) {
	var backendCalls int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls++
	}))
	defer backend.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/pdf-quizzes/upload", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	newTestRouter(backend.URL).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}
	if backendCalls != 0 {
		t.Errorf("Expected no backend call for malformed body, got %d", backendCalls)
	}
}

func TestSubmit_RelaysGradingResult(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pdf-quizzes/quiz/5/submit" {
			t.Errorf("Expected submit path, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"results": [], "total_score": 2, "max_score": 3, "percentage": 66.67}`))
	}))
	defer backend.Close()

	body := `{"quiz_id": 5, "answers": [{"question_id": 1, "answer": "B"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/pdf-quizzes/quiz/5/submit", strings.NewReader(body))
	rr := httptest.NewRecorder()

	newTestRouter(backend.URL).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp models.SubmissionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.TotalScore != 2 || resp.MaxScore != 3 {
		t.Errorf("Unexpected relayed result: %+v", resp)
	}
}
