package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pdfquiz-gateway/internal/middleware"
	"pdfquiz-gateway/internal/models"
	"pdfquiz-gateway/internal/services"
)

// PDFQuizHandler holds the three proxy endpoints. They add no logic beyond
// bearer passthrough and error-shape normalization; the backend owns parsing,
// generation and grading.
type PDFQuizHandler struct {
	backend *services.BackendClient
}

func NewPDFQuizHandler(backend *services.BackendClient) *PDFQuizHandler {
	return &PDFQuizHandler{backend: backend}
}

// Upload relays a {title, file_content} payload to the backend, which parses
// the PDF and generates the quiz synchronously.
func (h *PDFQuizHandler) Upload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		log.Printf("upload: unreadable request body: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	token := middleware.BearerToken(r.Context())
	respBody, err := h.backend.UploadPDF(r.Context(), token, body)
	if err != nil {
		h.writeProxyError(w, "upload", err)
		return
	}

	writeRaw(w, http.StatusOK, respBody)
}

// GetQuiz relays a quiz lookup.
func (h *PDFQuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "id")

	token := middleware.BearerToken(r.Context())
	respBody, err := h.backend.GetQuiz(r.Context(), token, quizID)
	if err != nil {
		h.writeProxyError(w, "quiz fetch", err)
		return
	}

	writeRaw(w, http.StatusOK, respBody)
}

// SubmitQuiz relays a {quiz_id, answers} payload for grading. The backend
// rejects a path/body quiz id mismatch itself.
func (h *PDFQuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "id")

	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		log.Printf("submit: unreadable request body: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	token := middleware.BearerToken(r.Context())
	respBody, err := h.backend.SubmitQuiz(r.Context(), token, quizID, body)
	if err != nil {
		h.writeProxyError(w, "submit", err)
		return
	}

	writeRaw(w, http.StatusOK, respBody)
}

func (h *PDFQuizHandler) writeProxyError(w http.ResponseWriter, op string, err error) {
	var backendErr *services.BackendError
	if errors.As(err, &backendErr) {
		log.Printf("%s: backend error: %v", op, backendErr)
		writeJSON(w, backendErr.Status, models.ErrorResponse{Error: backendErr.Message})
		return
	}

	log.Printf("%s: %v", op, err)
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeRaw relays a backend success body without re-marshalling it.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
