package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// BackendClient talks to the external quiz backend. It makes exactly one call
// per invocation, no retries: PDF parsing, question generation and grading all
// happen on the other side, this client only relays JSON.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBackendClient(baseURL string) *BackendClient {
	return &BackendClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// UploadPDF forwards a {title, file_content} payload to the backend's upload
// endpoint and returns the response body verbatim.
func (c *BackendClient) UploadPDF(ctx context.Context, token string, body []byte) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/pdf-quizzes/upload", token, body)
}

// GetQuiz fetches a generated quiz by id.
func (c *BackendClient) GetQuiz(ctx context.Context, token, quizID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/pdf-quizzes/quiz/"+quizID, token, nil)
}

// SubmitQuiz forwards a {quiz_id, answers} payload for grading.
func (c *BackendClient) SubmitQuiz(ctx context.Context, token, quizID string, body []byte) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/pdf-quizzes/quiz/"+quizID+"/submit", token, body)
}

func (c *BackendClient) do(ctx context.Context, method, path, token string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &InternalError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &InternalError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &InternalError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BackendError{
			Status:  resp.StatusCode,
			Message: backendMessage(respBody, resp.StatusCode),
		}
	}

	return respBody, nil
}

// backendMessage pulls a human-readable message out of a backend error body.
// FastAPI errors carry {"detail": ...}; anything else falls back to the status
// text.
func backendMessage(body []byte, status int) string {
	var detail struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &detail); err == nil {
		if detail.Detail != "" {
			return detail.Detail
		}
		if detail.Error != "" {
			return detail.Error
		}
	}
	return http.StatusText(status)
}

// BackendError is a non-2xx response from the quiz backend; the status code is
// preserved so the gateway can mirror it.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// InternalError covers network failures, malformed responses and anything else
// unexpected; it always surfaces as a fixed 500.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return "internal error: " + e.Err.Error()
	}
	return "internal error"
}

func (e *InternalError) Unwrap() error { return e.Err }
