package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"pdfquiz-gateway/internal/models"
)

// Client is the typed API client for the gateway, used by the session layer
// and the Telegram front-end.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{},
	}
}

// Upload sends a titled, base64-encoded PDF and returns the generated quiz's
// id and title.
func (c *Client) Upload(ctx context.Context, title, fileContent string) (*models.UploadResponse, error) {
	req := models.UploadRequest{Title: title, FileContent: fileContent}

	var resp models.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/api/pdf-quizzes/upload", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetQuiz fetches a quiz with its questions.
func (c *Client) GetQuiz(ctx context.Context, quizID int64) (*models.Quiz, error) {
	var quiz models.Quiz
	path := "/api/pdf-quizzes/quiz/" + strconv.FormatInt(quizID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Submit sends the collected answers for grading.
func (c *Client) Submit(ctx context.Context, quizID int64, answers []models.SubmissionAnswer) (*models.SubmissionResponse, error) {
	req := models.Submission{QuizID: quizID, Answers: answers}

	var resp models.SubmissionResponse
	path := "/api/pdf-quizzes/quiz/" + strconv.FormatInt(quizID, 10) + "/submit"
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
			errResp.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// APIError is a non-2xx gateway response; the status lets callers distinguish
// a missing quiz from everything else.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}
