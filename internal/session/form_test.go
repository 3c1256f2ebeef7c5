package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdfquiz-gateway/internal/client"
	"pdfquiz-gateway/internal/models"
)

var pdfData = []byte("%PDF-1.4\nfake lecture notes")

func TestSelectFile_AutoTitle(t *testing.T) {
	f := NewUploadForm(client.New("http://unused", ""), nil)

	if err := f.SelectFile("lecture-notes.pdf", pdfData); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if f.Title() != "lecture-notes" {
		t.Errorf("Expected title auto-filled with extension stripped, got %q", f.Title())
	}
	if !f.HasFile() {
		t.Error("Expected file staged")
	}
	if f.Err() != "" {
		t.Errorf("Expected no error message, got %q", f.Err())
	}
}

func TestSelectFile_NonPDFRejected(t *testing.T) {
	f := NewUploadForm(client.New("http://unused", ""), nil)

	if err := f.SelectFile("slides.pdf", pdfData); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err := f.SelectFile("notes.docx", []byte("PK\x03\x04"))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("Expected ErrNotPDF, got %v", err)
	}

	// Prior state untouched: file and title stay as they were.
	if f.Title() != "slides" {
		t.Errorf("Expected title unchanged after rejection, got %q", f.Title())
	}
	if f.FileName() != "slides.pdf" {
		t.Errorf("Expected previous file kept, got %q", f.FileName())
	}
	if f.Err() == "" {
		t.Error("Expected a validation error message")
	}
}

func TestSelectFile_TitleOverridePreserved(t *testing.T) {
	f := NewUploadForm(client.New("http://unused", ""), nil)

	f.SelectFile("first.pdf", pdfData)
	f.SetTitle("My Custom Title")
	f.SelectFile("second.pdf", pdfData)

	if f.Title() != "My Custom Title" {
		t.Errorf("Expected user override preserved, got %q", f.Title())
	}
}

func TestSubmit_SendsEncodedFileAndTrimmedTitle(t *testing.T) {
	var calls int
	var got models.UploadRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/api/pdf-quizzes/upload" {
			t.Errorf("Expected upload path, got %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(models.UploadResponse{ID: 42, Title: "Quiz: Lecture 1"})
	}))
	defer ts.Close()

	var cbID int64
	var cbTitle string
	f := NewUploadForm(client.New(ts.URL, ""), func(quizID int64, title string) {
		cbID = quizID
		cbTitle = title
	})

	f.SelectFile("lecture.pdf", pdfData)
	f.SetTitle("  Lecture 1  ")

	resp, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if calls != 1 {
		t.Errorf("Expected exactly one upload request, got %d", calls)
	}
	if got.Title != "Lecture 1" {
		t.Errorf("Expected trimmed title, got %q", got.Title)
	}
	if got.FileContent != base64.StdEncoding.EncodeToString(pdfData) {
		t.Errorf("Expected base64-encoded file content, got %q", got.FileContent)
	}
	if resp.ID != 42 {
		t.Errorf("Expected response id 42, got %d", resp.ID)
	}
	if cbID != 42 || cbTitle != "Quiz: Lecture 1" {
		t.Errorf("Expected callback with generated quiz, got (%d, %q)", cbID, cbTitle)
	}
}

func TestSubmit_WithoutFile(t *testing.T) {
	f := NewUploadForm(client.New("http://unused", ""), nil)

	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrNoFile) {
		t.Errorf("Expected ErrNoFile, got %v", err)
	}
}

func TestSubmit_BlankTitle(t *testing.T) {
	f := NewUploadForm(client.New("http://unused", ""), nil)
	f.SelectFile("lecture.pdf", pdfData)
	f.SetTitle("   ")

	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}
}

func TestSubmit_BackendFailureKeepsForm(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Error generating quiz: no questions generated"})
	}))
	defer ts.Close()

	callbackFired := false
	f := NewUploadForm(client.New(ts.URL, ""), func(int64, string) { callbackFired = true })

	f.SelectFile("lecture.pdf", pdfData)

	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatal("Expected error")
	}

	if callbackFired {
		t.Error("Expected no callback on failure")
	}
	if f.Err() != "Error generating quiz: no questions generated" {
		t.Errorf("Expected backend error message displayed, got %q", f.Err())
	}
	// Form stays populated for retry.
	if !f.HasFile() || f.Title() != "lecture" {
		t.Error("Expected form state retained after failure")
	}
}

func TestSubmit_NetworkFailureMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	f := NewUploadForm(client.New(ts.URL, ""), nil)
	f.SelectFile("lecture.pdf", pdfData)

	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatal("Expected error")
	}
	if f.Err() != "Network error. Please try again." {
		t.Errorf("Expected network error message, got %q", f.Err())
	}
}
