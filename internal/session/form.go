package session

import (
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"

	"pdfquiz-gateway/internal/client"
	"pdfquiz-gateway/internal/models"
	"pdfquiz-gateway/internal/services"
)

var (
	ErrNotPDF     = errors.New("selected file is not a PDF")
	ErrNoFile     = errors.New("no file selected")
	ErrEmptyTitle = errors.New("title must not be blank")
)

// UploadForm models the upload view: pick a PDF, optionally override the
// auto-filled title, submit. A failed upload leaves the form populated so the
// user can retry.
type UploadForm struct {
	api     *client.Client
	inspect *services.FileInspectService

	fileName  string
	fileData  []byte
	pageCount int

	title       string
	titleEdited bool

	errMessage string

	onGenerated func(quizID int64, title string)
}

// NewUploadForm wires the form to the gateway client. onGenerated fires after
// a successful upload with the generated quiz's id and title so the parent
// view can switch to it.
func NewUploadForm(api *client.Client, onGenerated func(quizID int64, title string)) *UploadForm {
	return &UploadForm{
		api:         api,
		inspect:     services.NewFileInspectService(),
		onGenerated: onGenerated,
	}
}

// SelectFile validates and stages a file. A non-PDF is rejected without
// touching the previously selected file or the title.
func (f *UploadForm) SelectFile(name string, data []byte) error {
	if !f.inspect.IsPDF(name, data) {
		f.errMessage = "Please select a PDF file"
		return ErrNotPDF
	}

	f.fileName = name
	f.fileData = data
	f.errMessage = ""

	// Best-effort; the backend is the real parser.
	f.pageCount = 0
	if pages, err := f.inspect.PageCount(data); err == nil {
		f.pageCount = pages
	}

	if !f.titleEdited {
		base := filepath.Base(name)
		f.title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return nil
}

// SetTitle records a user override; later file selections keep it.
func (f *UploadForm) SetTitle(title string) {
	f.title = title
	f.titleEdited = true
}

func (f *UploadForm) Title() string    { return f.title }
func (f *UploadForm) FileName() string { return f.fileName }
func (f *UploadForm) PageCount() int   { return f.pageCount }
func (f *UploadForm) HasFile() bool    { return f.fileData != nil }
func (f *UploadForm) Err() string      { return f.errMessage }

// Submit base64-encodes the staged file and issues the upload request, exactly
// one per call. On success the generated-quiz callback fires; on failure the
// error message is kept for display and the form stays populated.
func (f *UploadForm) Submit(ctx context.Context) (*models.UploadResponse, error) {
	if f.fileData == nil {
		f.errMessage = "Please select a PDF file"
		return nil, ErrNoFile
	}

	title := strings.TrimSpace(f.title)
	if title == "" {
		f.errMessage = "Please enter a title"
		return nil, ErrEmptyTitle
	}

	encoded := base64.StdEncoding.EncodeToString(f.fileData)
	resp, err := f.api.Upload(ctx, title, encoded)
	if err != nil {
		f.errMessage = uploadErrMessage(err)
		return nil, err
	}

	f.errMessage = ""
	if f.onGenerated != nil {
		f.onGenerated(resp.ID, resp.Title)
	}
	return resp, nil
}

func uploadErrMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Network error. Please try again."
}
