package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// FileInspectService validates upload candidates before they ever leave the
// client. Content extraction stays on the backend; this only answers "is this
// a PDF" and, best-effort, "how many pages".
type FileInspectService struct{}

func NewFileInspectService() *FileInspectService {
	return &FileInspectService{}
}

// IsPDF reports whether the file carries a .pdf extension and the PDF magic
// header.
func (s *FileInspectService) IsPDF(filename string, data []byte) bool {
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		return false
	}
	return bytes.HasPrefix(data, pdfMagic)
}

// PageCount opens the document in memory and returns its page count. Failures
// are non-fatal to the upload flow; a PDF the local parser chokes on may still
// be fine for the backend.
func (s *FileInspectService) PageCount(data []byte) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("failed to open pdf: %w", err)
	}
	return reader.NumPage(), nil
}
