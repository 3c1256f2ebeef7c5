package models

// Wire types for the external quiz backend. Field names and id types follow the
// backend's JSON exactly; quizzes are read-only once fetched.

const (
	QuestionTypeMCQ         = "mcq"
	QuestionTypeShortAnswer = "short_answer"
)

type QuizQuestion struct {
	ID            int64    `json:"id"`
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"` // "mcq" | "short_answer"
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Hint          string   `json:"hint"`
	Citation      string   `json:"citation"`
	Points        int      `json:"points"`
}

type Quiz struct {
	ID            int64          `json:"id"`
	PDFDocumentID int64          `json:"pdf_document_id"`
	Title         string         `json:"title"`
	Questions     []QuizQuestion `json:"questions"`
	// The backend emits SQLite timestamp strings, not RFC 3339; relayed untouched.
	CreatedAt string `json:"created_at,omitempty"`
}

type UploadRequest struct {
	Title       string `json:"title"`
	FileContent string `json:"file_content"` // base64-encoded PDF
}

type UploadResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type SubmissionAnswer struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
}

type Submission struct {
	QuizID  int64              `json:"quiz_id"`
	Answers []SubmissionAnswer `json:"answers"`
}

type QuizResult struct {
	QuestionID    int64  `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Citation      string `json:"citation"`
	PointsEarned  int    `json:"points_earned"`
	TotalPoints   int    `json:"total_points"`
}

type SubmissionResponse struct {
	Results    []QuizResult `json:"results"`
	TotalScore int          `json:"total_score"`
	MaxScore   int          `json:"max_score"`
	Percentage float64      `json:"percentage"`
}

// ErrorResponse is the gateway's error envelope: a flat message plus the HTTP
// status mirroring the backend's, or 500 for unexpected failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
