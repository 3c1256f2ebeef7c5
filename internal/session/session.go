package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pdfquiz-gateway/internal/client"
	"pdfquiz-gateway/internal/models"
)

// State is the top-level view: no quiz selected vs. a quiz on screen.
type State int

const (
	StateUploading State = iota
	StateViewing
)

// Phase tracks progress inside StateViewing. Reviewing is terminal for a quiz
// instance; there is no resubmission.
type Phase int

const (
	PhaseAnswering Phase = iota
	PhaseReviewing
)

var (
	ErrNoQuiz           = errors.New("no quiz selected")
	ErrIncomplete       = errors.New("every question needs an answer before submitting")
	ErrAlreadySubmitted = errors.New("quiz already submitted")
)

// QuizSession holds all quiz-taking state for one user: the current quiz, the
// per-question answers and hint toggles, and the grading result once
// submitted. Nothing here is persisted; leaving the quiz discards it all.
type QuizSession struct {
	api *client.Client

	state State
	phase Phase

	quizID    int64
	quizTitle string
	quiz      *models.Quiz

	answers    map[int64]string
	hintsShown map[int64]bool
	result     *models.SubmissionResponse
}

func New(api *client.Client) *QuizSession {
	return &QuizSession{
		api:        api,
		state:      StateUploading,
		answers:    make(map[int64]string),
		hintsShown: make(map[int64]bool),
	}
}

func (s *QuizSession) State() State { return s.state }
func (s *QuizSession) Phase() Phase { return s.phase }

func (s *QuizSession) QuizID() int64     { return s.quizID }
func (s *QuizSession) QuizTitle() string { return s.quizTitle }

// ShowQuiz moves Uploading → Viewing once a quiz has been generated.
func (s *QuizSession) ShowQuiz(quizID int64, title string) {
	s.state = StateViewing
	s.phase = PhaseAnswering
	s.quizID = quizID
	s.quizTitle = title
	s.quiz = nil
	s.result = nil
	s.answers = make(map[int64]string)
	s.hintsShown = make(map[int64]bool)
}

// GoBack returns to the upload view, discarding the quiz, the answers and any
// result.
func (s *QuizSession) GoBack() {
	s.state = StateUploading
	s.phase = PhaseAnswering
	s.quizID = 0
	s.quizTitle = ""
	s.quiz = nil
	s.result = nil
	s.answers = make(map[int64]string)
	s.hintsShown = make(map[int64]bool)
}

// LoadQuiz fetches the selected quiz's questions from the gateway.
func (s *QuizSession) LoadQuiz(ctx context.Context) (*models.Quiz, error) {
	if s.state != StateViewing {
		return nil, ErrNoQuiz
	}

	quiz, err := s.api.GetQuiz(ctx, s.quizID)
	if err != nil {
		return nil, err
	}

	s.quiz = quiz
	s.quizTitle = quiz.Title
	return quiz, nil
}

func (s *QuizSession) Quiz() *models.Quiz { return s.quiz }

// SetAnswer records the response for one question. Ignored once the quiz has
// been graded.
func (s *QuizSession) SetAnswer(questionID int64, answer string) {
	if s.state != StateViewing || s.phase != PhaseAnswering {
		return
	}
	s.answers[questionID] = answer
}

func (s *QuizSession) Answer(questionID int64) string {
	return s.answers[questionID]
}

// Complete reports whether every question has a non-blank answer. This gates
// the submit action.
func (s *QuizSession) Complete() bool {
	if s.quiz == nil || len(s.quiz.Questions) == 0 {
		return false
	}
	for _, q := range s.quiz.Questions {
		if strings.TrimSpace(s.answers[q.ID]) == "" {
			return false
		}
	}
	return true
}

func (s *QuizSession) CanSubmit() bool {
	return s.state == StateViewing && s.phase == PhaseAnswering && s.Complete()
}

// Submit sends the answers for grading and moves Answering → Reviewing.
func (s *QuizSession) Submit(ctx context.Context) (*models.SubmissionResponse, error) {
	if s.state != StateViewing || s.quiz == nil {
		return nil, ErrNoQuiz
	}
	if s.phase == PhaseReviewing {
		return nil, ErrAlreadySubmitted
	}
	if !s.Complete() {
		return nil, ErrIncomplete
	}

	answers := make([]models.SubmissionAnswer, 0, len(s.quiz.Questions))
	for _, q := range s.quiz.Questions {
		answers = append(answers, models.SubmissionAnswer{
			QuestionID: q.ID,
			Answer:     s.answers[q.ID],
		})
	}

	result, err := s.api.Submit(ctx, s.quizID, answers)
	if err != nil {
		return nil, err
	}

	s.result = result
	s.phase = PhaseReviewing
	return result, nil
}

func (s *QuizSession) Result() *models.SubmissionResponse { return s.result }

// ToggleHint flips one question's hint visibility without touching the others.
func (s *QuizSession) ToggleHint(questionID int64) {
	s.hintsShown[questionID] = !s.hintsShown[questionID]
}

func (s *QuizSession) HintVisible(questionID int64) bool {
	return s.hintsShown[questionID]
}

// FormatScore renders the aggregate score, e.g. "2/3 (66.7%)".
func (s *QuizSession) FormatScore() string {
	if s.result == nil {
		return ""
	}
	return FormatScore(s.result.TotalScore, s.result.MaxScore)
}

func FormatScore(totalScore, maxScore int) string {
	pct := 0.0
	if maxScore > 0 {
		pct = float64(totalScore) / float64(maxScore) * 100
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", totalScore, maxScore, pct)
}
