package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pdfquiz-gateway/internal/models"
	"pdfquiz-gateway/internal/session"
)

var optionLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

func formatQuestion(q models.QuizQuestion, num, total int, answer string, hintVisible bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question %d/%d (%d pt)\n\n%s\n", num, total, q.Points, q.QuestionText)

	if q.QuestionType == models.QuestionTypeMCQ {
		b.WriteString("\n")
		for i, opt := range q.Options {
			fmt.Fprintf(&b, "%s) %s\n", optionLabel(i), opt)
		}
	} else {
		b.WriteString("\nReply with your answer as a message.\n")
	}

	if answer != "" {
		fmt.Fprintf(&b, "\nYour answer: %s\n", answer)
	}
	if hintVisible {
		fmt.Fprintf(&b, "\n💡 Hint: %s\n", q.Hint)
	}

	return b.String()
}

func optionLabel(i int) string {
	if i < len(optionLabels) {
		return optionLabels[i]
	}
	return fmt.Sprintf("%d", i+1)
}

func questionKeyboard(q models.QuizQuestion) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if q.QuestionType == models.QuestionTypeMCQ {
		var row []tgbotapi.InlineKeyboardButton
		for i := range q.Options {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				optionLabel(i),
				fmt.Sprintf("answer:%d:%d", q.ID, i),
			))
			if len(row) == 4 {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("💡 Hint", fmt.Sprintf("hint:%d", q.ID)),
	})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func goBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀ Go Back", "back"),
		),
	)
}

func formatResults(quiz *models.Quiz, res *models.SubmissionResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Results — %s\n", quiz.Title)
	fmt.Fprintf(&b, "Score: %s\n\n", session.FormatScore(res.TotalScore, res.MaxScore))

	byID := make(map[int64]models.QuizQuestion, len(quiz.Questions))
	for _, q := range quiz.Questions {
		byID[q.ID] = q
	}

	for i, r := range res.Results {
		q, ok := byID[r.QuestionID]
		if !ok {
			continue
		}

		mark := "❌"
		if r.IsCorrect {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%s Q%d: %s\n", mark, i+1, q.QuestionText)
		fmt.Fprintf(&b, "   Your answer: %s\n", r.UserAnswer)
		if !r.IsCorrect {
			fmt.Fprintf(&b, "   Correct answer: %s\n", r.CorrectAnswer)
		}
		fmt.Fprintf(&b, "   %d/%d pts — %s\n\n", r.PointsEarned, r.TotalPoints, r.Citation)
	}

	return b.String()
}
