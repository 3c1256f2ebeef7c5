package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pdfquiz-gateway/internal/client"
	"pdfquiz-gateway/internal/session"
)

const helpText = `Send me a PDF document and I'll turn it into a quiz.

Commands:
/quiz <id> — open an existing quiz by id
/submit — submit your answers once every question is answered
/back — leave the current quiz
For short-answer questions, just reply with a message.`

type chatState struct {
	sess  *session.QuizSession
	form  *session.UploadForm
	index int // position of the question currently on screen
}

// Bot is the interactive quiz front-end. Each chat gets its own session and
// upload form; all quiz state lives in memory and dies with the process.
type Bot struct {
	api    *tgbotapi.BotAPI
	client *client.Client
	chats  map[int64]*chatState
}

func NewBot(token string, apiClient *client.Client) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:    api,
		client: apiClient,
		chats:  make(map[int64]*chatState),
	}, nil
}

func (b *Bot) Start() {
	log.Printf("Authorised on account: %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			b.handleMessage(update.Message)
		}
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
		}
	}
}

func (b *Bot) state(chatID int64) *chatState {
	st, ok := b.chats[chatID]
	if !ok {
		st = &chatState{}
		st.sess = session.New(b.client)
		st.form = session.NewUploadForm(b.client, func(quizID int64, title string) {
			st.sess.ShowQuiz(quizID, title)
		})
		b.chats[chatID] = st
	}
	return st
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			b.sendMessage(chatID, helpText)
		case "quiz":
			b.openQuiz(chatID, strings.TrimSpace(msg.CommandArguments()))
		case "submit":
			b.submitQuiz(chatID)
		case "back":
			st := b.state(chatID)
			st.sess.GoBack()
			st.index = 0
			b.sendMessage(chatID, "Back to the start. Send me a PDF to generate a new quiz.")
		default:
			b.sendMessage(chatID, "Unknown command. Try /help.")
		}
		return
	}

	if msg.Document != nil {
		b.handleDocument(chatID, msg.Document)
		return
	}

	if msg.Text != "" {
		b.handleAnswerText(chatID, msg.Text)
	}
}

// handleDocument runs the upload form against an attached file: validate it
// is a PDF, auto-title it from the filename, upload, then open the generated
// quiz.
func (b *Bot) handleDocument(chatID int64, doc *tgbotapi.Document) {
	st := b.state(chatID)

	url, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		b.sendMessage(chatID, "Couldn't download that file. Please try again.")
		return
	}

	resp, err := http.Get(url)
	if err != nil {
		b.sendMessage(chatID, "Couldn't download that file. Please try again.")
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		b.sendMessage(chatID, "Couldn't download that file. Please try again.")
		return
	}

	if err := st.form.SelectFile(doc.FileName, data); err != nil {
		b.sendMessage(chatID, st.form.Err())
		return
	}

	b.sendMessage(chatID, fmt.Sprintf("Generating a quiz from %q — this can take a minute...", st.form.Title()))

	if _, err := st.form.Submit(context.Background()); err != nil {
		b.sendMessage(chatID, st.form.Err())
		return
	}

	// The form's callback has already moved the session to Viewing.
	st.index = 0
	b.loadAndShow(chatID, st)
}

func (b *Bot) openQuiz(chatID int64, arg string) {
	quizID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		b.sendMessage(chatID, "Usage: /quiz <id>")
		return
	}

	st := b.state(chatID)
	st.sess.ShowQuiz(quizID, "")
	st.index = 0
	b.loadAndShow(chatID, st)
}

func (b *Bot) loadAndShow(chatID int64, st *chatState) {
	quiz, err := st.sess.LoadQuiz(context.Background())
	if err != nil {
		st.sess.GoBack()
		b.sendErrorPanel(chatID, err)
		return
	}

	b.sendMessage(chatID, fmt.Sprintf("%s — %d questions. Answer them all, then /submit.", quiz.Title, len(quiz.Questions)))
	b.showQuestion(chatID, st)
}

func (b *Bot) showQuestion(chatID int64, st *chatState) {
	quiz := st.sess.Quiz()
	if quiz == nil || st.index >= len(quiz.Questions) {
		return
	}

	q := quiz.Questions[st.index]
	text := formatQuestion(q, st.index+1, len(quiz.Questions), st.sess.Answer(q.ID), st.sess.HintVisible(q.ID))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = questionKeyboard(q)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send question: %v", err)
	}
}

func (b *Bot) handleAnswerText(chatID int64, text string) {
	st := b.state(chatID)
	quiz := st.sess.Quiz()
	if st.sess.State() != session.StateViewing || quiz == nil {
		b.sendMessage(chatID, helpText)
		return
	}
	if st.index >= len(quiz.Questions) {
		return
	}

	q := quiz.Questions[st.index]
	st.sess.SetAnswer(q.ID, text)
	b.advance(chatID, st)
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	st := b.state(chatID)

	defer func() {
		if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			log.Printf("callback ack: %v", err)
		}
	}()

	parts := strings.Split(cb.Data, ":")
	switch parts[0] {
	case "back":
		st.sess.GoBack()
		st.index = 0
		b.sendMessage(chatID, "Back to the start. Send me a PDF to generate a new quiz.")

	case "hint":
		if len(parts) != 2 {
			return
		}
		questionID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return
		}
		st.sess.ToggleHint(questionID)
		b.showQuestion(chatID, st)

	case "answer":
		if len(parts) != 3 {
			return
		}
		questionID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return
		}
		optIdx, err := strconv.Atoi(parts[2])
		if err != nil {
			return
		}

		quiz := st.sess.Quiz()
		if quiz == nil {
			return
		}
		for _, q := range quiz.Questions {
			if q.ID == questionID && optIdx < len(q.Options) {
				st.sess.SetAnswer(q.ID, q.Options[optIdx])
				break
			}
		}
		b.advance(chatID, st)
	}
}

// advance moves to the next unanswered question, or prompts for /submit when
// everything is answered.
func (b *Bot) advance(chatID int64, st *chatState) {
	quiz := st.sess.Quiz()
	if quiz == nil {
		return
	}

	if st.sess.Complete() {
		b.sendMessage(chatID, "All questions answered. /submit to get your score, or keep editing answers.")
		return
	}

	for i, q := range quiz.Questions {
		if strings.TrimSpace(st.sess.Answer(q.ID)) == "" {
			st.index = i
			b.showQuestion(chatID, st)
			return
		}
	}
}

func (b *Bot) submitQuiz(chatID int64) {
	st := b.state(chatID)

	if !st.sess.CanSubmit() {
		switch {
		case st.sess.Phase() == session.PhaseReviewing:
			b.sendMessage(chatID, "This quiz is already submitted. /back to start over.")
		case st.sess.Quiz() == nil:
			b.sendMessage(chatID, "No quiz in progress. Send me a PDF or use /quiz <id>.")
		default:
			b.sendMessage(chatID, "Answer every question before submitting.")
		}
		return
	}

	result, err := st.sess.Submit(context.Background())
	if err != nil {
		b.sendErrorPanel(chatID, err)
		return
	}

	b.sendMessage(chatID, formatResults(st.sess.Quiz(), result))
}

func (b *Bot) sendErrorPanel(chatID int64, err error) {
	message := "Something went wrong. Please try again."
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		message = apiErr.Message
	}

	msg := tgbotapi.NewMessage(chatID, message)
	msg.ReplyMarkup = goBackKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error panel: %v", err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send message: %v", err)
	}
}
