package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"pdfquiz-gateway/internal/handlers"
	"pdfquiz-gateway/internal/middleware"
)

func New(
	identity *middleware.Identity,
	pdfQuizHandler *handlers.PDFQuizHandler,
	frontendURL string,
	uploadRateLimit int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Uploads trigger quiz generation on the backend; keep them throttled.
	uploadLimiter := middleware.NewRateLimiter(uploadRateLimit, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/pdf-quizzes", func(r chi.Router) {
		r.Use(identity.Middleware)

		r.Group(func(r chi.Router) {
			r.Use(uploadLimiter.Middleware)
			r.Post("/upload", pdfQuizHandler.Upload)
		})

		r.Get("/quiz/{id}", pdfQuizHandler.GetQuiz)
		r.Post("/quiz/{id}/submit", pdfQuizHandler.SubmitQuiz)
	})

	return r
}
