package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdfquiz-gateway/internal/config"
	"pdfquiz-gateway/internal/handlers"
	"pdfquiz-gateway/internal/middleware"
	"pdfquiz-gateway/internal/router"
	"pdfquiz-gateway/internal/services"
)

func main() {
	log.Println("🚀 Starting PDF Quiz Gateway...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Backend Client ────
	backend := services.NewBackendClient(cfg.BackendURL)
	log.Printf("✓ Quiz backend: %s", cfg.BackendURL)

	// ──── Step 3: Initialize Middleware & Handlers ────
	identity := middleware.NewIdentity(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		log.Println("✓ Identity: bearer passthrough (no GATEWAY_JWT_SECRET set)")
	} else {
		log.Println("✓ Identity: bearer passthrough with gateway-side verification")
	}

	pdfQuizHandler := handlers.NewPDFQuizHandler(backend)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(identity, pdfQuizHandler, cfg.FrontendURL, cfg.UploadRateLimit)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // quiz generation upstream can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ PDF Quiz Gateway ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/pdf-quizzes", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
