package main

import (
	"log"

	"pdfquiz-gateway/internal/client"
	"pdfquiz-gateway/internal/config"
	"pdfquiz-gateway/internal/telegram"
)

func main() {
	cfg := config.Load()

	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}

	apiClient := client.New(cfg.GatewayURL, "")

	bot, err := telegram.NewBot(cfg.TelegramBotToken, apiClient)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Printf("✓ Quiz bot started (gateway: %s)", cfg.GatewayURL)
	bot.Start()
}
