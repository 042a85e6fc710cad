package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pmurley/ulb-trade-eval/internal/bot"
	"github.com/pmurley/ulb-trade-eval/internal/config"
	"github.com/pmurley/ulb-trade-eval/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if cfg.DiscordToken == "" {
		log.Fatal("DISCORD_TOKEN is required")
	}

	appLog := logger.New(cfg.LogLevel)

	b, err := bot.New(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to create bot:", err)
	}

	if err := b.Start(); err != nil {
		appLog.Fatal("Failed to start bot:", err)
	}

	appLog.Info("Bot is running. Press CTRL+C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	appLog.Info("Shutting down...")
	if err := b.Stop(); err != nil {
		appLog.Error("Error during shutdown:", err)
	}
}
