package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"adsboard/internal/config"
	"adsboard/internal/listener"
	applog "adsboard/internal/log"
	"adsboard/internal/storage"
	"adsboard/internal/telegram"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting chat-listener")

	// The listener only needs the Telegram and storage settings, so it
	// checks those directly instead of requiring the full sheet config.
	cfg := config.Load()
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == 0 {
		logger.Error("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required")
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.ListenerDBPath)
	if err != nil {
		logger.Error("Failed to initialize message store", "error", err, "path", cfg.ListenerDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	bot, err := telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		logger.Error("Failed to initialize Telegram client", "error", err)
		os.Exit(1)
	}
	logger.Info("Telegram client initialized", "username", bot.Username())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l := listener.New(repo, bot, cfg.Location(), cfg.ListenerPollInterval, logger)
	if err := l.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("Listener error", "error", err)
		os.Exit(1)
	}
	logger.Info("Listener stopped gracefully")
}
