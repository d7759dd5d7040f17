package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"adsboard/internal/config"
	applog "adsboard/internal/log"
	"adsboard/internal/report"
	"adsboard/internal/service"
	"adsboard/internal/sheets/google"
	"adsboard/internal/telegram"
	"adsboard/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting report-sender")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == 0 {
		logger.Error("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	private, err := google.New(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}

	bot, err := telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		logger.Error("Failed to initialize Telegram client", "error", err)
		os.Exit(1)
	}
	logger.Info("Telegram client initialized", "username", bot.Username())

	loader := service.New(cfg, private, google.NewPublic(), logger)
	reporter := service.NewReporter(loader, report.NewStore(cfg.SnapshotPath), bot, cfg, logger)

	schedule := worker.NewSchedule(cfg)
	runner := worker.NewRunner(schedule, reporter, logger)

	logger.Info("Report schedule loaded",
		"realtime_slots", len(cfg.RealtimeSendTimes),
		"daily", cfg.DailySendTime.String(),
		"reminders", len(cfg.ReminderOffsets))

	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("Runner error", "error", err)
		os.Exit(1)
	}
	logger.Info("Report sender stopped gracefully")
}
