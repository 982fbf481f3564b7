package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-quiz-bot/internal/app"
	"github.com/aliskhannn/trivia-quiz-bot/internal/config"
	"github.com/aliskhannn/trivia-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/trivia-quiz-bot/internal/logger"
	"github.com/aliskhannn/trivia-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := cfg.RequireTelegram(); err != nil {
		lg.Fatal("invalid configuration", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "sets", Description: "List trivia sets"},
		{Command: "quiz", Description: "Play a set (usage: /quiz <set id>)"},
		{Command: "top", Description: "Best scores of a set (usage: /top <set id>)"},
		{Command: "stop", Description: "Stop the running quiz"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := app.Build(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	go services.Importer.Start(ctx)

	handler := telegram.NewHandler(
		bot,
		lg,
		services.Users,
		services.Trivia,
		services.Results,
		storage.NewSessionStorage(),
		cfg.Quiz.CountdownSeconds,
	)
	if err := handler.Run(ctx); err != nil {
		lg.Error("handler stopped with error", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
