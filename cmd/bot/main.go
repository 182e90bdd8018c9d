package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/batyr-bol/internal/config"
	"github.com/aliskhannn/batyr-bol/internal/delivery/telegram"
	"github.com/aliskhannn/batyr-bol/internal/infra/postgres"
	"github.com/aliskhannn/batyr-bol/internal/logger"
	"github.com/aliskhannn/batyr-bol/internal/repository"
	"github.com/aliskhannn/batyr-bol/internal/scheduler"
	"github.com/aliskhannn/batyr-bol/internal/service"
	"github.com/aliskhannn/batyr-bol/internal/storage"
)

const migrationsDir = "migrations"

var commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Ботты бастау / Запустить бота"},
	{Command: "missions", Description: "Жаңа миссия / Новая миссия"},
	{Command: "answer", Description: "Жауап беру: /answer <нөмір> <жауап>"},
	{Command: "profile", Description: "Профиль"},
	{Command: "leaderboard", Description: "Лидерборд"},
	{Command: "recommendations", Description: "Ұсыныстар / Рекомендации"},
	{Command: "kz", Description: "Қазақша"},
	{Command: "ru", Description: "Русский"},
	{Command: "help", Description: "Көмек / Помощь"},
}

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

	if err := run(cfg, lg); err != nil {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	token, err := cfg.TelegramToken()
	if err != nil {
		return err
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return err
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, migrationsDir); err != nil {
		return err
	}

	// Initialize repositories and services.
	contentRepo, err := repository.NewContentRepository(cfg.ContentJSONPath)
	if err != nil {
		return err
	}
	userRepo := repository.NewUserRepository(pool)
	answerRepo := repository.NewAnswerRepository(pool)

	missionStorage := storage.NewMissionStorage()
	messageStorage := storage.NewMessageStorage()

	learning := service.NewLearningService(contentRepo, service.NewAnswerValidator())
	missions := service.NewMissionService(userRepo, answerRepo, missionStorage, learning, lg)

	handler := telegram.NewHandler(bot, lg, missions, messageStorage)
	jobs := scheduler.New(lg, scheduler.DailyReset(missionStorage, messageStorage, lg))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return handler.Run(ctx) })
	g.Go(func() error { return jobs.Run(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	lg.Info("shutdown signal received")
	return nil
}
