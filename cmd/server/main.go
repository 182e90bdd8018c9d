package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/batyr-bol/internal/config"
	"github.com/aliskhannn/batyr-bol/internal/delivery/rest"
	"github.com/aliskhannn/batyr-bol/internal/infra/postgres"
	"github.com/aliskhannn/batyr-bol/internal/infra/redis"
	"github.com/aliskhannn/batyr-bol/internal/llm"
	"github.com/aliskhannn/batyr-bol/internal/logger"
	"github.com/aliskhannn/batyr-bol/internal/repository"
	"github.com/aliskhannn/batyr-bol/internal/scheduler"
	"github.com/aliskhannn/batyr-bol/internal/service"
	"github.com/aliskhannn/batyr-bol/internal/sources"
	"github.com/aliskhannn/batyr-bol/internal/storage"
)

const migrationsDir = "migrations"

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
		lg.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
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

	sessions, closeSessions, err := newSessionStore(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeSessions()

	fallbacks, err := repository.NewFallbackRepository(cfg.FallbacksJSONPath)
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(pool)
	clanRepo := repository.NewClanRepository(pool, postgres.NewTransactor(pool))
	activityRepo := repository.NewActivityRepository(pool)
	contactRepo := repository.NewContactRepository(pool)

	openai := llm.NewOpenAICompatible("openai", cfg.LLM.OpenAI.BaseURL, cfg.LLM.OpenAI.Model, cfg.LLM.OpenAI.APIKey, cfg.LLM.Timeout)
	groq := llm.NewOpenAICompatible("groq", cfg.LLM.Groq.BaseURL, cfg.LLM.Groq.Model, cfg.LLM.Groq.APIKey, cfg.LLM.Timeout)
	gemini := llm.NewGemini(cfg.LLM.Gemini.BaseURL, cfg.LLM.Gemini.Model, cfg.LLM.Gemini.APIKey, cfg.LLM.Timeout)
	chain := llm.NewChain(lg, groq, gemini, openai)

	if !chain.Configured() {
		lg.Warn("no llm provider configured, generation falls back to offline content")
	}

	auth := service.NewAuthService(userRepo, sessions, cfg.Session.TTL, lg)
	content := service.NewContentService(chain, fallbacks, sources.NewFetcher(cfg.Sources, lg), lg).
		WithOpenAI(llm.NewChain(lg, openai))
	services := rest.Services{
		Auth:     auth,
		Content:  content,
		Missions: service.NewMissionGenService(chain, openai, fallbacks, lg),
		Grading:  service.NewGradingService(chain, service.NewAnswerValidator(), lg),
		Clans:    service.NewClanService(clanRepo, activityRepo, userRepo, lg),
		Contact:  service.NewContactService(contactRepo),
		Duels:    service.NewDuelService(lg),
	}

	limiter := storage.NewRateLimiter()
	handler := rest.NewHandler(services, limiter, cfg.RateLimits, lg)
	srv := rest.NewServer(cfg.HTTP, rest.NewRouter(handler, cfg.HTTP, lg))

	jobs := scheduler.New(lg,
		scheduler.SessionSweep(cfg.Session.SweepSchedule, auth, lg),
		scheduler.LimiterPrune(limiter, maxWindow(cfg.RateLimits), lg),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return rest.Serve(ctx, srv, cfg.HTTP.ShutdownTimeout, lg) })
	g.Go(func() error { return jobs.Run(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	lg.Info("shutdown complete")
	return nil
}

// newSessionStore uses Redis when REDIS_URL is set and memory otherwise.
func newSessionStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (service.SessionStore, func(), error) {
	if !cfg.Redis.Enabled() {
		lg.Info("using in-memory session store")
		return storage.NewMemorySessionStore(), func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	lg.Info("using redis session store")

	return storage.NewRedisSessionStore(client, cfg.Session.TTL), func() { _ = client.Close() }, nil
}

func maxWindow(limits map[string]config.RateLimit) time.Duration {
	var longest time.Duration
	for _, l := range limits {
		longest = max(longest, l.Window)
	}
	if longest == 0 {
		longest = time.Minute
	}
	return longest
}
