package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eydelrivero/tuber/internal/cache/memory"
	"github.com/eydelrivero/tuber/internal/config"
	"github.com/eydelrivero/tuber/internal/metrics"
	"github.com/eydelrivero/tuber/internal/repository"
	"github.com/eydelrivero/tuber/internal/repository/postgres"
	"github.com/eydelrivero/tuber/internal/service"
	"github.com/eydelrivero/tuber/internal/telegram"
	"github.com/eydelrivero/tuber/internal/youtube"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := cfg.ValidateBot(); err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("bot stopped", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	client := youtube.New(youtube.Config{
		APIKey:  cfg.YouTube.APIKey,
		BaseURL: cfg.YouTube.BaseURL,
		Timeout: cfg.YouTube.Timeout,
	}, logger, m)

	if err := client.EnsureValid(); err != nil {
		return err
	}

	resultCache := memory.New()
	defer resultCache.Stop()

	// история опциональна: без DATABASE_URL бот работает без нее
	var history repository.SearchHistoryRepository
	var historySvc service.HistoryService
	if cfg.Database.URL != "" {
		db, err := postgres.New(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := postgres.NewSearchHistoryRepo(db)
		history = repo
		historySvc = service.NewHistoryService(repo)
		logger.Info("search history enabled")
	} else {
		logger.Info("DATABASE_URL not set, search history disabled")
	}

	searchSvc := service.NewSearchService(service.SearchServiceDeps{
		Pager:   client,
		Stats:   client,
		Logger:  logger,
		Config:  service.SearchConfig{CacheTTL: cfg.Cache.TTL},
		Cache:   resultCache,
		History: history,
		Metrics: m,
	})

	bot, err := telegram.New(telegram.BotConfig{
		Token:             cfg.Telegram.Token,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
	}, searchSvc, historySvc, logger, m)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bot.Run(ctx)
	})

	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())

		srv := &http.Server{
			Addr:    cfg.Metrics.Addr,
			Handler: mux,
		}

		g.Go(func() error {
			logger.Info("metrics server listening", zap.String("addr", cfg.Metrics.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
