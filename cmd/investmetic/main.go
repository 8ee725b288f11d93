package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/investmetic/investmetic/internal/app"
	"github.com/investmetic/investmetic/internal/email"
	"github.com/investmetic/investmetic/internal/files"
	"github.com/investmetic/investmetic/internal/notice"
	"github.com/investmetic/investmetic/internal/observability"
	"github.com/investmetic/investmetic/internal/platform/cache"
	"github.com/investmetic/investmetic/internal/platform/db"
	"github.com/investmetic/investmetic/internal/qna"
	"github.com/investmetic/investmetic/internal/strategy"
	"github.com/investmetic/investmetic/internal/subscription"
	"github.com/investmetic/investmetic/internal/users"
	"github.com/investmetic/investmetic/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis connect", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	storage := files.NewGatewayClient(cfg.StorageGatewayURL, cfg.StoragePublicURL)
	if err := storage.Ping(ctx); err != nil {
		logger.Warn("storage gateway ping", slog.Any("error", err))
	}

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService)

	strategyRepo := strategy.NewRepository(pool)

	qnaRepo := qna.NewRepository(pool)
	qnaService := qna.NewService(qnaRepo, usersRepo, strategyRepo)
	qnaHandler := qna.NewHandler(logger, qnaService)

	noticeRepo := notice.NewRepository(pool)
	noticeService := notice.NewService(noticeRepo, storage, logger)
	noticeHandler := notice.NewHandler(logger, noticeService)

	subscriptionRepo := subscription.NewRepository(pool, strategyRepo)
	subscriptionService := subscription.NewService(subscriptionRepo, strategyRepo)
	subscriptionHandler := subscription.NewHandler(logger, subscriptionService)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	codeService := email.NewCodeService(redisClient)
	emailHandler := email.NewHandler(logger, codeService, jobClient)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		UsersHandler:        usersHandler,
		QnaHandler:          qnaHandler,
		NoticeHandler:       noticeHandler,
		SubscriptionHandler: subscriptionHandler,
		EmailHandler:        emailHandler,
		JobHandler:          jobHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
