package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/civictrack/issue-reporter/internal/config"
	"github.com/civictrack/issue-reporter/internal/notify"
	"github.com/civictrack/issue-reporter/internal/ratelimit"
	"github.com/civictrack/issue-reporter/internal/repository/postgres"
	"github.com/civictrack/issue-reporter/internal/service"
	myhttp "github.com/civictrack/issue-reporter/internal/transport/http"
	"github.com/civictrack/issue-reporter/pkg/logger/sl"
	"github.com/civictrack/issue-reporter/pkg/logger/slogpretty"
)

const (
	notifierLog      = "log"
	notifierRabbitMQ = "rabbitmq"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting issue-reporter", slog.String("env", cfg.Env))

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	notifier, closeNotifier, err := newNotifier(cfg.Notifier, log)
	if err != nil {
		return fmt.Errorf("failed to init notifier: %w", err)
	}
	defer closeNotifier()

	limiter, closeLimiter, err := newLimiter(ctx, cfg.RateLimit, log)
	if err != nil {
		return fmt.Errorf("failed to init rate limiter: %w", err)
	}
	defer closeLimiter()

	issueRepo := postgres.NewIssueRepository(db.DB(), log)
	userRepo := postgres.NewUserRepository(db.DB(), log)

	srv := myhttp.NewServer(
		log,
		service.NewIssueService(db.DB(), log, issueRepo, notifier, cfg.Issues),
		service.NewModerationService(db.DB(), log, userRepo),
		service.NewUserService(db.DB(), log, userRepo),
		limiter,
	)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  4 * cfg.Server.Timeout,
	}

	errChan := make(chan error, 1)

	go startServer(log, httpServer, errChan)

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %w", err)
	}

	log.Info("server stopped")

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChan <- fmt.Errorf("error listening and serving: %w", err)
	}
}

func newNotifier(cfg config.Notifier, log *slog.Logger) (service.Notifier, func(), error) {
	switch cfg.Kind {
	case notifierRabbitMQ:
		n, err := notify.NewRabbitMQNotifier(cfg.RabbitMQ, log)
		if err != nil {
			return nil, nil, err
		}

		return n, func() {
			if err := n.Close(); err != nil {
				log.Error("rabbitmq close failed", sl.Err(err))
			}
		}, nil
	case notifierLog, "":
		return notify.NewLogNotifier(log), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown notifier kind %q", cfg.Kind)
	}
}

func newLimiter(ctx context.Context, cfg config.RateLimit, log *slog.Logger) (myhttp.RateLimiter, func(), error) {
	if !cfg.Enabled {
		log.Info("issue report rate limiting is disabled")
		return nil, func() {}, nil
	}

	client, err := ratelimit.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}

	log.Info("issue report rate limiting is enabled",
		slog.Int64("limit", cfg.Limit),
		slog.String("window", cfg.Window.String()),
	)

	return ratelimit.NewRedisLimiter(client, cfg), func() {
		if err := client.Close(); err != nil {
			log.Error("redis close failed", sl.Err(err))
		}
	}, nil
}
