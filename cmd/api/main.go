package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/comelu/waitlist-api/internal/api/router"
	appconfig "github.com/comelu/waitlist-api/internal/config"
	"github.com/comelu/waitlist-api/internal/leads"
	"github.com/comelu/waitlist-api/internal/notify"
	"github.com/comelu/waitlist-api/internal/observability/metrics"
	"github.com/comelu/waitlist-api/internal/ratelimit"
	"github.com/comelu/waitlist-api/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting waitlist API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Lead storage. A missing DATABASE_URL does not abort startup: the
	// endpoint keeps answering with the generic configuration error.
	var repo leads.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = leads.NewPostgresRepository(pool)
	} else {
		logger.Error("DATABASE_URL not set, submissions will fail with a configuration error")
	}

	limiter := buildLimiter(cfg, logger)
	confirmations := notify.NewService(buildEmailSender(cfg, logger), logger)
	submissionMetrics := metrics.NewSubmissionMetrics(nil)

	leadsHandler := leads.NewHandler(repo, limiter, confirmations, submissionMetrics, logger)

	r := router.New(&router.Config{
		Logger:         logger,
		LeadsHandler:   leadsHandler,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// buildLimiter picks the shared Redis window when REDIS_ADDR is set,
// otherwise the per-instance in-memory window.
func buildLimiter(cfg *appconfig.Config, logger *logging.Logger) ratelimit.Limiter {
	if cfg.RedisAddr == "" {
		return ratelimit.NewMemoryLimiter(cfg.RateLimitWindow, cfg.RateLimitMax)
	}

	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	logger.Info("using redis-backed rate limiter", "addr", cfg.RedisAddr)
	return ratelimit.NewRedisLimiter(redis.NewClient(opts), cfg.RateLimitWindow, cfg.RateLimitMax, logger)
}

// buildEmailSender wires the configured provider, the stub when email
// is disabled, and nil (send-time error log) when enabled but
// misconfigured.
func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	if !cfg.EmailEnabled {
		return notify.NewStubEmailSender(logger)
	}

	switch cfg.EmailProvider {
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Error("failed to load AWS config, confirmation emails disabled", "error", err)
			return nil
		}
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			logger.Error("SES sender misconfigured, confirmation emails disabled")
			return nil
		}
		return sender
	default:
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			logger.Error("sendgrid sender misconfigured, confirmation emails disabled")
			return nil
		}
		return sender
	}
}
