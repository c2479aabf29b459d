package main

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/comelu/waitlist-api/internal/config"
	"github.com/comelu/waitlist-api/internal/leads"
	"github.com/comelu/waitlist-api/internal/notify"
	"github.com/comelu/waitlist-api/internal/ratelimit"
	"github.com/comelu/waitlist-api/pkg/logging"
)

// Serverless entrypoint: the submit handler behind API Gateway. The
// in-memory rate limiter is per Lambda instance and resets on cold
// starts, matching the documented MVP limitation; set REDIS_ADDR for a
// shared window.
func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	var repo leads.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		repo = leads.NewPostgresRepository(pool)
	} else {
		logger.Error("DATABASE_URL not set, submissions will fail with a configuration error")
	}

	handler := leads.NewHandler(
		repo,
		buildLimiter(cfg, logger),
		notify.NewService(buildEmailSender(cfg, logger), logger),
		nil,
		logger,
	)

	lambda.Start(func(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return handle(ctx, handler, evt)
	})
}

func handle(ctx context.Context, handler *leads.Handler, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body, err := decodeBody(evt)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusBadRequest, Body: "invalid body"}, nil
	}

	method := strings.ToUpper(strings.TrimSpace(evt.RequestContext.HTTP.Method))
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, "/submitLead", bytes.NewReader(body))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	for name, value := range evt.Headers {
		req.Header.Set(name, value)
	}
	if req.Header.Get("X-Forwarded-For") == "" && evt.RequestContext.HTTP.SourceIP != "" {
		req.Header.Set("X-Forwarded-For", evt.RequestContext.HTTP.SourceIP)
	}

	w := newResponseCapture()
	handler.Submit(w, req)

	headers := make(map[string]string, len(w.header))
	for name, values := range w.header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: w.status,
		Headers:    headers,
		Body:       w.body.String(),
	}, nil
}

func decodeBody(evt events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if !evt.IsBase64Encoded {
		return []byte(evt.Body), nil
	}
	return base64.StdEncoding.DecodeString(evt.Body)
}

// responseCapture adapts http.ResponseWriter onto the Lambda response.
type responseCapture struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newResponseCapture() *responseCapture {
	return &responseCapture{header: make(http.Header), status: http.StatusOK}
}

func (c *responseCapture) Header() http.Header { return c.header }

func (c *responseCapture) WriteHeader(status int) { c.status = status }

func (c *responseCapture) Write(p []byte) (int, error) { return c.body.Write(p) }

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
	return ratelimit.NewRedisLimiter(redis.NewClient(opts), cfg.RateLimitWindow, cfg.RateLimitMax, logger)
}

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
