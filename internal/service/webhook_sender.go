package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"bloodlink/internal/config"
	"bloodlink/internal/domain"
	"bloodlink/internal/storage/redisstore"
	"bloodlink/pkg/e"
)

// WebhookSender drains the redis queue and POSTs alert notifications to the
// configured facility endpoint.
type WebhookSender struct {
	logger *slog.Logger
	cfg    config.WebhookConfig
	queue  *redisstore.WebhookQueue
	client *resty.Client
}

func NewWebhookSender(logger *slog.Logger, cfg config.WebhookConfig, q *redisstore.WebhookQueue) *WebhookSender {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &WebhookSender{
		logger: logger,
		cfg:    cfg,
		queue:  q,
		client: client,
	}
}

func (s *WebhookSender) Run(ctx context.Context) {
	if s.cfg.Disabled || s.cfg.URL == "" {
		s.logger.Info("webhook sender disabled")
		return
	}
	s.logger.Info("webhook sender started", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("webhook sender stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		payload, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrWebhookEmpty) || errors.Is(err, context.Canceled) {
				continue
			}
			s.logger.Error("webhook dequeue failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		s.send(ctx, payload)
	}
}

func (s *WebhookSender) send(ctx context.Context, p domain.WebhookPayload) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(p).
		Post(s.cfg.URL)

	if err != nil {
		s.logger.Warn("webhook delivery failed",
			slog.String("request_id", p.RequestID.String()),
			slog.Any("error", err),
		)
		return
	}
	if resp.IsError() {
		s.logger.Warn("webhook rejected",
			slog.String("request_id", p.RequestID.String()),
			slog.String("status", resp.Status()),
		)
		return
	}

	s.logger.Info("webhook delivered", slog.String("request_id", p.RequestID.String()))
}
