package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bloodlink/internal/domain"
	"bloodlink/pkg/e"
)

// WebhookQueue is a redis list used as a work queue between the alert
// broadcaster and the webhook sender.
type WebhookQueue struct {
	client *redis.Client
	key    string
}

func NewWebhookQueue(client *redis.Client, key string) *WebhookQueue {
	return &WebhookQueue{client: client, key: key}
}

func (q *WebhookQueue) Enqueue(ctx context.Context, payload domain.WebhookPayload) error {
	if q.client == nil {
		return e.ErrWebhookUnavailable
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *WebhookQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.WebhookPayload, error) {
	var p domain.WebhookPayload

	// Without redis there is no queue; block for the timeout so the sender
	// loop does not spin.
	if q.client == nil {
		select {
		case <-ctx.Done():
			return p, ctx.Err()
		case <-time.After(timeout):
			return p, e.ErrWebhookEmpty
		}
	}

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return p, e.ErrWebhookEmpty
		}
		return p, err
	}
	if len(res) < 2 {
		return p, redis.Nil
	}
	if err := json.Unmarshal([]byte(res[1]), &p); err != nil {
		return p, err
	}
	return p, nil
}
