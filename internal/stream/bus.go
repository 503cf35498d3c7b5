package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"bloodlink/internal/domain"
)

// Bus relays alert broadcasts across instances over a redis pub/sub channel.
// Each instance delivers locally and publishes; relayed messages carry the
// origin instance id so an instance never re-delivers its own broadcast.
// Redis being down degrades to single-instance delivery.
type Bus struct {
	logger     *slog.Logger
	rdb        *goredis.Client
	channel    string
	instanceID string
	broker     *Broker
}

type busMessage struct {
	InstanceID string                `json:"instance_id"`
	Alert      domain.EmergencyAlert `json:"alert"`
}

func NewBus(rdb *goredis.Client, channel string, broker *Broker, logger *slog.Logger) *Bus {
	return &Bus{
		logger:     logger,
		rdb:        rdb,
		channel:    channel,
		instanceID: uuid.NewString(),
		broker:     broker,
	}
}

// Publish pushes the alert to the relay channel. Failures are logged and
// swallowed; local delivery has already happened.
func (b *Bus) Publish(ctx context.Context, alert domain.EmergencyAlert) {
	if b.rdb == nil {
		return
	}
	data, err := json.Marshal(busMessage{InstanceID: b.instanceID, Alert: alert})
	if err != nil {
		b.logger.Error("bus message marshal failed", slog.Any("error", err))
		return
	}
	if err := b.rdb.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Warn("alert relay publish failed", slog.Any("error", err))
	}
}

// Run consumes relayed alerts and feeds them to the local registry.
func (b *Bus) Run(ctx context.Context) {
	if b.rdb == nil {
		return
	}

	pubsub := b.rdb.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	b.logger.Info("alert relay subscribed", slog.String("channel", b.channel))

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				if !errors.Is(ctx.Err(), context.Canceled) {
					b.logger.Warn("alert relay channel closed")
				}
				return
			}
			var relayed busMessage
			if err := json.Unmarshal([]byte(msg.Payload), &relayed); err != nil {
				b.logger.Warn("bad relay payload", slog.Any("error", err))
				continue
			}
			if relayed.InstanceID == b.instanceID {
				continue
			}
			b.broker.Broadcast(relayed.Alert)
		}
	}
}
