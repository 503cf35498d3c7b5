// Package stream manages live alert subscribers and pushes emergency-alert
// events to the ones whose blood-group/location filter matches.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloodlink/internal/config"
	"bloodlink/internal/domain"
	"bloodlink/internal/geo"
)

const (
	EventConnected = "connected"
	EventHeartbeat = "heartbeat"
	EventAlert     = "emergency-alert"

	// sendBuffer bounds a subscriber's outbox; a full buffer means the
	// connection is not draining and the subscriber is dropped.
	sendBuffer = 16
)

type Event struct {
	Name string
	Data []byte
}

// Subscriber is one live stream connection. It exists only in process memory
// for the lifetime of the connection.
type Subscriber struct {
	ID          string
	Filter      domain.SubscriberFilter
	ConnectedAt time.Time
	events      chan Event
}

// Events is the subscriber's receive side; it is closed on removal.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

type Broker struct {
	logger        *slog.Logger
	defaultRadius float64
	heartbeat     time.Duration

	mu   sync.RWMutex
	subs map[string]*Subscriber

	now func() time.Time
}

func NewBroker(cfg config.StreamConfig, logger *slog.Logger) *Broker {
	return &Broker{
		logger:        logger,
		defaultRadius: cfg.DefaultRadiusKM,
		heartbeat:     cfg.HeartbeatInterval,
		subs:          make(map[string]*Subscriber),
		now:           time.Now,
	}
}

// AddClient registers a subscriber and immediately queues its "connected"
// acknowledgment event. The returned id is opaque and per-connection.
func (b *Broker) AddClient(filter domain.SubscriberFilter) *Subscriber {
	if filter.RadiusKM <= 0 {
		filter.RadiusKM = b.defaultRadius
	}

	sub := &Subscriber{
		ID:          uuid.NewString(),
		Filter:      filter,
		ConnectedAt: b.now().UTC(),
		events:      make(chan Event, sendBuffer),
	}

	ack, _ := json.Marshal(map[string]any{
		"subscriber_id": sub.ID,
		"radius_km":     filter.RadiusKM,
		"connected_at":  sub.ConnectedAt.Format(time.RFC3339),
	})
	sub.events <- Event{Name: EventConnected, Data: ack}

	b.mu.Lock()
	b.subs[sub.ID] = sub
	b.mu.Unlock()

	b.logger.Debug("alert subscriber registered",
		slog.String("id", sub.ID),
		slog.String("user_id", filter.UserID),
		slog.String("blood_group", string(filter.BloodGroup)),
	)
	return sub
}

// RemoveClient deregisters a subscriber. Idempotent; unknown ids are ignored.
func (b *Broker) RemoveClient(id string) {
	b.mu.Lock()
	sub, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
		close(sub.events)
	}
	b.mu.Unlock()

	if ok {
		b.logger.Debug("alert subscriber removed", slog.String("id", id))
	}
}

func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Broadcast delivers an emergency alert to every matching subscriber and
// returns how many were delivered to. An alert without an origin cannot be
// geo-targeted and is delivered to nobody.
func (b *Broker) Broadcast(alert domain.EmergencyAlert) int {
	if alert.Lat == nil || alert.Lng == nil {
		b.logger.Warn("alert without origin dropped", slog.String("request_id", alert.RequestID.String()))
		return 0
	}

	delivered := 0
	var dead []string
	ts := b.now().UTC().Format(time.RFC3339)

	b.mu.RLock()
	for _, sub := range b.subs {
		f := sub.Filter
		if f.Lat == nil || f.Lng == nil {
			continue
		}
		if f.BloodGroup != "" && f.BloodGroup != alert.BloodGroup {
			continue
		}

		dist := geo.HaversineKM(*alert.Lat, *alert.Lng, *f.Lat, *f.Lng)
		reach := min(f.RadiusKM, alert.RadiusKM)
		if dist > reach {
			continue
		}

		payload := make(map[string]any, len(alert.Payload)+5)
		for k, v := range alert.Payload {
			payload[k] = v
		}
		payload["request_id"] = alert.RequestID.String()
		payload["blood_group"] = string(alert.BloodGroup)
		payload["radius_km"] = alert.RadiusKM
		payload["distance_km"] = geo.Round2(dist)
		payload["timestamp"] = ts

		data, err := json.Marshal(payload)
		if err != nil {
			continue
		}

		select {
		case sub.events <- Event{Name: EventAlert, Data: data}:
			delivered++
		default:
			dead = append(dead, sub.ID)
		}
	}
	b.mu.RUnlock()

	for _, id := range dead {
		b.RemoveClient(id)
	}

	b.logger.Info("emergency alert broadcast",
		slog.String("request_id", alert.RequestID.String()),
		slog.String("blood_group", string(alert.BloodGroup)),
		slog.Int("delivered", delivered),
		slog.Int("dropped", len(dead)),
	)
	return delivered
}

// Run emits heartbeats until the context ends. Subscribers that cannot accept
// a heartbeat are presumed dead and dropped without disturbing the rest.
func (b *Broker) Run(ctx context.Context) {
	ticker := time.NewTicker(b.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.closeAll()
			return
		case <-ticker.C:
			b.sendHeartbeats()
		}
	}
}

func (b *Broker) sendHeartbeats() {
	data, _ := json.Marshal(map[string]string{"ts": b.now().UTC().Format(time.RFC3339)})

	var dead []string
	b.mu.RLock()
	for _, sub := range b.subs {
		select {
		case sub.events <- Event{Name: EventHeartbeat, Data: data}:
		default:
			dead = append(dead, sub.ID)
		}
	}
	b.mu.RUnlock()

	for _, id := range dead {
		b.RemoveClient(id)
	}
}

func (b *Broker) closeAll() {
	b.mu.Lock()
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.events)
	}
	b.mu.Unlock()
}
