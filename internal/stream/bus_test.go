package stream

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/internal/config"
	"bloodlink/internal/domain"
)

func TestBus_RelaysBetweenInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.StreamConfig{HeartbeatInterval: 25 * time.Second, DefaultRadiusKM: 5}

	newInstance := func() (*Broker, *Bus, *goredis.Client) {
		rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		broker := NewBroker(cfg, logger)
		return broker, NewBus(rdb, "alerts:broadcast", broker, logger), rdb
	}

	brokerA, busA, _ := newInstance()
	brokerB, busB, _ := newInstance()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go busA.Run(ctx)
	go busB.Run(ctx)

	// Give both subscriptions time to attach.
	time.Sleep(50 * time.Millisecond)

	lat, lng := 12.9716, 77.5946
	subA := brokerA.AddClient(domain.SubscriberFilter{Lat: &lat, Lng: &lng, RadiusKM: 10})
	subB := brokerB.AddClient(domain.SubscriberFilter{Lat: &lat, Lng: &lng, RadiusKM: 10})
	<-subA.Events()
	<-subB.Events()

	alert := domain.EmergencyAlert{
		RequestID:  uuid.New(),
		BloodGroup: domain.OPositive,
		Lat:        &lat,
		Lng:        &lng,
		RadiusKM:   10,
	}

	// Instance A delivers locally and relays; B picks the relay up.
	require.Equal(t, 1, brokerA.Broadcast(alert))
	assert.Equal(t, EventAlert, (<-subA.Events()).Name)
	busA.Publish(ctx, alert)

	select {
	case ev := <-subB.Events():
		assert.Equal(t, EventAlert, ev.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("relayed alert never reached instance B")
	}

	// A must not re-deliver its own relayed broadcast.
	select {
	case ev := <-subA.Events():
		t.Fatalf("instance A re-delivered its own alert: %q", ev.Name)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_NilRedisIsNoop(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	broker := NewBroker(config.StreamConfig{HeartbeatInterval: 25 * time.Second}, logger)
	bus := NewBus(nil, "alerts:broadcast", broker, logger)

	bus.Publish(context.Background(), domain.EmergencyAlert{RequestID: uuid.New()})

	done := make(chan struct{})
	go func() {
		bus.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run with nil redis must return immediately")
	}
}
