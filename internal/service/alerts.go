package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"bloodlink/internal/domain"
	"bloodlink/internal/geo"
	"bloodlink/internal/metrics"
	"bloodlink/internal/stream"
)

// AlertBus relays broadcasts to other instances; nil-safe no-op when redis is
// not configured.
type AlertBus interface {
	Publish(ctx context.Context, alert domain.EmergencyAlert)
}

type AlertService struct {
	broker    *stream.Broker
	bus       AlertBus
	directory UserDirectory
	requests  RequestRepository
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewAlertService(
	broker *stream.Broker,
	bus AlertBus,
	directory UserDirectory,
	requests RequestRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AlertService {
	return &AlertService{
		broker:    broker,
		bus:       bus,
		directory: directory,
		requests:  requests,
		metrics:   m,
		logger:    logger,
	}
}

// ResolveFilter fills missing filter fields from the user directory when a
// user id was supplied. Directory failures are tolerated: the stream opens
// with whatever the client supplied explicitly.
func (s *AlertService) ResolveFilter(ctx context.Context, filter domain.SubscriberFilter) domain.SubscriberFilter {
	if filter.UserID == "" {
		return filter
	}
	id, err := uuid.Parse(filter.UserID)
	if err != nil {
		s.logger.Warn("bad userId on stream, ignoring", slog.String("user_id", filter.UserID))
		return filter
	}

	profile, err := s.directory.GetProfile(ctx, id)
	if err != nil {
		s.logger.Warn("directory lookup failed, using explicit filter",
			slog.String("user_id", filter.UserID), slog.Any("error", err))
		return filter
	}

	if filter.BloodGroup == "" {
		filter.BloodGroup = profile.BloodGroup
	}
	if filter.Lat == nil && filter.Lng == nil {
		filter.Lat, filter.Lng = profile.Lat, profile.Lng
	}
	return filter
}

func (s *AlertService) Subscribe(filter domain.SubscriberFilter) *stream.Subscriber {
	sub := s.broker.AddClient(filter)
	s.metrics.ActiveSubscribers.Set(float64(s.broker.SubscriberCount()))
	return sub
}

func (s *AlertService) Unsubscribe(id string) {
	s.broker.RemoveClient(id)
	s.metrics.ActiveSubscribers.Set(float64(s.broker.SubscriberCount()))
}

// Broadcast fans an alert out to local subscribers and relays it to the other
// instances. Returns the local delivered count.
func (s *AlertService) Broadcast(ctx context.Context, alert domain.EmergencyAlert) int {
	delivered := s.broker.Broadcast(alert)
	s.metrics.AlertsBroadcast.Inc()
	s.metrics.AlertsDelivered.Add(float64(delivered))
	if s.bus != nil {
		s.bus.Publish(ctx, alert)
	}
	return delivered
}

// Recent is the pull-based fallback: pending high/emergency requests, newest
// first, filtered by the caller's location and optional blood group.
func (s *AlertService) Recent(ctx context.Context, filter domain.SubscriberFilter, limit int) ([]domain.RecentAlert, error) {
	if limit <= 0 || limit > 20 {
		limit = 20
	}

	requests, err := s.requests.ListRecentUrgent(ctx, 20)
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.RecentAlert, 0, len(requests))
	for _, r := range requests {
		if filter.BloodGroup != "" && filter.BloodGroup != r.BloodGroup {
			continue
		}

		alert := domain.RecentAlert{
			RequestID:  r.ID,
			BloodGroup: r.BloodGroup,
			Urgency:    r.Urgency,
			Hospital:   r.Hospital,
			Units:      r.Units,
			Lat:        r.Lat,
			Lng:        r.Lng,
			CreatedAt:  r.CreatedAt,
		}

		if filter.Lat != nil && filter.Lng != nil && r.Lat != nil && r.Lng != nil {
			dist := geo.HaversineKM(*filter.Lat, *filter.Lng, *r.Lat, *r.Lng)
			if filter.RadiusKM > 0 && dist > filter.RadiusKM {
				continue
			}
			rounded := geo.Round2(dist)
			alert.DistanceKM = &rounded
		}

		alerts = append(alerts, alert)
		if len(alerts) == limit {
			break
		}
	}

	return alerts, nil
}
