package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bloodlink/internal/domain"
	"bloodlink/pkg/e"
)

// CoordinationService owns the blood-request and donation lifecycle. Every
// mutation invalidates the matching cache prefix; urgent requests flow into
// the live alert stream and the webhook queue.
type CoordinationService struct {
	requests    RequestRepository
	donations   DonationRepository
	inventory   InventoryRepository
	stats       StatsRepository
	alerts      *AlertService
	cache       MatchCache
	webhookQ    WebhookQueue
	logger      *slog.Logger
	cachePrefix string

	now func() time.Time
}

func NewCoordinationService(
	requests RequestRepository,
	donations DonationRepository,
	inventory InventoryRepository,
	stats StatsRepository,
	alerts *AlertService,
	cache MatchCache,
	webhookQ WebhookQueue,
	logger *slog.Logger,
	cachePrefix string,
) *CoordinationService {
	return &CoordinationService{
		requests:    requests,
		donations:   donations,
		inventory:   inventory,
		stats:       stats,
		alerts:      alerts,
		cache:       cache,
		webhookQ:    webhookQ,
		logger:      logger,
		cachePrefix: cachePrefix,
		now:         time.Now,
	}
}

func (s *CoordinationService) CreateRequest(ctx context.Context, in domain.CreateRequestInput) (*domain.BloodRequest, error) {
	bg, err := domain.ParseBloodGroup(in.BloodGroup)
	if err != nil {
		return nil, err
	}
	if (in.Lat == nil) != (in.Lng == nil) {
		return nil, fmt.Errorf("partial coordinates: %w", e.ErrInvalidCoordinates)
	}

	radius := in.RadiusKM
	if radius <= 0 {
		radius = 10
	}

	req := &domain.BloodRequest{
		ID:          uuid.New(),
		PatientName: in.PatientName,
		BloodGroup:  bg,
		Units:       in.Units,
		Urgency:     in.Urgency,
		Hospital:    in.Hospital,
		ContactName: in.ContactName,
		Phone:       in.Phone,
		Lat:         in.Lat,
		Lng:         in.Lng,
		RadiusKM:    radius,
		Status:      domain.RequestPending,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, s.cachePrefix)

	if req.Urgency.IsAlertable() {
		s.alertForRequest(ctx, req)
	}

	s.logger.Info("blood request created",
		slog.String("id", req.ID.String()),
		slog.String("blood_group", string(req.BloodGroup)),
		slog.String("urgency", string(req.Urgency)),
	)
	return req, nil
}

func (s *CoordinationService) GetRequest(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error) {
	return s.requests.Get(ctx, id)
}

func (s *CoordinationService) ListRequests(ctx context.Context, page, limit int) ([]domain.BloodRequest, int64, error) {
	return s.requests.List(ctx, page, limit)
}

func (s *CoordinationService) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error {
	if err := s.requests.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.cache.InvalidatePrefix(ctx, s.cachePrefix)

	// verification re-announces an urgent request to the stream
	if status == domain.RequestVerified {
		if req, err := s.requests.Get(ctx, id); err == nil && req.Urgency.IsAlertable() {
			s.alertForRequest(ctx, req)
		}
	}
	return nil
}

func (s *CoordinationService) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(ctx, s.cachePrefix)
	return nil
}

func (s *CoordinationService) alertForRequest(ctx context.Context, req *domain.BloodRequest) {
	alert := domain.EmergencyAlert{
		RequestID:  req.ID,
		BloodGroup: req.BloodGroup,
		Lat:        req.Lat,
		Lng:        req.Lng,
		RadiusKM:   req.RadiusKM,
		Payload: map[string]any{
			"patient_name": req.PatientName,
			"hospital":     req.Hospital,
			"urgency":      string(req.Urgency),
			"units":        req.Units,
			"phone":        req.Phone,
		},
	}

	delivered := s.alerts.Broadcast(ctx, alert)

	if s.webhookQ != nil {
		payload := domain.WebhookPayload{
			RequestID:  req.ID,
			BloodGroup: req.BloodGroup,
			Urgency:    req.Urgency,
			Hospital:   req.Hospital,
			Units:      req.Units,
			Delivered:  delivered,
			CreatedAt:  s.now().UTC(),
		}
		switch err := s.webhookQ.Enqueue(ctx, payload); {
		case errors.Is(err, e.ErrWebhookUnavailable):
			// Redis-less deployment; alerts were still delivered locally.
			s.logger.Debug("webhook queue unavailable, notification skipped",
				slog.String("request_id", req.ID.String()))
		case err != nil:
			s.logger.Error("webhook enqueue failed",
				slog.String("request_id", req.ID.String()), slog.Any("error", err))
		}
	}
}

func (s *CoordinationService) ScheduleDonation(ctx context.Context, in domain.ScheduleDonationInput) (*domain.Donation, error) {
	donorID, err := uuid.Parse(in.DonorID)
	if err != nil {
		return nil, fmt.Errorf("donor_id: %w", e.ErrInvalidFormat)
	}
	bg, err := domain.ParseBloodGroup(in.BloodGroup)
	if err != nil {
		return nil, err
	}

	d := &domain.Donation{
		ID:          uuid.New(),
		DonorID:     donorID,
		BloodGroup:  bg,
		Units:       in.Units,
		ScheduledAt: in.ScheduledAt,
		Status:      domain.DonationScheduled,
		CreatedAt:   s.now().UTC(),
	}
	if in.RequestID != "" {
		id, err := uuid.Parse(in.RequestID)
		if err != nil {
			return nil, fmt.Errorf("request_id: %w", e.ErrInvalidFormat)
		}
		d.RequestID = &id
	}
	if in.FacilityID != "" {
		id, err := uuid.Parse(in.FacilityID)
		if err != nil {
			return nil, fmt.Errorf("facility_id: %w", e.ErrInvalidFormat)
		}
		d.FacilityID = &id
	}

	if err := s.donations.Schedule(ctx, d); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, s.cachePrefix)
	return d, nil
}

// CompleteDonation stamps last_donation_date, which changes matcher
// eligibility, so the cache prefix goes with it.
func (s *CoordinationService) CompleteDonation(ctx context.Context, id uuid.UUID) error {
	if err := s.donations.Complete(ctx, id, s.now().UTC()); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(ctx, s.cachePrefix)
	return nil
}

func (s *CoordinationService) CancelDonation(ctx context.Context, id uuid.UUID) error {
	if err := s.donations.Cancel(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(ctx, s.cachePrefix)
	return nil
}

func (s *CoordinationService) InventorySummary(ctx context.Context, facilityID uuid.UUID) ([]domain.InventoryItem, error) {
	return s.inventory.Summary(ctx, facilityID)
}

func (s *CoordinationService) AdjustInventory(ctx context.Context, in domain.AdjustInventoryInput) error {
	facilityID, err := uuid.Parse(in.FacilityID)
	if err != nil {
		return fmt.Errorf("facility_id: %w", e.ErrInvalidFormat)
	}
	bg, err := domain.ParseBloodGroup(in.BloodGroup)
	if err != nil {
		return err
	}

	if err := s.inventory.Adjust(ctx, facilityID, bg, in.Delta); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(ctx, s.cachePrefix)
	return nil
}

func (s *CoordinationService) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.UsageStats, error) {
	minutes := req.Minutes
	if minutes == 0 {
		minutes = 60
	}

	requests, err := s.stats.CountRequests(ctx, minutes)
	if err != nil {
		return nil, err
	}
	donations, err := s.stats.CountDonations(ctx, minutes)
	if err != nil {
		return nil, err
	}

	return &domain.UsageStats{
		Requests:  requests,
		Donations: donations,
		Minutes:   minutes,
	}, nil
}
