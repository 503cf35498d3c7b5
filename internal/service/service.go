package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bloodlink/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// DonorRepository is the user-directory view the matcher reads.
type DonorRepository interface {
	FindEligibleByBloodGroup(ctx context.Context, bg domain.BloodGroup, cutoff time.Time) ([]domain.Donor, error)
}

// UserDirectory resolves alert-stream filters from a user id.
type UserDirectory interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) error
	Get(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error)
	List(ctx context.Context, page, limit int) ([]domain.BloodRequest, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListRecentUrgent(ctx context.Context, limit int) ([]domain.BloodRequest, error)
}

type DonationRepository interface {
	Schedule(ctx context.Context, d *domain.Donation) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Donation, error)
	Complete(ctx context.Context, id uuid.UUID, completedAt time.Time) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

type InventoryRepository interface {
	Summary(ctx context.Context, facilityID uuid.UUID) ([]domain.InventoryItem, error)
	Adjust(ctx context.Context, facilityID uuid.UUID, bg domain.BloodGroup, delta int) error
}

type StatsRepository interface {
	CountRequests(ctx context.Context, minutes int) (int64, error)
	CountDonations(ctx context.Context, minutes int) (int64, error)
}

// MatchCache is the slice of the cache service the matcher needs.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	InvalidatePrefix(ctx context.Context, prefix string)
	Stats() domain.CacheStats
}

type WebhookQueue interface {
	Enqueue(ctx context.Context, payload domain.WebhookPayload) error
}

type Service struct {
	Matching     *MatchingService
	Alerts       *AlertService
	Coordination *CoordinationService
}

func New(matching *MatchingService, alerts *AlertService, coordination *CoordinationService) *Service {
	return &Service{
		Matching:     matching,
		Alerts:       alerts,
		Coordination: coordination,
	}
}
