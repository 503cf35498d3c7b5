package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bloodlink/internal/domain"
)

type DonorRepository interface {
	// FindEligibleByBloodGroup returns donor-eligible users of the exact
	// blood group with both coordinates set. cutoff is "now minus the
	// eligibility window": donors with a later last_donation_date are
	// excluded.
	FindEligibleByBloodGroup(ctx context.Context, bg domain.BloodGroup, cutoff time.Time) ([]domain.Donor, error)
}

type UserRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.BloodRequest) error
	Get(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error)
	List(ctx context.Context, page, limit int) ([]domain.BloodRequest, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListRecentUrgent returns pending/verified high and emergency requests,
	// newest first, for the pull-based alert fallback.
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
