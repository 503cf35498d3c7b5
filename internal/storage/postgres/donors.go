package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"bloodlink/internal/domain"
	"bloodlink/pkg/e"
)

type DonorRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDonorRepo(pool *pgxpool.Pool, logger *slog.Logger) *DonorRepo {
	return &DonorRepo{pool: pool, logger: logger}
}

func (p *DonorRepo) FindEligibleByBloodGroup(ctx context.Context, bg domain.BloodGroup, cutoff time.Time) ([]domain.Donor, error) {
	const op = "postgres.Donor.FindEligibleByBloodGroup"

	if bg == "" {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
SELECT id, name, phone, email, blood_group, city, state,
       latitude, longitude, last_donation_date
FROM users
WHERE is_donor = TRUE
  AND is_active = TRUE
  AND blood_group = $1
  AND latitude IS NOT NULL
  AND longitude IS NOT NULL
  AND (last_donation_date IS NULL OR last_donation_date <= $2)
ORDER BY id
`

	rows, err := p.pool.Query(ctx, query, bg, cutoff)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	donors := make([]domain.Donor, 0, 32)
	for rows.Next() {
		var d domain.Donor
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Phone, &d.Email, &d.BloodGroup,
			&d.City, &d.State, &d.Lat, &d.Lng, &d.LastDonationDate,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		donors = append(donors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	return donors, nil
}

type UserRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewUserRepo(pool *pgxpool.Pool, logger *slog.Logger) *UserRepo {
	return &UserRepo{pool: pool, logger: logger}
}

func (p *UserRepo) GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	const op = "postgres.User.GetProfile"

	if id == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
SELECT id, blood_group, latitude, longitude, role, is_verified, is_active, facility_id
FROM users
WHERE id = $1
`

	var u domain.UserProfile
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.BloodGroup, &u.Lat, &u.Lng,
		&u.Role, &u.IsVerified, &u.IsActive, &u.FacilityID,
	)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	// partial coordinates count as no location
	if u.Lat == nil || u.Lng == nil {
		u.Lat, u.Lng = nil, nil
	}

	return &u, nil
}
