package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bloodlink/internal/domain"
	"bloodlink/pkg/e"
)

type DonationRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDonationRepo(pool *pgxpool.Pool, logger *slog.Logger) *DonationRepo {
	return &DonationRepo{pool: pool, logger: logger}
}

func (p *DonationRepo) Schedule(ctx context.Context, d *domain.Donation) error {
	const op = "postgres.Donation.Schedule"

	if d == nil || d.DonorID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.Status == "" {
		d.Status = domain.DonationScheduled
	}

	const query = `
INSERT INTO donations
    (id, donor_id, request_id, facility_id, blood_group, units, scheduled_at, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

	_, err := p.pool.Exec(ctx, query,
		d.ID, d.DonorID, d.RequestID, d.FacilityID, d.BloodGroup,
		d.Units, d.ScheduledAt, d.Status, d.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (p *DonationRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	const op = "postgres.Donation.Get"

	const query = `
SELECT id, donor_id, request_id, facility_id, blood_group, units,
       scheduled_at, completed_at, status, created_at
FROM donations
WHERE id = $1
`

	var d domain.Donation
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.DonorID, &d.RequestID, &d.FacilityID, &d.BloodGroup,
		&d.Units, &d.ScheduledAt, &d.CompletedAt, &d.Status, &d.CreatedAt,
	)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return &d, nil
}

// Complete marks a donation done and stamps the donor's last_donation_date in
// the same transaction, which restarts the 90-day eligibility window.
func (p *DonationRepo) Complete(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	const op = "postgres.Donation.Complete"

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	defer tx.Rollback(ctx)

	var donorID uuid.UUID
	err = tx.QueryRow(ctx, `
UPDATE donations
SET status = 'completed', completed_at = $2
WHERE id = $1 AND status = 'scheduled'
RETURNING donor_id
`, id, completedAt).Scan(&donorID)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}

	_, err = tx.Exec(ctx, `
UPDATE users SET last_donation_date = $2 WHERE id = $1
`, donorID, completedAt)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (p *DonationRepo) Cancel(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Donation.Cancel"

	const query = `
UPDATE donations
SET status = 'cancelled'
WHERE id = $1 AND status = 'scheduled'
`

	tag, err := p.pool.Exec(ctx, query, id)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}
