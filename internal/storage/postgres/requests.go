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

type RequestRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewRequestRepo(pool *pgxpool.Pool, logger *slog.Logger) *RequestRepo {
	return &RequestRepo{pool: pool, logger: logger}
}

func (p *RequestRepo) Create(ctx context.Context, req *domain.BloodRequest) error {
	const op = "postgres.Request.Create"

	if req == nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	req.UpdatedAt = req.CreatedAt
	if req.Status == "" {
		req.Status = domain.RequestPending
	}

	const query = `
INSERT INTO blood_requests
    (id, patient_name, blood_group, units, urgency, hospital, contact_name,
     phone, latitude, longitude, radius_km, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

	_, err := p.pool.Exec(ctx, query,
		req.ID, req.PatientName, req.BloodGroup, req.Units, req.Urgency,
		req.Hospital, req.ContactName, req.Phone, req.Lat, req.Lng,
		req.RadiusKM, req.Status, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

const requestColumns = `
id, patient_name, blood_group, units, urgency, hospital, contact_name,
phone, latitude, longitude, radius_km, status, created_at, updated_at
`

func (p *RequestRepo) Get(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error) {
	const op = "postgres.Request.Get"

	query := `SELECT ` + requestColumns + ` FROM blood_requests WHERE id = $1 AND status <> 'cancelled'`

	var r domain.BloodRequest
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&r.ID, &r.PatientName, &r.BloodGroup, &r.Units, &r.Urgency,
		&r.Hospital, &r.ContactName, &r.Phone, &r.Lat, &r.Lng,
		&r.RadiusKM, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return &r, nil
}

func (p *RequestRepo) List(ctx context.Context, page, limit int) ([]domain.BloodRequest, int64, error) {
	const op = "postgres.Request.List"

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blood_requests`).Scan(&total); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	query := `SELECT ` + requestColumns + `
FROM blood_requests
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := p.pool.Query(ctx, query, limit, offset)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.BloodRequest, 0, limit)
	for rows.Next() {
		var r domain.BloodRequest
		if err := rows.Scan(
			&r.ID, &r.PatientName, &r.BloodGroup, &r.Units, &r.Urgency,
			&r.Hospital, &r.ContactName, &r.Phone, &r.Lat, &r.Lng,
			&r.RadiusKM, &r.Status, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, 0, e.WrapError(ctx, op, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}

	return out, total, nil
}

func (p *RequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error {
	const op = "postgres.Request.UpdateStatus"

	const query = `
UPDATE blood_requests
SET status = $2, updated_at = $3
WHERE id = $1
`

	tag, err := p.pool.Exec(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

func (p *RequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Request.Delete"

	// soft delete
	const query = `
UPDATE blood_requests
SET status = 'cancelled', updated_at = $2
WHERE id = $1 AND status <> 'cancelled'
`

	tag, err := p.pool.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

func (p *RequestRepo) ListRecentUrgent(ctx context.Context, limit int) ([]domain.BloodRequest, error) {
	const op = "postgres.Request.ListRecentUrgent"

	if limit <= 0 || limit > 20 {
		limit = 20
	}

	query := `SELECT ` + requestColumns + `
FROM blood_requests
WHERE status IN ('pending', 'verified')
  AND urgency IN ('high', 'emergency')
ORDER BY created_at DESC
LIMIT $1`

	rows, err := p.pool.Query(ctx, query, limit)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.BloodRequest, 0, limit)
	for rows.Next() {
		var r domain.BloodRequest
		if err := rows.Scan(
			&r.ID, &r.PatientName, &r.BloodGroup, &r.Units, &r.Urgency,
			&r.Hospital, &r.ContactName, &r.Phone, &r.Lat, &r.Lng,
			&r.RadiusKM, &r.Status, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	return out, nil
}
