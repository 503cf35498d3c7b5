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

type InventoryRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewInventoryRepo(pool *pgxpool.Pool, logger *slog.Logger) *InventoryRepo {
	return &InventoryRepo{pool: pool, logger: logger}
}

func (p *InventoryRepo) Summary(ctx context.Context, facilityID uuid.UUID) ([]domain.InventoryItem, error) {
	const op = "postgres.Inventory.Summary"

	const query = `
SELECT facility_id, blood_group, units, updated_at
FROM inventory
WHERE facility_id = $1
ORDER BY blood_group
`

	rows, err := p.pool.Query(ctx, query, facilityID)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	items := make([]domain.InventoryItem, 0, 8)
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.FacilityID, &it.BloodGroup, &it.Units, &it.UpdatedAt); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	return items, nil
}

func (p *InventoryRepo) Adjust(ctx context.Context, facilityID uuid.UUID, bg domain.BloodGroup, delta int) error {
	const op = "postgres.Inventory.Adjust"

	if facilityID == uuid.Nil || bg == "" {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
INSERT INTO inventory (facility_id, blood_group, units, updated_at)
VALUES ($1, $2, GREATEST($3, 0), $4)
ON CONFLICT (facility_id, blood_group)
DO UPDATE SET units = GREATEST(inventory.units + $3, 0), updated_at = $4
`

	_, err := p.pool.Exec(ctx, query, facilityID, bg, delta, time.Now().UTC())
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}
