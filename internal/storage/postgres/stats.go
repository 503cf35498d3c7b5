package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"bloodlink/pkg/e"
)

type StatsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStatsRepo(pool *pgxpool.Pool, logger *slog.Logger) *StatsRepo {
	return &StatsRepo{pool: pool, logger: logger}
}

func (p *StatsRepo) CountRequests(ctx context.Context, minutes int) (int64, error) {
	const op = "postgres.Stats.CountRequests"
	return p.countSince(ctx, op, `
SELECT COUNT(*)
FROM blood_requests
WHERE created_at >= NOW() - ($1 * INTERVAL '1 minute')
`, minutes)
}

func (p *StatsRepo) CountDonations(ctx context.Context, minutes int) (int64, error) {
	const op = "postgres.Stats.CountDonations"
	return p.countSince(ctx, op, `
SELECT COUNT(*)
FROM donations
WHERE created_at >= NOW() - ($1 * INTERVAL '1 minute')
`, minutes)
}

func (p *StatsRepo) countSince(ctx context.Context, op, query string, minutes int) (int64, error) {
	if minutes <= 0 || minutes > 1440 {
		return 0, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	var cnt int64
	if err := p.pool.QueryRow(ctx, query, minutes).Scan(&cnt); err != nil {
		p.logger.Error("db queryrow scan failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.Int("minutes", minutes),
		)
		return 0, e.WrapError(ctx, op, err)
	}
	return cnt, nil
}
