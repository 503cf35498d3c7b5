package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"bloodlink/internal/config"
	"bloodlink/pkg/e"
)

type Postgres struct {
	Pool      *pgxpool.Pool
	Donor     DonorRepository
	User      UserRepository
	Request   RequestRepository
	Donation  DonationRepository
	Inventory InventoryRepository
	Stat      StatsRepository
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Database,
		cfg.Postgres.SSLMode,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, e.Wrap("storage.pg.New.ParseConfig", err)
	}
	poolCfg.MaxConns = cfg.Postgres.MaxConns
	poolCfg.MinConns = cfg.Postgres.MinConns
	poolCfg.MaxConnLifetime = cfg.Postgres.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, e.Wrap("storage.pg.New.NewWithConfig", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, e.Wrap("storage.pg.New.Ping", err)
	}
	logger.Info("connected to postgres", slog.String("database", cfg.Postgres.Database))

	return &Postgres{
		Pool:      pool,
		Donor:     NewDonorRepo(pool, logger),
		User:      NewUserRepo(pool, logger),
		Request:   NewRequestRepo(pool, logger),
		Donation:  NewDonationRepo(pool, logger),
		Inventory: NewInventoryRepo(pool, logger),
		Stat:      NewStatsRepo(pool, logger),
	}, nil
}
