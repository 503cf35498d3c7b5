//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"bloodlink/internal/domain"
	"bloodlink/pkg/e"
)

var (
	testPool *pgxpool.Pool
	tc       testcontainers.Container
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	user := "postgres"
	pass := "postgres"
	db := "postgres"

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": pass,
			"POSTGRES_DB":       db,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(90 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "5432/tcp")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, mappedPort.Port(), db)

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("pgxpool.New:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := testPool.Ping(ctx); err != nil {
		fmt.Println("pool.Ping:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := setupSchema(ctx, testPool); err != nil {
		fmt.Println("setupSchema:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func setupSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id uuid PRIMARY KEY,
			name text NOT NULL DEFAULT '',
			phone text NOT NULL DEFAULT '',
			email text NOT NULL DEFAULT '',
			blood_group text NOT NULL DEFAULT '',
			city text NOT NULL DEFAULT '',
			state text NOT NULL DEFAULT '',
			latitude double precision,
			longitude double precision,
			role text NOT NULL DEFAULT 'donor',
			is_donor boolean NOT NULL DEFAULT TRUE,
			is_verified boolean NOT NULL DEFAULT FALSE,
			is_active boolean NOT NULL DEFAULT TRUE,
			facility_id uuid,
			last_donation_date timestamptz
		);

		CREATE TABLE IF NOT EXISTS blood_requests (
			id uuid PRIMARY KEY,
			patient_name text NOT NULL,
			blood_group text NOT NULL,
			units integer NOT NULL,
			urgency text NOT NULL,
			hospital text NOT NULL,
			contact_name text NOT NULL,
			phone text NOT NULL,
			latitude double precision,
			longitude double precision,
			radius_km double precision NOT NULL,
			status text NOT NULL,
			created_at timestamptz NOT NULL,
			updated_at timestamptz NOT NULL
		);

		CREATE TABLE IF NOT EXISTS donations (
			id uuid PRIMARY KEY,
			donor_id uuid NOT NULL,
			request_id uuid,
			facility_id uuid,
			blood_group text NOT NULL,
			units integer NOT NULL,
			scheduled_at timestamptz NOT NULL,
			completed_at timestamptz,
			status text NOT NULL,
			created_at timestamptz NOT NULL
		);

		CREATE TABLE IF NOT EXISTS inventory (
			facility_id uuid NOT NULL,
			blood_group text NOT NULL,
			units integer NOT NULL,
			updated_at timestamptz NOT NULL,
			PRIMARY KEY (facility_id, blood_group)
		);
	`)
	return err
}

func truncateAll(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE TABLE users, blood_requests, donations, inventory`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func insertUser(t *testing.T, bg string, lat, lng *float64, isDonor, isActive bool, lastDonation *time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := testPool.Exec(context.Background(), `
INSERT INTO users (id, name, blood_group, latitude, longitude, is_donor, is_active, last_donation_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, id, "donor-"+id.String()[:8], bg, lat, lng, isDonor, isActive, lastDonation)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

func ptrF(v float64) *float64 { return &v }

func TestDonorRepo_FindEligibleByBloodGroup(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewDonorRepo(testPool, testLogger())

	old := time.Now().Add(-100 * 24 * time.Hour)
	recent := time.Now().Add(-10 * 24 * time.Hour)

	eligible := insertUser(t, "O+", ptrF(12.97), ptrF(77.59), true, true, nil)
	eligibleOld := insertUser(t, "O+", ptrF(12.98), ptrF(77.60), true, true, &old)
	insertUser(t, "O+", ptrF(12.97), ptrF(77.59), true, true, &recent) // donated too recently
	insertUser(t, "O+", nil, nil, true, true, nil)                     // no location
	insertUser(t, "O+", ptrF(12.97), ptrF(77.59), false, true, nil)    // not a donor
	insertUser(t, "O+", ptrF(12.97), ptrF(77.59), true, false, nil)    // inactive
	insertUser(t, "A+", ptrF(12.97), ptrF(77.59), true, true, nil)     // other group

	cutoff := time.Now().Add(-90 * 24 * time.Hour)
	got, err := repo.FindEligibleByBloodGroup(ctx, domain.OPositive, cutoff)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("want 2 eligible donors, got %d", len(got))
	}
	ids := map[uuid.UUID]bool{got[0].ID: true, got[1].ID: true}
	if !ids[eligible] || !ids[eligibleOld] {
		t.Fatalf("wrong donors returned: %v", ids)
	}
}

func TestUserRepo_GetProfile_PartialCoordinates(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewUserRepo(testPool, testLogger())

	id := insertUser(t, "AB-", ptrF(12.97), nil, true, true, nil)

	got, err := repo.GetProfile(ctx, id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Lat != nil || got.Lng != nil {
		t.Fatalf("partial coordinates must resolve to no location: %v %v", got.Lat, got.Lng)
	}
}

func TestRequestRepo_Lifecycle(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewRequestRepo(testPool, testLogger())

	req := &domain.BloodRequest{
		PatientName: "A. Kumar",
		BloodGroup:  domain.OPositive,
		Units:       2,
		Urgency:     domain.UrgencyEmergency,
		Hospital:    "City General",
		ContactName: "R. Kumar",
		Phone:       "+91-98",
		Lat:         ptrF(12.9716),
		Lng:         ptrF(77.5946),
		RadiusKM:    10,
	}
	if err := repo.Create(ctx, req); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(ctx, req.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.RequestPending {
		t.Fatalf("want pending, got %s", got.Status)
	}

	if err := repo.UpdateStatus(ctx, req.ID, domain.RequestVerified); err != nil {
		t.Fatalf("update status: %v", err)
	}

	urgent, err := repo.ListRecentUrgent(ctx, 20)
	if err != nil {
		t.Fatalf("list recent urgent: %v", err)
	}
	if len(urgent) != 1 {
		t.Fatalf("want 1 urgent request, got %d", len(urgent))
	}

	if err := repo.Delete(ctx, req.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, req.ID); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("cancelled request must be invisible, got %v", err)
	}
	// soft delete is not repeatable
	if err := repo.Delete(ctx, req.ID); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("second delete must be ErrNotFound, got %v", err)
	}
}

func TestRequestRepo_UpdateStatus_NotFound(t *testing.T) {
	truncateAll(t)
	repo := NewRequestRepo(testPool, testLogger())

	err := repo.UpdateStatus(context.Background(), uuid.New(), domain.RequestVerified)
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDonationRepo_CompleteStampsDonor(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewDonationRepo(testPool, testLogger())

	donorID := insertUser(t, "O+", ptrF(12.97), ptrF(77.59), true, true, nil)

	d := &domain.Donation{
		DonorID:     donorID,
		BloodGroup:  domain.OPositive,
		Units:       1,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	}
	if err := repo.Schedule(ctx, d); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	completedAt := time.Now().UTC().Truncate(time.Second)
	if err := repo.Complete(ctx, d.ID, completedAt); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, err := repo.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.DonationCompleted || got.CompletedAt == nil {
		t.Fatalf("donation not completed: %+v", got)
	}

	var lastDonation *time.Time
	if err := testPool.QueryRow(ctx, `SELECT last_donation_date FROM users WHERE id = $1`, donorID).Scan(&lastDonation); err != nil {
		t.Fatalf("query user: %v", err)
	}
	if lastDonation == nil || !lastDonation.Equal(completedAt) {
		t.Fatalf("last_donation_date not stamped: %v", lastDonation)
	}

	// Completing twice fails: the donation is no longer scheduled.
	if err := repo.Complete(ctx, d.ID, completedAt); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("second complete must be ErrNotFound, got %v", err)
	}
}

func TestInventoryRepo_AdjustFloorsAtZero(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewInventoryRepo(testPool, testLogger())

	facilityID := uuid.New()

	if err := repo.Adjust(ctx, facilityID, domain.OPositive, 5); err != nil {
		t.Fatalf("adjust up: %v", err)
	}
	if err := repo.Adjust(ctx, facilityID, domain.OPositive, -100); err != nil {
		t.Fatalf("adjust down: %v", err)
	}

	items, err := repo.Summary(ctx, facilityID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(items) != 1 || items[0].Units != 0 {
		t.Fatalf("units must floor at zero: %+v", items)
	}
}

func TestStatsRepo_Counts(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()

	requests := NewRequestRepo(testPool, testLogger())
	stats := NewStatsRepo(testPool, testLogger())

	req := &domain.BloodRequest{
		PatientName: "B. Rao", BloodGroup: domain.APositive, Units: 1,
		Urgency: domain.UrgencyLow, Hospital: "H", ContactName: "C", Phone: "P",
		RadiusKM: 10,
	}
	if err := requests.Create(ctx, req); err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := stats.CountRequests(ctx, 60)
	if err != nil {
		t.Fatalf("count requests: %v", err)
	}
	if n != 1 {
		t.Fatalf("want 1 request, got %d", n)
	}

	if _, err := stats.CountRequests(ctx, 0); !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("minutes=0 must be rejected, got %v", err)
	}
	if _, err := stats.CountRequests(ctx, 2000); !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("minutes>1440 must be rejected, got %v", err)
	}
}
