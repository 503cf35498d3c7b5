package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/internal/cache"
	"bloodlink/internal/config"
	"bloodlink/internal/domain"
	"bloodlink/internal/metrics"
	"bloodlink/internal/service"
	mock_service "bloodlink/internal/service/mocks"
	"bloodlink/pkg/e"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func matchingConfig() config.MatchingConfig {
	return config.MatchingConfig{
		DefaultRadiusKM: 10,
		DefaultLimit:    50,
		MaxLimit:        200,
	}
}

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		TTL:          120 * time.Second,
		RetryBackoff: 30 * time.Second,
		KeyPrefix:    "matching:",
	}
}

// memoryCache returns a real memory-only cache; nil redis means pure fallback.
func memoryCache() *cache.Service {
	return cache.New(nil, cacheConfig(), discardLogger())
}

func donor(name string, lat, lng float64, lastDonation *time.Time) domain.Donor {
	return domain.Donor{
		ID:               uuid.New(),
		Name:             name,
		BloodGroup:       domain.OPositive,
		Lat:              &lat,
		Lng:              &lng,
		LastDonationDate: lastDonation,
	}
}

func TestMatching_FindNearbyDonors_OrdersAndCuts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockDonorRepository(ctrl)
	svc := service.NewMatchingService(repo, memoryCache(), metrics.New(), discardLogger(), matchingConfig(), cacheConfig())

	// Origin in central Bengaluru; distances roughly 0.06, 2 and 8 km, plus
	// one donor well outside any radius.
	candidates := []domain.Donor{
		donor("eight-km", 13.0436, 77.5946, nil),
		donor("near", 12.9720, 77.5950, nil),
		donor("two-km", 12.9896, 77.5946, nil),
		donor("far", 13.0827, 80.2707, nil),
	}

	repo.EXPECT().
		FindEligibleByBloodGroup(gomock.Any(), domain.OPositive, gomock.Any()).
		Return(candidates, nil).
		Times(1)

	got, err := svc.FindNearbyDonors(context.Background(), domain.NearbyQuery{
		BloodGroup: "o+",
		Lat:        12.9716,
		Lng:        77.5946,
		RadiusKM:   10,
		Limit:      2,
	})
	require.NoError(t, err)

	assert.False(t, got.CacheHit)
	assert.Equal(t, domain.OPositive, got.BloodGroup)
	assert.Equal(t, 4, got.CandidateCount, "all locatable candidates counted, radius and limit cuts aside")
	require.Len(t, got.Donors, 2)
	assert.Equal(t, "near", got.Donors[0].Name)
	assert.Equal(t, "two-km", got.Donors[1].Name)
	assert.Less(t, got.Donors[0].DistanceKM, got.Donors[1].DistanceKM)
	assert.InDelta(t, 0.06, got.Donors[0].DistanceKM, 0.02)
}

func TestMatching_FindNearbyDonors_CacheHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockDonorRepository(ctrl)
	svc := service.NewMatchingService(repo, memoryCache(), metrics.New(), discardLogger(), matchingConfig(), cacheConfig())

	repo.EXPECT().
		FindEligibleByBloodGroup(gomock.Any(), domain.OPositive, gomock.Any()).
		Return([]domain.Donor{donor("d", 12.9720, 77.5950, nil)}, nil).
		Times(1)

	q := domain.NearbyQuery{BloodGroup: "O+", Lat: 12.9716, Lng: 77.5946, RadiusKM: 5, Limit: 10}

	first, err := svc.FindNearbyDonors(context.Background(), q)
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	// Second identical query must come from the cache: the repo expectation
	// above allows exactly one call.
	second, err := svc.FindNearbyDonors(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.CandidateCount, second.CandidateCount)
	require.Len(t, second.Donors, 1)
	assert.Equal(t, first.Donors[0].DistanceKM, second.Donors[0].DistanceKM)
}

func TestMatching_FindNearbyDonors_InvalidGroup(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockDonorRepository(ctrl)
	svc := service.NewMatchingService(repo, memoryCache(), metrics.New(), discardLogger(), matchingConfig(), cacheConfig())

	_, err := svc.FindNearbyDonors(context.Background(), domain.NearbyQuery{
		BloodGroup: "C+", Lat: 0, Lng: 0,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrInvalidBloodGroup))
}

func TestMatching_FindNearbyDonors_Defaults(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockDonorRepository(ctrl)
	svc := service.NewMatchingService(repo, memoryCache(), metrics.New(), discardLogger(), matchingConfig(), cacheConfig())

	repo.EXPECT().
		FindEligibleByBloodGroup(gomock.Any(), domain.ABNegative, gomock.Any()).
		Return(nil, nil).
		Times(1)

	got, err := svc.FindNearbyDonors(context.Background(), domain.NearbyQuery{
		BloodGroup: "ab-", Lat: 12.9716, Lng: 77.5946,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.RadiusKM, "default radius applied")
	assert.Empty(t, got.Donors)
	assert.Equal(t, 0, got.CandidateCount)
}

func TestMatching_FindNearbyDonors_SkipsDonorsWithoutLocation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockDonorRepository(ctrl)
	svc := service.NewMatchingService(repo, memoryCache(), metrics.New(), discardLogger(), matchingConfig(), cacheConfig())

	noLoc := domain.Donor{ID: uuid.New(), Name: "no-loc", BloodGroup: domain.OPositive}
	repo.EXPECT().
		FindEligibleByBloodGroup(gomock.Any(), domain.OPositive, gomock.Any()).
		Return([]domain.Donor{noLoc, donor("ok", 12.9720, 77.5950, nil)}, nil).
		Times(1)

	got, err := svc.FindNearbyDonors(context.Background(), domain.NearbyQuery{
		BloodGroup: "O+", Lat: 12.9716, Lng: 77.5946, RadiusKM: 5,
	})
	require.NoError(t, err)
	require.Len(t, got.Donors, 1)
	assert.Equal(t, "ok", got.Donors[0].Name)
	assert.Equal(t, 1, got.CandidateCount, "donors without coordinates are not candidates")
}

func TestMatching_FindNearbyDonors_CountsCandidatesBeyondRadius(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockDonorRepository(ctrl)
	svc := service.NewMatchingService(repo, memoryCache(), metrics.New(), discardLogger(), matchingConfig(), cacheConfig())

	// Roughly 2 km and 8 km north of the origin.
	twoLat, eightLat, lng := 12.9896, 13.0436, 77.5946
	repo.EXPECT().
		FindEligibleByBloodGroup(gomock.Any(), domain.BPositive, gomock.Any()).
		Return([]domain.Donor{
			{ID: uuid.New(), Name: "two-km", BloodGroup: domain.BPositive, Lat: &twoLat, Lng: &lng},
			{ID: uuid.New(), Name: "eight-km", BloodGroup: domain.BPositive, Lat: &eightLat, Lng: &lng},
		}, nil).
		Times(1)

	got, err := svc.FindNearbyDonors(context.Background(), domain.NearbyQuery{
		BloodGroup: "B+", Lat: 12.9716, Lng: 77.5946, RadiusKM: 5, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, got.Donors, 1)
	assert.Equal(t, "two-km", got.Donors[0].Name)
	assert.Equal(t, 2, got.CandidateCount, "out-of-radius donor still counts as a candidate")
}

func TestMatching_FindNearbyDonors_RepoError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockDonorRepository(ctrl)
	svc := service.NewMatchingService(repo, memoryCache(), metrics.New(), discardLogger(), matchingConfig(), cacheConfig())

	repo.EXPECT().
		FindEligibleByBloodGroup(gomock.Any(), domain.OPositive, gomock.Any()).
		Return(nil, e.ErrInternal).
		Times(1)

	_, err := svc.FindNearbyDonors(context.Background(), domain.NearbyQuery{
		BloodGroup: "O+", Lat: 0, Lng: 0,
	})
	require.Error(t, err)
}
