package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"bloodlink/internal/config"
	"bloodlink/internal/domain"
	"bloodlink/internal/geo"
	"bloodlink/internal/metrics"
)

// MatchingService computes eligible nearby donors for a blood group and
// origin point, with results cached under deterministic keys.
type MatchingService struct {
	donors  DonorRepository
	cache   MatchCache
	metrics *metrics.Metrics
	logger  *slog.Logger
	cfg     config.MatchingConfig
	prefix  string
	ttl     time.Duration

	now func() time.Time
}

func NewMatchingService(
	donors DonorRepository,
	cache MatchCache,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg config.MatchingConfig,
	cacheCfg config.CacheConfig,
) *MatchingService {
	return &MatchingService{
		donors:  donors,
		cache:   cache,
		metrics: m,
		logger:  logger,
		cfg:     cfg,
		prefix:  cacheCfg.KeyPrefix,
		ttl:     cacheCfg.TTL,
		now:     time.Now,
	}
}

// FindNearbyDonors validates the query, then serves it from the cache or by
// scanning eligible candidates and filtering on haversine distance. The scan
// is deliberate: eligible-donor counts per group are modest, so a spatial
// index would buy nothing here.
func (s *MatchingService) FindNearbyDonors(ctx context.Context, q domain.NearbyQuery) (*domain.NearbyResult, error) {
	bg, err := domain.ParseBloodGroup(q.BloodGroup)
	if err != nil {
		return nil, err
	}

	if q.RadiusKM <= 0 {
		q.RadiusKM = s.cfg.DefaultRadiusKM
	}
	if q.Limit <= 0 {
		q.Limit = s.cfg.DefaultLimit
	}
	if q.Limit > s.cfg.MaxLimit {
		q.Limit = s.cfg.MaxLimit
	}

	lat := geo.Round7(q.Lat)
	lng := geo.Round7(q.Lng)
	key := cacheKey(s.prefix, bg, lat, lng, q.RadiusKM, q.Limit)

	s.metrics.NearbyQueries.Inc()

	var cached domain.NearbyResult
	if s.cache.GetJSON(ctx, key, &cached) {
		s.metrics.CacheHits.Inc()
		cached.CacheHit = true
		return &cached, nil
	}
	s.metrics.CacheMisses.Inc()

	cutoff := s.now().UTC().Add(-domain.EligibilityWindow)
	candidates, err := s.donors.FindEligibleByBloodGroup(ctx, bg, cutoff)
	if err != nil {
		return nil, err
	}

	// candidateCount covers every locatable eligible donor, including those
	// beyond the radius; only the returned list is radius-filtered.
	candidateCount := 0
	matched := make([]domain.MatchedDonor, 0, len(candidates))
	for _, d := range candidates {
		if d.Lat == nil || d.Lng == nil {
			continue
		}
		candidateCount++
		dist := geo.HaversineKM(lat, lng, *d.Lat, *d.Lng)
		if dist > q.RadiusKM {
			continue
		}
		matched = append(matched, domain.MatchedDonor{Donor: d, DistanceKM: dist})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DistanceKM < matched[j].DistanceKM
	})

	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	for i := range matched {
		matched[i].DistanceKM = geo.Round2(matched[i].DistanceKM)
	}

	result := &domain.NearbyResult{
		BloodGroup:     bg,
		Donors:         matched,
		CandidateCount: candidateCount,
		RadiusKM:       q.RadiusKM,
	}

	s.cache.Set(ctx, key, result, s.ttl)

	s.logger.Debug("nearby donors computed",
		slog.String("blood_group", string(bg)),
		slog.Int("candidates", candidateCount),
		slog.Int("returned", len(matched)),
	)
	return result, nil
}

func (s *MatchingService) CacheStats() domain.CacheStats {
	return s.cache.Stats()
}

// cacheKey is deterministic over the rounded query parameters so identical
// queries hit the same entry.
func cacheKey(prefix string, bg domain.BloodGroup, lat, lng, radiusKM float64, limit int) string {
	return fmt.Sprintf("%snearby:%s:%.7f:%.7f:%g:%d", prefix, bg, lat, lng, radiusKM, limit)
}
