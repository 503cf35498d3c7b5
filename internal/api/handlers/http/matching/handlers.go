package matching

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bloodlink/internal/domain"
	"bloodlink/internal/geo"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type NearbyFinder interface {
	FindNearbyDonors(ctx context.Context, q domain.NearbyQuery) (*domain.NearbyResult, error)
	CacheStats() domain.CacheStats
}

type Handler struct {
	logger *slog.Logger
	Finder NearbyFinder
}

func NewHandler(logger *slog.Logger, finder NearbyFinder) *Handler {
	return &Handler{
		logger: logger,
		Finder: finder,
	}
}

func (h *Handler) NearbyDonors(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	start := time.Now()

	q := r.URL.Query()

	lat, err := geo.ParseLatitude(q.Get("latitude"), true)
	if err != nil {
		l.Warn("invalid latitude", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	lng, err := geo.ParseLongitude(q.Get("longitude"), true)
	if err != nil {
		l.Warn("invalid longitude", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}

	query := domain.NearbyQuery{
		BloodGroup: q.Get("bloodGroup"),
		Lat:        *lat,
		Lng:        *lng,
		RadiusKM:   parseFloat(q.Get("radiusKm"), 0),
		Limit:      parseInt(q.Get("limit"), 0),
	}

	result, err := h.Finder.FindNearbyDonors(r.Context(), query)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("nearby donors served",
		slog.String("blood_group", string(result.BloodGroup)),
		slog.Int("returned", len(result.Donors)),
		slog.Bool("cache_hit", result.CacheHit),
	)

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"blood_group": result.BloodGroup,
		"donors":      result.Donors,
		"metadata": map[string]any{
			"cacheHit":       result.CacheHit,
			"totalMatched":   len(result.Donors),
			"candidateCount": result.CandidateCount,
			"radiusKm":       result.RadiusKM,
			"responseMs":     time.Since(start).Milliseconds(),
		},
	})
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   h.Finder.CacheStats(),
	})
}
