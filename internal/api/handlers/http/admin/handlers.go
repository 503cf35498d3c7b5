package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"bloodlink/internal/domain"
	"bloodlink/pkg/e"
	"bloodlink/pkg/validator"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type AdminProvider interface {
	InventorySummary(ctx context.Context, facilityID uuid.UUID) ([]domain.InventoryItem, error)
	AdjustInventory(ctx context.Context, in domain.AdjustInventoryInput) error
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.UsageStats, error)
}

type Handler struct {
	logger *slog.Logger
	Svc    AdminProvider
}

func NewHandler(logger *slog.Logger, svc AdminProvider) *Handler {
	return &Handler{
		logger: logger,
		Svc:    svc,
	}
}

func (h *Handler) InventorySummary(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "facilityId")
	facilityID, err := uuid.Parse(idStr)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid facility id"})
		return
	}

	items, err := h.Svc.InventorySummary(r.Context(), facilityID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "inventory": items})
}

func (h *Handler) InventoryAdjust(w http.ResponseWriter, r *http.Request) {
	var in domain.AdjustInventoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&in); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}

	if err := h.Svc.AdjustInventory(r.Context(), in); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.log(r).Info("inventory adjusted",
		slog.String("facility_id", in.FacilityID),
		slog.String("blood_group", in.BloodGroup),
		slog.Int("delta", in.Delta),
	)
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	minutes := 60
	if raw := r.URL.Query().Get("minutes"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			minutes = n
		}
	}

	stats, err := h.Svc.GetStats(r.Context(), domain.StatsRequest{Minutes: minutes})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var msg string
	switch {
	case errors.Is(err, e.ErrInvalidInput), errors.Is(err, e.ErrInvalidBloodGroup), errors.Is(err, e.ErrInvalidFormat):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, e.ErrNotFound):
		status = http.StatusNotFound
		msg = "not found"
	default:
		h.log(r).Error("request failed", slog.Any("error", err))
		status = http.StatusInternalServerError
		msg = "something went wrong, try again"
	}
	h.writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
