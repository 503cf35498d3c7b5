package coordination

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bloodlink/internal/domain"
	"bloodlink/pkg/validator"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type CoordinationProvider interface {
	CreateRequest(ctx context.Context, in domain.CreateRequestInput) (*domain.BloodRequest, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*domain.BloodRequest, error)
	ListRequests(ctx context.Context, page, limit int) ([]domain.BloodRequest, int64, error)
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error
	DeleteRequest(ctx context.Context, id uuid.UUID) error
	ScheduleDonation(ctx context.Context, in domain.ScheduleDonationInput) (*domain.Donation, error)
	CompleteDonation(ctx context.Context, id uuid.UUID) error
	CancelDonation(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	logger *slog.Logger
	Svc    CoordinationProvider
}

func NewHandler(logger *slog.Logger, svc CoordinationProvider) *Handler {
	return &Handler{
		logger: logger,
		Svc:    svc,
	}
}

func (h *Handler) RequestCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var in domain.CreateRequestInput
	if !h.decodeStrict(w, r, &in) {
		return
	}
	if err := validator.ValidateStruct(&in); err != nil {
		l.Warn("request validation failed", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}

	req, err := h.Svc.CreateRequest(r.Context(), in)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("blood request created",
		slog.String("id", req.ID.String()),
		slog.String("urgency", string(req.Urgency)),
	)
	h.writeJSON(w, http.StatusCreated, map[string]any{"success": true, "request": req})
}

func (h *Handler) RequestList(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
	}

	requests, total, err := h.Svc.ListRequests(r.Context(), page, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, domain.ListRequestsResponse{
		Requests: requests,
		Page:     page,
		Limit:    limit,
		Total:    total,
	})
}

func (h *Handler) RequestGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req, err := h.Svc.GetRequest(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "request": req})
}

func (h *Handler) RequestUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var in domain.UpdateRequestStatusInput
	if !h.decodeStrict(w, r, &in) {
		return
	}
	if err := validator.ValidateStruct(&in); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}

	if err := h.Svc.UpdateRequestStatus(r.Context(), id, in.Status); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.DeleteRequest(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) DonationSchedule(w http.ResponseWriter, r *http.Request) {
	var in domain.ScheduleDonationInput
	if !h.decodeStrict(w, r, &in) {
		return
	}
	if err := validator.ValidateStruct(&in); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}

	d, err := h.Svc.ScheduleDonation(r.Context(), in)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{"success": true, "donation": d})
}

func (h *Handler) DonationComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.CompleteDonation(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) DonationCancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.CancelDonation(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// decodeStrict rejects unknown fields and trailing garbage.
func (h *Handler) decodeStrict(w http.ResponseWriter, r *http.Request, target any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid JSON"})
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid JSON"})
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", idStr))
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
