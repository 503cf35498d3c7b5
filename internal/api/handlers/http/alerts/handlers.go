package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"bloodlink/internal/domain"
	"bloodlink/internal/geo"
	"bloodlink/internal/stream"
)

type StreamService interface {
	ResolveFilter(ctx context.Context, filter domain.SubscriberFilter) domain.SubscriberFilter
	Subscribe(filter domain.SubscriberFilter) *stream.Subscriber
	Unsubscribe(id string)
	Recent(ctx context.Context, filter domain.SubscriberFilter, limit int) ([]domain.RecentAlert, error)
}

type Handler struct {
	logger *slog.Logger
	Alerts StreamService
}

func NewHandler(logger *slog.Logger, alerts StreamService) *Handler {
	return &Handler{
		logger: logger,
		Alerts: alerts,
	}
}

// Stream is the long-lived SSE endpoint. The subscriber's filter comes from
// explicit query parameters, optionally backfilled from the user directory
// when userId is supplied. The subscriber is dropped as soon as the
// connection closes.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}
	filter = h.Alerts.ResolveFilter(r.Context(), filter)

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "error": "streaming unsupported",
		})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.Alerts.Subscribe(filter)
	defer h.Alerts.Unsubscribe(sub.ID)

	l.Info("alert stream opened",
		slog.String("subscriber_id", sub.ID),
		slog.String("user_id", filter.UserID),
		slog.String("blood_group", string(filter.BloodGroup)),
	)

	for {
		select {
		case <-r.Context().Done():
			l.Debug("alert stream closed by client", slog.String("subscriber_id", sub.ID))
			return
		case ev, open := <-sub.Events():
			if !open {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, ev.Data); err != nil {
				l.Debug("alert stream write failed", slog.String("subscriber_id", sub.ID))
				return
			}
			flusher.Flush()
		}
	}
}

// Recent is the pull-based fallback for clients without streaming support.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}
	filter = h.Alerts.ResolveFilter(r.Context(), filter)

	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit > 20 {
		limit = 20
	}

	alerts, err := h.Alerts.Recent(r.Context(), filter, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"alerts":  alerts,
		"count":   len(alerts),
	})
}

func (h *Handler) parseFilter(w http.ResponseWriter, r *http.Request) (domain.SubscriberFilter, bool) {
	q := r.URL.Query()
	var filter domain.SubscriberFilter

	filter.UserID = q.Get("userId")

	if raw := q.Get("bloodGroup"); raw != "" {
		bg, err := domain.ParseBloodGroup(raw)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
			return filter, false
		}
		filter.BloodGroup = bg
	}

	lat, err := geo.ParseLatitude(q.Get("latitude"), false)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return filter, false
	}
	lng, err := geo.ParseLongitude(q.Get("longitude"), false)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return filter, false
	}

	// partial coordinates mean no location
	if lat != nil && lng != nil {
		filter.Lat, filter.Lng = lat, lng
	}

	filter.RadiusKM = parseFloat(q.Get("radiusKm"), 0)
	return filter, true
}
