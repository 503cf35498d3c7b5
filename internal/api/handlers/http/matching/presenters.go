package matching

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	chimw "github.com/go-chi/chi/v5/middleware"

	"bloodlink/pkg/e"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var msg string
	switch {
	case errors.Is(err, e.ErrInvalidBloodGroup),
		errors.Is(err, e.ErrInvalidInput),
		errors.Is(err, e.ErrMissingField),
		errors.Is(err, e.ErrInvalidFormat),
		errors.Is(err, e.ErrOutOfRange),
		errors.Is(err, e.ErrInvalidCoordinates):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, e.ErrNotFound):
		status = http.StatusNotFound
		msg = "not found"
	default:
		// internal detail stays server-side
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

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
