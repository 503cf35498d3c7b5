package admin_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/internal/api/handlers/http/admin"
	mock_admin "bloodlink/internal/api/handlers/http/admin/mocks"
	"bloodlink/internal/domain"
)

func newHandler(t *testing.T) (*admin.Handler, *mock_admin.MockAdminProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	svc := mock_admin.NewMockAdminProvider(ctrl)
	h := admin.NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	return h, svc
}

func withFacilityID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("facilityId", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestInventorySummary_OK(t *testing.T) {
	t.Parallel()
	h, svc := newHandler(t)

	facilityID := uuid.New()
	svc.EXPECT().
		InventorySummary(gomock.Any(), facilityID).
		Return([]domain.InventoryItem{
			{FacilityID: facilityID, BloodGroup: domain.OPositive, Units: 12},
		}, nil).
		Times(1)

	req := withFacilityID(httptest.NewRequest(http.MethodGet, "/api/v1/admin/inventory/"+facilityID.String(), nil), facilityID.String())
	rec := httptest.NewRecorder()

	h.InventorySummary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success   bool `json:"success"`
		Inventory []struct {
			BloodGroup string `json:"blood_group"`
			Units      int    `json:"units"`
		} `json:"inventory"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Inventory, 1)
	assert.Equal(t, "O+", body.Inventory[0].BloodGroup)
	assert.Equal(t, 12, body.Inventory[0].Units)
}

func TestInventorySummary_BadID(t *testing.T) {
	t.Parallel()
	h, _ := newHandler(t)

	req := withFacilityID(httptest.NewRequest(http.MethodGet, "/api/v1/admin/inventory/xyz", nil), "xyz")
	rec := httptest.NewRecorder()

	h.InventorySummary(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInventoryAdjust_OK(t *testing.T) {
	t.Parallel()
	h, svc := newHandler(t)

	facilityID := uuid.New()
	svc.EXPECT().
		AdjustInventory(gomock.Any(), domain.AdjustInventoryInput{
			FacilityID: facilityID.String(),
			BloodGroup: "O-",
			Delta:      -2,
		}).
		Return(nil).
		Times(1)

	body := `{"facility_id": "` + facilityID.String() + `", "blood_group": "O-", "delta": -2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/inventory/adjust", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.InventoryAdjust(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInventoryAdjust_ValidationFailure(t *testing.T) {
	t.Parallel()
	h, _ := newHandler(t)

	body := `{"facility_id": "` + uuid.NewString() + `", "blood_group": "Z+", "delta": 1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/inventory/adjust", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.InventoryAdjust(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats_OK(t *testing.T) {
	t.Parallel()
	h, svc := newHandler(t)

	svc.EXPECT().
		GetStats(gomock.Any(), domain.StatsRequest{Minutes: 30}).
		Return(&domain.UsageStats{Requests: 5, Donations: 2, Minutes: 30}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats?minutes=30", nil)
	rec := httptest.NewRecorder()

	h.Stats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Stats   struct {
			Requests  int64 `json:"requests"`
			Donations int64 `json:"donations"`
			Minutes   int   `json:"minutes"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.Stats.Requests)
	assert.Equal(t, 30, body.Stats.Minutes)
}
