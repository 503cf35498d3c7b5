package alerts_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodlink/internal/api/handlers/http/alerts"
	"bloodlink/internal/config"
	"bloodlink/internal/domain"
	"bloodlink/internal/metrics"
	"bloodlink/internal/service"
	mock_service "bloodlink/internal/service/mocks"
	"bloodlink/internal/stream"
)

type fixture struct {
	handler  *alerts.Handler
	svc      *service.AlertService
	dir      *mock_service.MockUserDirectory
	requests *mock_service.MockRequestRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	broker := stream.NewBroker(config.StreamConfig{
		HeartbeatInterval: 25 * time.Second,
		DefaultRadiusKM:   5,
	}, logger)

	dir := mock_service.NewMockUserDirectory(ctrl)
	requests := mock_service.NewMockRequestRepository(ctrl)
	svc := service.NewAlertService(broker, nil, dir, requests, metrics.New(), logger)

	return &fixture{
		handler:  alerts.NewHandler(logger, svc),
		svc:      svc,
		dir:      dir,
		requests: requests,
	}
}

func TestStream_ConnectedThenAlert(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	srv := httptest.NewServer(http.HandlerFunc(f.handler.Stream))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := srv.URL + "?bloodGroup=o%2B&latitude=12.9716&longitude=77.5946&radiusKm=5"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)

	readEvent := func() (name string, data []byte) {
		t.Helper()
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = []byte(strings.TrimPrefix(line, "data: "))
			case line == "":
				return name, data
			}
		}
		t.Fatal("stream ended early")
		return "", nil
	}

	name, data := readEvent()
	require.Equal(t, "connected", name)

	var ack map[string]any
	require.NoError(t, json.Unmarshal(data, &ack))
	assert.NotEmpty(t, ack["subscriber_id"])
	assert.Equal(t, 5.0, ack["radius_km"])

	// The subscriber is registered before the ack is queued, so it is safe
	// to broadcast now.
	lat, lng := 12.9716, 77.5946
	reqID := uuid.New()
	delivered := f.svc.Broadcast(context.Background(), domain.EmergencyAlert{
		RequestID:  reqID,
		BloodGroup: domain.OPositive,
		Lat:        &lat,
		Lng:        &lng,
		RadiusKM:   10,
		Payload:    map[string]any{"hospital": "City General"},
	})
	require.Equal(t, 1, delivered)

	name, data = readEvent()
	require.Equal(t, "emergency-alert", name)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, reqID.String(), payload["request_id"])
	assert.Equal(t, "O+", payload["blood_group"])
	assert.Equal(t, "City General", payload["hospital"])
	assert.Equal(t, 0.0, payload["distance_km"])
}

func TestStream_BadBloodGroup(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/stream?bloodGroup=XYZ", nil)
	rec := httptest.NewRecorder()

	f.handler.Stream(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStream_TolerantUserLookup(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// The directory rejects the id, the stream still opens.
	userID := uuid.New()
	f.dir.EXPECT().GetProfile(gomock.Any(), userID).Return(nil, io.EOF).Times(1)

	srv := httptest.NewServer(http.HandlerFunc(f.handler.Stream))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?userId="+userID.String(), nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	scanner := bufio.NewScanner(resp.Body)
	require.True(t, scanner.Scan())
	assert.Equal(t, "event: connected", scanner.Text())
}

func TestRecent_OK(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	stored := []domain.BloodRequest{
		{ID: uuid.New(), BloodGroup: domain.OPositive, Urgency: domain.UrgencyEmergency, Hospital: "City General", Units: 2},
	}
	f.requests.EXPECT().ListRecentUrgent(gomock.Any(), 20).Return(stored, nil).Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/recent", nil)
	rec := httptest.NewRecorder()

	f.handler.Recent(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Alerts  []struct {
			Hospital   string `json:"hospital"`
			BloodGroup string `json:"blood_group"`
		} `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, "City General", body.Alerts[0].Hospital)
}

func TestRecent_RepoErrorIsOpaque(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.requests.EXPECT().ListRecentUrgent(gomock.Any(), 20).Return(nil, io.ErrUnexpectedEOF).Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/recent", nil)
	rec := httptest.NewRecorder()

	f.handler.Recent(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "something went wrong, try again", body["error"])
}
