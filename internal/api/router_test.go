package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"

	"disasterAlert/internal/api"
	"disasterAlert/internal/config"
	"disasterAlert/internal/domain"
	"disasterAlert/internal/service"
	mock_service "disasterAlert/internal/service/mocks"
)

type routerMocks struct {
	zones    *mock_service.MockZoneService
	query    *mock_service.MockZoneQueryService
	stats    *mock_service.MockStatsService
	entities *mock_service.MockEntityService
}

func newTestServer(t *testing.T) (http.Handler, routerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := routerMocks{
		zones:    mock_service.NewMockZoneService(ctrl),
		query:    mock_service.NewMockZoneQueryService(ctrl),
		stats:    mock_service.NewMockStatsService(ctrl),
		entities: mock_service.NewMockEntityService(ctrl),
	}
	svc := service.NewService(
		m.zones,
		m.query,
		mock_service.NewMockResourceService(ctrl),
		mock_service.NewMockTrackingService(ctrl),
		m.entities,
		m.stats,
	)

	cfg := &config.Config{
		APIKey: "secret",
		Http:   config.HttpConfig{Port: ":0", RateLimit: 1000, RateBurst: 1000},
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := api.NewServer(ctx, cfg, logger, svc, mock_service.NewMockPingQueue(ctrl), nil, clockwork.NewFakeClock())
	return srv.Handler(), m
}

func serve(h http.Handler, method, path, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()
	h, _ := newTestServer(t)

	if rr := serve(h, http.MethodGet, "/api/v1/health", ""); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	h, _ := newTestServer(t)

	rr := serve(h, http.MethodGet, "/api/v1/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}

func TestRouter_AdminRequiresAPIKey(t *testing.T) {
	t.Parallel()
	h, m := newTestServer(t)

	if rr := serve(h, http.MethodGet, "/api/v1/admin/dashboard", ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
	if rr := serve(h, http.MethodGet, "/api/v1/admin/dashboard", "wrong"); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}

	m.stats.EXPECT().Dashboard(gomock.Any()).Return(&domain.Dashboard{}, nil).Times(1)
	if rr := serve(h, http.MethodGet, "/api/v1/admin/dashboard", "secret"); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRouter_AdminZoneRoutes(t *testing.T) {
	t.Parallel()
	h, m := newTestServer(t)

	id := uuid.New()
	m.zones.EXPECT().List(gomock.Any(), 1, 20, false).Return(nil, int64(0), nil).Times(1)
	m.zones.EXPECT().Get(gomock.Any(), id).Return(&domain.Zone{ID: id}, nil).Times(1)
	m.zones.EXPECT().Deactivate(gomock.Any(), id).Return(&domain.Zone{ID: id}, nil, nil).Times(1)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/admin/zones"},
		{http.MethodGet, "/api/v1/admin/zones/" + id.String()},
		{http.MethodDelete, "/api/v1/admin/zones/" + id.String()},
	} {
		if rr := serve(h, tc.method, tc.path, "secret"); rr.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200 got %d body=%s", tc.method, tc.path, rr.Code, rr.Body.String())
		}
	}
}

func TestRouter_PublicZoneRoutes(t *testing.T) {
	t.Parallel()
	h, m := newTestServer(t)

	id := uuid.New()
	m.query.EXPECT().Nearest(gomock.Any(), orb.Point{1, 2}).Return(domain.ZoneMatch{}, nil).Times(1)
	m.query.EXPECT().Classify(gomock.Any(), id, orb.Point{1, 2}).Return(domain.ZoneMatch{}, nil).Times(1)
	m.query.EXPECT().Active(gomock.Any()).Return(nil).Times(1)

	for _, path := range []string{
		"/api/v1/zones/nearest?lng=1&lat=2",
		"/api/v1/zones/" + id.String() + "/classify?lng=1&lat=2",
		"/api/v1/zones",
	} {
		if rr := serve(h, http.MethodGet, path, ""); rr.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200 got %d body=%s", path, rr.Code, rr.Body.String())
		}
	}
}

func TestRouter_PublicRoutesNeedNoKey(t *testing.T) {
	t.Parallel()
	h, m := newTestServer(t)

	id := uuid.New()
	m.entities.EXPECT().Get(gomock.Any(), id).Return(&domain.TrackedEntity{ID: id}, nil).Times(1)

	if rr := serve(h, http.MethodGet, "/api/v1/entities/"+id.String(), ""); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}
