package public_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"disasterAlert/internal/api/handlers/http/public"
	mock_public "disasterAlert/internal/api/handlers/http/public/mocks"
	"disasterAlert/internal/domain"
	"disasterAlert/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type mocks struct {
	zones    *mock_public.MockZones
	tracker  *mock_public.MockTracker
	queue    *mock_public.MockPingQueue
	entities *mock_public.MockEntities
}

func newHandler(t *testing.T) (*public.Handler, mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks{
		zones:    mock_public.NewMockZones(ctrl),
		tracker:  mock_public.NewMockTracker(ctrl),
		queue:    mock_public.NewMockPingQueue(ctrl),
		entities: mock_public.NewMockEntities(ctrl),
	}
	return public.NewHandler(newTestLogger(), m.zones, m.tracker, m.queue, m.entities), m
}

func expectCode(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected %d got %d body=%s", want, rr.Code, rr.Body.String())
	}
}

// --- pings ---

func TestPublicLocationPing_OK(t *testing.T) {
	t.Parallel()
	h, m := newHandler(t)

	id := uuid.New()
	zoneID := uuid.New()
	ts := time.Date(2025, 12, 23, 12, 0, 0, 0, time.UTC)
	reqBody := fmt.Sprintf(`{"entity_id":%q,"location":[37.61,55.75],"timestamp":"2025-12-23T15:00:00+03:00"}`, id)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/location/ping", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	m.tracker.EXPECT().
		ProcessPing(gomock.Any(), domain.LocationPing{EntityID: id, Location: orb.Point{37.61, 55.75}, RecordedAt: ts}).
		Return(domain.PingResponse{
			Events: []domain.MembershipEvent{{Type: domain.EventEntered, EntityID: id, ZoneID: zoneID, Tier: domain.TierHigh}},
			Zones:  []domain.ZoneMatch{{Zone: domain.Zone{ID: zoneID}, Tier: domain.TierHigh}},
		}, nil).
		Times(1)

	h.PublicLocationPing(rr, req)

	expectCode(t, rr, http.StatusOK)
	got := decodeJSON[domain.PingResponse](t, rr)
	if len(got.Events) != 1 || got.Events[0].Type != domain.EventEntered || got.Events[0].ZoneID != zoneID {
		t.Fatalf("unexpected events: %+v", got.Events)
	}
}

func TestPublicLocationPing_InvalidBody_400(t *testing.T) {
	t.Parallel()

	id := uuid.New().String()
	cases := []struct {
		name string
		body string
	}{
		{"bad json", "{bad json"},
		{"trailing data", fmt.Sprintf(`{"entity_id":%q,"location":[1,1]} {}`, id)},
		{"unknown field", fmt.Sprintf(`{"entity_id":%q,"location":[1,1],"lat":1}`, id)},
		{"entity id not a uuid", `{"entity_id":"42","location":[1,1]}`},
		{"missing location", fmt.Sprintf(`{"entity_id":%q}`, id)},
		{"longitude out of range", fmt.Sprintf(`{"entity_id":%q,"location":[181,0]}`, id)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newHandler(t)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/location/ping", bytes.NewBufferString(tc.body))
			rr := httptest.NewRecorder()

			h.PublicLocationPing(rr, req)

			expectCode(t, rr, http.StatusBadRequest)
		})
	}
}

func TestPublicLocationPing_ServiceErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"stale", fmt.Errorf("tracker.ProcessPing: %w", e.ErrStalePing), http.StatusConflict},
		{"unknown entity", e.ErrEntityNotFound, http.StatusNotFound},
		{"internal", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, m := newHandler(t)
			body := fmt.Sprintf(`{"entity_id":%q,"location":[1,1]}`, uuid.New())
			req := httptest.NewRequest(http.MethodPost, "/api/v1/location/ping", bytes.NewBufferString(body))
			rr := httptest.NewRecorder()

			m.tracker.EXPECT().ProcessPing(gomock.Any(), gomock.Any()).Return(domain.PingResponse{}, tc.err).Times(1)

			h.PublicLocationPing(rr, req)

			expectCode(t, rr, tc.want)
		})
	}
}

func TestPublicLocationPingAsync_Accepted(t *testing.T) {
	t.Parallel()
	h, m := newHandler(t)

	id := uuid.New()
	body := fmt.Sprintf(`{"entity_id":%q,"location":[2,3]}`, id)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/location/ping/async", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	m.queue.EXPECT().Submit(domain.LocationPing{EntityID: id, Location: orb.Point{2, 3}}).Return(nil).Times(1)

	h.PublicLocationPingAsync(rr, req)

	expectCode(t, rr, http.StatusAccepted)
}

func TestPublicLocationPingAsync_QueueFull_503(t *testing.T) {
	t.Parallel()
	h, m := newHandler(t)

	body := fmt.Sprintf(`{"entity_id":%q,"location":[2,3]}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/location/ping/async", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	m.queue.EXPECT().Submit(gomock.Any()).Return(e.ErrQueueFull).Times(1)

	h.PublicLocationPingAsync(rr, req)

	expectCode(t, rr, http.StatusServiceUnavailable)
}

// --- entities ---

func TestPublicEntityRegister_Created(t *testing.T) {
	t.Parallel()
	h, m := newHandler(t)

	reqBody := `{"role":"volunteer","name":"Anna","contact":"anna@example.com","location":[37.61,55.75]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entities", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	loc := orb.Point{37.61, 55.75}
	ent := &domain.TrackedEntity{ID: uuid.New(), Role: domain.RoleVolunteer, Contact: "anna@example.com", Status: domain.StatusAvailable}
	m.entities.EXPECT().
		Register(gomock.Any(), domain.RegisterEntityRequest{
			Role:     domain.RoleVolunteer,
			Name:     "Anna",
			Contact:  "anna@example.com",
			Location: &loc,
		}).
		Return(domain.RegisterEntityResponse{Entity: ent}, nil).
		Times(1)

	h.PublicEntityRegister(rr, req)

	expectCode(t, rr, http.StatusCreated)
	got := decodeJSON[domain.RegisterEntityResponse](t, rr)
	if got.Entity == nil || got.Entity.ID != ent.ID || got.Entity.Status != domain.StatusAvailable {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestPublicEntityRegister_Invalid_400(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"bad role":    `{"role":"admin","contact":"a@example.com"}`,
		"bad contact": `{"role":"user","contact":"not-an-email"}`,
	} {
		t.Run(name, func(t *testing.T) {
			h, _ := newHandler(t)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/entities", bytes.NewBufferString(body))
			rr := httptest.NewRecorder()

			h.PublicEntityRegister(rr, req)

			expectCode(t, rr, http.StatusBadRequest)
		})
	}
}

func TestPublicEntityRegister_DuplicateContact_409(t *testing.T) {
	t.Parallel()
	h, m := newHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entities", bytes.NewBufferString(`{"role":"user","contact":"a@example.com"}`))
	rr := httptest.NewRecorder()

	m.entities.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(domain.RegisterEntityResponse{}, fmt.Errorf("postgres.Entity.Create: %w", e.ErrUniqueViolation)).
		Times(1)

	h.PublicEntityRegister(rr, req)

	expectCode(t, rr, http.StatusConflict)
}

func TestPublicEntityGet_OK(t *testing.T) {
	t.Parallel()
	h, m := newHandler(t)

	id := uuid.New()
	zoneID := uuid.New()
	req := withID(httptest.NewRequest(http.MethodGet, "/api/v1/entities/"+id.String(), nil), id.String())
	rr := httptest.NewRecorder()

	m.entities.EXPECT().Get(gomock.Any(), id).
		Return(&domain.TrackedEntity{ID: id, Memberships: map[uuid.UUID]domain.Tier{zoneID: domain.TierMedium}}, nil).
		Times(1)

	h.PublicEntityGet(rr, req)

	expectCode(t, rr, http.StatusOK)
	got := decodeJSON[domain.TrackedEntity](t, rr)
	if got.Memberships[zoneID] != domain.TierMedium {
		t.Fatalf("memberships missing: %+v", got)
	}
}

// --- zones ---

func TestPublicZonesList_AllActive(t *testing.T) {
	t.Parallel()
	h, m := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/zones", nil)
	rr := httptest.NewRecorder()

	m.zones.EXPECT().Active(gomock.Any()).Return([]domain.Zone{{ID: uuid.New()}, {ID: uuid.New()}}).Times(1)

	h.PublicZonesList(rr, req)

	expectCode(t, rr, http.StatusOK)
	if got := decodeJSON[map[string]any](t, rr); got["total"] != 2.0 {
		t.Fatalf("unexpected response: %v", got)
	}
}

func TestPublicZonesList_ContainingPoint(t *testing.T) {
	t.Parallel()
	h, m := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/zones?lng=37.61&lat=55.75", nil)
	rr := httptest.NewRecorder()

	m.zones.EXPECT().Assess(gomock.Any(), orb.Point{37.61, 55.75}).
		Return([]domain.ZoneMatch{{Tier: domain.TierSafe, DistanceKM: 4.2}}, nil).
		Times(1)

	h.PublicZonesList(rr, req)

	expectCode(t, rr, http.StatusOK)
}

func TestPublicZonesList_HalfAPoint_400(t *testing.T) {
	t.Parallel()
	h, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/zones?lng=37.61", nil)
	rr := httptest.NewRecorder()

	h.PublicZonesList(rr, req)

	expectCode(t, rr, http.StatusBadRequest)
}

func TestPublicZonesList_OutOfRangePoint_400(t *testing.T) {
	t.Parallel()
	h, _ := newHandler(t)

	for _, q := range []string{"lng=37.61&lat=95", "lng=-181&lat=10", "lng=NaN&lat=10"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/zones?"+q, nil)
		rr := httptest.NewRecorder()

		h.PublicZonesList(rr, req)

		expectCode(t, rr, http.StatusBadRequest)
	}
}

func TestPublicZoneNearest(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		h, m := newHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/zones/nearest?lng=1&lat=2", nil)
		rr := httptest.NewRecorder()

		m.zones.EXPECT().Nearest(gomock.Any(), orb.Point{1, 2}).Return(domain.ZoneMatch{DistanceKM: 12, Tier: domain.TierOutside}, nil).Times(1)

		h.PublicZoneNearest(rr, req)

		expectCode(t, rr, http.StatusOK)
		if got := decodeJSON[domain.ZoneMatch](t, rr); got.Tier != domain.TierOutside {
			t.Fatalf("unexpected match: %+v", got)
		}
	})

	t.Run("no zones", func(t *testing.T) {
		h, m := newHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/zones/nearest?lng=1&lat=2", nil)
		rr := httptest.NewRecorder()

		m.zones.EXPECT().Nearest(gomock.Any(), gomock.Any()).Return(domain.ZoneMatch{}, e.ErrZoneNotFound).Times(1)

		h.PublicZoneNearest(rr, req)

		expectCode(t, rr, http.StatusNotFound)
	})

	t.Run("missing point", func(t *testing.T) {
		h, _ := newHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/zones/nearest", nil)
		rr := httptest.NewRecorder()

		h.PublicZoneNearest(rr, req)

		expectCode(t, rr, http.StatusBadRequest)
	})
}

func TestPublicZoneClassify(t *testing.T) {
	t.Parallel()

	t.Run("inside", func(t *testing.T) {
		h, m := newHandler(t)
		id := uuid.New()
		req := withID(httptest.NewRequest(http.MethodGet, "/api/v1/zones/"+id.String()+"/classify?lng=0&lat=0.01", nil), id.String())
		rr := httptest.NewRecorder()

		m.zones.EXPECT().Classify(gomock.Any(), id, orb.Point{0, 0.01}).Return(domain.ZoneMatch{Tier: domain.TierHigh}, nil).Times(1)

		h.PublicZoneClassify(rr, req)

		expectCode(t, rr, http.StatusOK)
	})

	t.Run("outside", func(t *testing.T) {
		h, m := newHandler(t)
		id := uuid.New()
		req := withID(httptest.NewRequest(http.MethodGet, "/api/v1/zones/"+id.String()+"/classify?lng=50&lat=50", nil), id.String())
		rr := httptest.NewRecorder()

		m.zones.EXPECT().Classify(gomock.Any(), id, gomock.Any()).Return(domain.ZoneMatch{}, e.ErrOutsideZone).Times(1)

		h.PublicZoneClassify(rr, req)

		expectCode(t, rr, http.StatusUnprocessableEntity)
	})
}
