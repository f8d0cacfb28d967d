package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/service"
	mock_service "disasterAlert/internal/service/mocks"
	"disasterAlert/pkg/e"
)

type entityDeps struct {
	repo     *mock_service.MockEntityRepository
	tracking *mock_service.MockTrackingService
	engine   *service.Engine
	svc      service.EntityService
}

func newEntities(t *testing.T, zones ...domain.Zone) *entityDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := &entityDeps{
		repo:     mock_service.NewMockEntityRepository(ctrl),
		tracking: mock_service.NewMockTrackingService(ctrl),
		engine:   service.NewEngine(discardLogger()),
	}
	d.engine.Registry.Replace(zones)
	d.svc = service.NewEntityService(d.repo, d.engine, d.tracking, clockwork.NewFakeClockAt(t0), discardLogger())
	return d
}

func expectCreate(d *entityDeps) {
	d.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ent *domain.TrackedEntity) error {
			ent.ID = uuid.New()
			ent.CreatedAt = t0
			return nil
		}).
		Times(1)
}

func TestEntityService_Register_WithoutLocation(t *testing.T) {
	t.Parallel()
	d := newEntities(t)
	expectCreate(d)

	resp, err := d.svc.Register(context.Background(), domain.RegisterEntityRequest{
		Role:    domain.RoleVolunteer,
		Name:    "Boris",
		Contact: "boris@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Entity.Status != domain.StatusAvailable {
		t.Fatalf("volunteer must start available, got %s", resp.Entity.Status)
	}
	if resp.Entity.Location != nil {
		t.Fatalf("location must stay unknown")
	}
	if d.engine.Tracker.Len() != 1 {
		t.Fatalf("entity not registered with the tracker")
	}
}

func TestEntityService_Register_InitialLocationIsFirstPing(t *testing.T) {
	t.Parallel()
	d := newEntities(t)
	expectCreate(d)

	ev := domain.MembershipEvent{Type: domain.EventEntered, ZoneID: uuid.New(), Tier: domain.TierHigh}
	d.tracking.EXPECT().
		ProcessPing(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p domain.LocationPing) (domain.PingResponse, error) {
			if p.Location != (orb.Point{30.5, 50.4}) || !p.RecordedAt.Equal(t0) || p.Contact != "anna@example.com" {
				t.Errorf("unexpected first ping %+v", p)
			}
			return domain.PingResponse{Events: []domain.MembershipEvent{ev}}, nil
		}).
		Times(1)

	resp, err := d.svc.Register(context.Background(), domain.RegisterEntityRequest{
		Role:     domain.RoleUser,
		Contact:  "anna@example.com",
		Location: ptPtr(30.5, 50.4),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].ZoneID != ev.ZoneID {
		t.Fatalf("expected the Entered event, got %+v", resp.Events)
	}
	if resp.Entity.Location == nil || resp.Entity.LocatedAt == nil || resp.Entity.Status != domain.StatusSafe {
		t.Fatalf("unexpected entity %+v", resp.Entity)
	}
}

func TestEntityService_Register_DuplicateContact(t *testing.T) {
	t.Parallel()
	d := newEntities(t)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(e.ErrUniqueViolation).Times(1)

	_, err := d.svc.Register(context.Background(), domain.RegisterEntityRequest{Role: domain.RoleUser, Contact: "a@example.com"})
	if !errors.Is(err, e.ErrUniqueViolation) {
		t.Fatalf("expected ErrUniqueViolation, got %v", err)
	}
	if d.engine.Tracker.Len() != 0 {
		t.Fatalf("failed registration must not reach the tracker")
	}
}

func TestEntityService_Get_AddsMemberships(t *testing.T) {
	t.Parallel()
	z := activeZone(0, 0, 10)
	d := newEntities(t, z)
	id := uuid.New()
	d.engine.Tracker.Register(id, "a@example.com")
	if _, _, err := d.engine.Tracker.ProcessPing(domain.LocationPing{EntityID: id, Location: orb.Point{0, 0}, RecordedAt: t0}); err != nil {
		t.Fatalf("ProcessPing: %v", err)
	}

	d.repo.EXPECT().Get(gomock.Any(), id).Return(&domain.TrackedEntity{ID: id}, nil).Times(1)

	ent, err := d.svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ent.Memberships[z.ID] != domain.TierHigh {
		t.Fatalf("expected high membership, got %v", ent.Memberships)
	}
}

func TestEntityService_UpdateStatus_PerRole(t *testing.T) {
	t.Parallel()
	d := newEntities(t)
	id := uuid.New()

	d.repo.EXPECT().Get(gomock.Any(), id).Return(&domain.TrackedEntity{ID: id, Role: domain.RoleUser}, nil).Times(2)
	d.repo.EXPECT().UpdateStatus(gomock.Any(), id, domain.StatusCritical).Return(nil).Times(1)

	if err := d.svc.UpdateStatus(context.Background(), id, domain.StatusCritical); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := d.svc.UpdateStatus(context.Background(), id, domain.StatusAssigned); !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a volunteer status on a user, got %v", err)
	}
}

func TestEntityService_Assign(t *testing.T) {
	t.Parallel()
	d := newEntities(t)
	vol, u1, u2 := uuid.New(), uuid.New(), uuid.New()

	d.repo.EXPECT().Assign(gomock.Any(), vol, []uuid.UUID{u1, u2}).Return([]uuid.UUID{u1, u2}, nil).Times(1)

	ids, err := d.svc.Assign(context.Background(), vol, []uuid.UUID{u1, u2})
	if err != nil || len(ids) != 2 {
		t.Fatalf("unexpected result %v err=%v", ids, err)
	}

	if _, err := d.svc.Assign(context.Background(), vol, []uuid.UUID{vol}); !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self assignment, got %v", err)
	}
	if _, err := d.svc.Assign(context.Background(), vol, nil); !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty list, got %v", err)
	}
}

func TestEntityService_Restore_SettlesSilently(t *testing.T) {
	t.Parallel()
	z := activeZone(0, 0, 10)
	d := newEntities(t, z)

	at := t0.Add(-time.Minute)
	inside := &domain.TrackedEntity{ID: uuid.New(), Contact: "a@example.com", Location: ptPtr(0, 0.01), LocatedAt: &at}
	outside := &domain.TrackedEntity{ID: uuid.New(), Contact: "b@example.com", Location: ptPtr(40, 40), LocatedAt: &at}
	broken := &domain.TrackedEntity{ID: uuid.New(), Contact: "c@example.com", Location: ptPtr(0, 95), LocatedAt: &at}
	d.repo.EXPECT().ListLocated(gomock.Any()).Return([]*domain.TrackedEntity{inside, outside, broken}, nil).Times(1)

	n, err := d.svc.Restore(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("expected 2 restored, got %d err=%v", n, err)
	}

	m, err := d.engine.Tracker.Memberships(inside.ID)
	if err != nil || m[z.ID] != domain.TierHigh {
		t.Fatalf("restored entity should be inside, got %v err=%v", m, err)
	}

	// A ping from the same place after restore raises nothing.
	events, _, err := d.engine.Tracker.ProcessPing(domain.LocationPing{EntityID: inside.ID, Location: orb.Point{0, 0.01}, RecordedAt: t0})
	if err != nil || len(events) != 0 {
		t.Fatalf("expected no events, got %+v err=%v", events, err)
	}
}
