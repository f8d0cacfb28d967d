//go:build integration

package mongo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"disasterAlert/internal/domain"
)

var (
	testClient *mongo.Client
	tc         testcontainers.Container
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("27017/tcp"),
			wait.ForLog("Waiting for connections"),
		).WithDeadline(90 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	mappedPort, _ := tc.MappedPort(ctx, "27017/tcp")

	testClient, err = mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, mappedPort.Port())))
	if err != nil {
		fmt.Println("mongo.Connect:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	_ = testClient.Disconnect(ctx)
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func newHistory(t *testing.T) *PingHistory {
	t.Helper()
	col := testClient.Database("disaster_alert_test").Collection("pings_" + uuid.NewString())
	h := NewPingHistory(col, testLogger)
	if err := h.EnsureIndexes(context.Background(), 24*time.Hour); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	t.Cleanup(func() { _ = col.Drop(context.Background()) })
	return h
}

func TestPingHistory_TTLIndex(t *testing.T) {
	h := newHistory(t)
	ctx := context.Background()

	cur, err := h.col.Indexes().List(ctx)
	if err != nil {
		t.Fatalf("Indexes.List: %v", err)
	}
	var specs []bson.M
	if err := cur.All(ctx, &specs); err != nil {
		t.Fatalf("cursor.All: %v", err)
	}

	found := false
	for _, s := range specs {
		if s["name"] == "recorded_at_ttl" {
			found = true
			if fmt.Sprint(s["expireAfterSeconds"]) != "86400" {
				t.Fatalf("expected 24h TTL, got %v", s["expireAfterSeconds"])
			}
		}
	}
	if !found {
		t.Fatalf("ttl index missing: %v", specs)
	}
}

func TestPingHistory_SaveAndCount(t *testing.T) {
	h := newHistory(t)
	ctx := context.Background()
	now := time.Now().UTC()

	a, b := uuid.New(), uuid.New()
	pings := []domain.LocationPing{
		{EntityID: a, Contact: "a@example.com", Location: orb.Point{0, 0.01}, RecordedAt: now.Add(-2 * time.Minute)},
		{EntityID: a, Contact: "a@example.com", Location: orb.Point{0, 0.02}, RecordedAt: now.Add(-time.Minute)},
		{EntityID: b, Contact: "b@example.com", Location: orb.Point{5, 5}, RecordedAt: now.Add(-3 * time.Hour)},
	}
	for _, p := range pings {
		if err := h.Save(ctx, p); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	since := now.Add(-time.Hour)
	unique, err := h.CountUniqueEntities(ctx, since)
	if err != nil {
		t.Fatalf("CountUniqueEntities: %v", err)
	}
	total, err := h.CountPings(ctx, since)
	if err != nil {
		t.Fatalf("CountPings: %v", err)
	}
	if unique != 1 || total != 2 {
		t.Fatalf("expected 1 entity and 2 pings, got %d/%d", unique, total)
	}

	got, err := h.ListByEntity(ctx, a, since, 10)
	if err != nil {
		t.Fatalf("ListByEntity: %v", err)
	}
	if len(got) != 2 || got[0].Location != (orb.Point{0, 0.02}) {
		t.Fatalf("expected newest first, got %+v", got)
	}

	u, n, err := h.StatsWithin(ctx, orb.Point{0, 0}, 10, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("StatsWithin: %v", err)
	}
	if u != 1 || n != 2 {
		t.Fatalf("expected 1 entity and 2 pings within 10km, got %d/%d", u, n)
	}
}

func TestPingHistory_Save_RejectsInvalidPoint(t *testing.T) {
	h := newHistory(t)
	err := h.Save(context.Background(), domain.LocationPing{EntityID: uuid.New(), Location: orb.Point{0, 100}, RecordedAt: time.Now()})
	if err == nil {
		t.Fatalf("expected error")
	}
}
