//go:build integration

package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"disasterAlert/internal/domain"
	"disasterAlert/pkg/e"
)

var (
	testClient *goredis.Client
	tc         testcontainers.Container
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
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
	mappedPort, _ := tc.MappedPort(ctx, "6379/tcp")
	testClient = goredis.NewClient(&goredis.Options{Addr: fmt.Sprintf("%s:%s", host, mappedPort.Port())})

	code := m.Run()

	_ = testClient.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func TestZoneCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewZoneCache(testClient)
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	got, err := cache.GetActive(ctx)
	if err != nil || got != nil {
		t.Fatalf("expected empty cache, got %v err=%v", got, err)
	}

	zones := []domain.Zone{{
		ID:        uuid.New(),
		Kind:      "Flood",
		Center:    orb.Point{37.61, 55.75},
		RadiusKM:  3,
		Resources: domain.Resources{domain.ResourceWater: 4},
		Active:    true,
		Version:   2,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}}
	if err := cache.SetActive(ctx, zones, time.Minute); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	got, err = cache.GetActive(ctx)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if len(got) != 1 || got[0].ID != zones[0].ID || got[0].Center != zones[0].Center || got[0].Resources[domain.ResourceWater] != 4 {
		t.Fatalf("unexpected cached zones %+v", got)
	}
}

func TestNotificationQueue_FIFO(t *testing.T) {
	ctx := context.Background()
	q := NewNotificationQueue(testClient, "test:"+uuid.NewString())

	first := domain.Notification{ID: uuid.New(), Message: "first"}
	second := domain.Notification{ID: uuid.New(), Message: "second"}
	if err := q.Enqueue(ctx, first, second); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	n, err := q.Len(ctx)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 queued, got %d err=%v", n, err)
	}

	got, err := q.BRPop(ctx, time.Second)
	if err != nil {
		t.Fatalf("BRPop: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("expected first notification, got %s", got.Message)
	}

	if _, err := q.BRPop(ctx, time.Second); err != nil {
		t.Fatalf("BRPop: %v", err)
	}

	_, err = q.BRPop(ctx, 100*time.Millisecond)
	if !errors.Is(err, e.ErrNotificationQueueEmpty) {
		t.Fatalf("expected ErrNotificationQueueEmpty, got %v", err)
	}
}
