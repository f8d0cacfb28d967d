package mongo

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"disasterAlert/internal/config"
	"disasterAlert/pkg/e"
)

type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
	Pings  *PingHistory
}

func NewMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Mongo, error) {
	const op = "storage.mongo.NewMongo"

	logger.Info("Connecting to MongoDB", slog.String("uri", redactURI(cfg.Mongo.URI)), slog.String("db", cfg.Mongo.Database))

	dctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(dctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", slog.Any("error", err))
		return nil, e.Wrap(op+".Connect", err)
	}
	if err := client.Ping(dctx, nil); err != nil {
		logger.Error("Failed to ping MongoDB", slog.Any("error", err))
		_ = client.Disconnect(context.Background())
		return nil, e.Wrap(op+".Ping", err)
	}

	db := client.Database(cfg.Mongo.Database)
	pings := NewPingHistory(db.Collection(cfg.Mongo.PingCollection), logger)
	if err := pings.EnsureIndexes(dctx, cfg.Tracking.PingRetention); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Connected to MongoDB successfully")
	return &Mongo{Client: client, DB: db, Pings: pings}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

func redactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.UserPassword("****", "****")
	return u.String()
}
