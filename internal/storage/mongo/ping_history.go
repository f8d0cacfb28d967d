package mongo

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"disasterAlert/internal/domain"
	"disasterAlert/internal/geo"
	"disasterAlert/pkg/e"
)

// geoJSONPoint is the GeoJSON shape a 2dsphere index expects.
type geoJSONPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type pingDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EntityID   string             `bson:"entity_id"`
	Contact    string             `bson:"contact"`
	Location   geoJSONPoint       `bson:"location"`
	RecordedAt time.Time          `bson:"recorded_at"`
}

func toDoc(p domain.LocationPing) pingDoc {
	return pingDoc{
		EntityID: p.EntityID.String(),
		Contact:  p.Contact,
		Location: geoJSONPoint{Type: "Point", Coordinates: []float64{p.Location.Lon(), p.Location.Lat()}},
		// BSON dates have millisecond precision
		RecordedAt: p.RecordedAt.UTC().Truncate(time.Millisecond),
	}
}

func (d pingDoc) toPing() (domain.LocationPing, error) {
	id, err := uuid.Parse(d.EntityID)
	if err != nil {
		return domain.LocationPing{}, err
	}
	var loc orb.Point
	if len(d.Location.Coordinates) == 2 {
		loc = orb.Point{d.Location.Coordinates[0], d.Location.Coordinates[1]}
	}
	return domain.LocationPing{EntityID: id, Contact: d.Contact, Location: loc, RecordedAt: d.RecordedAt.UTC()}, nil
}

// PingHistory stores location pings. Documents expire through a TTL index on recorded_at.
type PingHistory struct {
	col    *mongo.Collection
	logger *slog.Logger
}

func NewPingHistory(col *mongo.Collection, logger *slog.Logger) *PingHistory {
	return &PingHistory{col: col, logger: logger}
}

func (h *PingHistory) EnsureIndexes(ctx context.Context, retention time.Duration) error {
	const op = "mongo.PingHistory.EnsureIndexes"

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recorded_at", Value: 1}},
			Options: options.Index().SetName("recorded_at_ttl").SetExpireAfterSeconds(int32(retention / time.Second)),
		},
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("location_2dsphere"),
		},
		{
			Keys:    bson.D{{Key: "entity_id", Value: 1}, {Key: "recorded_at", Value: -1}},
			Options: options.Index().SetName("entity_recorded_at"),
		},
	}

	if _, err := h.col.Indexes().CreateMany(ctx, models); err != nil {
		h.logger.Error("index creation failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	h.logger.Info("ping history indexes ready", slog.Duration("retention", retention))
	return nil
}

func (h *PingHistory) Save(ctx context.Context, ping domain.LocationPing) error {
	const op = "mongo.PingHistory.Save"

	if err := geo.ValidatePoint(ping.Location); err != nil {
		return e.Wrap(op, err)
	}

	if _, err := h.col.InsertOne(ctx, toDoc(ping)); err != nil {
		h.logger.Error("insert failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("entity_id", ping.EntityID.String()),
		)
		return e.WrapError(ctx, op, err)
	}
	return nil
}

// ListByEntity returns the entity's pings since the given time, newest first.
func (h *PingHistory) ListByEntity(ctx context.Context, entityID uuid.UUID, since time.Time, limit int) ([]domain.LocationPing, error) {
	const op = "mongo.PingHistory.ListByEntity"

	if limit <= 0 || limit > 500 {
		limit = 100
	}

	filter := bson.M{
		"entity_id":   entityID.String(),
		"recorded_at": bson.M{"$gte": since.UTC()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}}).SetLimit(int64(limit))

	return h.find(ctx, op, filter, opts)
}

// CountUniqueEntities counts distinct entities that pinged since the given time.
func (h *PingHistory) CountUniqueEntities(ctx context.Context, since time.Time) (int64, error) {
	const op = "mongo.PingHistory.CountUniqueEntities"

	ids, err := h.col.Distinct(ctx, "entity_id", bson.M{"recorded_at": bson.M{"$gte": since.UTC()}})
	if err != nil {
		h.logger.Error("distinct failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}
	return int64(len(ids)), nil
}

func (h *PingHistory) CountPings(ctx context.Context, since time.Time) (int64, error) {
	const op = "mongo.PingHistory.CountPings"

	n, err := h.col.CountDocuments(ctx, bson.M{"recorded_at": bson.M{"$gte": since.UTC()}})
	if err != nil {
		h.logger.Error("count failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}
	return n, nil
}

// StatsWithin counts pings and distinct entities recorded inside a circle since the given time.
func (h *PingHistory) StatsWithin(ctx context.Context, center orb.Point, radiusKM float64, since time.Time) (unique, total int64, err error) {
	const op = "mongo.PingHistory.StatsWithin"

	filter := bson.M{
		"recorded_at": bson.M{"$gte": since.UTC()},
		"location": bson.M{"$geoWithin": bson.M{
			"$centerSphere": bson.A{
				bson.A{center.Lon(), center.Lat()},
				radiusKM / geo.EarthRadiusKM,
			},
		}},
	}

	total, err = h.col.CountDocuments(ctx, filter)
	if err != nil {
		h.logger.Error("count failed", slog.String("op", op), slog.Any("error", err))
		return 0, 0, e.WrapError(ctx, op, err)
	}
	ids, err := h.col.Distinct(ctx, "entity_id", filter)
	if err != nil {
		h.logger.Error("distinct failed", slog.String("op", op), slog.Any("error", err))
		return 0, 0, e.WrapError(ctx, op, err)
	}
	return int64(len(ids)), total, nil
}

func (h *PingHistory) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]domain.LocationPing, error) {
	cur, err := h.col.Find(ctx, filter, opts)
	if err != nil {
		h.logger.Error("find failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer cur.Close(ctx)

	out := make([]domain.LocationPing, 0, 16)
	for cur.Next(ctx) {
		var doc pingDoc
		if err := cur.Decode(&doc); err != nil {
			h.logger.Error("decode failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		p, err := doc.toPing()
		if err != nil {
			h.logger.Warn("skipping ping with malformed entity id", slog.String("op", op), slog.String("entity_id", doc.EntityID))
			continue
		}
		out = append(out, p)
	}
	if err := cur.Err(); err != nil {
		h.logger.Error("cursor err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}
