package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"disasterAlert/internal/domain"
	"disasterAlert/pkg/e"
)

// UpdateLocation stores the entity's latest position. A write older than the stored
// located_at is refused with e.ErrStalePing so concurrent writers cannot move an entity back in time.
func (p *EntityRepo) UpdateLocation(ctx context.Context, id uuid.UUID, loc orb.Point, at time.Time) error {
	const op = "postgres.Entity.UpdateLocation"

	const query = `
		UPDATE entities
		SET location   = ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography,
			located_at = $4
		WHERE id = $1 AND (located_at IS NULL OR located_at <= $4)
	`

	cmd, err := p.pool.Exec(ctx, query, id, loc.Lon(), loc.Lat(), at)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("entity_id", id.String()),
		)
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := p.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM entities WHERE id = $1)`, id).Scan(&exists); err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w", op, e.ErrEntityNotFound)
	}
	return fmt.Errorf("%s: %w", op, e.ErrStalePing)
}

// WithinRadius lists entities whose current location lies within radiusKM of center,
// measured on the sphere rather than the spheroid.
func (p *EntityRepo) WithinRadius(ctx context.Context, center orb.Point, radiusKM float64) ([]*domain.TrackedEntity, error) {
	const op = "postgres.Entity.WithinRadius"

	if radiusKM <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	query := `SELECT ` + entityColumns + `
		FROM entities
		WHERE location IS NOT NULL
		  AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3 * 1000, false)
		ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography), id`

	return p.list(ctx, op, query, center.Lon(), center.Lat(), radiusKM)
}

// ListLocated returns every entity with a known location.
func (p *EntityRepo) ListLocated(ctx context.Context) ([]*domain.TrackedEntity, error) {
	const op = "postgres.Entity.ListLocated"

	query := `SELECT ` + entityColumns + ` FROM entities WHERE location IS NOT NULL AND located_at IS NOT NULL`
	return p.list(ctx, op, query)
}

func (p *EntityRepo) list(ctx context.Context, op, query string, args ...any) ([]*domain.TrackedEntity, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]*domain.TrackedEntity, 0, 16)
	for rows.Next() {
		ent, err := scanEntity(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, ent)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}
