package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"disasterAlert/internal/domain"
	"disasterAlert/pkg/e"
)

func (p *ZoneRepo) GetResources(ctx context.Context, id uuid.UUID) (domain.Resources, int64, error) {
	const op = "postgres.Zone.GetResources"

	var (
		res     domain.Resources
		version int64
	)
	err := p.pool.QueryRow(ctx, `SELECT resources, version FROM zones WHERE id = $1`, id).Scan(&res, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, fmt.Errorf("%s: %w", op, e.ErrZoneNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	if res == nil {
		res = domain.Resources{}
	}
	return res, version, nil
}

// CompareAndSwapResources stores res if the zone is still at version and returns the new version.
func (p *ZoneRepo) CompareAndSwapResources(ctx context.Context, id uuid.UUID, version int64, res domain.Resources) (int64, error) {
	const op = "postgres.Zone.CompareAndSwapResources"

	if res == nil {
		res = domain.Resources{}
	}

	const query = `
		UPDATE zones
		SET resources = $2, version = version + 1
		WHERE id = $1 AND version = $3
		RETURNING version
	`

	var next int64
	err := p.pool.QueryRow(ctx, query, id, res, version).Scan(&next)
	if err == nil {
		return next, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return 0, e.WrapError(ctx, op, err)
	}

	var exists bool
	if err := p.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM zones WHERE id = $1)`, id).Scan(&exists); err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}
	if !exists {
		return 0, fmt.Errorf("%s: %w", op, e.ErrZoneNotFound)
	}
	return 0, fmt.Errorf("%s: version %d: %w", op, version, e.ErrConflict)
}
