package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"disasterAlert/internal/domain"
	"disasterAlert/pkg/e"
)

type ZoneRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewZoneRepo(pool *pgxpool.Pool, logger *slog.Logger) *ZoneRepo {
	return &ZoneRepo{pool: pool, logger: logger}
}

const zoneColumns = `
	id,
	kind,
	description,
	ST_X(center::geometry) AS lng,
	ST_Y(center::geometry) AS lat,
	radius_km,
	resources,
	active,
	version,
	created_at`

func scanZone(row pgx.Row) (*domain.Zone, error) {
	var (
		z        domain.Zone
		lng, lat float64
	)
	if err := row.Scan(
		&z.ID,
		&z.Kind,
		&z.Description,
		&lng,
		&lat,
		&z.RadiusKM,
		&z.Resources,
		&z.Active,
		&z.Version,
		&z.CreatedAt,
	); err != nil {
		return nil, err
	}
	z.Center[0], z.Center[1] = lng, lat
	if z.Resources == nil {
		z.Resources = domain.Resources{}
	}
	return &z, nil
}

func (p *ZoneRepo) collect(ctx context.Context, op string, rows pgx.Rows) ([]*domain.Zone, error) {
	defer rows.Close()

	zones := make([]*domain.Zone, 0, 16)
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return zones, nil
}

func (p *ZoneRepo) Create(ctx context.Context, zone *domain.Zone) error {
	const op = "postgres.Zone.Create"

	const query = `
		INSERT INTO zones (id, kind, description, center, radius_km, resources, active, version, created_at)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography, $6, $7, true, 1, $8)
	`

	if zone.ID == uuid.Nil {
		zone.ID = uuid.New()
	}
	if zone.CreatedAt.IsZero() {
		zone.CreatedAt = time.Now().UTC()
	}
	if zone.Resources == nil {
		zone.Resources = domain.DefaultResources()
	}
	zone.Active = true
	zone.Version = 1

	_, err := p.pool.Exec(ctx, query,
		zone.ID,
		zone.Kind,
		zone.Description,
		zone.Center.Lon(),
		zone.Center.Lat(),
		zone.RadiusKM,
		zone.Resources,
		zone.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *ZoneRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Zone, error) {
	const op = "postgres.Zone.Get"

	query := `SELECT ` + zoneColumns + ` FROM zones WHERE id = $1`

	z, err := scanZone(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrZoneNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return z, nil
}

// List pages through zones, newest first.
func (p *ZoneRepo) List(ctx context.Context, page, limit int, includeInactive bool) ([]*domain.Zone, int64, error) {
	const op = "postgres.Zone.List"

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	const countQuery = `SELECT COUNT(*) FROM zones WHERE active OR $1`

	var total int64
	if err := p.pool.QueryRow(ctx, countQuery, includeInactive).Scan(&total); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	listQuery := `SELECT ` + zoneColumns + `
		FROM zones
		WHERE active OR $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`

	rows, err := p.pool.Query(ctx, listQuery, includeInactive, limit, offset)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	zones, err := p.collect(ctx, op, rows)
	if err != nil {
		return nil, 0, err
	}
	return zones, total, nil
}

func (p *ZoneRepo) ListActive(ctx context.Context) ([]*domain.Zone, error) {
	const op = "postgres.Zone.ListActive"

	query := `SELECT ` + zoneColumns + ` FROM zones WHERE active ORDER BY created_at, id`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return p.collect(ctx, op, rows)
}

// ListAll returns active and inactive zones, e.g. for export.
func (p *ZoneRepo) ListAll(ctx context.Context) ([]*domain.Zone, error) {
	const op = "postgres.Zone.ListAll"

	query := `SELECT ` + zoneColumns + ` FROM zones ORDER BY created_at, id`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return p.collect(ctx, op, rows)
}

// Update writes the descriptive and geometric fields of an active zone and bumps its version.
func (p *ZoneRepo) Update(ctx context.Context, zone *domain.Zone) error {
	const op = "postgres.Zone.Update"

	const query = `
		UPDATE zones
		SET kind        = $2,
			description = $3,
			center      = ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography,
			radius_km   = $6,
			version     = version + 1
		WHERE id = $1 AND active
		RETURNING version
	`

	err := p.pool.QueryRow(ctx, query,
		zone.ID,
		zone.Kind,
		zone.Description,
		zone.Center.Lon(),
		zone.Center.Lat(),
		zone.RadiusKM,
	).Scan(&zone.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, e.ErrZoneNotFound)
		}
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", zone.ID.String()))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

// Deactivate soft-deletes an active zone and returns its final state.
func (p *ZoneRepo) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Zone, error) {
	const op = "postgres.Zone.Deactivate"

	query := `
		UPDATE zones
		SET active = false, version = version + 1
		WHERE id = $1 AND active
		RETURNING ` + zoneColumns

	z, err := scanZone(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrZoneNotFound)
		}
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return z, nil
}

// DeleteAll physically removes every zone. It is the only hard delete.
func (p *ZoneRepo) DeleteAll(ctx context.Context) (int64, error) {
	const op = "postgres.Zone.DeleteAll"

	cmd, err := p.pool.Exec(ctx, `DELETE FROM zones`)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}

	p.logger.Warn("all zones deleted", slog.Int64("rows", cmd.RowsAffected()))
	return cmd.RowsAffected(), nil
}

func (p *ZoneRepo) CountByActive(ctx context.Context) (active, inactive int64, err error) {
	const op = "postgres.Zone.CountByActive"

	const query = `
		SELECT COUNT(*) FILTER (WHERE active),
			   COUNT(*) FILTER (WHERE NOT active)
		FROM zones
	`

	if err := p.pool.QueryRow(ctx, query).Scan(&active, &inactive); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return 0, 0, e.WrapError(ctx, op, err)
	}
	return active, inactive, nil
}
