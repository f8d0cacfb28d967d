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
	"github.com/paulmach/orb"

	"disasterAlert/internal/domain"
	"disasterAlert/pkg/e"
)

type EntityRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewEntityRepo(pool *pgxpool.Pool, logger *slog.Logger) *EntityRepo {
	return &EntityRepo{pool: pool, logger: logger}
}

const entityColumns = `
	id,
	role,
	name,
	contact,
	phone,
	ST_X(location::geometry) AS lng,
	ST_Y(location::geometry) AS lat,
	located_at,
	status,
	created_at`

func scanEntity(row pgx.Row) (*domain.TrackedEntity, error) {
	var (
		ent      domain.TrackedEntity
		lng, lat *float64
	)
	if err := row.Scan(
		&ent.ID,
		&ent.Role,
		&ent.Name,
		&ent.Contact,
		&ent.Phone,
		&lng,
		&lat,
		&ent.LocatedAt,
		&ent.Status,
		&ent.CreatedAt,
	); err != nil {
		return nil, err
	}
	if lng != nil && lat != nil {
		ent.Location = &orb.Point{*lng, *lat}
	}
	return &ent, nil
}

// Create inserts an entity without a location; the first position arrives as a ping.
func (p *EntityRepo) Create(ctx context.Context, ent *domain.TrackedEntity) error {
	const op = "postgres.Entity.Create"

	const query = `
		INSERT INTO entities (id, role, name, contact, phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if ent.ID == uuid.Nil {
		ent.ID = uuid.New()
	}
	if ent.CreatedAt.IsZero() {
		ent.CreatedAt = time.Now().UTC()
	}
	if ent.Status == "" {
		ent.Status = domain.InitialStatus(ent.Role)
	}

	_, err := p.pool.Exec(ctx, query,
		ent.ID,
		ent.Role,
		ent.Name,
		ent.Contact,
		ent.Phone,
		ent.Status,
		ent.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

// Get returns the entity with its volunteer assignments.
func (p *EntityRepo) Get(ctx context.Context, id uuid.UUID) (*domain.TrackedEntity, error) {
	const op = "postgres.Entity.Get"

	query := `SELECT ` + entityColumns + ` FROM entities WHERE id = $1`

	ent, err := scanEntity(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrEntityNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	if ent.Role == domain.RoleVolunteer {
		ent.Assignments, err = p.assignments(ctx, p.pool, id)
		if err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
	}

	return ent, nil
}

func (p *EntityRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EntityStatus) error {
	const op = "postgres.Entity.UpdateStatus"

	cmd, err := p.pool.Exec(ctx, `UPDATE entities SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrEntityNotFound)
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (p *EntityRepo) assignments(ctx context.Context, q querier, volunteerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := q.Query(ctx,
		`SELECT user_id FROM volunteer_assignments WHERE volunteer_id = $1 ORDER BY assigned_at, user_id`,
		volunteerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, 4)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Assign links users to a volunteer and marks the volunteer assigned.
// Every user id must refer to an existing user.
func (p *EntityRepo) Assign(ctx context.Context, volunteerID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error) {
	const op = "postgres.Entity.Assign"

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Error("begin tx failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockVolunteer(ctx, tx, volunteerID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, e.WrapError(ctx, op, err)
	}

	var users int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM entities WHERE role = 'user' AND id = ANY($1)`,
		userIDs,
	).Scan(&users)
	if err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	if users != countDistinct(userIDs) {
		return nil, fmt.Errorf("%s: user %w", op, e.ErrEntityNotFound)
	}

	for _, uid := range userIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO volunteer_assignments (volunteer_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			volunteerID, uid,
		)
		if err != nil {
			p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE entities SET status = $2 WHERE id = $1`, volunteerID, domain.StatusAssigned); err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	ids, err := p.assignments(ctx, tx, volunteerID)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("commit failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return ids, nil
}

// Unassign removes one user from a volunteer. The volunteer becomes available when no users remain.
func (p *EntityRepo) Unassign(ctx context.Context, volunteerID, userID uuid.UUID) ([]uuid.UUID, error) {
	const op = "postgres.Entity.Unassign"

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Error("begin tx failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockVolunteer(ctx, tx, volunteerID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, e.WrapError(ctx, op, err)
	}

	cmd, err := tx.Exec(ctx,
		`DELETE FROM volunteer_assignments WHERE volunteer_id = $1 AND user_id = $2`,
		volunteerID, userID,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, fmt.Errorf("%s: assignment %w", op, e.ErrNotFound)
	}

	ids, err := p.assignments(ctx, tx, volunteerID)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	status := domain.StatusAssigned
	if len(ids) == 0 {
		status = domain.StatusAvailable
	}
	if _, err := tx.Exec(ctx, `UPDATE entities SET status = $2 WHERE id = $1`, volunteerID, status); err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("commit failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return ids, nil
}

func lockVolunteer(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	var role domain.EntityRole
	err := tx.QueryRow(ctx, `SELECT role FROM entities WHERE id = $1 FOR UPDATE`, id).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && role != domain.RoleVolunteer) {
		return fmt.Errorf("volunteer: %w", e.ErrEntityNotFound)
	}
	return err
}

func countDistinct(ids []uuid.UUID) int {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
