package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"disasterAlert/internal/domain"
	"disasterAlert/pkg/e"
)

type StatsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStats(pool *pgxpool.Pool, logger *slog.Logger) *StatsRepo {
	return &StatsRepo{pool: pool, logger: logger}
}

func (p *StatsRepo) CountUsersByStatus(ctx context.Context) (map[domain.EntityStatus]int64, error) {
	const op = "postgres.Stats.CountUsersByStatus"

	const query = `
		SELECT status, COUNT(*)
		FROM entities
		WHERE role = 'user'
		GROUP BY status
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := map[domain.EntityStatus]int64{
		domain.StatusSafe:      0,
		domain.StatusEmergency: 0,
		domain.StatusCritical:  0,
		domain.StatusDead:      0,
	}
	for rows.Next() {
		var (
			status domain.EntityStatus
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

// CountVolunteers splits volunteers by whether their assignment list is empty.
func (p *StatsRepo) CountVolunteers(ctx context.Context) (available, busy int64, err error) {
	const op = "postgres.Stats.CountVolunteers"

	const query = `
		SELECT COUNT(*) FILTER (WHERE a.volunteer_id IS NULL),
			   COUNT(*) FILTER (WHERE a.volunteer_id IS NOT NULL)
		FROM entities v
		LEFT JOIN (SELECT DISTINCT volunteer_id FROM volunteer_assignments) a ON a.volunteer_id = v.id
		WHERE v.role = 'volunteer'
	`

	if err := p.pool.QueryRow(ctx, query).Scan(&available, &busy); err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return 0, 0, e.WrapError(ctx, op, err)
	}
	return available, busy, nil
}
