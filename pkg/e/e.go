package e

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal error")
	ErrDeadline        = errors.New("deadline exceeded")
	ErrCanceled        = errors.New("context canceled")
	ErrUniqueViolation = errors.New("unique violation")

	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrOutsideZone       = errors.New("point outside zone")
	ErrStalePing         = errors.New("stale ping")
	ErrNegativeResult    = errors.New("resource count would go negative")
	ErrQueueFull         = errors.New("queue is full")

	ErrZoneNotFound   = fmt.Errorf("zone %w", ErrNotFound)
	ErrEntityNotFound = fmt.Errorf("entity %w", ErrNotFound)

	ErrNotificationQueueEmpty = errors.New("notification queue is empty")
)

// NegativeResultError reports a rejected ledger adjustment. The ledger is left unchanged.
type NegativeResultError struct {
	Kind    string
	Current int64
	Delta   int64
}

func (n *NegativeResultError) Error() string {
	return fmt.Sprintf("%s: %s=%d, delta=%d", ErrNegativeResult, n.Kind, n.Current, n.Delta)
}

func (n *NegativeResultError) Is(target error) bool {
	return target == ErrNegativeResult
}

func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrCanceled)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, ErrUniqueViolation)
		case "23503", "23514":
			return fmt.Errorf("%s: %w", op, ErrInvalidInput)
		default:
			return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrInternal)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, ErrInternal)
}
