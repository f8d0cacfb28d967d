package respond

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"disasterAlert/pkg/e"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("op: %w", e.ErrZoneNotFound), http.StatusNotFound},
		{fmt.Errorf("op: %w", e.ErrEntityNotFound), http.StatusNotFound},
		{e.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("op: %w", e.ErrInvalidCoordinate), http.StatusBadRequest},
		{e.ErrStalePing, http.StatusConflict},
		{e.ErrUniqueViolation, http.StatusConflict},
		{e.ErrConflict, http.StatusConflict},
		{fmt.Errorf("ledger.Adjust: %w", &e.NegativeResultError{Kind: "water", Current: 1, Delta: -2}), http.StatusUnprocessableEntity},
		{e.ErrOutsideZone, http.StatusUnprocessableEntity},
		{e.ErrQueueFull, http.StatusServiceUnavailable},
		{e.ErrDeadline, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got, _ := Status(c.err); got != c.want {
			t.Fatalf("Status(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
