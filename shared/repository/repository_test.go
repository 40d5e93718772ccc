package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"farmstay/infras/otel/mocks"
	"farmstay/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID     string `db:"id"`
	Status string `db:"status"`
}

type fakeExec struct {
	query    string
	affected int64
	err      error
}

func (f *fakeExec) NamedExecContext(_ context.Context, query string, _ any) (sql.Result, error) {
	f.query = query
	if f.err != nil {
		return nil, f.err
	}

	return driverResult(f.affected), nil
}

type driverResult int64

func (r driverResult) LastInsertId() (int64, error) { return 0, nil }
func (r driverResult) RowsAffected() (int64, error) { return int64(r), nil }

func TestRepository_Update(t *testing.T) {
	repo := NewRepository[row]("Booking", "bookings", "id", nil, mocks.NewOtel())
	byID := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Value: "b-1", Operator: dto.FilterOperatorEq},
	}}

	t.Run("matched row", func(t *testing.T) {
		exec := &fakeExec{affected: 1}

		err := repo.update(context.Background(), exec, map[string]any{"status": "confirmed"}, byID)

		require.NoError(t, err)
		assert.Contains(t, exec.query, "UPDATE bookings SET status = :status")
	})

	t.Run("no row matched the filter", func(t *testing.T) {
		err := repo.update(context.Background(), &fakeExec{}, map[string]any{"status": "confirmed"}, byID)

		assert.ErrorIs(t, err, ErrNoRowsAffected)
	})

	t.Run("driver error", func(t *testing.T) {
		boom := errors.New("connection reset")

		err := repo.update(context.Background(), &fakeExec{err: boom}, map[string]any{"status": "confirmed"}, byID)

		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrNoRowsAffected)
	})

	t.Run("filter is required", func(t *testing.T) {
		err := repo.update(context.Background(), &fakeExec{affected: 1}, map[string]any{"status": "confirmed"}, dto.FilterGroup{})

		assert.ErrorIs(t, err, errRequiredFilter)
	})
}
