package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"farmstay/infras/otel"
	"farmstay/infras/postgres"
	"farmstay/internal/domains/booking/model"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	gRepo "farmstay/shared/repository"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Scalar(ctx context.Context, dest any, query string, filter gDto.FilterGroup) error
	WithTx(ctx context.Context, fn func(sqltx *sqlx.Tx) error) error
	CountByStatus(ctx context.Context, filter gDto.FilterGroup) (map[string]int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type statusCount struct {
	Status string `db:"status"`
	Total  int    `db:"total"`
}

// CountByStatus groups the bookings matching filter by status. Farmhouse columns may be filtered on.
func (r *repositoryImpl) CountByStatus(ctx context.Context, filter gDto.FilterGroup) (map[string]int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountByStatus")
	defer scope.End()

	where, args := r.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT bookings.status, COUNT(bookings.id) AS total FROM bookings %s %s GROUP BY bookings.status",
		model.Booking{}.GetJoinQuery(), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	rows := []statusCount{}
	if err = prepare.SelectContext(ctx, &rows, args); err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	res := make(map[string]int, len(model.Statuses))
	for _, status := range model.Statuses {
		res[status] = 0
	}

	for _, row := range rows {
		res[row.Status] = row.Total
	}

	return res, nil
}
