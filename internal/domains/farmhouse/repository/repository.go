package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"farmstay/infras/otel"
	"farmstay/infras/postgres"
	"farmstay/internal/domains/farmhouse/model"
	"farmstay/shared/constant"
	"farmstay/shared/timezone"
	gDto "farmstay/shared/dto"
	gRepo "farmstay/shared/repository"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	bookedRangesQuery = `SELECT check_in, check_out, status FROM bookings
	WHERE farmhouse_id = $1 AND status != 'cancelled' AND check_in < $3 AND check_out > $2
	ORDER BY check_in`

	appendImageQuery = `UPDATE farmhouses SET images = array_append(images, $2), modified_at = $3, modified_by = $4
	WHERE id = $1 RETURNING images`

	removeImageQuery = `UPDATE farmhouses SET images = array_remove(images, $2), modified_at = $3, modified_by = $4
	WHERE id = $1 AND $2 = ANY(images) RETURNING images`
)

type Farmhouse interface {
	Insert(ctx context.Context, model model.Farmhouse) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Farmhouse, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Farmhouse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Farmhouse, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// BookedRanges lists the non-cancelled stays overlapping [from, to).
	BookedRanges(ctx context.Context, farmhouseID string, from, to time.Time) ([]model.BookedRange, error)
	// AppendImage and RemoveImage edit the image list in place and return it.
	// Both report sql.ErrNoRows when the row, or for RemoveImage the url, is missing.
	AppendImage(ctx context.Context, id, url, actor string) ([]string, error)
	RemoveImage(ctx context.Context, id, url, actor string) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Farmhouse]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Farmhouse {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Farmhouse](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) BookedRanges(ctx context.Context, farmhouseID string, from, to time.Time) ([]model.BookedRange, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".farmhouse.BookedRanges")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, bookedRangesQuery)

	rows := []model.BookedRange{}

	if err := r.db.Read.SelectContext(ctx, &rows, bookedRangesQuery, farmhouseID, from, to); err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get booked ranges: %w", err)
	}

	return rows, nil
}

func (r *repositoryImpl) AppendImage(ctx context.Context, id, url, actor string) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".farmhouse.AppendImage")
	defer scope.End()

	return r.editImages(ctx, scope, appendImageQuery, id, url, actor)
}

func (r *repositoryImpl) RemoveImage(ctx context.Context, id, url, actor string) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".farmhouse.RemoveImage")
	defer scope.End()

	return r.editImages(ctx, scope, removeImageQuery, id, url, actor)
}

func (r *repositoryImpl) editImages(ctx context.Context, scope otel.Scope, query, id, url, actor string) ([]string, error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var images pq.StringArray

	if err := r.db.Write.QueryRowxContext(ctx, query, id, url, timezone.Now(), actor).Scan(&images); err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to update farmhouse images: %w", err)
	}

	return images, nil
}
