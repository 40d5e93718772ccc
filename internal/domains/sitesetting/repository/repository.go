package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"farmstay/infras/otel"
	"farmstay/infras/postgres"
	"farmstay/internal/domains/sitesetting/model"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	gRepo "farmstay/shared/repository"
	"fmt"
)

const upsertQuery = `INSERT INTO site_settings (key, value, created_at, modified_at, created_by, modified_by)
VALUES (:key, :value, :created_at, :modified_at, :created_by, :modified_by)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, modified_at = EXCLUDED.modified_at, modified_by = EXCLUDED.modified_by`

type SiteSetting interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.SiteSetting, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SiteSetting, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Upsert(ctx context.Context, setting model.SiteSetting) error
}

type repositoryImpl struct {
	gRepo.Repository[model.SiteSetting]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) SiteSetting {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.SiteSetting](model.EntityName, model.TableName, model.FieldKey, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert writes the value, keeping the original creation stamp of an existing key.
func (r *repositoryImpl) Upsert(ctx context.Context, setting model.SiteSetting) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".site_setting.Upsert")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertQuery)

	if _, err := r.db.Write.NamedExecContext(ctx, upsertQuery, setting); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert site setting: %w", err)
	}

	return nil
}
