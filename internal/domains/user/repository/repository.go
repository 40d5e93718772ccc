package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"farmstay/infras/otel"
	"farmstay/infras/postgres"
	"farmstay/internal/domains/user/model"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	gRepo "farmstay/shared/repository"
	"fmt"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CountByRole(ctx context.Context) (map[string]int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type roleCount struct {
	Role  string `db:"role"`
	Total int    `db:"total"`
}

func (r *repositoryImpl) CountByRole(ctx context.Context) (map[string]int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.CountByRole")
	defer scope.End()

	rows := []roleCount{}

	if err := r.db.Read.SelectContext(ctx, &rows, "SELECT role, COUNT(id) AS total FROM users GROUP BY role"); err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}

	res := make(map[string]int, len(rows))
	for _, row := range rows {
		res[row.Role] = row.Total
	}

	return res, nil
}
