package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"farmstay/config"
	"farmstay/infras/otel"
	"farmstay/internal/domains/sitesetting/model"
	"farmstay/internal/domains/sitesetting/model/dto"
	"farmstay/internal/domains/sitesetting/repository"
	"farmstay/shared"
	"farmstay/shared/cache"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"farmstay/shared/failure"
	"farmstay/shared/validator"
	"fmt"

	"github.com/rs/zerolog/log"
)

const cacheAllSiteSettings = "site_setting:all"

// settingsLimit bounds the single page read by GetAll.
const settingsLimit = 1000

type SiteSetting interface {
	GetAll(ctx context.Context) (dto.SettingsResponse, error)
	Get(ctx context.Context, key string) (dto.SiteSettingResponse, error)
	Upsert(ctx context.Context, key string, req dto.UpsertRequest) (dto.SiteSettingResponse, error)
	Delete(ctx context.Context, key string) error
}

type serviceImpl struct {
	repo  repository.SiteSetting
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.SiteSetting, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) SiteSetting {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// GetAll serves every setting from one cached map.
func (s *serviceImpl) GetAll(ctx context.Context) (res dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".site_setting.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheAllSiteSettings, &res); err == nil {
		log.Debug().Str("cacheKey", cacheAllSiteSettings).Msg("cache hit for site settings")

		return res, nil
	}

	params := gDto.QueryParams{Page: 1, Limit: settingsLimit, SortBy: model.TableName + "." + model.FieldKey, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, gDto.NewFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get site settings")

		return res, fmt.Errorf("failed to get site settings: %w", err)
	}

	res = dto.FromModels(models)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheAllSiteSettings, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save site settings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, key string) (res dto.SiteSettingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".site_setting.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	settings, err := s.GetAll(ctx)
	if err != nil {
		return res, err
	}

	value, ok := settings[key]
	if !ok {
		return res, failure.NotFound("site setting not found")
	}

	return dto.SiteSettingResponse{Key: key, Value: value}, nil
}

func (s *serviceImpl) Upsert(ctx context.Context, key string, req dto.UpsertRequest) (res dto.SiteSettingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".site_setting.Upsert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(key, dto.KeyTag); err != nil {
		return res, failure.BadRequestFromString("key must be 2 to 64 lowercase characters without spaces")
	}

	setting := req.ToModel(key, shared.Actor(ctx))

	if err = s.repo.Upsert(ctx, setting); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upsert site setting")

		return res, fmt.Errorf("failed to upsert site setting: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(setting)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".site_setting.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(key, model.FieldKey, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if site setting exists")

		return fmt.Errorf("failed to check if site setting exists: %w", err)
	}

	if !exist {
		return failure.NotFound("site setting not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete site setting")

		return fmt.Errorf("failed to delete site setting: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), cacheAllSiteSettings); err != nil {
			log.Error().Err(err).Msg("failed to delete site settings from cache")
		}
	}()
}
