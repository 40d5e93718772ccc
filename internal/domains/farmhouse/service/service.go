package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"farmstay/config"
	"farmstay/infras/otel"
	"farmstay/infras/s3"
	"farmstay/internal/domains/farmhouse/model"
	"farmstay/internal/domains/farmhouse/model/dto"
	"farmstay/internal/domains/farmhouse/repository"
	"farmstay/shared"
	"farmstay/shared/cache"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"farmstay/shared/failure"
	gRepo "farmstay/shared/repository"
	"farmstay/shared/timezone"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetFarmhouse    = "farmhouse:get"
	cacheGetAllFarmhouse = "farmhouse:gets"
	cacheCountFarmhouse  = "farmhouse:count"

	availabilityDefaultDays = 365
	availabilityMaxDays     = 366
)

type Farmhouse interface {
	// GetAll lists farmhouses matching filter. Callers decide whether inactive rows may appear.
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFarmhousesResponse, error)
	// Mine lists the caller's own farmhouses, inactive ones included.
	Mine(ctx context.Context, req gDto.QueryParams) (dto.GetFarmhousesResponse, error)
	Get(ctx context.Context, id string) (dto.FarmhouseResponse, error)
	Availability(ctx context.Context, id, from, to string) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateFarmhouseRequest) (dto.FarmhouseResponse, error)
	Update(ctx context.Context, req dto.UpdateFarmhouseRequest, id string) error
	SetActive(ctx context.Context, req dto.UpdateActiveRequest, id string) error
	UploadImage(ctx context.Context, req dto.UploadImageRequest, id string) (dto.UploadImageResponse, error)
	DeleteImage(ctx context.Context, id, url string) error
	// Delete deactivates the listing, or removes the row when hard is set (admins only).
	Delete(ctx context.Context, id string, hard bool) error
}

type serviceImpl struct {
	repo  repository.Farmhouse
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Farmhouse, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Farmhouse {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFarmhousesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".farmhouse.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sortable(model.TableName, constant.FieldCreatedAt, model.SortableFields...)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFarmhouse, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for farmhouses")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get farmhouses")

		return res, fmt.Errorf("failed to get farmhouses: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save farmhouses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountFarmhouse, gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count farmhouses")

		return res, fmt.Errorf("failed to count farmhouses: %w", err)
	}

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save farmhouse count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Mine(ctx context.Context, req gDto.QueryParams) (res dto.GetFarmhousesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".farmhouse.Mine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.Actor(ctx)
	if actor == constant.ContextGuest {
		return res, failure.Unauthorized("authentication required")
	}

	return s.GetAll(ctx, req, shared.FilterByID(actor, model.FieldOwnerID, model.TableName))
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FarmhouseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".farmhouse.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetFarmhouse, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		farmhouse, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to get farmhouse")

			return res, fmt.Errorf("failed to get farmhouse: %w", err)
		}

		if farmhouse.ID == "" {
			return res, failure.NotFound("farmhouse not found")
		}

		res.FromModel(farmhouse)

		go func() {
			if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save farmhouse to cache")
			}
		}()
	}

	// inactive listings look missing to everyone but their owner and admins
	if !res.IsActive && !canManage(ctx, res.OwnerID) {
		return dto.FarmhouseResponse{}, failure.NotFound("farmhouse not found")
	}

	return res, nil
}

func (s *serviceImpl) Availability(ctx context.Context, id, from, to string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".farmhouse.Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start := timezone.Today()
	if from != "" {
		if start, err = shared.ParseDate(from); err != nil {
			return res, failure.BadRequestFromString("from must be a YYYY-MM-DD date")
		}
	}

	end := start.AddDate(0, 0, availabilityDefaultDays)
	if to != "" {
		if end, err = shared.ParseDate(to); err != nil {
			return res, failure.BadRequestFromString("to must be a YYYY-MM-DD date")
		}
	}

	if !end.After(start) {
		return res, failure.BadRequestFromString("to must be after from")
	}

	if end.After(start.AddDate(0, 0, availabilityMaxDays)) {
		return res, failure.BadRequestFromString(fmt.Sprintf("availability window cannot exceed %d days", availabilityMaxDays))
	}

	if _, err = s.Get(ctx, id); err != nil {
		return res, err
	}

	ranges, err := s.repo.BookedRanges(ctx, id, start, end)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booked ranges")

		return res, fmt.Errorf("failed to get booked ranges: %w", err)
	}

	res.FromModels(id, start, end, ranges)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFarmhouseRequest) (res dto.FarmhouseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".farmhouse.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.Actor(ctx)

	var ownerID string

	switch shared.Role(ctx) {
	case constant.RoleAdmin:
		ownerID = req.OwnerID
		if ownerID == "" {
			ownerID = actor
		}
	case constant.RoleOwner:
		ownerID = actor
	default:
		return res, failure.Forbidden("only owners can list farmhouses")
	}

	farmhouse := req.ToModel(ownerID, actor)

	if err = s.repo.Insert(ctx, farmhouse); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return res, failure.BadRequestFromString("owner does not exist")
		}

		log.Error().Err(err).Msg("failed to create farmhouse")

		return res, fmt.Errorf("failed to create farmhouse: %w", err)
	}

	s.invalidate(ctx, farmhouse.ID)
	res.FromModel(farmhouse)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFarmhouseRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".farmhouse.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateFarmhouseRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	if _, err = s.manageable(ctx, id); err != nil {
		return err
	}

	return s.update(ctx, shared.TransformFields(req, shared.Actor(ctx)), id)
}

func (s *serviceImpl) SetActive(ctx context.Context, req dto.UpdateActiveRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".farmhouse.SetActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsActive == nil {
		return failure.BadRequestFromString("is_active is required")
	}

	if _, err = s.manageable(ctx, id); err != nil {
		return err
	}

	return s.update(ctx, shared.TransformFields(req, shared.Actor(ctx)), id)
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest, id string) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".farmhouse.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.manageable(ctx, id); err != nil {
		return res, err
	}

	data, err := io.ReadAll(io.LimitReader(req.File, dto.MaxImageSize+1))
	if err != nil {
		log.Error().Err(err).Str("file", req.FileName).Msg("failed to read image")

		return res, fmt.Errorf("failed to read image: %w", err)
	}

	if len(data) > dto.MaxImageSize {
		return res, failure.BadRequestFromString("image must not exceed 2MB")
	}

	fileName := uuid.NewString() + strings.ToLower(filepath.Ext(req.FileName))

	url, err := s.s3.UploadFileBytes(ctx, path.Join(model.TableName, id), fileName, req.ContentType, data)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to upload farmhouse image")

		return res, fmt.Errorf("failed to upload farmhouse image: %w", err)
	}

	images, err := s.repo.AppendImage(ctx, id, url, shared.Actor(ctx))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to attach farmhouse image")

		// the row did not take the url, so the object would be orphaned
		if delErr := s.s3.DeleteFile(context.WithoutCancel(ctx), url); delErr != nil {
			log.Error().Err(delErr).Str("url", url).Msg("failed to remove orphaned image")
		}

		if errors.Is(err, sql.ErrNoRows) {
			return res, failure.NotFound("farmhouse not found")
		}

		return res, fmt.Errorf("failed to attach farmhouse image: %w", err)
	}

	s.invalidate(ctx, id)

	res.URL = url
	res.Images = images

	return res, nil
}

func (s *serviceImpl) DeleteImage(ctx context.Context, id, url string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".farmhouse.DeleteImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if url == "" {
		return failure.BadRequestFromString("url is required")
	}

	farmhouse, err := s.manageable(ctx, id)
	if err != nil {
		return err
	}

	if !slices.Contains(farmhouse.Images, url) {
		return failure.NotFound("image not found")
	}

	if _, err = s.repo.RemoveImage(ctx, id, url, shared.Actor(ctx)); err != nil {
		// removed by a concurrent request
		if errors.Is(err, sql.ErrNoRows) {
			return failure.NotFound("image not found")
		}

		log.Error().Err(err).Str("id", id).Msg("failed to detach farmhouse image")

		return fmt.Errorf("failed to detach farmhouse image: %w", err)
	}

	s.invalidate(ctx, id)

	if err = s.s3.DeleteFile(ctx, url); err != nil {
		// the listing no longer references it, a leftover object is harmless
		log.Warn().Err(err).Str("url", url).Msg("failed to delete image from S3")
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string, hard bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".farmhouse.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if hard && shared.Role(ctx) != constant.RoleAdmin {
		return failure.Forbidden("only admins can permanently delete farmhouses")
	}

	farmhouse, err := s.manageable(ctx, id)
	if err != nil {
		return err
	}

	if !hard {
		inactive := false

		return s.update(ctx, shared.TransformFields(dto.UpdateActiveRequest{IsActive: &inactive}, shared.Actor(ctx)), id)
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return failure.Conflict("farmhouse has bookings, deactivate it instead")
		}

		log.Error().Err(err).Str("id", id).Msg("failed to delete farmhouse")

		return fmt.Errorf("failed to delete farmhouse: %w", err)
	}

	s.invalidate(ctx, id)

	go func() {
		c := context.WithoutCancel(ctx)

		for _, url := range farmhouse.Images {
			if err := s.s3.DeleteFile(c, url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("failed to delete image from S3")
			}
		}
	}()

	return nil
}

// manageable loads the farmhouse and checks the caller owns it or is an admin.
func (s *serviceImpl) manageable(ctx context.Context, id string) (model.Farmhouse, error) {
	farmhouse, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get farmhouse")

		return farmhouse, fmt.Errorf("failed to get farmhouse: %w", err)
	}

	if farmhouse.ID == "" {
		return farmhouse, failure.NotFound("farmhouse not found")
	}

	if !canManage(ctx, farmhouse.OwnerID) {
		return farmhouse, failure.Forbidden("you do not manage this farmhouse")
	}

	return farmhouse, nil
}

func canManage(ctx context.Context, ownerID string) bool {
	return shared.Role(ctx) == constant.RoleAdmin || (ownerID != "" && ownerID == shared.Actor(ctx))
}

func (s *serviceImpl) update(ctx context.Context, fields map[string]any, id string) error {
	if err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			return failure.NotFound("farmhouse not found")
		}

		log.Error().Err(err).Str("id", id).Msg("failed to update farmhouse")

		return fmt.Errorf("failed to update farmhouse: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetFarmhouse, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete farmhouse from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllFarmhouse)
		shared.InvalidateCaches(c, s.cache, cacheCountFarmhouse)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixDashboard)
	}()
}
