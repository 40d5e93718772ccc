package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"farmstay/config"
	"farmstay/infras/kafka"
	"farmstay/infras/otel"
	"farmstay/internal/domains/bookingrequest/model"
	"farmstay/internal/domains/bookingrequest/model/dto"
	"farmstay/internal/domains/bookingrequest/repository"
	"farmstay/shared"
	"farmstay/shared/cache"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"farmstay/shared/event"
	"farmstay/shared/failure"
	gRepo "farmstay/shared/repository"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllBookingRequest = "booking_request:gets"
	cacheCountBookingRequest  = "booking_request:count"
)

type BookingRequest interface {
	Create(ctx context.Context, req dto.CreateRequest) (dto.BookingRequestResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingRequestsResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.BookingRequest
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	kafka kafka.Client
}

func New(repo repository.BookingRequest, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) BookingRequest {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		kafka: kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRequest) (res dto.BookingRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking_request.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, failure.BadRequest(err)
	}

	bookingRequest := req.ToModel(checkIn, checkOut, shared.Actor(ctx))

	if err = s.repo.Insert(ctx, bookingRequest); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return res, failure.BadRequestFromString("farmhouse does not exist")
		}

		log.Error().Err(err).Msg("failed to create booking request")

		return res, fmt.Errorf("failed to create booking request: %w", err)
	}

	event.PublishAsync(ctx, s.kafka, s.cfg.Kafka.Topics.BookingRequest, bookingRequest.ID, event.TypeBookingRequestCreated, dto.NewEvent(bookingRequest))
	s.invalidate(ctx)

	res.FromModel(bookingRequest)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingRequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking_request.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sortable(model.TableName, constant.FieldCreatedAt, model.SortableFields...)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBookingRequest, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking requests")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking requests")

		return res, fmt.Errorf("failed to get booking requests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking requests to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBookingRequest, gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count booking requests")

		return res, fmt.Errorf("failed to count booking requests: %w", err)
	}

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking request count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking_request.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.exist(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.Actor(ctx)), filter); err != nil {
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			return failure.NotFound("booking request not found")
		}

		log.Error().Err(err).Str("id", id).Msg("failed to update booking request")

		return fmt.Errorf("failed to update booking request: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking_request.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.exist(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking request")

		return fmt.Errorf("failed to delete booking request: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) exist(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking request exists")

		return fmt.Errorf("failed to check if booking request exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking request not found")
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBookingRequest)
		shared.InvalidateCaches(c, s.cache, cacheCountBookingRequest)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixDashboard)
	}()
}
