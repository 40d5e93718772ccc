package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"farmstay/config"
	"farmstay/infras/kafka"
	"farmstay/infras/metrics"
	"farmstay/infras/otel"
	"farmstay/internal/domains/booking/model"
	"farmstay/internal/domains/booking/model/dto"
	"farmstay/internal/domains/booking/repository"
	farmhouseModel "farmstay/internal/domains/farmhouse/model"
	farmhouseRepo "farmstay/internal/domains/farmhouse/repository"
	"farmstay/shared"
	"farmstay/shared/cache"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"farmstay/shared/event"
	"farmstay/shared/failure"
	gRepo "farmstay/shared/repository"
	"farmstay/shared/timezone"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	// GetAll is the unrestricted listing. Owner and guest views go through Owner and Mine.
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Mine(ctx context.Context, req gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	Owner(ctx context.Context, req gDto.QueryParams, query dto.FilterQuery) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
	// Export renders the bookings visible to the caller as an xlsx workbook.
	Export(ctx context.Context, query dto.FilterQuery) (dto.ExportResponse, error)
}

type serviceImpl struct {
	repo          repository.Booking
	farmhouseRepo farmhouseRepo.Farmhouse
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
	kafka         kafka.Client
}

func New(repo repository.Booking, farmhouseRepo farmhouseRepo.Farmhouse, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:          repo,
		farmhouseRepo: farmhouseRepo,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
		kafka:         kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.Actor(ctx)
	if actor == constant.ContextGuest {
		return res, failure.Unauthorized("authentication required")
	}

	stay, err := req.ParseStay()
	if err != nil {
		return res, failure.BadRequestFromString("check_in and check_out must be YYYY-MM-DD dates")
	}

	if !stay.CheckOut.After(stay.CheckIn) {
		return res, failure.BadRequestFromString("check_out must be after check_in")
	}

	if stay.CheckIn.Before(timezone.Today()) {
		return res, failure.BadRequestFromString("check_in cannot be in the past")
	}

	var booking model.Booking

	err = s.repo.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		// the row lock serialises concurrent bookings of the same farmhouse
		farmhouse, err := s.farmhouseRepo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(req.FarmhouseID, farmhouseModel.FieldID, farmhouseModel.TableName))
		if err != nil {
			log.Error().Err(err).Str("farmhouse", req.FarmhouseID).Msg("failed to lock farmhouse")

			return fmt.Errorf("failed to lock farmhouse: %w", err)
		}

		if farmhouse.ID == "" {
			return failure.NotFound("farmhouse not found")
		}

		if !farmhouse.IsActive {
			return failure.BadRequestFromString("farmhouse is not accepting bookings")
		}

		if req.Guests > farmhouse.MaxGuests {
			return failure.BadRequestFromString(fmt.Sprintf("farmhouse hosts at most %d guests", farmhouse.MaxGuests))
		}

		overlap, err := s.repo.ExistTx(ctx, sqltx, dto.OverlapFilter(farmhouse.ID, stay))
		if err != nil {
			log.Error().Err(err).Msg("failed to check overlapping bookings")

			return fmt.Errorf("failed to check overlapping bookings: %w", err)
		}

		if overlap {
			return failure.Conflict("farmhouse is already booked for these dates")
		}

		booking = req.ToModel(actor, stay, farmhouse.PricePerNight)
		booking.FarmhouseName = farmhouse.Name
		booking.OwnerID = farmhouse.OwnerID

		if err = s.repo.InsertTx(ctx, sqltx, booking); err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	metrics.IncBooking(booking.Status)
	event.PublishAsync(ctx, s.kafka, s.cfg.Kafka.Topics.Booking, booking.ID, event.TypeBookingCreated, dto.NewEvent(booking, ""))
	s.invalidate(ctx, booking.ID)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sortable(model.TableName, constant.FieldCreatedAt, model.SortableFields...)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Mine(ctx context.Context, req gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Mine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.Actor(ctx)
	if actor == constant.ContextGuest {
		return res, failure.Unauthorized("authentication required")
	}

	return s.GetAll(ctx, req, dto.Filter(dto.FilterQuery{UserID: actor, Status: status}))
}

func (s *serviceImpl) Owner(ctx context.Context, req gDto.QueryParams, query dto.FilterQuery) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Owner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.Actor(ctx)
	if actor == constant.ContextGuest {
		return res, failure.Unauthorized("authentication required")
	}

	query.OwnerID = actor
	query.UserID = ""

	return s.GetAll(ctx, req, dto.Filter(query))
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		booking, err := s.find(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(booking)

		go func() {
			if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	actor := shared.Actor(ctx)
	if shared.Role(ctx) != constant.RoleAdmin && res.UserID != actor && res.OwnerID != actor {
		return dto.BookingResponse{}, failure.NotFound("booking not found")
	}

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if booking.UserID != shared.Actor(ctx) {
		return failure.Forbidden("only the guest can cancel this booking")
	}

	return s.transition(ctx, booking, model.StatusCancelled)
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if shared.Role(ctx) != constant.RoleAdmin && booking.OwnerID != shared.Actor(ctx) {
		return failure.Forbidden("you do not manage this booking")
	}

	return s.transition(ctx, booking, req.Status)
}

// transition moves the booking only if nobody changed its status since it was read.
func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, status string) error {
	if !model.CanTransition(booking.Status, status) {
		return failure.BadRequestFromString(fmt.Sprintf("booking cannot move from %s to %s", booking.Status, status))
	}

	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)
	filter.Add(gDto.Filter{ArgName: "current_status", Field: model.FieldStatus, Value: booking.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	fields := shared.TransformFields(dto.UpdateStatusRequest{Status: status}, shared.Actor(ctx))
	if err := s.repo.Update(ctx, fields, filter); err != nil {
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			return failure.Conflict("booking status changed, reload")
		}

		log.Error().Err(err).Str("id", booking.ID).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	previous := booking.Status
	booking.Status = status

	metrics.IncBooking(status)
	event.PublishAsync(ctx, s.kafka, s.cfg.Kafka.Topics.Booking, booking.ID, event.TypeBookingStatusChanged, dto.NewEvent(booking, previous))
	s.invalidate(ctx, booking.ID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixDashboard)
	}()
}
