package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"farmstay/config"
	"farmstay/infras/otel"
	bookingDto "farmstay/internal/domains/booking/model/dto"
	bookingRepo "farmstay/internal/domains/booking/repository"
	requestDto "farmstay/internal/domains/bookingrequest/model/dto"
	requestRepo "farmstay/internal/domains/bookingrequest/repository"
	"farmstay/internal/domains/dashboard/model/dto"
	farmhouseRepo "farmstay/internal/domains/farmhouse/repository"
	userRepo "farmstay/internal/domains/user/repository"
	"farmstay/shared"
	"farmstay/shared/cache"
	"farmstay/shared/constant"
	"farmstay/shared/failure"
	"farmstay/shared/timezone"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Dashboard interface {
	Owner(ctx context.Context) (dto.OwnerDashboardResponse, error)
	Admin(ctx context.Context) (dto.AdminDashboardResponse, error)
}

type serviceImpl struct {
	users      userRepo.User
	farmhouses farmhouseRepo.Farmhouse
	bookings   bookingRepo.Booking
	requests   requestRepo.BookingRequest
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(users userRepo.User, farmhouses farmhouseRepo.Farmhouse, bookings bookingRepo.Booking, requests requestRepo.BookingRequest,
	cfg *config.Config, cache cache.RedisCache, otel otel.Otel,
) Dashboard {
	return &serviceImpl{
		users:      users,
		farmhouses: farmhouses,
		bookings:   bookings,
		requests:   requests,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Owner summarises the caller's farmhouses and the bookings on them.
func (s *serviceImpl) Owner(ctx context.Context) (res dto.OwnerDashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Owner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.Actor(ctx)
	if actor == constant.ContextGuest {
		return res, failure.Unauthorized("authentication required")
	}

	cacheKey := shared.BuildCacheKey(constant.CacheKeyDashboardOwner, actor)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		res.Farmhouses, err = s.listings(groupCtx, actor)

		return err
	})

	group.Go(func() (err error) {
		res.Bookings, err = s.bookings.CountByStatus(groupCtx, dto.BookingFilter(actor))
		if err != nil {
			log.Error().Err(err).Str("owner", actor).Msg("failed to count bookings by status")

			return fmt.Errorf("failed to count bookings by status: %w", err)
		}

		return nil
	})

	group.Go(func() (err error) {
		res.Revenue, err = s.revenue(groupCtx, actor)

		return err
	})

	group.Go(func() error {
		upcoming, err := s.bookings.GetAll(groupCtx, dto.UpcomingParams(), dto.UpcomingFilter(actor, timezone.Today()))
		if err != nil {
			log.Error().Err(err).Str("owner", actor).Msg("failed to get upcoming check-ins")

			return fmt.Errorf("failed to get upcoming check-ins: %w", err)
		}

		res.UpcomingCheckIns = make([]bookingDto.BookingResponse, len(upcoming))
		for i, booking := range upcoming {
			res.UpcomingCheckIns[i].FromModel(booking)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return dto.OwnerDashboardResponse{}, err
	}

	s.save(ctx, cacheKey, res)

	return res, nil
}

// Admin summarises the whole platform.
func (s *serviceImpl) Admin(ctx context.Context) (res dto.AdminDashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Admin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if shared.Role(ctx) != constant.RoleAdmin {
		return res, failure.Forbidden("admin only")
	}

	if err = s.cache.Get(ctx, constant.CacheKeyDashboardAdmin, &res); err == nil {
		return res, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		users, err := s.users.CountByRole(groupCtx)
		if err != nil {
			log.Error().Err(err).Msg("failed to count users by role")

			return fmt.Errorf("failed to count users by role: %w", err)
		}

		res.Users = dto.UsersByRole(users)

		return nil
	})

	group.Go(func() (err error) {
		res.Farmhouses, err = s.listings(groupCtx, "")

		return err
	})

	group.Go(func() (err error) {
		res.Bookings, err = s.bookings.CountByStatus(groupCtx, dto.BookingFilter(""))
		if err != nil {
			log.Error().Err(err).Msg("failed to count bookings by status")

			return fmt.Errorf("failed to count bookings by status: %w", err)
		}

		return nil
	})

	group.Go(func() (err error) {
		res.Revenue, err = s.revenue(groupCtx, "")

		return err
	})

	group.Go(func() (err error) {
		res.OpenBookingRequests, err = s.requests.Count(groupCtx, requestDto.OpenFilter())
		if err != nil {
			log.Error().Err(err).Msg("failed to count open booking requests")

			return fmt.Errorf("failed to count open booking requests: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	s.save(ctx, constant.CacheKeyDashboardAdmin, res)

	return res, nil
}

func (s *serviceImpl) listings(ctx context.Context, ownerID string) (res dto.ListingStats, err error) {
	if res.Total, err = s.farmhouses.Count(ctx, dto.ListingFilter(ownerID, false)); err != nil {
		log.Error().Err(err).Str("owner", ownerID).Msg("failed to count farmhouses")

		return res, fmt.Errorf("failed to count farmhouses: %w", err)
	}

	if res.Active, err = s.farmhouses.Count(ctx, dto.ListingFilter(ownerID, true)); err != nil {
		log.Error().Err(err).Str("owner", ownerID).Msg("failed to count active farmhouses")

		return res, fmt.Errorf("failed to count active farmhouses: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) revenue(ctx context.Context, ownerID string) (float64, error) {
	var revenue float64

	if err := s.bookings.Scalar(ctx, &revenue, dto.RevenueQuery, dto.RevenueFilter(ownerID)); err != nil {
		log.Error().Err(err).Str("owner", ownerID).Msg("failed to sum revenue")

		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return revenue, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to save dashboard to cache")
		}
	}()
}
