//go:build wireinject
// +build wireinject

package di

import (
	"farmstay/config"
	"farmstay/infras/jwt"
	"farmstay/infras/kafka"
	"farmstay/infras/oauth"
	"farmstay/infras/otel"
	"farmstay/infras/postgres"
	"farmstay/infras/redis"
	"farmstay/infras/s3"
	"farmstay/permissions"
	"farmstay/shared/cache"
	"farmstay/transport/http"
	"farmstay/transport/http/middleware"
	"farmstay/transport/http/router"
	"farmstay/transport/worker"

	"github.com/google/wire"

	authService "farmstay/internal/domains/auth/service"
	bookingRepository "farmstay/internal/domains/booking/repository"
	bookingService "farmstay/internal/domains/booking/service"
	bookingRequestRepository "farmstay/internal/domains/bookingrequest/repository"
	bookingRequestService "farmstay/internal/domains/bookingrequest/service"
	dashboardService "farmstay/internal/domains/dashboard/service"
	farmhouseRepository "farmstay/internal/domains/farmhouse/repository"
	farmhouseService "farmstay/internal/domains/farmhouse/service"
	siteSettingRepository "farmstay/internal/domains/sitesetting/repository"
	siteSettingService "farmstay/internal/domains/sitesetting/service"
	userRepository "farmstay/internal/domains/user/repository"
	userService "farmstay/internal/domains/user/service"

	authHandler "farmstay/internal/handlers/auth"
	bookingHandler "farmstay/internal/handlers/booking"
	bookingRequestHandler "farmstay/internal/handlers/bookingrequest"
	dashboardHandler "farmstay/internal/handlers/dashboard"
	farmhouseHandler "farmstay/internal/handlers/farmhouse"
	siteSettingHandler "farmstay/internal/handlers/sitesetting"
	userHandler "farmstay/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	oauth.NewGoogle,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Bind(new(middleware.Revocation), new(authService.Auth)),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var farmhouseDomain = wire.NewSet(
	farmhouseRepository.New,
	farmhouseService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var bookingRequestDomain = wire.NewSet(
	bookingRequestRepository.New,
	bookingRequestService.New,
)

var siteSettingDomain = wire.NewSet(
	siteSettingRepository.New,
	siteSettingService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	farmhouseDomain,
	bookingDomain,
	bookingRequestDomain,
	siteSettingDomain,
	dashboardDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	farmhouseHandler.New,
	bookingHandler.New,
	bookingRequestHandler.New,
	siteSettingHandler.New,
	dashboardHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		worker.New,
	)

	return &worker.Worker{}
}
