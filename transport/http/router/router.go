package router

import (
	"farmstay/internal/handlers/auth"
	"farmstay/internal/handlers/booking"
	"farmstay/internal/handlers/bookingrequest"
	"farmstay/internal/handlers/dashboard"
	"farmstay/internal/handlers/farmhouse"
	"farmstay/internal/handlers/sitesetting"
	"farmstay/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth           auth.Handler
	User           user.Handler
	Farmhouse      farmhouse.Handler
	Booking        booking.Handler
	BookingRequest bookingrequest.Handler
	SiteSetting    sitesetting.Handler
	Dashboard      dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Farmhouse.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.BookingRequest.Router(routerGroup)
		r.DomainHandlers.SiteSetting.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
