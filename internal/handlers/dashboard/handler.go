package dashboard

import (
	"farmstay/infras/otel"
	"farmstay/internal/domains/dashboard/service"
	"farmstay/shared/constant"
	"farmstay/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/owner", handler.GetOwnerDashboard)
		routerGroup.Get("/admin", handler.GetAdminDashboard)
	})
}

// GetOwnerDashboard returns the owner's listing and booking figures.
// @Summary Owner dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.OwnerDashboardResponse] "Owner statistics"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/dashboard/owner [get]
// @Security BearerAuth
func (handler *Handler) GetOwnerDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnerDashboard")
	defer scope.End()

	stats, err := handler.service.Owner(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get owner dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetAdminDashboard returns platform wide figures.
// @Summary Admin dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.AdminDashboardResponse] "Platform statistics"
// @Failure 403 {object} response.Error
// @Router /v1/dashboard/admin [get]
// @Security BearerAuth
func (handler *Handler) GetAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdminDashboard")
	defer scope.End()

	stats, err := handler.service.Admin(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admin dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}
