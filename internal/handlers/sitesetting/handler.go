package sitesetting

import (
	"farmstay/infras/otel"
	"farmstay/internal/domains/sitesetting/model/dto"
	"farmstay/internal/domains/sitesetting/service"
	"farmstay/shared/constant"
	"farmstay/shared/validator"
	"farmstay/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.SiteSetting
	otel    otel.Otel
}

func New(service service.SiteSetting, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/site-settings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSiteSettings)
		routerGroup.Get("/{key}", handler.GetSiteSetting)
		routerGroup.Put("/{key}", handler.UpsertSiteSetting)
		routerGroup.Delete("/{key}", handler.DeleteSiteSetting)
	})
}

// GetSiteSettings returns every setting.
// @Summary List site settings
// @Tags SiteSetting
// @Produce json
// @Success 200 {object} response.Data[dto.SettingsResponse] "Key to value map"
// @Router /v1/site-settings [get]
func (handler *Handler) GetSiteSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSiteSettings")
	defer scope.End()

	settings, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get site settings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, settings)
}

// GetSiteSetting returns one setting.
// @Summary Get a site setting
// @Tags SiteSetting
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} response.Data[dto.SiteSettingResponse] "Setting"
// @Failure 404 {object} response.Error
// @Router /v1/site-settings/{key} [get]
func (handler *Handler) GetSiteSetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSiteSetting")
	defer scope.End()

	setting, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamKey))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get site setting")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, setting)
}

// UpsertSiteSetting creates or replaces a setting.
// @Summary Create or replace a site setting
// @Tags SiteSetting
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param request body dto.UpsertRequest true "Setting value"
// @Success 200 {object} response.Data[dto.SiteSettingResponse] "Setting saved"
// @Failure 400 {object} response.Error
// @Router /v1/site-settings/{key} [put]
// @Security BearerAuth
func (handler *Handler) UpsertSiteSetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertSiteSetting")
	defer scope.End()

	req := dto.UpsertRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	setting, err := handler.service.Upsert(ctx, chi.URLParam(r, constant.RequestParamKey), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save site setting")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, setting)
}

// DeleteSiteSetting removes a setting.
// @Summary Delete a site setting
// @Tags SiteSetting
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} response.Message "Site setting deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/site-settings/{key} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSiteSetting(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSiteSetting")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamKey)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete site setting")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Site setting deleted successfully")
}
