package bookingrequest

import (
	"farmstay/infras/otel"
	"farmstay/internal/domains/bookingrequest/model"
	"farmstay/internal/domains/bookingrequest/model/dto"
	"farmstay/internal/domains/bookingrequest/service"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"farmstay/shared/validator"
	"farmstay/transport/http/middleware"
	"farmstay/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.BookingRequest
	otel    otel.Otel
	app     middleware.AppMiddleware
}

func New(service service.BookingRequest, otel otel.Otel, app middleware.AppMiddleware) Handler {
	return Handler{
		service: service,
		otel:    otel,
		app:     app,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/booking-requests", func(routerGroup chi.Router) {
		routerGroup.With(handler.app.RateLimit()).Post("/", handler.CreateBookingRequest)
		routerGroup.Get("/", handler.GetBookingRequests)
		routerGroup.Patch("/{id}", handler.UpdateBookingRequest)
		routerGroup.Delete("/{id}", handler.DeleteBookingRequest)
	})
}

// CreateBookingRequest records an enquiry from a visitor who has no account.
// @Summary Submit a booking request
// @Tags BookingRequest
// @Accept json
// @Produce json
// @Param request body dto.CreateRequest true "Booking request"
// @Success 201 {object} response.Data[dto.BookingRequestResponse] "Booking request received"
// @Failure 400 {object} response.Error
// @Failure 429 {object} response.Message
// @Router /v1/booking-requests [post]
func (handler *Handler) CreateBookingRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBookingRequest")
	defer scope.End()

	req := dto.CreateRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	bookingRequest, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking request")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, bookingRequest)
}

// GetBookingRequests lists enquiries.
// @Summary List booking requests
// @Tags BookingRequest
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "new, contacted, converted or closed"
// @Param search query string false "Name, email or phone substring"
// @Success 200 {object} response.Data[dto.GetBookingRequestsResponse] "List of booking requests"
// @Failure 403 {object} response.Error
// @Router /v1/booking-requests [get]
// @Security BearerAuth
func (handler *Handler) GetBookingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingRequests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	bookingRequests, err := handler.service.GetAll(ctx, queryParams, dto.Filter(query.Get(model.FieldStatus), query.Get(constant.RequestParamSearch)))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking requests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookingRequests)
}

// UpdateBookingRequest changes the follow-up status.
// @Summary Update booking request status
// @Tags BookingRequest
// @Accept json
// @Produce json
// @Param id path string true "Booking request ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} response.Message "Booking request updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/booking-requests/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookingRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingRequest")
	defer scope.End()

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking request")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking request updated successfully")
}

// DeleteBookingRequest removes an enquiry.
// @Summary Delete a booking request
// @Tags BookingRequest
// @Produce json
// @Param id path string true "Booking request ID"
// @Success 200 {object} response.Message "Booking request deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/booking-requests/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBookingRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBookingRequest")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking request")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking request deleted successfully")
}
