package farmhouse

import (
	"farmstay/infras/otel"
	"farmstay/internal/domains/farmhouse/model"
	"farmstay/internal/domains/farmhouse/model/dto"
	"farmstay/internal/domains/farmhouse/service"
	"farmstay/shared"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"farmstay/shared/failure"
	"farmstay/shared/validator"
	"farmstay/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryMinPrice = "min_price"
	queryMaxPrice = "max_price"
	queryGuests   = "guests"
	queryAmenity  = "amenity"
	queryHard     = "hard"
	queryURL      = "url"
)

type Handler struct {
	service service.Farmhouse
	otel    otel.Otel
}

func New(service service.Farmhouse, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/farmhouses", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.SearchFarmhouses)
		routerGroup.Post("/", handler.CreateFarmhouse)
		routerGroup.Get("/mine", handler.GetMyFarmhouses)
		routerGroup.Get("/{id}", handler.GetFarmhouseByID)
		routerGroup.Get("/{id}/availability", handler.GetAvailability)
		routerGroup.Patch("/{id}", handler.UpdateFarmhouse)
		routerGroup.Patch("/{id}/active", handler.SetActive)
		routerGroup.Post("/{id}/images", handler.UploadImage)
		routerGroup.Delete("/{id}/images", handler.DeleteImage)
		routerGroup.Delete("/{id}", handler.DeleteFarmhouse)
	})

	router.Get("/admin/farmhouses", handler.GetAllFarmhouses)
}

// SearchFarmhouses lists active farmhouses.
// @Summary Search farmhouses
// @Description Public search over active listings with filters, sorting and pagination.
// @Tags Farmhouse
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Substring of name, location or description"
// @Param location query string false "Location substring"
// @Param min_price query number false "Minimum price per night"
// @Param max_price query number false "Maximum price per night"
// @Param guests query int false "Minimum guest capacity"
// @Param bedrooms query int false "Minimum bedrooms"
// @Param amenity query string false "Required amenity"
// @Success 200 {object} response.Data[dto.GetFarmhousesResponse] "List of farmhouses"
// @Failure 500 {object} response.Error
// @Router /v1/farmhouses [get]
func (handler *Handler) SearchFarmhouses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchFarmhouses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	filterGroup := dto.SearchFilter(dto.SearchQuery{
		Search:   query.Get(constant.RequestParamSearch),
		Location: query.Get(model.FieldLocation),
		MinPrice: query.Get(queryMinPrice),
		MaxPrice: query.Get(queryMaxPrice),
		Guests:   query.Get(queryGuests),
		Bedrooms: query.Get(model.FieldBedrooms),
		Amenity:  query.Get(queryAmenity),
	})

	farmhouses, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search farmhouses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, farmhouses)
}

// GetAllFarmhouses lists every farmhouse for admins.
// @Summary List all farmhouses
// @Tags Farmhouse
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param owner_id query string false "Filter by owner"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetFarmhousesResponse] "List of farmhouses"
// @Failure 403 {object} response.Error
// @Router /v1/admin/farmhouses [get]
// @Security BearerAuth
func (handler *Handler) GetAllFarmhouses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllFarmhouses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	farmhouses, err := handler.service.GetAll(ctx, queryParams, dto.AdminFilter(query.Get(model.FieldOwnerID), query.Get(model.FieldIsActive)))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get farmhouses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, farmhouses)
}

// GetMyFarmhouses lists the caller's farmhouses.
// @Summary List my farmhouses
// @Tags Farmhouse
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetFarmhousesResponse] "List of farmhouses"
// @Failure 401 {object} response.Error
// @Router /v1/farmhouses/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyFarmhouses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyFarmhouses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	farmhouses, err := handler.service.Mine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own farmhouses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, farmhouses)
}

// GetFarmhouseByID returns one farmhouse.
// @Summary Get a farmhouse by ID
// @Tags Farmhouse
// @Produce json
// @Param id path string true "Farmhouse ID"
// @Success 200 {object} response.Data[dto.FarmhouseResponse] "Farmhouse details"
// @Failure 404 {object} response.Error
// @Router /v1/farmhouses/{id} [get]
func (handler *Handler) GetFarmhouseByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFarmhouseByID")
	defer scope.End()

	farmhouse, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get farmhouse by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, farmhouse)
}

// GetAvailability returns the booked ranges of a farmhouse.
// @Summary Get farmhouse availability
// @Description Non-cancelled stays overlapping the window, defaulting to the next year from today.
// @Tags Farmhouse
// @Produce json
// @Param id path string true "Farmhouse ID"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Booked ranges"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/farmhouses/{id}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	query := r.URL.Query()

	availability, err := handler.service.Availability(ctx, chi.URLParam(r, constant.RequestParamID), query.Get(constant.RequestParamFrom), query.Get(constant.RequestParamTo))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, availability)
}

// CreateFarmhouse adds a listing.
// @Summary Create a farmhouse
// @Description Owners create listings for themselves, admins may pass owner_id.
// @Tags Farmhouse
// @Accept json
// @Produce json
// @Param request body dto.CreateFarmhouseRequest true "Create Farmhouse Request"
// @Success 201 {object} response.Data[dto.FarmhouseResponse] "Farmhouse created"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/farmhouses [post]
// @Security BearerAuth
func (handler *Handler) CreateFarmhouse(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFarmhouse")
	defer scope.End()

	req := dto.CreateFarmhouseRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	farmhouse, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create farmhouse")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Farmhouse created successfully")

	response.WithJSON(w, http.StatusCreated, farmhouse)
}

// UpdateFarmhouse edits a listing.
// @Summary Update a farmhouse
// @Tags Farmhouse
// @Accept json
// @Produce json
// @Param id path string true "Farmhouse ID"
// @Param request body dto.UpdateFarmhouseRequest true "Update Farmhouse Request"
// @Success 200 {object} response.Message "Farmhouse updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/farmhouses/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateFarmhouse(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFarmhouse")
	defer scope.End()

	req := dto.UpdateFarmhouseRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update farmhouse")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Farmhouse updated successfully")
}

// SetActive flips the active flag.
// @Summary Activate or deactivate a farmhouse
// @Tags Farmhouse
// @Accept json
// @Produce json
// @Param id path string true "Farmhouse ID"
// @Param request body dto.UpdateActiveRequest true "Active flag"
// @Success 200 {object} response.Message "Farmhouse updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/farmhouses/{id}/active [patch]
// @Security BearerAuth
func (handler *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetActive")
	defer scope.End()

	req := dto.UpdateActiveRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetActive(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set farmhouse active flag")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Farmhouse updated successfully")
}

// UploadImage stores a photo and appends it to the listing.
// @Summary Upload a farmhouse image
// @Tags Farmhouse
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Farmhouse ID"
// @Param file formData file true "PNG or JPEG up to 2MB"
// @Success 201 {object} response.Data[dto.UploadImageResponse] "Image uploaded"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/farmhouses/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	r.Body = http.MaxBytesReader(w, r.Body, constant.RequestMaxMemory)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read form file")

		response.WithError(w, failure.BadRequestFromString("file is required"))

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{}
	req.FromFileHeader(file, fileHeader)

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadImage(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload farmhouse image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// DeleteImage removes one photo from the listing and storage.
// @Summary Delete a farmhouse image
// @Tags Farmhouse
// @Produce json
// @Param id path string true "Farmhouse ID"
// @Param url query string true "Image URL"
// @Success 200 {object} response.Message "Image deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/farmhouses/{id}/images [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	if err := handler.service.DeleteImage(ctx, chi.URLParam(r, constant.RequestParamID), r.URL.Query().Get(queryURL)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete farmhouse image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Image deleted successfully")
}

// DeleteFarmhouse deactivates a listing, or removes it with hard=true.
// @Summary Delete a farmhouse
// @Tags Farmhouse
// @Produce json
// @Param id path string true "Farmhouse ID"
// @Param hard query bool false "Remove the row (admin only)"
// @Success 200 {object} response.Message "Farmhouse deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/farmhouses/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFarmhouse(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFarmhouse")
	defer scope.End()

	hard := shared.ConvertStringToBool(r.URL.Query().Get(queryHard))

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID), hard != nil && *hard); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete farmhouse")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Farmhouse deleted successfully")
}
