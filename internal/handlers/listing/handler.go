package listing

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"taghazout/infras/otel"
	"taghazout/internal/catalog"
	"taghazout/internal/domains/listing/model/dto"
	"taghazout/internal/domains/listing/service"
	"taghazout/shared/constant"
	"taghazout/shared/failure"
	"taghazout/shared/i18n"
	"taghazout/shared/validator"
	"taghazout/transport/http/middleware"
	"taghazout/transport/http/response"
)

type Handler struct {
	service service.Listing
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Listing, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/listings", func(routerGroup chi.Router) {
		routerGroup.With(handler.auth.Identify).Get("/", handler.GetListings)
		routerGroup.Get("/{slug}", handler.GetListing)

		routerGroup.Group(func(dashboard chi.Router) {
			dashboard.Use(handler.auth.APIKey)
			dashboard.Post("/", handler.CreateListing)
			dashboard.Patch("/{id}", handler.UpdateListing)
			dashboard.Delete("/{id}", handler.DeleteListing)
			dashboard.Post("/{id}/images", handler.UploadImage)
		})
	})
}

// GetListings retrieves the filtered, sorted and paginated catalog.
// @Summary Get listings
// @Description Filter by free text, category and location, then sort (featured, rating, price, newest).
// @Tags Listing
// @Produce json
// @Param q query string false "Free text matched against title, description and location"
// @Param category query string false "Category, or all"
// @Param location query string false "Location substring, or all"
// @Param sort query string false "featured | rating | price | newest"
// @Param status query string false "Dashboard only: active, draft, archived or all"
// @Param lang query string false "en | fr | ar"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Data[dto.GetListingsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/listings [get]
func (handler *Handler) GetListings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListings")
	defer scope.End()

	query := catalog.ParseQuery(r, i18n.FromContext(ctx).Lang)

	if _, ok := ctx.Value(constant.ContextKeyClientID).(string); !ok {
		query.Status = ""
	}

	listings, err := handler.service.GetAll(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, listings)
}

// GetListing retrieves a listing by slug.
// @Summary Get a listing
// @Tags Listing
// @Produce json
// @Param slug path string true "Listing slug"
// @Param lang query string false "en | fr | ar"
// @Success 200 {object} response.Data[dto.ListingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{slug} [get]
func (handler *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListing")
	defer scope.End()

	slug := chi.URLParam(r, constant.RequestParamSlug)

	listing, err := handler.service.GetBySlug(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("slug", slug).Msg("failed to get listing")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, listing)
}

// CreateListing handles the creation of a new listing.
// @Summary Create a listing
// @Tags Listing
// @Accept json
// @Produce json
// @Param request body dto.CreateListingRequest true "Create Listing Request"
// @Success 201 {object} response.Data[dto.ListingResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateListing")
	defer scope.End()

	req := dto.CreateListingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	listing, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create listing")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Listing created " + listing.ID)

	response.WithJSON(w, http.StatusCreated, listing)
}

// UpdateListing applies a partial update.
// @Summary Update a listing
// @Tags Listing
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body dto.UpdateListingRequest true "Update Listing Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id} [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateListing")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateListingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update listing")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Listing updated successfully")
}

// DeleteListing removes a listing and its uploaded images.
// @Summary Delete a listing
// @Tags Listing
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteListing")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete listing")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Listing deleted successfully")
}

// UploadImage attaches an image to a listing, either as a multipart file or a base64 data URI.
// @Summary Upload a listing image
// @Tags Listing
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param file formData file false "Image file"
// @Param request body dto.UploadImageRequest false "Base64 image"
// @Success 200 {object} response.Data[dto.ImageResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/listings/{id}/images [post]
// @Security ApiKeyAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UploadImageRequest{}

	if strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData) {
		if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to parse multipart form")

			response.WithError(w, failure.BadRequest(err))

			return
		}

		file, fileHeader, err := r.FormFile(constant.FormFile)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to get file from form")

			response.WithError(w, failure.BadRequest(err))

			return
		}
		defer file.Close()

		req.Image = fileHeader
		req.ImageFile = file

		if err = validator.ValidateStruct(&req); err != nil {
			response.WithError(w, err)

			return
		}
	} else if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadImage(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload listing image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
