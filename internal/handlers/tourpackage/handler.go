package tourpackage

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"taghazout/infras/otel"
	"taghazout/internal/catalog"
	"taghazout/internal/domains/tourpackage/service"
	"taghazout/shared/constant"
	"taghazout/shared/i18n"
	"taghazout/transport/http/response"
)

type Handler struct {
	service service.Package
	otel    otel.Otel
}

func New(service service.Package, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/packages", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPackages)
		routerGroup.Get("/{slug}", handler.GetPackage)
	})
}

// GetPackages retrieves the filtered, sorted and paginated package catalog.
// @Summary Get packages
// @Tags Package
// @Produce json
// @Param q query string false "Free text"
// @Param category query string false "Category, or all"
// @Param location query string false "Location substring, or all"
// @Param sort query string false "featured | rating | price | newest"
// @Param lang query string false "en | fr | ar"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Data[dto.GetPackagesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/packages [get]
func (handler *Handler) GetPackages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackages")
	defer scope.End()

	query := catalog.ParseQuery(r, i18n.FromContext(ctx).Lang)

	packages, err := handler.service.GetAll(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get packages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, packages)
}

// GetPackage retrieves a package by slug.
// @Summary Get a package
// @Tags Package
// @Produce json
// @Param slug path string true "Package slug"
// @Param lang query string false "en | fr | ar"
// @Success 200 {object} response.Data[dto.PackageResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{slug} [get]
func (handler *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackage")
	defer scope.End()

	pkg, err := handler.service.GetBySlug(ctx, chi.URLParam(r, constant.RequestParamSlug))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, pkg)
}
