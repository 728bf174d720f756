package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"taghazout/infras/otel"
	"taghazout/internal/catalog"
	"taghazout/internal/domains/blog/service"
	"taghazout/shared/constant"
	"taghazout/shared/i18n"
	"taghazout/transport/http/response"
)

type Handler struct {
	service service.Blog
	otel    otel.Otel
}

func New(service service.Blog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/blog", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPosts)
		routerGroup.Get("/{slug}", handler.GetPost)
	})
}

// GetPosts retrieves blog posts, newest first.
// @Summary Get blog posts
// @Tags Blog
// @Produce json
// @Param q query string false "Free text matched against title and excerpt"
// @Param category query string false "Category, or all"
// @Param lang query string false "en | fr | ar"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Data[dto.GetPostsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/blog [get]
func (handler *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPosts")
	defer scope.End()

	posts, err := handler.service.GetAll(ctx, catalog.ParseQuery(r, i18n.FromContext(ctx).Lang))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get posts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, posts)
}

// GetPost retrieves a blog post by slug.
// @Summary Get a blog post
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Param lang query string false "en | fr | ar"
// @Success 200 {object} response.Data[dto.PostResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blog/{slug} [get]
func (handler *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPost")
	defer scope.End()

	post, err := handler.service.GetBySlug(ctx, chi.URLParam(r, constant.RequestParamSlug))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, post)
}
