package i18n

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"taghazout/infras/otel"
	"taghazout/shared/constant"
	"taghazout/shared/failure"
	"taghazout/shared/i18n"
	"taghazout/transport/http/response"
)

// BundleResponse is everything a client needs to render one language.
type BundleResponse struct {
	i18n.Locale
	Strings map[string]string `json:"strings"`
}

type Handler struct {
	translator *i18n.Translator
	otel       otel.Otel
}

func New(translator *i18n.Translator, otel otel.Otel) Handler {
	return Handler{
		translator: translator,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/i18n/{lang}", handler.GetBundle)
}

// GetBundle returns the flattened translation strings and text direction for a language.
// Keys missing from the language are filled from the fallback bundle.
// @Summary Get a translation bundle
// @Tags I18n
// @Produce json
// @Param lang path string true "en | fr | ar"
// @Success 200 {object} response.Data[BundleResponse]
// @Failure 404 {object} response.Error
// @Router /v1/i18n/{lang} [get]
func (handler *Handler) GetBundle(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBundle")
	defer scope.End()

	lang := chi.URLParam(r, constant.RequestParamLang)

	if !i18n.IsSupported(lang) {
		err := failure.NotFound("language not supported")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, BundleResponse{
		Locale:  i18n.NewLocale(lang),
		Strings: handler.translator.Bundle(lang),
	})
}
