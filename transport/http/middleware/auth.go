package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/rs/zerolog/log"

	"taghazout/config"
	"taghazout/infras/otel"
	"taghazout/shared/constant"
	"taghazout/transport/http/response"
)

// Auth guards the dashboard routes.
type Auth interface {
	APIKey(http.Handler) http.Handler
	Identify(http.Handler) http.Handler
}

type authImpl struct {
	otel otel.Otel
	cfg  *config.Config
}

func NewAuth(otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		otel: otel,
		cfg:  cfg,
	}
}

// APIKey rejects requests whose X-API-Key does not match the configured key.
// An empty configured key locks the dashboard entirely. On success the caller
// is identified by a short fingerprint of the key, recorded as created_by.
func (m *authImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if !m.valid(apiKey) {
			scope.SetAttribute("http.source", "client")
			scope.End()

			log.Warn().Str("path", request.URL.Path).Msg("rejected dashboard request")
			response.WithUnauthorized(writer)

			return
		}

		scope.SetAttribute("http.source", "dashboard")
		scope.End()

		ctx = context.WithValue(ctx, constant.ContextKeyClientID, fingerprint(apiKey))

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Identify marks requests carrying a valid API key without rejecting the rest,
// so public routes can widen what they show to the dashboard.
func (m *authImpl) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" || !m.valid(apiKey) {
			next.ServeHTTP(writer, request)

			return
		}

		ctx := context.WithValue(request.Context(), constant.ContextKeyClientID, fingerprint(apiKey))

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authImpl) valid(apiKey string) bool {
	expected := m.cfg.App.APIKey

	return expected != "" && subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) == 1
}

func fingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))

	return "key:" + hex.EncodeToString(sum[:4])
}
