package handler

import (
	"net/http"

	"taghazout/config"
	"taghazout/di"
	"taghazout/shared/logger"
	"taghazout/transport/http/response"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.Init(cfg)

	handler, err := di.InitializeService()
	if err != nil {
		response.WithError(w, err)

		return
	}

	handler.ServeHTTP(w, r)
}
