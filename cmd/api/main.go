package main

import (
	"github.com/rs/zerolog/log"

	"taghazout/config"
	"taghazout/di"
	"taghazout/helper"
	"taghazout/shared/constant"
	"taghazout/shared/logger"
)

//	@title						Taghazout API
//	@version					1.0
//	@description				Catalog, blog and booking API for the Taghazout surf and travel site.
//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-API-Key
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if cfg.DB.Postgres.AutoMigrate && cfg.Catalog.Source == constant.CatalogSourcePostgres {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
	}

	http, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	http.Serve()
}
