package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// PostgresEndpoint holds the coordinates of a single database pool.
type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name            string `envconfig:"APP_NAME"`
		Timezone        string `envconfig:"TIMEZONE"`
		DefaultLanguage string `envconfig:"DEFAULT_LANGUAGE"`
		CORS            struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Catalog struct {
		// Source selects the catalog backend: "memory" serves the embedded seed data, "postgres" the database.
		Source             string `envconfig:"SOURCE"`
		SimulatedDelayMS   int    `envconfig:"SIMULATED_DELAY_MS"`
		APIBaseURL         string `envconfig:"API_BASE_URL"`
		APIKey             string `envconfig:"API_KEY"`
		APIRequestsPerSec  int    `envconfig:"API_REQUESTS_PER_SEC"`
		IngestWorkers      int    `envconfig:"INGEST_WORKERS"`
		IngestPageSize     int    `envconfig:"INGEST_PAGE_SIZE"`
		MaxPageLimit       int    `envconfig:"MAX_PAGE_LIMIT"`
		ImageMaxSizeMB     int    `envconfig:"IMAGE_MAX_SIZE_MB"`
		ImageUploadEnabled bool   `envconfig:"IMAGE_UPLOAD_ENABLED"`
	} `envconfig:"CATALOG"`

	Payment struct {
		MaxRetries      int    `envconfig:"MAX_RETRIES"`
		RetryWaitMS     int    `envconfig:"RETRY_WAIT_MS"`
		TimeoutSeconds  int    `envconfig:"TIMEOUT_SECONDS"`
		SimulatedLagMS  int    `envconfig:"SIMULATED_LAG_MS"`
		DefaultCurrency string `envconfig:"DEFAULT_CURRENCY"`
	} `envconfig:"PAYMENT"`

	Cache struct {
		Enable bool `envconfig:"ENABLE"`
		Redis  struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	DB struct {
		Postgres struct {
			MaxRetry       int              `envconfig:"MAX_RETRY"`
			RetryWaitTime  int              `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string           `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool             `envconfig:"AUTO_MIGRATE"`
			Prefix         string           `envconfig:"PREFIX"`
			Read           PostgresEndpoint `envconfig:"READ"`
			Write          PostgresEndpoint `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			BookingCreated string `envconfig:"BOOKING_CREATED"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Enable   bool   `envconfig:"ENABLE"`
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
		Metrics struct {
			Enable bool `envconfig:"ENABLE"`
		} `envconfig:"METRICS"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		conf.applyDefaults()

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}

const (
	defaultPort            = "8080"
	defaultLanguage        = "en"
	defaultCatalogSource   = "memory"
	defaultMaxPageLimit    = 100
	defaultImageMaxSizeMB  = 2
	defaultIngestWorkers   = 4
	defaultIngestPageSize  = 50
	defaultAPIRequestsRate = 5
	defaultPaymentRetries  = 2
	defaultPaymentWaitMS   = 200
	defaultPaymentTimeout  = 10
	defaultCurrency        = "MAD"
	defaultCacheTTL        = 300
	defaultBookingTopic    = "booking.created"
)

// applyDefaults fills the values a bare environment leaves empty so the service
// can boot against the embedded catalog without any .env file.
func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}

	if c.App.DefaultLanguage == "" {
		c.App.DefaultLanguage = defaultLanguage
	}

	if c.Catalog.Source == "" {
		c.Catalog.Source = defaultCatalogSource
	}

	if c.Catalog.MaxPageLimit <= 0 {
		c.Catalog.MaxPageLimit = defaultMaxPageLimit
	}

	if c.Catalog.ImageMaxSizeMB <= 0 {
		c.Catalog.ImageMaxSizeMB = defaultImageMaxSizeMB
	}

	if c.Catalog.IngestWorkers <= 0 {
		c.Catalog.IngestWorkers = defaultIngestWorkers
	}

	if c.Catalog.IngestPageSize <= 0 {
		c.Catalog.IngestPageSize = defaultIngestPageSize
	}

	if c.Catalog.APIRequestsPerSec <= 0 {
		c.Catalog.APIRequestsPerSec = defaultAPIRequestsRate
	}

	if c.Payment.MaxRetries < 0 {
		c.Payment.MaxRetries = 0
	} else if c.Payment.MaxRetries == 0 {
		c.Payment.MaxRetries = defaultPaymentRetries
	}

	if c.Payment.RetryWaitMS <= 0 {
		c.Payment.RetryWaitMS = defaultPaymentWaitMS
	}

	if c.Payment.TimeoutSeconds <= 0 {
		c.Payment.TimeoutSeconds = defaultPaymentTimeout
	}

	if c.Payment.DefaultCurrency == "" {
		c.Payment.DefaultCurrency = defaultCurrency
	}

	if c.Cache.TTL <= 0 {
		c.Cache.TTL = defaultCacheTTL
	}

	if c.Kafka.Topics.BookingCreated == "" {
		c.Kafka.Topics.BookingCreated = defaultBookingTopic
	}
}
