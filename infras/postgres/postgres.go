package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"taghazout/config"
	"taghazout/shared/constant"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Connection splits reads and writes so replicas can serve the catalog.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Enabled reports whether both pools are connected.
func (c *Connection) Enabled() bool {
	return c != nil && c.Read != nil && c.Write != nil
}

// Close releases both pools.
func (c *Connection) Close() {
	if c == nil {
		return
	}

	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}
}

// New opens the read and write pools. The in-memory catalog needs no database,
// so an empty Connection is returned for it.
func New(config *config.Config) *Connection {
	if config.Catalog.Source != constant.CatalogSourcePostgres {
		log.Info().Str("source", config.Catalog.Source).Msg("Catalog source is not postgres, skipping database connection")

		return &Connection{}
	}

	return &Connection{
		Read:  connect("read", config.DB.Postgres.Read, *config),
		Write: connect("write", config.DB.Postgres.Write, *config),
	}
}

// DSN builds the lib/pq connection string, applying the optional database name prefix.
func DSN(config config.Config, ep config.PostgresEndpoint) string {
	dbName := config.DB.Postgres.Prefix + ep.Name

	sslMode := ep.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		ep.Username,
		ep.Password,
		net.JoinHostPort(ep.Host, ep.Port),
		dbName,
		sslMode,
	)

	if ep.Timezone != "" {
		dsn += "&timezone=" + ep.Timezone
	}

	return dsn
}

func connect(name string, ep config.PostgresEndpoint, config config.Config) *sqlx.DB {
	descriptor := DSN(config, ep)
	maxRetry := max(config.DB.Postgres.MaxRetry, 1)

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.Info().
				Str("name", name).
				Str("host", ep.Host).
				Str("dbName", config.DB.Postgres.Prefix+ep.Name).
				Msg("Connected to database")

			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		log.Error().
			Err(err).
			Str("name", name).
			Str("host", ep.Host).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(config.DB.Postgres.RetryWaitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Msg("Could not connect to database")

	return nil
}
