package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"taghazout/config"
)

const migrationSource = "file://migrations/postgres"

const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStepUp = "step-up"
	MigrateDrop   = "drop"
)

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func connectionString(config *config.Config) string {
	write := config.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)
	query.Set("x-migrations-table", config.DB.Postgres.MigrationTable)

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     getDBName(config, write.Name),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(migrationSource, connectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies a single migration action against the write pool.
func Runner(config *config.Config, action string) error {
	switch action {
	case MigrateUp, MigrateDown, MigrateStepUp, MigrateDrop:
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	var message string

	switch action {
	case MigrateUp:
		err, message = mig.Up(), "Database migrations completed successfully"
	case MigrateDown:
		err, message = mig.Steps(-1), "Database migrations rolled back successfully"
	case MigrateStepUp:
		err, message = mig.Steps(1), "Database migration step applied successfully"
	case MigrateDrop:
		err, message = mig.Down(), "Database migrations rolled back to zero"
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", action, err)
	}

	version, dirty, verr := mig.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		log.Warn().Err(verr).Msg("Could not read migration version")
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg(message)

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, MigrateUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, MigrateStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, MigrateDown)
}

func Drop(config *config.Config) error {
	return Runner(config, MigrateDrop)
}
