package timezone

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"taghazout/config"
	"taghazout/shared/constant"
)

var appLocation *time.Location

func init() {
	Load(config.Get().App.Timezone)
}

// Load switches the application location. Unknown or empty names fall back to UTC.
func Load(name string) {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		appLocation = time.UTC

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Debug().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

// ParseDate accepts either a full RFC 3339 timestamp or a bare calendar date.
func ParseDate(value string) (time.Time, error) {
	if t, err := Parse(constant.DateFormat, value); err == nil {
		return t, nil
	}

	t, err := Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return t, nil
}

// Format formats a time in the application timezone. Zero times format as an empty string.
func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	return ToAppTime(t).Format(layout)
}
