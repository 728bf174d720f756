// Package pricing computes booking totals in integer minor currency units.
package pricing

import (
	"errors"
	"math"
	"time"
)

const (
	day = 24 * time.Hour

	// DefaultNights applies when either date of the stay is unknown.
	DefaultNights = 1

	minorPerMajor = 100
)

var (
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrInvalidBasePrice = errors.New("base price must be positive")
	ErrInvalidGuests    = errors.New("guest count must be at least 1")
	ErrOverflow         = errors.New("total exceeds the representable amount")
)

// Quote is the derived price of a stay.
type Quote struct {
	Nights    int   `json:"nights"`
	Guests    int   `json:"guests"`
	UnitPrice int64 `json:"unit_price"`
	Total     int64 `json:"total"`
}

// Nights counts started days between the dates, or DefaultNights when either is nil.
func Nights(checkIn, checkOut *time.Time) (int, error) {
	if checkIn == nil || checkOut == nil {
		return DefaultNights, nil
	}

	if !checkOut.After(*checkIn) {
		return 0, ErrInvalidDateRange
	}

	return int(math.Ceil(float64(checkOut.Sub(*checkIn)) / float64(day))), nil
}

// Calculate returns base × nights × guests. base is in minor units.
func Calculate(base int64, checkIn, checkOut *time.Time, guests int) (Quote, error) {
	if base <= 0 {
		return Quote{}, ErrInvalidBasePrice
	}

	if guests < 1 {
		return Quote{}, ErrInvalidGuests
	}

	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return Quote{}, err
	}

	if int64(guests) > math.MaxInt64/int64(nights) {
		return Quote{}, ErrOverflow
	}

	perNight := int64(nights) * int64(guests)
	if perNight > math.MaxInt64/base {
		return Quote{}, ErrOverflow
	}

	return Quote{
		Nights:    nights,
		Guests:    guests,
		UnitPrice: base,
		Total:     base * perNight,
	}, nil
}

// ToMinor converts a major amount (e.g. 120.5) to minor units, rounding half away from zero.
func ToMinor(major float64) int64 {
	return int64(math.Round(major * minorPerMajor))
}

func ToMajor(minor int64) float64 {
	return float64(minor) / minorPerMajor
}
