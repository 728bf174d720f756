package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taghazout/internal/domains/booking/pricing"
)

func date(value string) *time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return &t
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		base      int64
		checkIn   *time.Time
		checkOut  *time.Time
		guests    int
		want      pricing.Quote
		wantError error
	}{
		{
			name:     "five nights for four guests",
			base:     pricing.ToMinor(120),
			checkIn:  date("2024-02-15"),
			checkOut: date("2024-02-20"),
			guests:   4,
			want:     pricing.Quote{Nights: 5, Guests: 4, UnitPrice: 12000, Total: 240000},
		},
		{
			name:   "no dates defaults to one night",
			base:   pricing.ToMinor(45),
			guests: 2,
			want:   pricing.Quote{Nights: 1, Guests: 2, UnitPrice: 4500, Total: 9000},
		},
		{
			name:    "only check-in defaults to one night",
			base:    1000,
			checkIn: date("2024-02-15"),
			guests:  1,
			want:    pricing.Quote{Nights: 1, Guests: 1, UnitPrice: 1000, Total: 1000},
		},
		{
			name:     "partial day rounds up",
			base:     1000,
			checkIn:  date("2024-02-15"),
			checkOut: func() *time.Time { t := date("2024-02-16").Add(2 * time.Hour); return &t }(),
			guests:   1,
			want:     pricing.Quote{Nights: 2, Guests: 1, UnitPrice: 1000, Total: 2000},
		},
		{
			name:      "check-out equal to check-in",
			base:      1000,
			checkIn:   date("2024-02-15"),
			checkOut:  date("2024-02-15"),
			guests:    1,
			wantError: pricing.ErrInvalidDateRange,
		},
		{
			name:      "check-out before check-in",
			base:      1000,
			checkIn:   date("2024-02-20"),
			checkOut:  date("2024-02-15"),
			guests:    1,
			wantError: pricing.ErrInvalidDateRange,
		},
		{
			name:      "zero base price",
			base:      0,
			guests:    1,
			wantError: pricing.ErrInvalidBasePrice,
		},
		{
			name:      "zero guests",
			base:      1000,
			guests:    0,
			wantError: pricing.ErrInvalidGuests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.Calculate(tt.base, tt.checkIn, tt.checkOut, tt.guests)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate_SpecExamplesInMajorUnits(t *testing.T) {
	quote, err := pricing.Calculate(pricing.ToMinor(120), date("2024-02-15"), date("2024-02-20"), 4)
	require.NoError(t, err)
	assert.InDelta(t, 2400.0, pricing.ToMajor(quote.Total), 0.001)

	quote, err = pricing.Calculate(pricing.ToMinor(45), nil, nil, 2)
	require.NoError(t, err)
	assert.InDelta(t, 90.0, pricing.ToMajor(quote.Total), 0.001)
}

func TestCalculate_Overflow(t *testing.T) {
	checkIn := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, time.February, 18, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		base   int64
		guests int
	}{
		{name: "base price", base: 1 << 62, guests: 4},
		{name: "nights times guests wraps", base: 1, guests: 1 << 62},
		{name: "nights times guests fits but total does not", base: 1 << 40, guests: 1 << 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := pricing.Calculate(tt.base, &checkIn, &checkOut, tt.guests)

			assert.ErrorIs(t, err, pricing.ErrOverflow)
			assert.Zero(t, quote)
		})
	}
}

func TestToMinor(t *testing.T) {
	assert.Equal(t, int64(12050), pricing.ToMinor(120.5))
	assert.Equal(t, int64(1), pricing.ToMinor(0.005))
	assert.Equal(t, 120.5, pricing.ToMajor(12050))
}
