package timezone_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taghazout/shared/timezone"
)

func TestLoad(t *testing.T) {
	t.Cleanup(func() { timezone.Load("UTC") })

	timezone.Load("Africa/Casablanca")
	assert.Equal(t, "Africa/Casablanca", timezone.GetLocation().String())

	timezone.Load("Mars/Olympus_Mons")
	assert.Equal(t, time.UTC, timezone.GetLocation())

	timezone.Load("")
	assert.Equal(t, time.UTC, timezone.GetLocation())
}

func TestNow(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.Equal(t, timezone.GetLocation(), timezone.Now().Location())
}

func TestParseDate(t *testing.T) {
	t.Cleanup(func() { timezone.Load("UTC") })
	timezone.Load("UTC")

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "date only", value: "2025-06-01", want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", value: "2025-06-01T14:00:00Z", want: time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)},
		{name: "garbage", value: "next friday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.value)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Empty(t, timezone.Format(time.Time{}, time.DateOnly))
	assert.Equal(t, "2024-01-01", timezone.Format(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), time.DateOnly))
}
