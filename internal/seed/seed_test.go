package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taghazout/internal/seed"
)

type record struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

func TestLoad(t *testing.T) {
	for _, name := range []string{seed.Listings, seed.Packages, seed.Posts} {
		t.Run(name, func(t *testing.T) {
			records, err := seed.Load[record](name)

			require.NoError(t, err)
			assert.NotEmpty(t, records)

			slugs := map[string]bool{}
			for _, r := range records {
				assert.NotEmpty(t, r.ID)
				assert.False(t, slugs[r.Slug], "duplicate slug %s", r.Slug)
				slugs[r.Slug] = true
			}
		})
	}
}

func TestLoad_UnknownFile(t *testing.T) {
	_, err := seed.Load[record]("missing.json")

	assert.Error(t, err)
}
