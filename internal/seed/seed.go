// Package seed embeds the demo catalog served when no database is configured.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
)

const (
	Listings = "listings.json"
	Packages = "packages.json"
	Posts    = "posts.json"
)

//go:embed data/*.json
var files embed.FS

// Load decodes the named seed file into a slice of T, keeping file order.
func Load[T any](name string) ([]T, error) {
	raw, err := files.ReadFile(path.Join("data", name))
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", name, err)
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", name, err)
	}

	return out, nil
}
