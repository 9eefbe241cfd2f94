// Package persist stores named outfits between sessions.
//
// Two backends are provided: a YAML document next to the config file and a
// SQLite database. Both load the full set of outfits at start and write the
// full set back after every change.
package persist

import (
	"context"
	"fmt"
	"strings"

	"github.com/Faultbox/crystarium-boutique/internal/outfit"
)

// Drivers accepted by Open.
const (
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

// Backend loads and saves the complete set of named outfits.
type Backend interface {
	// Load returns every saved outfit. A backend with nothing stored yet
	// returns an empty map and no error.
	Load(ctx context.Context) (map[string]outfit.Outfit, error)
	// Save replaces everything stored with outfits.
	Save(ctx context.Context, outfits map[string]outfit.Outfit) error
	Close() error
}

// Open returns the backend for driver rooted at path.
func Open(driver, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverYAML, "":
		return NewYAMLFile(path)
	case DriverSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
