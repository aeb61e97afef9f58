package root

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/forge-dev/forge/pkg/confstore"
	"github.com/forge-dev/forge/pkg/telemetry/schema"
)

// projectDirectory resolves the optional directory argument to an absolute
// path, defaulting to the working directory.
func projectDirectory(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid project directory: %w", err)
	}

	info, err := os.Stat(absDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("project directory does not exist or is not a directory: %s", absDir)
	}

	slog.Debug("Project directory", "path", absDir)
	return absDir, nil
}

// openConfigStore opens the user config document, migrating it to the
// current telemetry schema.
func openConfigStore() (*confstore.Store, error) {
	store, err := confstore.Open(confstore.Path(), schema.Version, schema.Migrations())
	if err != nil {
		return nil, fmt.Errorf("opening forge config: %w", err)
	}
	return store, nil
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
