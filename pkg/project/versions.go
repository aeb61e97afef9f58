package project

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// CoreModule is the framework module every application depends on.
const CoreModule = "github.com/forge-dev/forge"

// KnownModules are the framework modules whose versions are reported.
var KnownModules = []string{
	CoreModule,
	CoreModule + "/auth",
	CoreModule + "/fields-document",
	CoreModule + "/cloudinary",
	CoreModule + "/session-store-redis",
}

// ResolveVersions returns the version of each known module required by the
// go.mod governing dir. The core module defaults to "0.0.0"; other modules
// are omitted when they cannot be resolved.
func ResolveVersions(dir string) map[string]string {
	versions := map[string]string{CoreModule: "0.0.0"}

	file := findModFile(dir)
	if file == nil {
		return versions
	}

	for _, req := range file.Require {
		if req == nil {
			continue
		}
		if known, ok := knownModule(req.Mod.Path); ok {
			versions[known] = strings.TrimPrefix(req.Mod.Version, "v")
		}
	}
	return versions
}

// knownModule maps a required path, possibly carrying a /vN major suffix, to
// its entry in KnownModules.
func knownModule(path string) (string, bool) {
	prefix, _, ok := module.SplitPathVersion(path)
	if !ok {
		return "", false
	}
	for _, known := range KnownModules {
		if prefix == known {
			return known, true
		}
	}
	return "", false
}

// findModFile walks up from dir to the nearest go.mod and parses it.
func findModFile(dir string) *modfile.File {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}

	for {
		path := filepath.Join(dir, "go.mod")
		if data, err := os.ReadFile(path); err == nil {
			file, err := modfile.ParseLax(path, data, nil)
			if err != nil {
				return nil
			}
			return file
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}
