package paths

import (
	"os"
	"path/filepath"
)

// ConfigDirEnv overrides the directory returned by GetConfigDir.
const ConfigDirEnv = "FORGE_CONFIG_DIR"

// GetConfigDir returns the user's config directory for forge.
//
// FORGE_CONFIG_DIR takes precedence when set. If the home directory cannot be
// determined, it falls back to a directory under the system temporary
// directory. This is a best-effort fallback and not intended to be a security
// boundary.
func GetConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return filepath.Clean(dir)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".forge-config"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".config", "forge"))
}

// GetDataDir returns the user's data directory for forge (logs).
func GetDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(filepath.Join(os.TempDir(), ".forge"))
	}
	return filepath.Clean(filepath.Join(homeDir, ".forge"))
}
