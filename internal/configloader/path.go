package configloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigPath names the environment variable that overrides config lookup.
const EnvConfigPath = "POWERGEIST_CONFIG"

// ErrNoConfig is returned by ResolveConfigPath when no candidate file exists.
var ErrNoConfig = errors.New("no config found")

// ResolveConfigPath returns the best config path for a given subsystem and filename.
// It checks, in order:
// 1. $POWERGEIST_CONFIG if set (absolute path)
// 2. ~/.powergeist/<subsystem>/<file>
// 3. /etc/powergeist/<file>
func ResolveConfigPath(subsystem, file string) (string, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".powergeist", subsystem, file)
		if _, err := os.Stat(userPath); err == nil {
			return userPath, nil
		}
	}
	systemPath := filepath.Join("/etc/powergeist", file)
	if _, err := os.Stat(systemPath); err == nil {
		return systemPath, nil
	}
	return "", fmt.Errorf("%w for %s/%s", ErrNoConfig, subsystem, file)
}
