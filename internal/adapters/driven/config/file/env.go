package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFileName is the dotenv file looked up in the working and config directories.
const EnvFileName = ".env"

// EnvPaths returns the dotenv files consulted at startup, highest precedence first:
// the working directory, then configDir (~/.echo when empty).
func EnvPaths(configDir string) []string {
	paths := []string{EnvFileName}
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return paths
		}
		configDir = filepath.Join(home, ".echo")
	}
	return append(paths, filepath.Join(configDir, EnvFileName))
}

// LoadEnv loads variables from the dotenv files that exist.
// Variables already set in the process environment are never overwritten,
// and earlier files win over later ones. Returns the files that were read.
func LoadEnv(paths ...string) ([]string, error) {
	var loaded []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("stat %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, fmt.Errorf("load %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}
