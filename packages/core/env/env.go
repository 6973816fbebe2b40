// Package env handles environment loading for the CLI: optional .env files
// and ${VAR} expansion in configuration values.
package env

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadDotenv loads a .env file from dir into the process environment if one
// exists. Variables already set in the environment win.
func LoadDotenv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Resolve expands every ${VAR} reference in s from the process environment.
// Unset variables resolve to the empty string.
func Resolve(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := varPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

// Collect returns all environment variables sharing a prefix, with the
// prefix stripped.
func Collect(prefix string) map[string]string {
	result := make(map[string]string)
	for _, e := range os.Environ() {
		k, v, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		if prefix == "" {
			result[k] = v
		} else if strings.HasPrefix(k, prefix) && len(k) > len(prefix) {
			result[strings.TrimPrefix(k, prefix)] = v
		}
	}
	return result
}
