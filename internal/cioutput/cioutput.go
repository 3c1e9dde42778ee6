// Package cioutput appends step outputs to the file-based output channel CI
// runners expose (GITHUB_OUTPUT on GitHub Actions).
package cioutput

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"
)

// EnvVar names the environment variable GitHub Actions uses for the output file.
const EnvVar = "GITHUB_OUTPUT"

// Append writes key=value as a single line to the output file at path,
// creating it when missing. The file is held under an advisory lock for the
// duration of the write. An empty path is a no-op and reports false.
func Append(path, key, value string) (bool, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return false, nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return false, errors.New("output key required")
	}
	if strings.ContainsAny(key, "=\r\n") {
		return false, fmt.Errorf("output key %q contains reserved characters", key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return false, fmt.Errorf("output value for %q must be a single line", key)
	}

	lock := flock.New(path)
	if err := lock.Lock(); err != nil {
		return false, fmt.Errorf("lock output file %q: %w", path, err)
	}
	defer lock.Unlock() //nolint:errcheck

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return false, fmt.Errorf("open output file %q: %w", path, err)
	}
	if _, err := fmt.Fprintf(file, "%s=%s\n", key, value); err != nil {
		_ = file.Close()
		return false, fmt.Errorf("write output file %q: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return false, fmt.Errorf("close output file %q: %w", path, err)
	}
	return true, nil
}
