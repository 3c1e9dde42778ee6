// Package submission reads the notarization submission identifier persisted
// by the upload step.
package submission

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DefaultFileName is the state file written next to the build when a
// submission is uploaded.
const DefaultFileName = ".notarization_id"

// Load returns the trimmed submission identifier stored at path. A missing
// file reports found=false without an error; an empty or whitespace-only file
// reports found=true with an empty id.
func Load(path string) (id string, found bool, err error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", false, errors.New("submission state file path required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read submission state %q: %w", path, err)
	}
	return strings.TrimSpace(string(data)), true, nil
}
