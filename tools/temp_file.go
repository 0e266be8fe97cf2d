package tools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Copies r into a new file in the OS temp dir named by a generated name.
// Returns the path, the generated name and the number of bytes written.
func SpoolToTempFile(r io.Reader) (string, string, int64, error) {
	name, err := GenerateTempFilename()
	if err != nil {
		return "", "", 0, fmt.Errorf("error generating temp name: %w", err)
	}

	path := filepath.Join(os.TempDir(), name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", "", 0, fmt.Errorf("error creating temp file: %w", err)
	}

	size, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", "", 0, fmt.Errorf("error writing temp file: %w", err)
	}

	return path, name, size, nil
}
