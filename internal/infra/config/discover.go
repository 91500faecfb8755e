package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/evanraalte/nstimes/internal/domain"
)

// FindFile searches startDir and its parents for name and returns the first
// match, so nstimes picks up a project's nstimes.yaml from any subdirectory.
func FindFile(startDir, name string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "config.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("start directory is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "config.find",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// A file path starts the search in its directory.
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		candidate := filepath.Join(cur, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "config.find",
				Kind: domain.KindNotFound,
				Path: name,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
