package stations

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/evanraalte/nstimes/internal/domain"
)

// fileStation is the on-disk shape of one station in a stations file.
type fileStation struct {
	ID      domain.StationID `json:"id"`
	Name    string           `json:"name"`
	Aliases []string         `json:"aliases,omitempty"`
}

// LoadFile builds a directory from a stations file written by WriteFile.
// The file order becomes the directory order.
func LoadFile(path string) (*Directory, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "stations.load", Kind: kind, Path: path, Err: err}
	}

	var raw []fileStation
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, &domain.OpError{
			Op:   "stations.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidConfig),
		}
	}
	if len(raw) == 0 {
		return nil, &domain.OpError{
			Op:   "stations.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("stations file is empty: %w", domain.ErrInvalidConfig),
		}
	}

	records := make([]domain.Station, 0, len(raw))
	for _, fs := range raw {
		records = append(records, domain.Station{ID: fs.ID, Name: fs.Name, Aliases: fs.Aliases})
	}

	d, err := NewDirectory(records)
	if err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) {
			oe.Path = path
		}
		return nil, err
	}
	return d, nil
}

// WriteFile stores records as a stations file, replacing any previous one.
func WriteFile(path string, records []domain.Station) error {
	// Reject what LoadFile would reject.
	if _, err := NewDirectory(records); err != nil {
		return err
	}

	out := make([]fileStation, 0, len(records))
	for _, s := range records {
		out = append(out, fileStation{ID: s.ID, Name: s.Name, Aliases: s.Aliases})
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return &domain.OpError{Op: "stations.marshal", Kind: domain.KindExecution, Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.OpError{Op: "stations.write", Kind: domain.KindExecution, Path: dir, Err: err}
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return &domain.OpError{Op: "stations.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "stations.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

// WithKnownAliases returns a copy of records where stations also present in
// known carry known's aliases. Upstream listings have no aliases of their own.
func WithKnownAliases(records []domain.Station, known *Directory) []domain.Station {
	out := make([]domain.Station, len(records))
	for i, s := range records {
		if k, ok := known.ByID(s.ID); ok && len(s.Aliases) == 0 {
			s.Aliases = append([]string(nil), k.Aliases...)
		}
		out[i] = s
	}
	return out
}
