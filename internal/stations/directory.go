package stations

import (
	"fmt"
	"strings"

	"github.com/evanraalte/nstimes/internal/domain"
)

const centraalSuffix = " Centraal"

// Directory is an immutable, indexed set of stations.
// It is safe for concurrent use because nothing mutates it after construction.
type Directory struct {
	stations []domain.Station
	forms    [][]string // normalized name/alias forms, parallel to stations
	byForm   map[string][]int
	byID     map[domain.StationID]int
}

// NewDirectory indexes records. IDs must be unique and names non-empty.
func NewDirectory(records []domain.Station) (*Directory, error) {
	d := &Directory{
		stations: make([]domain.Station, 0, len(records)),
		forms:    make([][]string, 0, len(records)),
		byForm:   make(map[string][]int),
		byID:     make(map[domain.StationID]int, len(records)),
	}

	for _, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			return nil, &domain.OpError{
				Op:   "stations.directory",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("station %d has an empty name: %w", rec.ID, domain.ErrInvalidConfig),
			}
		}
		if _, dup := d.byID[rec.ID]; dup {
			return nil, &domain.OpError{
				Op:   "stations.directory",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("duplicate station id %d (%s): %w", rec.ID, rec.Name, domain.ErrInvalidConfig),
			}
		}

		idx := len(d.stations)
		rec.Aliases = append([]string(nil), rec.Aliases...)
		forms := formsFor(rec)

		d.stations = append(d.stations, rec)
		d.forms = append(d.forms, forms)
		d.byID[rec.ID] = idx
		for _, f := range forms {
			d.byForm[f] = append(d.byForm[f], idx)
		}
	}

	return d, nil
}

// MustNewDirectory is NewDirectory for static tables known to be valid.
func MustNewDirectory(records []domain.Station) *Directory {
	d, err := NewDirectory(records)
	if err != nil {
		panic(err)
	}
	return d
}

// Default builds the directory from the built-in station table.
func Default() *Directory {
	return MustNewDirectory(defaultStations())
}

func (d *Directory) Len() int {
	return len(d.stations)
}

// All returns a copy of every station in directory order.
func (d *Directory) All() []domain.Station {
	out := make([]domain.Station, len(d.stations))
	copy(out, d.stations)
	return out
}

func (d *Directory) ByID(id domain.StationID) (domain.Station, bool) {
	idx, ok := d.byID[id]
	if !ok {
		return domain.Station{}, false
	}
	return d.stations[idx], true
}

// Lookup resolves a free-text query.
//
// An exact match on any normalized name or alias wins over substring matches.
// Otherwise every station with a form containing the query is a candidate.
// Candidates keep directory order.
func (d *Directory) Lookup(query string) domain.StationLookup {
	q := Normalize(query)
	if q == "" {
		return domain.NoMatch(query)
	}

	if idxs, ok := d.byForm[q]; ok {
		return domain.Ambiguous(query, d.pick(idxs))
	}

	var idxs []int
	for i, forms := range d.forms {
		for _, f := range forms {
			if strings.Contains(f, q) {
				idxs = append(idxs, i)
				break
			}
		}
	}
	return domain.Ambiguous(query, d.pick(idxs))
}

// pick maps ascending, de-duplicated indices to stations.
func (d *Directory) pick(idxs []int) []domain.Station {
	out := make([]domain.Station, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, d.stations[i])
	}
	return out
}

// ExactMatch reports whether query equals one of the forms s answers to in a
// directory: its name, an alias or a derived "Centraal" short form.
func ExactMatch(s domain.Station, query string) bool {
	q := Normalize(query)
	if q == "" {
		return false
	}
	for _, f := range formsFor(s) {
		if f == q {
			return true
		}
	}
	return false
}

// formsFor returns the distinct normalized forms a station answers to.
// "X Centraal" also answers to "X C" and "X CS".
func formsFor(s domain.Station) []string {
	names := append([]string{s.Name}, s.Aliases...)
	if base, ok := strings.CutSuffix(s.Name, centraalSuffix); ok {
		names = append(names, base+" C", base+" CS")
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		f := Normalize(n)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
