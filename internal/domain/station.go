package domain

import "strconv"

// StationID is the numeric UIC code NS uses to identify a station.
type StationID int

func (id StationID) String() string {
	return strconv.Itoa(int(id))
}

// Station is an immutable station record.
// Aliases hold alternative spellings (short forms, local names); normalized
// forms are derived by the directory, not stored here.
type Station struct {
	ID      StationID
	Name    string
	Aliases []string
}

// MatchKind classifies the outcome of a station lookup.
type MatchKind string

const (
	MatchNone      MatchKind = "none"
	MatchSingle    MatchKind = "single"
	MatchAmbiguous MatchKind = "ambiguous"
)

// StationLookup is the result of resolving a free-text query.
// Candidates is empty for MatchNone, has one element for MatchSingle and two
// or more for MatchAmbiguous, in directory order.
type StationLookup struct {
	Query      string
	Kind       MatchKind
	Candidates []Station
}

func NoMatch(query string) StationLookup {
	return StationLookup{Query: query, Kind: MatchNone, Candidates: []Station{}}
}

func SingleMatch(query string, s Station) StationLookup {
	return StationLookup{Query: query, Kind: MatchSingle, Candidates: []Station{s}}
}

// Ambiguous builds a lookup from a candidate list. It collapses to NoMatch or
// SingleMatch when fewer than two candidates are given.
func Ambiguous(query string, candidates []Station) StationLookup {
	switch len(candidates) {
	case 0:
		return NoMatch(query)
	case 1:
		return SingleMatch(query, candidates[0])
	}
	out := make([]Station, len(candidates))
	copy(out, candidates)
	return StationLookup{Query: query, Kind: MatchAmbiguous, Candidates: out}
}

// Station returns the matched station when the lookup is a single match.
func (l StationLookup) Station() (Station, bool) {
	if l.Kind != MatchSingle || len(l.Candidates) != 1 {
		return Station{}, false
	}
	return l.Candidates[0], true
}
