package stations

import (
	"sync"
	"testing"

	"github.com/evanraalte/nstimes/internal/domain"
)

func smallDirectory(t *testing.T) *Directory {
	t.Helper()
	d, err := NewDirectory([]domain.Station{
		{ID: 8400058, Name: "Amsterdam Centraal"},
		{ID: 8400621, Name: "Utrecht Centraal"},
		{ID: 8400131, Name: "Amsterdam Sloterdijk"},
		{ID: 8400282, Name: "Den Haag Centraal"},
		{ID: 8400319, Name: "'s-Hertogenbosch", Aliases: []string{"Den Bosch"}},
		{ID: 8841004, Name: "Liège-Guillemins"},
		{ID: 101, Name: "Breda"},
		{ID: 102, Name: "Breda-Prinsenbeek"},
	})
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}
	return d
}

func ids(stations []domain.Station) []domain.StationID {
	out := make([]domain.StationID, 0, len(stations))
	for _, s := range stations {
		out = append(out, s.ID)
	}
	return out
}

func TestLookup_AmbiguousInDirectoryOrder(t *testing.T) {
	d := smallDirectory(t)

	got := d.Lookup("Amsterdam")
	if got.Kind != domain.MatchAmbiguous {
		t.Fatalf("expected ambiguous, got %s", got.Kind)
	}
	want := []domain.StationID{8400058, 8400131}
	gotIDs := ids(got.Candidates)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestLookup_ExactCanonicalName(t *testing.T) {
	d := smallDirectory(t)

	for _, q := range []string{"Amsterdam Centraal", "amsterdam centraal", "AMSTERDAM CENTRAAL", "  Amsterdam  Centraal "} {
		got := d.Lookup(q)
		s, ok := got.Station()
		if !ok || s.ID != 8400058 {
			t.Errorf("Lookup(%q) = %+v, want single 8400058", q, got)
		}
	}
}

func TestLookup_AccentInsensitive(t *testing.T) {
	d := smallDirectory(t)

	for _, q := range []string{"Liege-Guillemins", "LIÈGE-GUILLEMINS", "liège"} {
		s, ok := d.Lookup(q).Station()
		if !ok || s.ID != 8841004 {
			t.Errorf("Lookup(%q): expected Liège-Guillemins", q)
		}
	}
}

func TestLookup_ExactBeatsSubstring(t *testing.T) {
	d := smallDirectory(t)

	got := d.Lookup("breda")
	s, ok := got.Station()
	if !ok || s.ID != 101 {
		t.Fatalf("expected exact Breda, got %+v", got)
	}

	got = d.Lookup("bred")
	if got.Kind != domain.MatchAmbiguous || len(got.Candidates) != 2 {
		t.Fatalf("expected Breda + Breda-Prinsenbeek, got %+v", got)
	}
}

func TestLookup_AliasAndDerivedForms(t *testing.T) {
	d := smallDirectory(t)

	cases := map[string]domain.StationID{
		"Den Bosch":   8400319,
		"den haag c":  8400282,
		"Den Haag CS": 8400282,
		"Utrecht C":   8400621,
	}
	for q, want := range cases {
		s, ok := d.Lookup(q).Station()
		if !ok || s.ID != want {
			t.Errorf("Lookup(%q): want %d, got %+v ok=%v", q, want, s, ok)
		}
	}
}

func TestLookup_ExactAliasSharedByTwoStationsIsAmbiguous(t *testing.T) {
	d, err := NewDirectory([]domain.Station{
		{ID: 1, Name: "Noord", Aliases: []string{"North"}},
		{ID: 2, Name: "Noordwest", Aliases: []string{"North"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := d.Lookup("north")
	if got.Kind != domain.MatchAmbiguous || len(got.Candidates) != 2 {
		t.Fatalf("expected both stations, got %+v", got)
	}
}

func TestLookup_NoMatch(t *testing.T) {
	d := smallDirectory(t)

	for _, q := range []string{"Parijs", "", "   "} {
		got := d.Lookup(q)
		if got.Kind != domain.MatchNone || len(got.Candidates) != 0 {
			t.Errorf("Lookup(%q) = %+v, want none", q, got)
		}
	}
}

func TestLookup_Deterministic(t *testing.T) {
	d := Default()
	first := ids(d.Lookup("utrecht").Candidates)
	for i := 0; i < 20; i++ {
		again := ids(d.Lookup("utrecht").Candidates)
		if len(again) != len(first) {
			t.Fatalf("length changed between calls")
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("order changed between calls: %v vs %v", first, again)
			}
		}
	}
}

func TestNewDirectory_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewDirectory([]domain.Station{
		{ID: 1, Name: "A"},
		{ID: 1, Name: "B"},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestNewDirectory_RejectsEmptyName(t *testing.T) {
	if _, err := NewDirectory([]domain.Station{{ID: 1, Name: " "}}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDefaultDirectory(t *testing.T) {
	d := Default()

	// UIC codes as published by NS; trips and prices are requested with these.
	cases := map[string]domain.StationID{
		"Amsterdam Centraal": 8400058,
		"Utrecht Centraal":   8400621,
		"Den Haag C":         8400282,
		"Amersfoort C":       8400055,
		"Rotterdam CS":       8400530,
		"Schiphol":           8400561,
		"Alkmaar":            8400050,
		"Almere Centrum":     8400080,
		"Apeldoorn":          8400045,
		"Breda":              8400131,
		"Delft":              8400170,
		"Tilburg":            8400597,
		"Zwolle":             8400747,
		"Den Bosch":          8400319,
		"Liege-Guillemins":   8841004,
	}
	for q, want := range cases {
		s, ok := d.Lookup(q).Station()
		if !ok {
			t.Errorf("Lookup(%q): expected single match", q)
			continue
		}
		if s.ID != want {
			t.Errorf("Lookup(%q) = %d, want %d", q, s.ID, want)
		}
	}

	s, _ := d.Lookup("Den Bosch").Station()
	if s.Name != "'s-Hertogenbosch" {
		t.Fatalf("expected 's-Hertogenbosch, got %q", s.Name)
	}

	got := d.Lookup("Den Haag")
	if got.Kind != domain.MatchAmbiguous || len(got.Candidates) != 2 {
		t.Fatalf("expected Den Haag Centraal and HS, got %+v", got)
	}
}

func TestExactMatch(t *testing.T) {
	s := domain.Station{ID: 8400282, Name: "Den Haag Centraal", Aliases: []string{"The Hague Central"}}

	for _, q := range []string{"den haag centraal", "Den Haag C", "den haag cs", "THE HAGUE CENTRAL"} {
		if !ExactMatch(s, q) {
			t.Errorf("ExactMatch(%q) = false", q)
		}
	}
	for _, q := range []string{"Den Haag", "", "Den Haag HS"} {
		if ExactMatch(s, q) {
			t.Errorf("ExactMatch(%q) = true", q)
		}
	}
	if !ExactMatch(domain.Station{Name: "Liège-Guillemins"}, "Liege-Guillemins") {
		t.Errorf("expected accents to be ignored")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	d := smallDirectory(t)
	all := d.All()
	all[0].Name = "changed"

	s, ok := d.ByID(8400058)
	if !ok || s.Name != "Amsterdam Centraal" {
		t.Fatalf("expected directory to be unaffected, got %+v", s)
	}
	if _, ok := d.ByID(42); ok {
		t.Fatalf("expected unknown id to be absent")
	}
}

func TestLookup_ConcurrentReaders(t *testing.T) {
	d := Default()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, ok := d.Lookup("Zwolle").Station(); !ok {
					t.Errorf("expected Zwolle to resolve")
					return
				}
			}
		}()
	}
	wg.Wait()
}
