package stations

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Amsterdam Centraal", "amsterdam centraal"},
		{"  AMSTERDAM   centraal ", "amsterdam centraal"},
		{"Liège-Guillemins", "liege-guillemins"},
		{"Köln Hbf", "koln hbf"},
		{"Düsseldorf", "dusseldorf"},
		{"'s-Hertogenbosch", "'s-hertogenbosch"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.input); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}
