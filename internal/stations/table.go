package stations

import "github.com/evanraalte/nstimes/internal/domain"

// defaultStations is the built-in station table: the main NS stations and the
// international stations NS sells tickets to, keyed by UIC code.
// The complete NS list is fetched with `nstimes stations sync` and loaded from
// the configured stations file instead.
// Order matters: ambiguous lookups report candidates in this order.
func defaultStations() []domain.Station {
	return []domain.Station{
		{ID: 8400050, Name: "Alkmaar"},
		{ID: 8400080, Name: "Almere Centrum"},
		{ID: 8400055, Name: "Amersfoort Centraal"},
		{ID: 8400058, Name: "Amsterdam Centraal"},
		{ID: 8400045, Name: "Apeldoorn"},
		{ID: 8400071, Name: "Arnhem Centraal"},
		{ID: 8400131, Name: "Breda"},
		{ID: 8400170, Name: "Delft"},
		{ID: 8400282, Name: "Den Haag Centraal", Aliases: []string{"The Hague Central"}},
		{ID: 8400280, Name: "Den Haag HS", Aliases: []string{"Den Haag Hollands Spoor"}},
		{ID: 8400180, Name: "Deventer"},
		{ID: 8400200, Name: "Dordrecht"},
		{ID: 8400206, Name: "Eindhoven Centraal"},
		{ID: 8400227, Name: "Enschede"},
		{ID: 8400263, Name: "Groningen"},
		{ID: 8400285, Name: "Haarlem"},
		{ID: 8400424, Name: "Maastricht"},
		{ID: 8400471, Name: "Nijmegen"},
		{ID: 8400530, Name: "Rotterdam Centraal"},
		{ID: 8400561, Name: "Schiphol Airport", Aliases: []string{"Schiphol"}},
		{ID: 8400597, Name: "Tilburg"},
		{ID: 8400621, Name: "Utrecht Centraal"},
		{ID: 8400747, Name: "Zwolle"},
		{ID: 8400319, Name: "'s-Hertogenbosch", Aliases: []string{"Den Bosch", "s-Hertogenbosch"}},

		{ID: 8008094, Name: "Düsseldorf Hbf", Aliases: []string{"Dusseldorf"}},
		{ID: 8015458, Name: "Köln Hbf", Aliases: []string{"Keulen", "Cologne"}},
		{ID: 8821006, Name: "Antwerpen-Centraal", Aliases: []string{"Anvers-Central"}},
		{ID: 8814001, Name: "Brussel-Zuid/Bruxelles-Midi", Aliases: []string{"Brussel-Zuid", "Bruxelles-Midi", "Brussels South"}},
		{ID: 8841004, Name: "Liège-Guillemins", Aliases: []string{"Luik-Guillemins"}},
		{ID: 8727100, Name: "Paris Nord", Aliases: []string{"Parijs Noord", "Gare du Nord"}},
	}
}
