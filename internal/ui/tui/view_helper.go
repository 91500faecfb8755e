package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/evanraalte/nstimes/internal/domain"
)

const maxAliasText = 40

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func stationDescription(s domain.Station) string {
	desc := fmt.Sprintf("UIC %s", s.ID)
	if len(s.Aliases) > 0 {
		desc += " • aka " + clampString(strings.Join(s.Aliases, ", "), maxAliasText)
	}
	return desc
}
