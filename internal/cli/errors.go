package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/usecase"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage turns an error into the line(s) printed after "Error: ".
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var re *usecase.ResolveError
	if errors.As(err, &re) {
		return resolveMessage(re)
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return err.Error()
	}

	switch oe.Kind {
	case domain.KindInvalidConfig:
		if errors.Is(err, domain.ErrMissingToken) {
			return "NS_API_TOKEN is not set (export it or put it in .env)"
		}
		if strings.HasPrefix(oe.Op, "stations.") {
			return fmt.Sprintf("Invalid stations file %s: %v", oe.Path, oe.Err)
		}
		base := "config"
		if strings.TrimSpace(oe.Path) != "" {
			base = filepath.Base(oe.Path)
		}
		if looksLikeYAMLProblem(err.Error()) {
			if line := extractLine(err.Error()); line != "" {
				return "Invalid YAML at " + base + " line " + line
			}
			return "Invalid YAML at " + base
		}
		if oe.Err != nil {
			return "Invalid config: " + oe.Err.Error()
		}
		return "Invalid config"

	case domain.KindNotFound:
		if strings.HasPrefix(oe.Op, "config.") {
			return "Config file not found: " + oe.Path
		}
		if strings.HasPrefix(oe.Op, "stations.") {
			return "Stations file not found: " + oe.Path + " (run `nstimes stations sync`)"
		}
		return "No prices found"

	case domain.KindInvalidInput:
		if oe.Err != nil {
			return oe.Err.Error()
		}
		return "Invalid input"

	case domain.KindCorruptState:
		return fmt.Sprintf("Price cache %s is corrupt; fix or delete it", oe.Path)

	case domain.KindUpstream:
		var se *domain.StatusError
		if errors.As(err, &se) {
			return fmt.Sprintf("NS API request failed (HTTP %d)", se.StatusCode)
		}
		switch domain.ClassifyUpstreamError(oe.Err) {
		case domain.UpstreamTimeout:
			return "NS API request timed out"
		case domain.UpstreamDNS, domain.UpstreamConn:
			return "Cannot reach the NS API (check your connection)"
		}
		return "NS API request failed (see logs)"

	default:
		return "Unexpected error (see logs)"
	}
}

func resolveMessage(re *usecase.ResolveError) string {
	if re.Lookup.Kind != domain.MatchAmbiguous {
		return fmt.Sprintf("No %s station matches %q", re.Field, re.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%q matches several %s stations; be more specific (or use --interactive):", re.Query, re.Field)
	for _, s := range re.Lookup.Candidates {
		fmt.Fprintf(&b, "\n  - %s", s.Name)
	}
	return b.String()
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
