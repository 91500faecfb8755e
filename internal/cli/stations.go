package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/infra/config"
	"github.com/evanraalte/nstimes/internal/stations"
)

func stationsCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "stations",
		Short: "Look up stations",
	}

	c.AddCommand(stationsSearchCmd(g), stationsListCmd(g), stationsSyncCmd(g))
	return c
}

func stationsSearchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Resolve a station name with the configured resolver",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return &domain.OpError{
					Op:   "cli.stations",
					Kind: domain.KindInvalidInput,
					Err:  fmt.Errorf("query is required: %w", domain.ErrInvalidInput),
				}
			}

			a, err := newApp(g, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			lookup, err := a.resolver.Resolve(cmd.Context(), query)
			if err != nil {
				return err
			}
			printLookup(cmd.OutOrStdout(), lookup)
			return nil
		},
	}
}

func stationsListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the local station directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g, nil)
			if err != nil {
				return err
			}
			dir, err := loadDirectory(cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, s := range dir.All() {
				fmt.Fprintf(w, "%-8s %s\n", s.ID, s.Name)
			}
			return nil
		},
	}
}

func stationsSyncCmd(g *globalFlags) *cobra.Command {
	var out string

	c := &cobra.Command{
		Use:   "sync",
		Short: "Download the NS station list into a stations file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(g, appOptions{override: func(cfg *domain.Config) {
				if out == "" {
					out = cfg.Stations.File
				}
				// The file may not exist yet; resolve with the built-in table meanwhile.
				cfg.Stations.File = ""
			}})
			if err != nil {
				return err
			}
			defer a.Close()

			if out == "" {
				return &domain.OpError{
					Op:   "cli.stations",
					Kind: domain.KindInvalidInput,
					Err:  fmt.Errorf("no stations file configured (use --out, --stations or %s): %w", config.EnvStations, domain.ErrInvalidInput),
				}
			}

			all, err := a.client.AllStations(cmd.Context())
			if err != nil {
				return err
			}
			if err := stations.WriteFile(out, stations.WithKnownAliases(all, stations.Default())); err != nil {
				return err
			}

			a.log.Info("stations.synced", "path", out, "stations", len(all))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d stations to %s\n", len(all), out)
			return nil
		},
	}

	c.Flags().StringVarP(&out, "out", "o", "", "Target file (default: the configured stations file)")
	return c
}

func printLookup(w io.Writer, l domain.StationLookup) {
	switch l.Kind {
	case domain.MatchSingle:
		s := l.Candidates[0]
		fmt.Fprintf(w, "%s (%s)\n", s.Name, s.ID)
	case domain.MatchAmbiguous:
		fmt.Fprintf(w, "%q is ambiguous, %d candidates:\n", l.Query, len(l.Candidates))
		for _, s := range l.Candidates {
			fmt.Fprintf(w, "  - %s (%s)\n", s.Name, s.ID)
		}
	default:
		fmt.Fprintf(w, "no station matches %q\n", l.Query)
	}
}
