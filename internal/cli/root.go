package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+userMessage(err))
		os.Exit(1)
	}
}

// globalFlags are the persistent flags shared by every subcommand. Empty
// values leave the configured value untouched.
type globalFlags struct {
	configPath string
	cachePath  string
	stations   string
	resolver   string
	debug      bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "nstimes",
		Short:         "NS train times and prices from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Config file (default ./nstimes.yaml when present)")
	pf.StringVar(&g.cachePath, "cache", "", "Price cache file (enables caching of single-trip prices)")
	pf.StringVar(&g.stations, "stations", "", "Stations file for the local resolver (see `stations sync`)")
	pf.StringVar(&g.resolver, "resolver", "", "Station resolver: local|remote")
	pf.BoolVar(&g.debug, "debug", false, "Enable verbose logging")

	cmd.AddCommand(
		tripCmd(g),
		priceCmd(g),
		stationsCmd(g),
		cacheCmd(g),
		serveCmd(g),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
