package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func cacheCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the price cache",
	}

	c.AddCommand(cacheStatsCmd(g), cacheCleanupCmd(g))
	return c
}

func cacheStatsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count cached prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(g, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			cache, err := a.openCache()
			if err != nil {
				return err
			}
			if err := requireCache(cache); err != nil {
				return err
			}

			st := cache.Stats()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "File:    %s\n", cache.Path())
			fmt.Fprintf(w, "Total:   %d\n", st.Total)
			fmt.Fprintf(w, "Valid:   %d\n", st.Valid)
			fmt.Fprintf(w, "Expired: %d\n", st.Expired)
			return nil
		},
	}
}

func cacheCleanupCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired prices from the cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(g, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			cache, err := a.openCache()
			if err != nil {
				return err
			}
			if err := requireCache(cache); err != nil {
				return err
			}

			n, err := cache.Cleanup()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entr%s\n", n, plural(n, "y", "ies"))
			return nil
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
