package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evanraalte/nstimes/internal/infra/scaffold"
)

func initCmd() *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write a starter nstimes.yaml and .env",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			} else if wd, err := os.Getwd(); err == nil {
				dir = wd
			}

			res, err := scaffold.Init(dir, force)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, f := range res.Written {
				fmt.Fprintf(w, "wrote   %s\n", f)
			}
			for _, f := range res.Skipped {
				fmt.Fprintf(w, "exists  %s (use --force to overwrite)\n", f)
			}
			fmt.Fprintln(w, "Put your NS API key in .env as NS_API_TOKEN.")
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return c
}
