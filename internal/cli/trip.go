package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/ui/tui"
	"github.com/evanraalte/nstimes/internal/usecase"
)

func tripCmd(g *globalFlags) *cobra.Command {
	var interactive bool

	c := &cobra.Command{
		Use:   "trip FROM TO",
		Short: "Show upcoming trips between two stations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(g, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			uc := usecase.NewFindTrips(a.resolver, a.client, usecase.WithTripsChooser(a.chooser(interactive)))
			res, err := uc.Execute(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			printTrips(cmd.OutOrStdout(), res, tui.DefaultTheme())
			return nil
		},
	}

	c.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick a station when a name is ambiguous")
	return c
}

// printTrips writes one line per trip; cancelled trips use the warning style.
func printTrips(w io.Writer, res usecase.TripsResult, theme tui.Theme) {
	if len(res.Trips) == 0 {
		fmt.Fprintln(w, theme.Help.Render(fmt.Sprintf("(no trips found from %s to %s)", res.From.Name, res.To.Name)))
		return
	}
	for _, t := range res.Trips {
		line := formatTrip(t)
		if t.Cancelled {
			line = theme.Warn.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func formatTrip(t domain.Trip) string {
	line := fmt.Sprintf("%s -> %s [%s] tr.%s %s->%s",
		t.Origin, t.Destination, t.TrainType, t.Track,
		t.Departure.Format("15:04"), t.Arrival.Format("15:04"),
	)
	if t.Cancelled {
		line += " (cancelled)"
	}
	return line
}
