package cli

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/server"
	"github.com/evanraalte/nstimes/internal/usecase"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(g, appOptions{
				logWriter: cmd.ErrOrStderr(),
				override: func(cfg *domain.Config) {
					if v := strings.TrimSpace(addr); v != "" {
						cfg.Server.Addr = v
					}
				},
			})
			if err != nil {
				return err
			}
			defer a.Close()

			cache, err := a.openCache()
			if err != nil {
				return err
			}

			metrics := server.NewMetrics()
			deps := server.Deps{
				Resolver: a.resolver,
				Trips:    usecase.NewFindTrips(a.resolver, a.client),
				Metrics:  metrics,
				Logger:   a.log,
			}

			opts := []usecase.GetPriceOption{usecase.WithLogger(a.log)}
			if cache != nil {
				opts = append(opts, usecase.WithCache(metrics.InstrumentCache(cache)))
				deps.Cache = cache
			}
			deps.Prices = usecase.NewGetPrice(a.resolver, a.client, opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(deps).Run(ctx, a.cfg.Server.Addr)
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "Listen address (default 0.0.0.0:3000)")
	return c
}
