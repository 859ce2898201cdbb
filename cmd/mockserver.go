package cmd

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"resource-console/internal/mockapi"
	"resource-console/monitoring"
)

func newMockServerCmd(a *app) *cobra.Command {
	var (
		addr      string
		seed      bool
		token     string
		rateLimit float64
	)
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve an in-memory stand-in for the task, expense and booking backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []mockapi.Option{mockapi.WithToken(token), mockapi.WithRateLimit(rateLimit)}
			if seed {
				opts = append(opts, mockapi.WithSeed())
			}
			srv := mockapi.New(opts...)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return srv.ListenAndServe(ctx, addr) })
			if a.cfg.EnableMetrics {
				g.Go(func() error { return monitoring.Serve(ctx, ":"+a.cfg.MetricsPort) })
			}
			return g.Wait()
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&addr, "addr", a.cfg.MockServerAddr, "listen address")
	fs.BoolVar(&seed, "seed", true, "load demo venues, events, ticket types, bookings and expenses")
	fs.StringVar(&token, "token", a.cfg.APIToken, "require this bearer token")
	fs.Float64Var(&rateLimit, "rate-limit", 0, "requests per second per client, 0 for no limit")
	return cmd
}
