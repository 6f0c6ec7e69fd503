package cli

import (
	"github.com/spf13/cobra"

	"github.com/staragarcia/routeplanner/internal/server"
	"github.com/staragarcia/routeplanner/pkg/observability"
)

// serveCommand creates the command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route planner over HTTP",
		Long: `Serve the route planner over HTTP until interrupted.

Endpoints:
  POST /v1/routes          plan a route
  GET  /v1/vertices/{id}   look up a location
  GET  /healthz            liveness and dataset summary
  GET  /metrics            Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			p, err := c.newPlanner(ctx)
			if err != nil {
				return err
			}
			defer p.Cache.Close()

			var hooks *observability.PrometheusHooks
			if !noMetrics {
				hooks = observability.NewPrometheusHooks()
				observability.SetSearchHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
				defer observability.Reset()
			}

			var srv *server.Server
			if hooks != nil {
				srv = server.New(p, c.Logger, hooks.Handler())
			} else {
				srv = server.New(p, c.Logger, nil)
			}
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable Prometheus metrics")
	return cmd
}
