package commands

import (
	"github.com/reign/calleditor/internal/daemon"
	"github.com/spf13/cobra"
)

func addServe(topLevel *cobra.Command, g *globalOptions) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "share the call-log database over a Unix socket",
		Long: `Run the calleditor daemon. Clients with daemon.remote set read and write
the call log through it instead of opening the database themselves.

When metrics.addr is set, Prometheus metrics are served at /metrics.`,
		Example: `
calleditor serve
CALLEDITOR_METRICS_ADDR=127.0.0.1:9464 calleditor serve
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(g, envOptions{localOnly: true})
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			srv := &daemon.Server{
				Backend: e.store,
				Log:     e.log.With().Str("component", "daemon").Logger(),
			}
			if e.conf.Metrics.Addr != "" {
				reg := newRegistry()
				srv.Metrics = daemon.NewMetrics(reg)
				startMetrics(ctx, e.conf.Metrics.Addr, reg, e.log)
			}

			ln, err := daemon.Listen(e.conf.Daemon.Socket)
			if err != nil {
				return err
			}
			return srv.Serve(ctx, ln)
		},
	}

	topLevel.AddCommand(cmd)
}
