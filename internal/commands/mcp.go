package commands

import (
	"fmt"
	"net"
	"strings"

	"github.com/reign/calleditor/internal/mcpserver"
	"github.com/spf13/cobra"
)

func addMCP(topLevel *cobra.Command, g *globalOptions, info BuildInfo) {
	var (
		transport string
		httpAddr  string
		httpPath  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that lists recent calls and records new or edited
calls through the Model Context Protocol.`,
		Example: `
calleditor mcp
calleditor mcp --transport http --http-addr 127.0.0.1:8080
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := mcpserver.Runner{
				Name:             "calleditor",
				Version:          info.Version,
				HTTPListenAddr:   strings.TrimSpace(httpAddr),
				HTTPEndpointPath: strings.TrimSpace(httpPath),
			}

			switch strings.ToLower(strings.TrimSpace(transport)) {
			case "", string(mcpserver.TransportStdio):
				runner.Transport = mcpserver.TransportStdio
			case string(mcpserver.TransportHTTP):
				runner.Transport = mcpserver.TransportHTTP
				runner.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "MCP HTTP server listening on http://%s%s\n", a, runner.HTTPEndpointPath)
				}
			default:
				return fmt.Errorf("unsupported transport %q (expected stdio or http)", transport)
			}

			e, err := loadEnv(g, envOptions{metrics: true})
			if err != nil {
				return err
			}
			defer e.Close()

			startMetrics(cmd.Context(), e.conf.Metrics.Addr, e.registry, e.log)

			runner.Service = e.svc
			runner.Log = e.log.With().Str("component", "mcp").Logger()
			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcpserver.TransportStdio), "transport to use: stdio or http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "127.0.0.1:8080", "listen address for HTTP transport")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp", "HTTP endpoint path")

	topLevel.AddCommand(cmd)
}
