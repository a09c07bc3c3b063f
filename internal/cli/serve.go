package cli

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arrange/internal/server"
)

// serveCommand creates the serve command, which exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the arrange pipeline over HTTP",
		Long: `Serve the arrange pipeline over HTTP.

Endpoints:
  GET  /healthz
  POST /v1/arrange   layout and route a diagram
  POST /v1/route     route connections only
  POST /v1/render    export SVG, PNG, DOT or a Graphviz preview

Request options default to the [layout], [run], [route] and [render]
sections of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := server.Config{
				Addr:         c.Config.Server.Addr,
				MaxBodyBytes: c.Config.Server.MaxBodyBytes,
				Timeout:      timeout,
				Defaults:     c.Config.Options(),
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("max-body") {
				cfg.MaxBodyBytes = maxBody
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", defaultMaxBodyBytes, "maximum request body in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request time limit")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg server.Config) error {
	s := server.New(cfg, c.Logger)
	printInfo("Serving on %s", StyleHighlight.Render(s.Addr()))
	printKeyValue("Timeout", cfg.Timeout.String())
	printKeyValue("Body limit", fmt.Sprintf("%d bytes", cfg.MaxBodyBytes))
	printNewline()
	printNextStep("Try", "curl http://localhost"+portOf(s.Addr())+"/healthz")
	return s.ListenAndServe(ctx)
}

// portOf returns the ":port" suffix of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return ":" + port
	}
	return ""
}
