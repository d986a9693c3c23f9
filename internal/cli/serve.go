package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontoview/internal/config"
	"github.com/matzehuels/ontoview/internal/metrics"
	"github.com/matzehuels/ontoview/internal/server"
)

// serveCommand creates the serve command that runs the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run the HTTP render service.

  POST /v1/render   {"context": "...", "document": "...", "formats": ["ttl", "svg"]}
  GET  /v1/formats
  GET  /healthz
  GET  /metrics

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache, noMetrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache, noMetrics bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := server.Options{
		Runner:       runner,
		Logger:       c.Logger,
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
		ReadTimeout:  c.Config.Server.ReadTimeout.Duration,
		WriteTimeout: c.Config.Server.WriteTimeout.Duration,
	}
	if !noMetrics {
		m := metrics.New()
		m.Register()
		opts.Metrics = m.Handler()
	}

	backend := c.Config.Cache.Backend
	if noCache {
		backend = config.BackendNone
	}
	printKeyValue("Listening", StyleLink.Render("http://"+displayAddr(addr)))
	printKeyValue("Cache", backend)
	printNewline()

	return server.New(opts).ListenAndServe(ctx, addr)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
