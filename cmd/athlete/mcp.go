// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server and optionally serves Prometheus metrics.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harperreed/athlete/internal/mcp"
	"github.com/harperreed/athlete/internal/metrics"
)

var mcpMetricsAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants to sign up athletes, record tests, and read feedback
through a standardized protocol. The server communicates via stdin/stdout.

CONFIGURATION:

  {
    "mcpServers": {
      "athlete": {
        "command": "athlete",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_tests          Test catalog with localized instructions
  sign_up             Register an athlete
  record_test         Record a test score
  submit_measurement  Submit height and weight (once)
  get_latest          Latest score, benchmark, and percentile
  get_history         All observations for a test
  get_feedback        Coaching feedback
  leaderboard         Top athletes by average percentile
  translate           Resolve a localization key

AVAILABLE RESOURCES:

  athlete://catalog       Test catalog in every language
  athlete://leaderboard   Official dashboard

METRICS:

  --metrics-addr :9090 serves Prometheus metrics at /metrics while the
  server runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc, resolver)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		if mcpMetricsAddr != "" {
			stop := serveMetrics(mcpMetricsAddr)
			defer stop()
		}

		return server.Serve(ctx)
	},
}

// serveMetrics exposes the registry on addr until the returned func is called.
func serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(registry))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logrus.WithField("addr", addr).Info("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func init() {
	mcpCmd.Flags().StringVar(&mcpMetricsAddr, "metrics-addr", "", "address for the Prometheus /metrics endpoint")
	rootCmd.AddCommand(mcpCmd)
}
