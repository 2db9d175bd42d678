package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tui-stack/internal/metrics"
	"github.com/vovakirdan/tui-stack/internal/platform/tui"
	"github.com/vovakirdan/tui-stack/internal/stack"
	"github.com/vovakirdan/tui-stack/internal/telemetry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stack SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the variant menu.
Scores are stored per server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.stack/host_key

Observability:
  - --metrics :9090 exposes Prometheus metrics at /metrics
  - OTEL_EXPORTER_OTLP_ENDPOINT enables one trace span per game

Examples:
  stack serve                           # Listen on :23234
  stack serve --ssh :2222               # Listen on port 2222
  stack serve --host-key ./my_host_key  # Use specific host key
  stack serve --metrics :9090           # Also serve /metrics

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Prometheus metrics address, e.g. :9090 (disabled if empty)")
}

// serveHooks feeds sessions to the metrics collector and games to the tracer.
type serveHooks struct {
	metrics *metrics.Collector
	tracer  trace.Tracer
}

func (h serveHooks) SessionStarted() {
	if h.metrics != nil {
		h.metrics.SessionStarted()
	}
}

func (h serveHooks) SessionEnded() {
	if h.metrics != nil {
		h.metrics.SessionEnded()
	}
}

func (h serveHooks) GameObservers(gameID, sessionID string) []stack.Observer {
	var obs []stack.Observer
	if h.metrics != nil {
		obs = append(obs, h.metrics.GameObservers(gameID, sessionID)...)
	}
	if h.tracer != nil {
		obs = append(obs, telemetry.NewGameTracer(h.tracer, gameID, sessionID))
	}
	return obs
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("stack-ssh", false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var hooks serveHooks
	if telemetry.Enabled() {
		shutdown, telErr := telemetry.Setup(ctx)
		if telErr != nil {
			return fmt.Errorf("setup telemetry: %w", telErr)
		}
		defer func() {
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer flushCancel()
			if err := shutdown(flushCtx); err != nil {
				logger.Warn("telemetry shutdown failed", "error", err)
			}
		}()
		hooks.tracer = telemetry.Tracer("game")
		logger.Info("tracing enabled")
	}

	if flagMetricsAddr != "" {
		hooks.metrics = metrics.New(nil)
		go func() {
			if err := hooks.metrics.Serve(ctx, flagMetricsAddr, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Logger:      logger,
		Hooks:       hooks,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	fmt.Printf("Starting stack SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
