package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/fsmd"
	httpAdapter "github.com/aretw0/fsmd/internal/adapters/http"
	"github.com/aretw0/fsmd/internal/metrics"
	"github.com/aretw0/fsmd/internal/render"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP rendering server",
		Long: `Starts an HTTP server exposing POST /render, GET /health, GET /openapi.yaml
and GET /metrics. Rendered diagrams are cached in memory, or in Redis when
--redis-addr is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetString("port")
			redisAddr, _ := cmd.Flags().GetString("redis-addr")
			redisPassword, _ := cmd.Flags().GetString("redis-password")
			cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			logger := loggerFor(cmd)
			m := metrics.New()

			var cache render.Cache = render.NewMemoryCache(cacheTTL)
			if redisAddr != "" {
				rc := render.NewRedisCache(redisAddr, redisPassword, 0, render.WithRedisTTL(cacheTTL))
				defer rc.Close()
				if err := rc.Ping(cmd.Context()); err != nil {
					return fmt.Errorf("could not connect to redis at %s: %w", redisAddr, err)
				}
				cache = rc
			}

			renderer := render.Cached(graphvizFor(logger, "", timeout), cache).OnLookup(m.ObserveCacheLookup)
			engine := fsmd.New(
				fsmd.WithLogger(logger),
				fsmd.WithRenderer(renderer),
				fsmd.WithMetrics(m),
			)
			if err := engine.Probe(cmd.Context()); err != nil {
				logger.Warn("Graphviz unavailable, only dot and mermaid can be served", "error", err)
			}

			handler, err := httpAdapter.NewHandler(engine,
				httpAdapter.WithLogger(logger),
				httpAdapter.WithMetrics(m.Handler()),
			)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(cmd.Context(), srv, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().String("redis-addr", "", "Redis address for the render cache (memory cache when empty)")
	cmd.Flags().String("redis-password", "", "Redis password")
	cmd.Flags().Duration("cache-ttl", 10*time.Minute, "Lifetime of cached renders (0 keeps them forever)")
	cmd.Flags().Duration("timeout", 30*time.Second, "Maximum time allowed for Graphviz per request")
	return cmd
}

// runServer serves until the listener fails or an interrupt arrives, then
// shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Fprintf(out, "Starting FSMD server on %s\n", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		fmt.Fprintln(out, "\nShutting down...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		fmt.Fprintln(out, "FSMD server stopped gracefully")
		return nil
	}
}
