package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run health and metrics endpoints until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// pinger is satisfied by the dashboard API client.
type pinger interface {
	HealthCheck(ctx context.Context) error
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go startHealthServer(ctx, a.cfg.Monitoring.HealthCheckPort, a.client, a.redis, &a.logger)

	if a.cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go startMetricsServer(ctx, a.cfg.Monitoring.PrometheusPort, &a.logger)
	}

	go a.service.RunCleanup(ctx, time.Minute)

	a.logger.Info().
		Int("health_port", a.cfg.Monitoring.HealthCheckPort).
		Bool("metrics", a.cfg.Monitoring.PrometheusEnabled).
		Msg("hoursctl serving")
	<-ctx.Done()
	a.logger.Info().Msg("shutting down")
	return nil
}

func newHealthMux(ctx context.Context, api pinger, rdb *redis.Client) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := api.HealthCheck(ctxPing); err != nil {
			http.Error(w, "dashboard api not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	return mux
}

func startHealthServer(ctx context.Context, port int, api pinger, rdb *redis.Client, logger *zerolog.Logger) {
	serveUntilDone(ctx, port, newHealthMux(ctx, api, rdb), "health", logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	serveUntilDone(ctx, port, mux, "metrics", logger)
}

func serveUntilDone(ctx context.Context, port int, handler http.Handler, name string, logger *zerolog.Logger) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Str("server", name).Msg("server error")
	}
}
