package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/concord/internal/api"
	"github.com/MikeSquared-Agency/concord/internal/cache"
	"github.com/MikeSquared-Agency/concord/internal/hermes"
	"github.com/MikeSquared-Agency/concord/internal/metrics"
	"github.com/MikeSquared-Agency/concord/internal/openai"
	"github.com/MikeSquared-Agency/concord/internal/store"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				app.Config.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, app)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides CONCORD_PORT)")
	return cmd
}

func runServe(ctx context.Context, app *App) error {
	cfg := app.Config
	logger := app.Logger

	logger.Info("concord starting", "port", cfg.Port)

	var opts []openai.Option

	// Metrics
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(reg)
		opts = append(opts, openai.WithObserver(m))
	}

	// Completion cache (optional, degrade to uncached on failure)
	if cfg.RedisURL != "" {
		c, err := cache.New(ctx, cfg.RedisURL, cfg.CacheTTL, logger)
		if err != nil {
			logger.Warn("redis unavailable, running without completion cache", "error", err)
		} else {
			defer c.Close()
			opts = append(opts, openai.WithCache(c))
		}
	}

	llm := newCompletionClient(app, opts...)
	if llm.HasCredential() {
		logger.Info("completion client ready", "model", cfg.DefaultModel)
	} else {
		logger.Warn("OPENAI_API_KEY not set, serving fallback texts only")
	}

	deps := api.Deps{
		Simulator: newOrchestrator(app, llm, nil),
		Metrics:   m,
		APIToken:  cfg.APIToken,
		Live:      llm.HasCredential(),
		Logger:    logger,
	}

	// Carbon history (optional)
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		deps.History = db
		logger.Info("database connected")
	}

	// NATS/Hermes (optional)
	if cfg.NatsURL != "" {
		hc, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, logger)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer hc.Close()
		deps.Events = hc
		logger.Info("NATS connected", "url", cfg.NatsURL)

		if err := hc.Publish("concord.agent.registered", map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"port":      cfg.Port,
			"live":      llm.HasCredential(),
		}); err != nil {
			logger.Warn("failed to publish registration", "error", err)
		}
	}

	srv := api.NewServer(cfg.Port, deps)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("concord ready", "port", cfg.Port)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("concord stopped")
	return nil
}
