package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"found-pets/internal/platform/config"
	"found-pets/internal/platform/httpclient"
	"found-pets/internal/platform/logger"
	"found-pets/internal/router"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath, port string

	load := func() (config.Config, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return config.Config{}, err
		}
		if port != "" {
			cfg.Port = port
		}
		return cfg, cfg.Validate()
	}

	root := &cobra.Command{
		Use:          "found-pets",
		Short:        "Found pets registry (server-rendered CRUD)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&port, "port", "", "HTTP port (overrides PORT)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the pets table in the configured database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := router.Migrate(cmd.Context(), cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", cfg.Store())
			return nil
		},
	})

	var healthURL string
	health := &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe GET /health of a running server (for container health checks)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if healthURL == "" {
				cfg, err := load()
				if err != nil {
					return err
				}
				healthURL = "http://127.0.0.1" + cfg.Addr()
			}
			return healthcheck(cmd.Context(), healthURL, cmd)
		},
	}
	health.Flags().StringVar(&healthURL, "url", "", "base URL of the server (default http://127.0.0.1:$PORT)")
	root.AddCommand(health)

	return root
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(logger.Options{
		Level:  level,
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	store, err := router.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Error("store unavailable", map[string]any{"err": err})
		return err
	}
	defer func() { _ = store.Close() }()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			PetRepo:   store.Repo,
			StoreKind: store.Kind,
			Logger:    log,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "store": store.Kind, "log_level": level.String()})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"err": err})
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down", nil)
	return srv.Shutdown(shutdownCtx)
}

func healthcheck(ctx context.Context, baseURL string, cmd *cobra.Command) error {
	c, err := httpclient.NewWithBaseURL(baseURL, 3*time.Second)
	if err != nil {
		return err
	}

	var out router.HealthResponse
	if err := c.GetJSON(ctx, "/health", &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("unhealthy: status=%q", out.Status)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok (store=%s)\n", out.Store)
	return nil
}
