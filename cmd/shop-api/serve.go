package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ShopAPI/internal/album"
	"ShopAPI/internal/api"
	"ShopAPI/internal/config"
	"ShopAPI/internal/product"
	"ShopAPI/pkg/kit"
)

func runServe(cmd *cobra.Command, _ []string) error {
	configFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	log, err := kit.NewLogger(service, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	stores := newStores(cfg.Store.Seed)
	log.Info("stores ready", zap.Bool("seeded", cfg.Store.Seed), zap.String("version", version))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := api.NewHandler(stores, api.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		TrustProxy:     cfg.Server.TrustProxy,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
		CORS: api.CORSConfig{
			Enabled:        cfg.CORS.Enabled,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: cfg.CORS.AllowedMethods,
			AllowedHeaders: cfg.CORS.AllowedHeaders,
			MaxAge:         cfg.CORS.MaxAge,
		},
		RateLimit: api.RateLimitConfig{
			Requests: cfg.RateLimit.Requests,
			Window:   time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		},
	})

	if err := kit.RunHTTPServer(cmd.Context(), cfg.Addr(), h, log); err != nil {
		log.Error("http server stopped", zap.Error(err))
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func newStores(seed bool) api.Stores {
	if !seed {
		return api.Stores{Products: product.NewMemStore(), Albums: album.NewMemStore()}
	}
	return api.Stores{Products: product.NewStore(), Albums: album.NewStore()}
}
