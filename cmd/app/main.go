package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopify-qr-codes/internal/config"
	"shopify-qr-codes/internal/domain/ports/adapter"
	"shopify-qr-codes/internal/infra/adapters/shopify"
	pg "shopify-qr-codes/internal/infra/db/postgres"
	httpapi "shopify-qr-codes/internal/infra/http"
	"shopify-qr-codes/internal/infra/logging"
	"shopify-qr-codes/internal/infra/metrics"
	"shopify-qr-codes/internal/infra/qr"
	red "shopify-qr-codes/internal/infra/redis"
	"shopify-qr-codes/internal/infra/web"
	"shopify-qr-codes/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (fake product data, header auth)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	go pg.CollectPoolStats(ctx, pool, 15*time.Second)

	// ---- Repositories ----
	qrRepo := pg.NewPostgresQRCodeRepo(pool)
	discountRepo := pg.NewPostgresDiscountRepo(pool)

	// ---- Product data adapter ----
	var products adapter.ProductDataAdapter
	if cfg.Runtime.Dev && cfg.Shopify.AccessToken == "" {
		products = shopify.NewNoopProductAdapter()
		logger.Warn().Msg("product adapter: noop (no shopify access token)")
	} else {
		products = shopify.NewProductClient(cfg.Shopify.AccessToken, cfg.Shopify.APIVersion)
	}

	// ---- Redis cache (optional) ----
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		products = shopify.NewProductCacheDecorator(products, redisClient, cfg.Redis.TTL)
		logger.Info().Dur("ttl", cfg.Redis.TTL).Msg("product cache enabled")
	}

	// ---- QR generator ----
	imager, err := qr.NewGenerator(cfg.App.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("qr generator")
	}

	// ---- Use cases ----
	qrUC := usecase.NewQRCodeUseCase(qrRepo, products, imager, logger)
	discountUC := usecase.NewDiscountUseCase(discountRepo, logger)

	// ---- Auth ----
	var verifier *web.SessionTokenVerifier
	if cfg.Runtime.Dev && cfg.Shopify.APISecret == "" {
		verifier = web.NewDevVerifier()
		logger.Warn().Msg("admin auth: trusting X-Dev-Shop header")
	} else {
		verifier = web.NewSessionTokenVerifier(cfg.Shopify.APIKey, cfg.Shopify.APISecret)
	}

	// ---- HTTP servers ----
	public := httpapi.NewServer(qrUC, logger)
	go func() {
		if err := public.Start(cfg.App.Port); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("public server stopped")
		}
	}()

	admin := web.NewServer(qrUC, discountUC, verifier, logger)
	go func() {
		if err := admin.Start(cfg.Admin.Port); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("admin server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := public.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "public shutdown: %v\n", err)
	}
	if err := admin.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "admin shutdown: %v\n", err)
	}
	cancel()
}
