package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ecsbilling/internal/caching"
	"ecsbilling/internal/config"
	"ecsbilling/internal/gst"
	"ecsbilling/internal/handlers"
	"ecsbilling/internal/middleware"
	"ecsbilling/internal/numbering"
	"ecsbilling/internal/repositories"
	"ecsbilling/internal/services"
	"ecsbilling/pkg/database"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	log := logger.WithField("version", version)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Entry) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	firm, err := config.LoadFirmProfile(cfg.FirmConfigPath)
	if err != nil {
		return err
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer database.ClosePool(pool, log)

	redisClient := caching.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()
	cacheSvc := caching.NewRedisCacheService(redisClient, cfg.StatsCacheTTL)

	allocator, err := newAllocator(cfg.SequenceBackend, pool, redisClient)
	if err != nil {
		return err
	}
	numbers, err := numbering.NewService(allocator, firm.DocumentPrefix, log,
		numbering.WithPreviewPlaceholder(cfg.PreviewPlaceholder))
	if err != nil {
		return err
	}

	home := cfg.HomeJurisdictions
	if len(home) == 0 {
		home = []string{firm.Jurisdiction}
	}
	calc := gst.NewCalculator(home...)

	invoiceRepo := repositories.NewInvoiceRepo(pool)
	poRepo := repositories.NewPurchaseOrderRepo(pool)
	invoiceSvc := services.NewInvoiceService(invoiceRepo, numbers, calc, cacheSvc, log)
	poSvc := services.NewPurchaseOrderService(poRepo, numbers, calc, cacheSvc, firm, log)

	minioSvc, err := services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		return fmt.Errorf("initialize MinIO: %w", err)
	}
	archive := services.NewDocumentArchive(services.NewPDFRenderer(firm), minioSvc, cfg.MinioBucket, cfg.PresignedURLTTL, log)
	if err := archive.EnsureBucket(ctx); err != nil {
		log.WithError(err).Warn("document bucket unavailable, PDF archiving will fail until it is reachable")
	}
	registers := services.NewRegisterExporter(invoiceSvc, poSvc)

	var keyFunc jwt.Keyfunc
	if cfg.AuthJWKSURL != "" {
		kf, endJWKS, err := middleware.NewJWKSKeyfunc(cfg.AuthJWKSURL, log)
		if err != nil {
			return err
		}
		defer endJWKS()
		keyFunc = kf
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.RequestValidator{}
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(middleware.SecureHeaders(cfg.IsProduction(), cfg.AllowedHosts))
	e.Use(middleware.RateLimitByIP(cfg.RateLimitPerMinute))

	health := handlers.NewHealthHandlers(
		handlers.CheckFunc(pool.Ping),
		handlers.CheckFunc(cacheSvc.Ping),
		handlers.CheckFunc(archive.Check),
		version,
	)
	e.GET("/health", health.HealthCheck)
	e.GET("/health/live", health.LivenessCheck)

	versions := middleware.NewVersionMiddleware()
	v1 := versions.VersionRoute(e, versions.GetCurrentVersion(),
		echojwt.WithConfig(middleware.JWTConfig(keyFunc, cfg.AuthJWTSecret)),
		middleware.SessionContext(),
	)
	v1.GET("/reference", handlers.NewReferenceHandlers(firm).GetReference)
	handlers.NewInvoiceHandlers(invoiceSvc, archive, registers, log).RegisterRoutes(v1)
	handlers.NewPurchaseOrderHandlers(poSvc, archive, registers, log).RegisterRoutes(v1)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("starting server")
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newAllocator(backend string, pool *pgxpool.Pool, client *redis.Client) (numbering.Allocator, error) {
	switch backend {
	case "postgres":
		return repositories.NewSequenceRepo(pool), nil
	case "redis":
		return numbering.NewRedisAllocator(client), nil
	case "memory":
		return numbering.NewMemoryAllocator(), nil
	default:
		return nil, fmt.Errorf("unknown sequence backend %q", backend)
	}
}
