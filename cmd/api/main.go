package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/servly/pricing-api/internal/config"
	"github.com/servly/pricing-api/internal/handler"
	auditHandler "github.com/servly/pricing-api/internal/handler/audit"
	pricingHandler "github.com/servly/pricing-api/internal/handler/pricing"
	unitHandler "github.com/servly/pricing-api/internal/handler/unit"
	"github.com/servly/pricing-api/internal/middleware"
	"github.com/servly/pricing-api/internal/repository/postgres"
	"github.com/servly/pricing-api/internal/router"
	auditService "github.com/servly/pricing-api/internal/service/audit"
	pricingService "github.com/servly/pricing-api/internal/service/pricing"
	unitService "github.com/servly/pricing-api/internal/service/unit"
	"github.com/servly/pricing-api/pkg/logger"
	"github.com/servly/pricing-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("servly", "pricing_api")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	base := postgres.NewBaseRepository(db)
	pricingRepo := postgres.NewPricingRepository(base)
	unitRepo := postgres.NewUnitRepository(base)
	auditRepo := postgres.NewAuditRepository(base)
	outboxRepo := postgres.NewOutboxRepository(base)

	pricingSvc := pricingService.NewService(pricingRepo, outboxRepo, appLogger, appMetrics)
	unitSvc := unitService.NewService(unitRepo, cfg.Units.CacheTTL, appLogger)
	auditSvc := auditService.NewService(auditRepo, outboxRepo, appLogger, appMetrics)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	h := handler.NewHandler()
	pricingH := pricingHandler.NewHandler(pricingSvc)
	unitH := unitHandler.NewHandler(unitSvc)
	auditH := auditHandler.NewHandler(auditSvc)

	r := router.NewRouter(
		authMiddleware,
		pricingH,
		unitH,
		auditH,
		h,
		router.RouterConfig{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			CORSConfig:       middleware.DefaultCORSConfig(),
			Timeout:          middleware.TimeoutConfig{Duration: cfg.Server.RequestTimeout},
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting pricing API")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
