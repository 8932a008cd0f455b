package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"garage-api/internal/config"
	"garage-api/internal/domain"
	apphttp "garage-api/internal/http"
	"garage-api/internal/metrics"
	"garage-api/internal/repository/sqlite"
	"garage-api/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Fatalf("log level: %v", err)
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(ctx, db, logger); err != nil {
		logger.Fatalf("migrate database: %v", err)
	}

	adminRepo := sqlite.NewAdministratorRepository(db)
	vehicleRepo := sqlite.NewVehicleRepository(db)

	validator := service.NewValidator(adminRepo, vehicleRepo)
	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)

	tokens, err := service.NewTokenIssuer(service.TokenConfig{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
		TTL:      cfg.TokenTTL(),
	}, time.Now)
	if err != nil {
		logger.Fatalf("token issuer: %v", err)
	}

	authService, err := service.NewAuthService(adminRepo, hasher, tokens, logger)
	if err != nil {
		logger.Fatalf("auth service: %v", err)
	}
	adminService := service.NewAdministratorService(adminRepo, validator, hasher)
	vehicleService := service.NewVehicleService(vehicleRepo, validator)

	if err := seedMaster(ctx, adminService, cfg, logger); err != nil {
		logger.Fatalf("seed master administrator: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	limiter := apphttp.NewLoginLimiter(apphttp.LoginLimiterConfig{
		PerMinute: cfg.RateLimit.LoginPerMinute,
		Burst:     cfg.RateLimit.LoginBurst,
	})
	defer limiter.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		adminService,
		vehicleService,
		authService,
		limiter,
		collector,
		metrics.Handler(registry),
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func seedMaster(ctx context.Context, admins service.AdministratorService, cfg config.Config, logger *logrus.Logger) error {
	if cfg.Seed.Email == "" {
		return nil
	}

	created, err := admins.EnsureMaster(ctx, service.AdministratorInput{
		Name:     cfg.Seed.Name,
		Email:    cfg.Seed.Email,
		Password: cfg.Seed.Password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return err
	}
	if created {
		logger.WithField("email", cfg.Seed.Email).Info("master administrator created")
		if cfg.Seed.Password == "Admin" {
			logger.Warn("master administrator uses the default password; set GARAGE_SEED_PASSWORD")
		}
	}
	return nil
}
