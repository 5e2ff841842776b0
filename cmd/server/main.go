package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mashi007/pagos-sub005/internal/application/usecase"
	"github.com/Mashi007/pagos-sub005/internal/domain/service"
	"github.com/Mashi007/pagos-sub005/internal/infrastructure/clock"
	"github.com/Mashi007/pagos-sub005/internal/infrastructure/config"
	"github.com/Mashi007/pagos-sub005/internal/infrastructure/messaging"
	pgRepo "github.com/Mashi007/pagos-sub005/internal/infrastructure/persistence/postgres"
	"github.com/Mashi007/pagos-sub005/internal/infrastructure/scheduler"
	grpcPresentation "github.com/Mashi007/pagos-sub005/internal/presentation/grpc"
	"github.com/Mashi007/pagos-sub005/internal/presentation/rest"
	"github.com/Mashi007/pagos-sub005/pkg/auth"
	pkgkafka "github.com/Mashi007/pagos-sub005/pkg/kafka"
	"github.com/Mashi007/pagos-sub005/pkg/observability"
	pkgpostgres "github.com/Mashi007/pagos-sub005/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting pagos-servicing",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
		Port:        cfg.HTTPPort,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: cfg.DB.MaxConns,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(cfg.DB.DSN(), cfg.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	loanRepo := pgRepo.NewLoanRepo(pool)
	paymentRepo := pgRepo.NewPaymentRepo(pool)
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)
	sysClock := clock.New()

	// Domain services.
	moraCalc := service.NewMoraCalculator()
	engine := service.NewAllocationEngine()
	recalculator := service.NewRecalculator(moraCalc)
	projector := service.NewProjector(recalculator, engine)

	// Wire use cases.
	generateUC := usecase.NewGenerateScheduleUseCase(loanRepo, publisher, sysClock)
	applyUC := usecase.NewApplyPaymentUseCase(
		loanRepo, paymentRepo, publisher, sysClock, recalculator, engine, cfg.DefaultDailyMoraRatePct)
	recalcUC := usecase.NewRecalculateMoraUseCase(
		loanRepo, publisher, sysClock, recalculator, cfg.DefaultDailyMoraRatePct)
	projectUC := usecase.NewProjectPaymentUseCase(
		loanRepo, sysClock, projector, cfg.DefaultDailyMoraRatePct)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)

	// JWT service (validation-only on this service; tokens are minted upstream).
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: "pagos-gateway",
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Nightly mora sweep.
	recalcScheduler := scheduler.NewRecalcScheduler(loanRepo, recalcUC, logger)
	if err := recalcScheduler.Start(cfg.RecalcCronSpec); err != nil {
		logger.Error("failed to start recalculation scheduler", "error", err)
		os.Exit(1)
	}
	defer recalcScheduler.Stop()

	// Catch-up sweep on startup so a restart never leaves stale mora.
	go recalcScheduler.RunOnce(ctx)

	// gRPC server.
	metricsInterceptor, err := grpcPresentation.UnaryMetricsInterceptor(meterProvider)
	if err != nil {
		logger.Error("failed to initialize metrics interceptor", "error", err)
		os.Exit(1)
	}
	handler := grpcPresentation.NewServicingHandler(
		generateUC, applyUC, recalcUC, projectUC, getLoanUC, logger)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc, metricsInterceptor)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("/metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("pagos-servicing stopped")
}
