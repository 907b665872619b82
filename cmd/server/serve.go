package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"pharmacare/config"
	"pharmacare/internal/delivery"
	grpcdelivery "pharmacare/internal/delivery/grpc"
	"pharmacare/internal/repository"
	"pharmacare/internal/usecase"
	"pharmacare/migrations"
	"pharmacare/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the operational gRPC endpoint",
	RunE:  runServe,
}

func poolConfig(cfg *config.Config) db.PoolConfig {
	return db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	log.Info("Starting pharmacare backend...")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := db.RunMigrations(migrations.FS, cfg.DatabaseURL, db.MigrateUp, log); err != nil {
			return err
		}
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL, poolConfig(cfg))
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		return err
	}
	defer database.Close()
	log.Info("Database connection established.")

	// Repository Layer
	drugRepo := repository.NewPostgresDrugRepository(database, log)
	categoryRepo := repository.NewPostgresCategoryRepository(database, log)
	cartRepo := repository.NewPostgresCartRepository(database, log)
	userRepo := repository.NewPostgresUserRepository(database, log)
	orderRepo := repository.NewPostgresOrderRepository(database, log)

	// Usecase Layer
	useCases := delivery.UseCases{
		Catalog: usecase.NewCatalogUseCase(drugRepo, categoryRepo, log),
		Cart:    usecase.NewCartUseCase(cartRepo, log),
		Users:   usecase.NewUserUseCase(userRepo, log),
		Orders:  usecase.NewOrderUseCase(orderRepo, log),
	}

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: delivery.NewRouter(useCases, cfg.FrontendURL, log),
	}

	grpcServer := grpcdelivery.NewServer(log)
	grpcListener, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		log.Errorf("Failed to listen on gRPC port %s: %v", cfg.GrpcPort, err)
		return err
	}
	grpcServer.SetServing(true)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Infof("gRPC server listening on %s", cfg.GrpcPort)
		return grpcServer.Serve(grpcListener)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		grpcServer.Shutdown()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Errorf("Server stopped with error: %v", err)
		return err
	}
	log.Info("Server stopped.")
	return nil
}
