package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adamanr/departments_service/internal/api"
	grpcapi "github.com/adamanr/departments_service/internal/api/grpc"
	"github.com/adamanr/departments_service/internal/config"
	"github.com/adamanr/departments_service/internal/controllers"
	"github.com/adamanr/departments_service/internal/database"
	logging "github.com/adamanr/departments_service/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	bootstrapLogFile = "server.log"
	shutdownTimeout  = 10 * time.Second
)

func main() {
	logger, err := logging.SetupLogger(bootstrapLogFile, slog.LevelInfo)
	if err != nil {
		log.Fatal("Failed to setup logger:", err)
	}

	cfg, err := config.GetConfig(logger)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if cfg.Log.File != "" {
		if logger, err = logging.SetupLogger(cfg.Log.File, logging.ParseLevel(cfg.Log.Level)); err != nil {
			log.Fatal("Failed to setup logger:", err)
		}
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}

	logger.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pool, err := database.NewConnect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := database.NewStore(pool, logger)
	if err = store.EnsureSchema(ctx); err != nil {
		return err
	}

	grpcServer := grpcapi.NewServer(grpcapi.NewHealthServer(store, logger))

	conn, err := grpc.NewClient(cfg.Server.GRPCHost, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err
	}
	defer conn.Close()

	lis, err := net.Listen("tcp", cfg.Server.GRPCHost)
	if err != nil {
		return err
	}
	defer lis.Close()

	deps := &controllers.Dependens{
		Store:  store,
		Logger: logger,
	}

	router := api.NewRouter(
		api.NewServer(deps),
		api.NewMetrics(prometheus.DefaultRegisterer),
		promhttp.Handler(),
		grpcapi.NewHealthzHandler(conn),
	)

	s := &http.Server{
		Handler:           router,
		Addr:              cfg.Server.Host,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("gRPC server is starting", slog.String("address", cfg.Server.GRPCHost))
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		logger.Info("Server is starting", slog.String("address", cfg.Server.Host))
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcServer.GracefulStop()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
