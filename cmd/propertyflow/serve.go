package main

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"

	grpcadapter "github.com/simaogato/propertyflow-backend/internal/adapter/grpc"
	"github.com/simaogato/propertyflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/propertyflow-backend/internal/adapter/tableio"
	"github.com/simaogato/propertyflow-backend/internal/config"
	"github.com/simaogato/propertyflow-backend/internal/logging"
	"github.com/simaogato/propertyflow-backend/internal/usecase/portfolio"
)

var envFile string

// serveCmd runs the gRPC server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the PortfolioService gRPC server",
	Long: `Starts the gRPC server. Configuration is read from the environment,
after loading a dotenv file if one exists:

  GRPC_ADDR, API_TOKEN, LOG_LEVEL, SESSION_TTL, SESSION_CLEANUP_INTERVAL,
  RATE_LIMIT_RPS, RATE_LIMIT_BURST, SEED_SAMPLE_DATA, MAX_IMPORT_BYTES

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&envFile, "env-file", ".env", "Dotenv file to load if present")
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load configuration
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("log-level") {
		if logger, err = logging.New(cfg.LogLevel); err != nil {
			return err
		}
	}
	if cfg.EnvFile != "" {
		logger.Info("loaded environment file", zap.String("path", cfg.EnvFile))
	}
	if cfg.UsesDefaultToken() {
		logger.Warn("API_TOKEN is not set, using the development token")
	}

	// 2. Initialize repository and services
	sessionRepo := memory.NewSessionRepository(cfg.SessionTTL, cfg.SessionCleanupInterval)
	parser := tableio.NewCSVParser(tableio.Options{MaxBytes: cfg.MaxImportBytes})
	portfolioService := portfolio.NewPortfolioService(sessionRepo, parser, logger.Named("portfolio"))

	// 3. Create gRPC server with the interceptor chain
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger.Named("grpc")),
			grpcadapter.RateLimitInterceptor(grpcadapter.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
		// Imports travel inside a single message
		grpclib.MaxRecvMsgSize(int(cfg.MaxImportBytes)+1<<20),
	)
	grpcadapter.RegisterPortfolioServiceServer(grpcServer, grpcadapter.NewServer(portfolioService, cfg.SeedSampleData))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.GRPCAddr, err)
	}

	// 4. Serve until a signal arrives, then shut down gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gracefully")
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("gRPC server failed: %w", err)
	}
	logger.Info("gRPC server stopped")
	return nil
}
