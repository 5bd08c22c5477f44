package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yagoutpay/gateway/internal"
	"github.com/yagoutpay/gateway/internal/checkout"
	checkoutpg "github.com/yagoutpay/gateway/internal/checkout/postgres"
	"github.com/yagoutpay/gateway/internal/core/events"
	"github.com/yagoutpay/gateway/internal/gateway"
	"github.com/yagoutpay/gateway/internal/transport"
	"github.com/yagoutpay/gateway/internal/transport/rest"
	"github.com/yagoutpay/gateway/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle checkout and callback requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config          *internal.Config
	DB              *sqlx.DB
	Router          *chi.Mux
	CheckoutHandler *checkout.Handler
	CallbackHandler *checkout.CallbackHandler
	Logger          *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.CheckoutHandler, deps.CallbackHandler, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitFromConfig(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides on the already-open pgx connection
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(log)
	checkout.NewEventHandler(log).RegisterEventHandlers(eventBus)
	orderRepo := checkoutpg.NewOrderRepository(gormDB)
	gatewayClient := gateway.NewClient(gateway.Config{Timeout: config.Gateway.Timeout}, log)

	checkoutService := checkout.NewService(orderRepo, gatewayClient, eventBus, log, checkout.Config{
		MerchantID:     config.Merchant.MerchantID,
		AggregatorID:   config.Merchant.AggregatorID,
		EncryptionKey:  config.Merchant.EncryptionKey,
		Environment:    gateway.Environment(config.Gateway.Environment),
		IncludeAPIHash: config.Gateway.IncludeAPIHash,
		CallTimeout:    config.Gateway.Timeout,
	})

	baseHandler := transport.NewBaseHandler(log)
	checkoutHandler := checkout.NewHandler(baseHandler, checkoutService, log)
	callbackHandler := checkout.NewCallbackHandler(baseHandler, checkoutService, log)

	return &Dependencies{
		Config:          config,
		Logger:          log,
		DB:              db,
		Router:          chi.NewRouter(),
		CheckoutHandler: checkoutHandler,
		CallbackHandler: callbackHandler,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
