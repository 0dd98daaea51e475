// Package cli provides the start-up steps shared by the smartspend
// commands: environment, configuration, logging and ledger wiring.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"smartspend/internal/backend"
	"smartspend/internal/config"
	"smartspend/internal/log"
	"smartspend/internal/services"
)

// SetupLogger initializes structured logging at the configured level and
// sets it as the default logger.
func SetupLogger(cfg *config.Config, out io.Writer) *log.Logger {
	lc := log.DefaultConfig()
	if cfg != nil {
		lc.Level = cfg.LogLevel
	}
	if out != nil {
		lc.Output = out
	}
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig reads the configuration from the environment and
// validates it. Failures are logged before being returned.
func LoadAndValidateConfig(logger *log.Logger) (*config.Config, error) {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.Error("Configuration validation failed",
			log.NewFields().WithOperation(log.OpStartup).WithError(err, log.ErrorTypeConfiguration).ToSlice()...)
		return nil, err
	}
	return cfg, nil
}

// ServiceConfig maps the application configuration onto the expense
// service settings.
func ServiceConfig(cfg *config.Config) services.ExpenseServiceConfig {
	sc := services.DefaultExpenseServiceConfig()
	sc.HighSpendingThreshold = cfg.HighSpendingThreshold
	sc.MinOccurrences = cfg.RecurringMinOccurrences
	sc.ExportPath = cfg.ExportPath
	if cfg.CurrencySymbol != "" {
		sc.Currency = cfg.CurrencySymbol
	}
	return sc
}

// OpenService opens the configured ledger and builds the expense service
// on top of it. Closing the service closes the ledger.
func OpenService(ctx context.Context, cfg *config.Config, logger *log.Logger) (*services.ExpenseService, error) {
	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bc)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	logger.WithComponent(log.ComponentApp).InfoContext(ctx, "Ledger ready",
		log.NewFields().WithOperation(log.OpStartup).ToSlice()...)
	return services.NewExpenseService(res.Store, ServiceConfig(cfg), logger), nil
}

// HandleInterrupt closes the service and exits when SIGINT or SIGTERM
// arrives. The returned stop function removes the handler.
func HandleInterrupt(logger *log.Logger, svc *services.ExpenseService) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String(),
				log.FieldOperation, log.OpShutdown)
			if err := svc.Close(); err != nil {
				logger.Error("Failed to close ledger", "error", err)
			}
			os.Exit(130)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
