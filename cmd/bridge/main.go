package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/goran-ethernal/MercuryBridge/internal/common"
	"github.com/goran-ethernal/MercuryBridge/internal/config"
	"github.com/goran-ethernal/MercuryBridge/internal/ledger"
	"github.com/goran-ethernal/MercuryBridge/internal/logger"
	"github.com/goran-ethernal/MercuryBridge/internal/mercury"
	"github.com/goran-ethernal/MercuryBridge/internal/metrics"
	"github.com/goran-ethernal/MercuryBridge/pkg/api"
	pkgconfig "github.com/goran-ethernal/MercuryBridge/pkg/config"
	pkgledger "github.com/goran-ethernal/MercuryBridge/pkg/ledger"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║          MercuryBridge v%s             ║
║   Mercury Subscription Bridge Service     ║
╚═══════════════════════════════════════════╝
`
)

var (
	configPath string
	envFiles   []string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bridge",
	Short: "MercuryBridge - Mercury indexer subscription bridge",
	Long: `MercuryBridge manages subscriptions on the Mercury indexing service for
Stellar and Soroban data. It exposes the subscription and account history
operations over a REST API and can record every subscription attempt in a
local SQLite ledger.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API and metrics servers",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to configuration file (.yaml, .yml, .json, .toml); the environment alone is used when empty")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default: ./.env)")

	rootCmd.AddCommand(serveCmd)
	addOperationCommands(rootCmd)
	addLedgerCommands(rootCmd)
}

// loadConfig loads the env files and the configuration.
func loadConfig() (*pkgconfig.Config, error) {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// openLedger opens the ledger store when it is enabled, or returns nil.
func openLedger(cfg *pkgconfig.Config) (*ledger.Store, error) {
	if cfg.Ledger == nil || !cfg.Ledger.Enabled {
		return nil, nil
	}

	store, err := ledger.New(cfg.Ledger.DB, logger.NewComponentLoggerFromConfig(common.ComponentLedger, cfg.Logging))
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	return store, nil
}

// newClient builds the subscription client, recording attempts in store when it is not nil.
func newClient(cfg *pkgconfig.Config, store *ledger.Store) *mercury.Client {
	var opts []mercury.Option
	if store != nil {
		opts = append(opts, mercury.WithRecorder(store))
	}

	return mercury.NewClientFromConfig(cfg.Mercury, &http.Client{}, cfg.Logging, opts...)
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	log := logger.NewComponentLoggerFromConfig(common.ComponentClient, cfg.Logging)

	// Initialize metrics server if enabled
	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics,
			logger.NewComponentLoggerFromConfig(common.ComponentMetrics, cfg.Logging))
		if err := metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			if err := metricsServer.Stop(context.Background()); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
		log.Infof("Metrics server started on %s%s", cfg.Metrics.ListenAddress, cfg.Metrics.Path)
	}

	store, err := openLedger(cfg)
	if err != nil {
		return err
	}

	var ledgerReader pkgledger.Reader
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				log.Warnf("Failed to close ledger: %v", err)
			}
		}()
		ledgerReader = store

		pruner := ledger.NewPruner(store, cfg.Ledger.Retention.Duration, cfg.Ledger.PruneInterval.Duration)
		pruner.Start(ctx)
		defer pruner.Stop()

		log.Infof("Ledger enabled at %s", cfg.Ledger.DB.Path)
	}

	client := newClient(cfg, store)
	log.Infof("Using indexing service at %s", cfg.Mercury.BaseURL)

	if cfg.API == nil || !cfg.API.Enabled {
		log.Warn("API server is not enabled. Nothing to serve.")
		return nil
	}

	apiServer := api.NewServer(
		cfg.API,
		client,
		ledgerReader,
		logger.NewComponentLoggerFromConfig(common.ComponentAPI, cfg.Logging),
	)

	log.Info("Starting MercuryBridge...")
	if err := apiServer.Start(ctx); err != nil {
		return fmt.Errorf("API server failed: %w", err)
	}

	log.Info("MercuryBridge stopped successfully")
	return nil
}
