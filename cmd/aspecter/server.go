package aspecter

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thaumlab/aspecter"
	"github.com/thaumlab/aspecter/pkg/config"
	"github.com/thaumlab/aspecter/pkg/server"
)

var serverCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Aspecter HTTP server",
	Long: `Start the Aspecter HTTP server to provide REST API access to the recipe
graph.

The server provides endpoints for:
- Ranking the paths connecting two aspects
- Cracking composites into primary aspects
- Listing aspects, recipes, mods and holdings
- Setting holdings and reloading the graph
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")

	// Telemetry flags
	serverCmd.Flags().String("telemetry-sink", "", "Telemetry error sink (parquet, sqlite)")
	serverCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for telemetry error records")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}
	if cmd.Flags().Changed("telemetry-sink") {
		cfg.Telemetry.Sink, _ = cmd.Flags().GetString("telemetry-sink")
	}
	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}

	// Validate configuration
	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize the client
	fmt.Println("Initializing Aspecter...")
	logger, telemetryFlush := newLogger(cfg)
	// Flushes any buffered error records on the way out.
	defer telemetryFlush()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	client, err := aspecter.New(st, cfg, logger)
	if err != nil {
		st.Close()
		return err
	}
	defer client.Close()

	if err := client.Load(ctx); err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	// Create and setup server
	srv := server.New(cfg, client)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)

		// Create shutdown context with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Shutdown server
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		fmt.Println("Server stopped gracefully")
		return nil
	}
}

func validateServerConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}
	if cfg.Database.URI == "" && cfg.Database.Driver != "memory" {
		return fmt.Errorf("database URI is required")
	}
	return nil
}
