// Package main contains the CLI entrypoint and command definitions for dsenvctl.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/concave-dev/dsenv/internal/logging"
	"github.com/concave-dev/dsenv/internal/metaserver"
	"github.com/concave-dev/dsenv/internal/validate"
	"github.com/spf13/cobra"
)

// Serve-fake command flags
var (
	serveProjectID string
	serveBindAddr  string
	serveBindPort  int
)

// Serve-fake command (local fake metadata endpoint)
var serveFakeCmd = &cobra.Command{
	Use:   "serve-fake",
	Short: "Serve a fake metadata endpoint for local testing",
	Long: `Serve a local HTTP endpoint that mimics the instance metadata server's
project-id path, including the flavor header requirement.

Point consumers at it with --metadata-endpoint (or the library's custom
endpoint constructor) to exercise metadata-based inference off-cloud.`,
	Example: `  # Serve a fake project ID on the default port
  dsenvctl serve-fake --project-id=my-test-dataset

  # Serve on a specific address and port
  dsenvctl serve-fake --project-id=my-test-dataset --bind=0.0.0.0 --port=9090

  # In another shell, resolve against it
  dsenvctl --metadata-endpoint=http://127.0.0.1:8089 resolve`,
	Args: cobra.NoArgs,
	RunE: handleServeFake,
}

func init() {
	serveFakeCmd.Flags().StringVar(&serveProjectID, "project-id", "",
		"Project ID the fake endpoint reports (required)")
	serveFakeCmd.Flags().StringVar(&serveBindAddr, "bind", "127.0.0.1",
		"Bind address for the fake endpoint")
	serveFakeCmd.Flags().IntVar(&serveBindPort, "port", 8089,
		"Bind port for the fake endpoint")

	rootCmd.AddCommand(serveFakeCmd)
}

// handleServeFake runs the fake metadata server until interrupted
func handleServeFake(cmd *cobra.Command, args []string) error {
	if err := validate.ValidateRequiredString(serveProjectID, "--project-id"); err != nil {
		return err
	}
	if err := validate.ValidateField(serveBindPort, "required,min=1,max=65535"); err != nil {
		return fmt.Errorf("invalid --port %d: %w", serveBindPort, err)
	}

	// The server is the point of this command; always show its lifecycle
	logging.RestoreOutput()

	server := metaserver.NewServer(serveProjectID, serveBindAddr, serveBindPort)
	if err := server.Start(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Fake metadata server on %s (Ctrl+C to stop)\n",
		server.Endpoint())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
