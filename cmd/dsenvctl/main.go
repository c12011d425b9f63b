// Package main contains the CLI entrypoint and command definitions for
// dsenvctl, the diagnostic tool for implicit dataset defaults.
//
// dsenvctl answers the operational question "which dataset would this host
// imply?" without writing any client code: it runs the same resolution chain
// the library uses and reports the outcome. It also ships a fake metadata
// server for exercising metadata-based inference on hosts without a cloud
// metadata service.
package main

import (
	"os"
	"time"

	"github.com/concave-dev/dsenv/internal/config"
	"github.com/concave-dev/dsenv/internal/logging"
	"github.com/concave-dev/dsenv/internal/validate"
	"github.com/concave-dev/dsenv/internal/version"
	"github.com/spf13/cobra"
)

// Global CLI flags shared across subcommands
var (
	metadataEndpoint string
	probeTimeout     time.Duration
	logLevel         string
	verbose          bool
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "dsenvctl",
	Short: "Diagnose implicit dataset defaults resolution",
	Long: `dsenvctl inspects how the default dataset ID would be inferred on this
host: environment variables first, then the platform-identity service, then
the instance metadata server.

It runs exactly the resolution chain the dsenv library uses, so its output
matches what a client library consumer would silently get.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: validateGlobalFlags,
	Example: `  # Show the dataset ID this host implies
  dsenvctl resolve

  # Check each signal source individually
  dsenvctl probe

  # Resolve against a fake metadata server
  dsenvctl --metadata-endpoint=http://127.0.0.1:8089 resolve

  # Serve a fake metadata endpoint for local testing
  dsenvctl serve-fake --project-id=my-test-dataset

  # Show verbose probe traces
  dsenvctl --verbose resolve`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&metadataEndpoint, "metadata-endpoint",
		config.MetadataEndpoint(), "Metadata server base URL to probe")
	rootCmd.PersistentFlags().DurationVar(&probeTimeout, "timeout",
		config.MetadataTimeout, "Metadata probe timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "ERROR",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Show verbose probe traces")
}

// validateGlobalFlags checks flag values and configures logging before any
// subcommand runs
func validateGlobalFlags(cmd *cobra.Command, args []string) error {
	if err := validate.ValidateEndpointURL(metadataEndpoint); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(probeTimeout, "timeout"); err != nil {
		return err
	}

	setupLogging()
	return nil
}

// setupLogging configures CLI logging behavior. Verbose mode shows the DEBUG
// probe traces; otherwise output follows the configured level with errors
// always visible.
func setupLogging() {
	if verbose || os.Getenv("DEBUG") == "true" {
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
		return
	}
	logging.SetLevel(logLevel)
	if logLevel == "ERROR" {
		logging.SuppressOutput()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
