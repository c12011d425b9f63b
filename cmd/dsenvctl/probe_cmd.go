// Package main contains the CLI entrypoint and command definitions for dsenvctl.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/concave-dev/dsenv/internal/config"
	"github.com/concave-dev/dsenv/internal/probe"
	"github.com/spf13/cobra"
)

// Probe command (report each signal source individually)
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Report every dataset ID signal source individually",
	Long: `Report the state of each signal source the resolution chain consults,
in precedence order, without short-circuiting. Useful for understanding why
resolution picked a particular value or found nothing.`,
	Example: `  # Inspect all sources on this host
  dsenvctl probe

  # Inspect sources against a fake metadata server
  dsenvctl --metadata-endpoint=http://127.0.0.1:8089 probe`,
	Args: cobra.NoArgs,
	RunE: handleProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

// handleProbe reports all sources in precedence order
func handleProbe(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	reportEnvVar(out, config.DatasetEnvVar)
	reportEnvVar(out, config.GCDDatasetEnvVar)

	if probe.HasPlatformIdentity() {
		if id, ok := (probe.PlatformProbe{}).Infer(); ok {
			fmt.Fprintf(out, "platform-identity:  %s\n", id)
		} else {
			fmt.Fprintf(out, "platform-identity:  (service registered, no identity)\n")
		}
	} else {
		fmt.Fprintf(out, "platform-identity:  (service not present)\n")
	}

	metadata, err := probe.NewMetadataProbeAt(metadataEndpoint, probeTimeout)
	if err != nil {
		return err
	}
	if id, ok := metadata.Infer(); ok {
		fmt.Fprintf(out, "metadata-server:    %s\n", id)
	} else {
		fmt.Fprintf(out, "metadata-server:    (unavailable at %s)\n", metadata.Endpoint())
	}

	return nil
}

// reportEnvVar prints one environment variable's contribution
func reportEnvVar(out io.Writer, name string) {
	if value := os.Getenv(name); value != "" {
		fmt.Fprintf(out, "%-19s %s\n", name+":", value)
	} else {
		fmt.Fprintf(out, "%-19s (unset)\n", name+":")
	}
}
