// Package main contains the CLI entrypoint and command definitions for dsenvctl.
package main

import (
	"fmt"

	"github.com/concave-dev/dsenv"
	"github.com/spf13/cobra"
)

// Resolve command (run the full precedence chain)
var resolveCmd = &cobra.Command{
	Use:   "resolve [dataset-id]",
	Short: "Resolve the default dataset ID for this host",
	Long: `Resolve the default dataset ID using the full precedence chain:
explicit argument, GCLOUD_DATASET_ID, DATASTORE_DATASET, the
platform-identity service, then the metadata server.

Prints the resolved ID on success. Exits non-zero when no source yields an
identifier, mirroring the library's configuration error.`,
	Example: `  # Infer from the environment
  dsenvctl resolve

  # Explicit override (always wins, useful to verify plumbing)
  dsenvctl resolve my-dataset

  # Probe a fake metadata server instead of the link-local address
  dsenvctl --metadata-endpoint=http://127.0.0.1:8089 resolve`,
	Args: cobra.MaximumNArgs(1),
	RunE: handleResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

// handleResolve runs the resolution chain and prints the outcome
func handleResolve(cmd *cobra.Command, args []string) error {
	explicit := ""
	if len(args) == 1 {
		explicit = args[0]
	}

	container, err := dsenv.NewContainerAt(metadataEndpoint, probeTimeout)
	if err != nil {
		return err
	}

	if err := container.SetDatasetID(explicit); err != nil {
		return err
	}

	id, _ := container.DatasetID()
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
