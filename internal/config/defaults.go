// Package config provides common default configuration values shared across
// dsenv components (probes, resolution, CLI). This centralizes configuration
// management and ensures every entry point agrees on the environment signals
// that imply the active dataset.
package config

import "time"

const (
	// DatasetEnvVar is the primary environment variable consulted when
	// inferring the default dataset ID
	DatasetEnvVar = "GCLOUD_DATASET_ID"

	// GCDDatasetEnvVar is the legacy environment variable consulted after
	// DatasetEnvVar. Kept for compatibility with the gcd local-testing tool
	GCDDatasetEnvVar = "DATASTORE_DATASET"

	// MetadataHost is the link-local metadata server address. The raw IP is
	// used instead of a hostname to avoid DNS lookup latency on hosts where
	// the metadata service does not exist
	MetadataHost = "169.254.169.254"

	// MetadataProjectPath is the metadata server path that returns the
	// project ID as a plain-text body
	MetadataProjectPath = "/computeMetadata/v1/project/project-id"

	// MetadataFlavorHeader and MetadataFlavorValue identify requests as
	// metadata-aware. The flavor header matters because the same link-local
	// IP is used by other cloud providers
	MetadataFlavorHeader = "Metadata-Flavor"
	MetadataFlavorValue  = "Google"

	// MetadataTimeout bounds the single metadata probe request. Deliberately
	// small so off-cloud callers are never stalled for longer than this when
	// the service is absent
	MetadataTimeout = 100 * time.Millisecond

	// DefaultLogLevel is the default log level for all components
	DefaultLogLevel = "INFO"
)

// MetadataEndpoint returns the full metadata server base URL built from the
// default host. Probes resolve the project path relative to this.
func MetadataEndpoint() string {
	return "http://" + MetadataHost
}
