package config

import (
	"net"
	"strings"
	"testing"
	"time"
)

// TestDatasetEnvVars validates the environment variable name constants
func TestDatasetEnvVars(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "primary env var",
			value:    DatasetEnvVar,
			expected: "GCLOUD_DATASET_ID",
		},
		{
			name:     "legacy gcd env var",
			value:    GCDDatasetEnvVar,
			expected: "DATASTORE_DATASET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != tt.expected {
				t.Errorf("env var = %q, want %q", tt.value, tt.expected)
			}
		})
	}
}

// TestMetadataHostIsLinkLocalIP validates that the metadata host is a valid
// link-local IPv4 address rather than a hostname requiring DNS resolution
func TestMetadataHostIsLinkLocalIP(t *testing.T) {
	ip := net.ParseIP(MetadataHost)
	if ip == nil {
		t.Fatalf("MetadataHost %q is not a valid IP address", MetadataHost)
	}
	if ip.To4() == nil {
		t.Errorf("MetadataHost %q is not an IPv4 address", MetadataHost)
	}
	if !ip.IsLinkLocalUnicast() {
		t.Errorf("MetadataHost %q is not link-local", MetadataHost)
	}
}

// TestMetadataTimeoutIsBounded validates the probe timeout stays small enough
// to never visibly stall an off-cloud caller
func TestMetadataTimeoutIsBounded(t *testing.T) {
	if MetadataTimeout <= 0 {
		t.Errorf("MetadataTimeout must be positive, got %v", MetadataTimeout)
	}
	if MetadataTimeout > time.Second {
		t.Errorf("MetadataTimeout %v exceeds one second", MetadataTimeout)
	}
}

// TestMetadataEndpoint validates the assembled base URL
func TestMetadataEndpoint(t *testing.T) {
	endpoint := MetadataEndpoint()
	if !strings.HasPrefix(endpoint, "http://") {
		t.Errorf("MetadataEndpoint() = %q, want http:// prefix", endpoint)
	}
	if !strings.Contains(endpoint, MetadataHost) {
		t.Errorf("MetadataEndpoint() = %q, want to contain %q", endpoint, MetadataHost)
	}
}
