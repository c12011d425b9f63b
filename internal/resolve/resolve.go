// Package resolve implements the precedence-ordered policy for inferring the
// default dataset ID from the environment.
//
// The precedence chain, first present wins:
//
//  1. Explicit caller-supplied override
//  2. GCLOUD_DATASET_ID environment variable
//  3. DATASTORE_DATASET environment variable (gcd local-testing tool)
//  4. Platform-identity probe
//  5. Metadata-server probe
//
// Resolution is a pure read of environment state: it performs no caching, no
// retries, and mutates nothing. Callers that want memoization layer it on top
// (see the defaults package).
package resolve

import (
	"os"

	"github.com/concave-dev/dsenv/internal/config"
	"github.com/concave-dev/dsenv/internal/logging"
	"github.com/concave-dev/dsenv/internal/probe"
)

// Source is one environment signal that may imply a dataset ID. Implemented
// by the identity probes; tests substitute fakes.
type Source interface {
	// Name identifies the source in resolution traces
	Name() string
	// Infer returns the implied dataset ID, or ("", false) when the signal
	// is unavailable
	Infer() (string, bool)
}

// Resolver applies the precedence chain over an ordered list of sources.
type Resolver struct {
	sources []Source
}

// New creates a resolver over the given sources, tried in argument order
// after the environment variables.
func New(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Default creates a resolver over the standard probes in their fixed order:
// platform identity first, metadata server last. The metadata probe goes
// last because it is the only source that costs a network round trip.
func Default() *Resolver {
	return New(probe.PlatformProbe{}, probe.NewMetadataProbe())
}

// Resolve determines the dataset ID, explicitly or implicitly as fall-back.
// An empty explicit value means "no override". Returns ("", false) when no
// source yields an identifier; the caller decides how to react.
func (r *Resolver) Resolve(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}

	if id := os.Getenv(config.DatasetEnvVar); id != "" {
		logging.Debug("resolved dataset ID from %s", config.DatasetEnvVar)
		return id, true
	}

	if id := os.Getenv(config.GCDDatasetEnvVar); id != "" {
		logging.Debug("resolved dataset ID from %s", config.GCDDatasetEnvVar)
		return id, true
	}

	for _, source := range r.sources {
		if id, ok := source.Infer(); ok {
			logging.Debug("resolved dataset ID from %s probe", source.Name())
			return id, true
		}
	}

	logging.Debug("no dataset ID could be resolved from the environment")
	return "", false
}
