// Package dsenv provides implicit client defaults inferred from the
// environment: the active dataset ID and the active backend connection.
//
// Client-library call sites that were not given a dataset ID or connection
// explicitly ask this package for the defaults. The dataset ID is resolved
// once per process through a precedence chain (explicit override, then the
// GCLOUD_DATASET_ID and DATASTORE_DATASET environment variables, then the
// platform-identity and metadata-server probes) and cached for the process
// lifetime. The connection is never inferred; it is whatever bootstrap code
// stored earlier.
//
// The package-level functions operate on a single process-wide container
// created in implicit mode at startup. Code that needs isolated defaults,
// including tests, constructs its own container instead of mutating the
// shared one.
package dsenv

import (
	"time"

	"github.com/concave-dev/dsenv/internal/defaults"
	"github.com/concave-dev/dsenv/internal/probe"
	"github.com/concave-dev/dsenv/internal/resolve"
)

// Connection is an opaque handle to the transport/session used to reach the
// backend. Stored and returned as-is, never constructed or inspected here.
type Connection = defaults.Connection

// Container holds the implied defaults for one scope. See NewContainer.
type Container = defaults.Container

// ErrNoDatasetID is returned by SetDefaultDatasetID when no dataset ID can
// be determined from any source.
var ErrNoDatasetID = defaults.ErrNoDatasetID

// IdentityFunc is a no-argument call into a host-provided identity service.
type IdentityFunc = probe.IdentityFunc

// The process-wide defaults, created in implicit mode: nothing is probed
// until the first read.
var defaultContainer = defaults.NewContainer(resolve.Default())

// GetDefaultDatasetID returns the process-wide default dataset ID, resolving
// it from the environment on first access and caching the outcome. Returns
// ("", false) when nothing resolves; the absence is cached too, since
// environment signals are assumed static for the process lifetime.
func GetDefaultDatasetID() (string, bool) {
	return defaultContainer.DatasetID()
}

// SetDefaultDatasetID sets the process-wide default dataset ID, explicitly
// or implicitly as fall-back. An empty datasetID means "infer from the
// environment". Returns ErrNoDatasetID when no source yields a value.
func SetDefaultDatasetID(datasetID string) error {
	return defaultContainer.SetDatasetID(datasetID)
}

// GetDefaultConnection returns the process-wide default connection, or nil
// when none has been set.
func GetDefaultConnection() Connection {
	return defaultContainer.Connection()
}

// SetDefaultConnection stores the process-wide default connection.
func SetDefaultConnection(conn Connection) {
	defaultContainer.SetConnection(conn)
}

// RegisterPlatformIdentity installs the host platform's identity service
// hook consulted by the platform-identity probe. Called once at startup by
// platform bootstrap code; unregistered means "service not present".
func RegisterPlatformIdentity(fn IdentityFunc) {
	probe.RegisterPlatformIdentity(fn)
}

// HasPlatformIdentity reports whether an identity service hook is
// registered, without invoking it.
func HasPlatformIdentity() bool {
	return probe.HasPlatformIdentity()
}

// NewContainer creates an independent container in implicit mode over the
// standard probe chain. Useful for tests and dependency injection.
func NewContainer() *Container {
	return defaults.NewContainer(resolve.Default())
}

// NewExplicitContainer creates an independent container committed to exactly
// the given dataset ID, including "none" (the empty string). An explicit
// container never probes.
func NewExplicitContainer(datasetID string) *Container {
	return defaults.NewExplicitContainer(resolve.Default(), datasetID)
}

// NewContainerAt creates an implicit-mode container whose metadata probe is
// pointed at a custom endpoint, e.g. a local fake metadata server. The
// endpoint must be a well-formed URL and the timeout positive.
func NewContainerAt(endpoint string, timeout time.Duration) (*Container, error) {
	metadata, err := probe.NewMetadataProbeAt(endpoint, timeout)
	if err != nil {
		return nil, err
	}
	resolver := resolve.New(probe.PlatformProbe{}, metadata)
	return defaults.NewContainer(resolver), nil
}
