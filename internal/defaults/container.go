// Package defaults implements the process-wide container for implied client
// defaults: the active dataset ID and the active connection.
//
// The dataset ID is resolved lazily on first access through the resolution
// policy, then cached for the life of the container. The cache deliberately
// memoizes negative results too: environment signals are assumed static for
// the process lifetime, so a failed first lookup is not retried even if
// environment variables appear later. Explicit setter calls bypass probing
// and overwrite the cache eagerly.
//
// The connection is pure pass-through storage. There is no implicit way to
// construct one (that requires external input such as credentials), so the
// container only hands back whatever a collaborator stored earlier.
package defaults

import (
	"errors"
	"sync"

	"github.com/concave-dev/dsenv/internal/resolve"
)

// ErrNoDatasetID is returned by SetDatasetID when no dataset ID can be
// determined from any source. This is the single user-visible failure of
// defaults resolution.
var ErrNoDatasetID = errors.New("No identifier could be inferred")

// Connection is an opaque handle to the transport/session a client uses to
// reach the backend. The container stores and returns it without ever
// constructing or inspecting it.
type Connection any

// lazyCell is a tri-state memoizing holder for one lazily-evaluated field:
// unresolved, resolved-present, or resolved-absent. Each cell owns its own
// lock around the resolve-and-cache step, so concurrent first reads compute
// at most once and separate cells never cross-trigger each other.
type lazyCell struct {
	mu       sync.Mutex
	resolved bool
	value    string
	present  bool
}

// get returns the cached value, computing and caching it first if the cell
// is still unresolved. Absence is cached exactly like presence.
func (c *lazyCell) get(compute func() (string, bool)) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.resolved {
		c.value, c.present = compute()
		c.resolved = true
	}
	return c.value, c.present
}

// set eagerly overwrites the cell, marking it resolved.
func (c *lazyCell) set(value string, present bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.present = present
	c.resolved = true
}

// Container holds the implied defaults for one scope, usually the whole
// process. Tests construct fresh containers instead of mutating shared
// process state.
type Container struct {
	resolver *resolve.Resolver

	datasetID lazyCell

	connMu     sync.RWMutex
	connection Connection
}

// NewContainer creates a container in implicit mode: the dataset ID starts
// unresolved and is inferred through the resolver on first access, and the
// connection starts absent. No probing happens at construction.
func NewContainer(resolver *resolve.Resolver) *Container {
	return &Container{resolver: resolver}
}

// NewExplicitContainer creates a container committed to exactly the given
// dataset ID, including "none" (the empty string). An explicit container
// never probes, even when the committed value is absent and the getter is
// called repeatedly.
func NewExplicitContainer(resolver *resolve.Resolver, datasetID string) *Container {
	c := &Container{resolver: resolver}
	c.datasetID.set(datasetID, datasetID != "")
	return c
}

// DatasetID returns the default dataset ID, lazily resolving it on first
// access. Never errors; when nothing resolves the absence itself is cached
// and returned, and the caller decides how to react.
func (c *Container) DatasetID() (string, bool) {
	return c.datasetID.get(func() (string, bool) {
		return c.resolver.Resolve("")
	})
}

// SetDatasetID determines the default dataset ID explicitly or implicitly
// and stores it. Unlike the lazy getter this setter always wants a concrete
// value: if the explicit value is empty and nothing in the environment
// resolves, it returns ErrNoDatasetID and leaves the cache untouched.
func (c *Container) SetDatasetID(explicit string) error {
	id, ok := c.resolver.Resolve(explicit)
	if !ok {
		return ErrNoDatasetID
	}
	c.datasetID.set(id, true)
	return nil
}

// Connection returns the default connection, or nil when none has been set.
// This field is never lazily computed.
func (c *Container) Connection() Connection {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connection
}

// SetConnection stores the default connection handle.
func (c *Container) SetConnection(conn Connection) {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	c.connection = conn
}
