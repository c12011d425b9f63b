// Package probe implements the identity probes that attempt to infer the
// active dataset ID from one specific environment signal each.
//
// Probes are independently invocable and independently failable. Every probe
// follows the same contract: return the inferred identifier and true when the
// signal is available, or ("", false) when it is not. Signal absence is a
// normal outcome on most hosts, so probes never return errors for it and log
// only at DEBUG level.
//
// PROBE CATALOG:
//   - Platform-identity probe: a host-provided identity service registered at
//     startup, present only inside certain hosting platforms
//   - Metadata-server probe: a single bounded HTTP GET against the link-local
//     instance metadata endpoint
package probe

import (
	"sync"

	"github.com/concave-dev/dsenv/internal/logging"
)

// IdentityFunc is a no-argument call into a host-provided identity service.
// It returns the platform's application identifier and true, or ("", false)
// when the service has no identity to offer.
type IdentityFunc func() (string, bool)

var (
	platformMu       sync.RWMutex
	platformIdentity IdentityFunc
)

// RegisterPlatformIdentity installs the host platform's identity service hook.
// Bootstrap code for platforms that expose such a service calls this once at
// startup; on all other hosts the hook stays unregistered and the probe
// reports absence. Passing nil removes a previously registered hook.
func RegisterPlatformIdentity(fn IdentityFunc) {
	platformMu.Lock()
	defer platformMu.Unlock()
	platformIdentity = fn
}

// HasPlatformIdentity reports whether an identity service hook is registered.
// Capability detection only; it does not invoke the service.
func HasPlatformIdentity() bool {
	platformMu.RLock()
	defer platformMu.RUnlock()
	return platformIdentity != nil
}

// PlatformProbe infers the dataset ID from the host platform's identity
// service. An unregistered service is the expected case on most hosts and
// yields absence, not an error.
type PlatformProbe struct{}

// Name returns the probe's name for resolution traces.
func (PlatformProbe) Name() string {
	return "platform-identity"
}

// Infer queries the registered identity service, if any.
func (PlatformProbe) Infer() (string, bool) {
	platformMu.RLock()
	fn := platformIdentity
	platformMu.RUnlock()

	if fn == nil {
		logging.Debug("platform-identity probe: no identity service registered")
		return "", false
	}

	id, ok := fn()
	if !ok || id == "" {
		logging.Debug("platform-identity probe: identity service returned nothing")
		return "", false
	}
	return id, true
}
