// Package version provides centralized version information for dsenv.
// The library and the dsenvctl CLI share one version since they ship together.
// All versions follow semantic versioning (semver) conventions.

package version

// Version holds the current dsenv release version.
// Format: major.minor.patch[-prerelease][+build]
const Version = "0.1.0-dev"
