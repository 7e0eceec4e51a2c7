// Package idgen wraps the UUID generator used for simulation run IDs so that
// it can be stubbed in tests. Callers should treat identifiers as opaque
// strings.
package idgen
