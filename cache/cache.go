package cache

import "sync"

// Well-known resource names shared between the submission workflow and the
// admin review handlers.
const (
	MyPaymentProofs  = "my-payment-proofs"
	AllPaymentProofs = "all-payment-proofs"
	MyPayments       = "my-payments"
	AdminStats       = "admin-stats"
)

// Registry maps logical resource names to monotonically increasing version
// counters. Invalidation bumps the counter; readers remember the version they
// last fetched at and re-fetch when it has moved. Components never touch each
// other's cached data directly, only these named versions.
type Registry struct {
	mu       sync.RWMutex
	versions map[string]uint64
}

func NewRegistry() *Registry {
	return &Registry{versions: make(map[string]uint64)}
}

// Invalidate bumps the version of one named resource and returns the new
// version. Unknown names start at version zero, so the first invalidation
// yields one.
func (r *Registry) Invalidate(name string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.versions[name]++
	return r.versions[name]
}

// Version reports the current version of a named resource.
func (r *Registry) Version(name string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.versions[name]
}

// Stale reports whether a reader holding seenVersion needs to re-fetch.
func (r *Registry) Stale(name string, seenVersion uint64) bool {
	return r.Version(name) != seenVersion
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

func Invalidate(name string) uint64 {
	return defaultRegistry.Invalidate(name)
}

func Version(name string) uint64 {
	return defaultRegistry.Version(name)
}
