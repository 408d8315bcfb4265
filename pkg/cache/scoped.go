package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The plan server uses it to keep cached plans of different sessions in
// separate namespaces on a shared backend.
//
// Example usage:
//
//	// Session-specific keys on the shared Redis backend
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlanKey generates a prefixed key for a built plan document.
func (k *ScopedKeyer) PlanKey(configHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(configHash, opts)
}

// ReportKey generates a prefixed key for a violation report.
func (k *ScopedKeyer) ReportKey(planHash string) string {
	return k.prefix + k.inner.ReportKey(planHash)
}
