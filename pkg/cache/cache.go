// Package cache provides pluggable byte caches for expensive plan builds.
//
// Built plans are cached as serialized documents keyed by a hash of the
// configuration that produced them, so re-running a check against an
// unchanged configuration skips the build entirely. Backends cover CLI use
// (files), server use (Redis), and tests (null).
package cache

import (
	"context"
	"time"
)

// Cache TTLs per artifact class. Built plans are expensive and stable as
// long as their configuration is; reports are cheap and kept short-lived.
const (
	TTLPlan   = 24 * time.Hour
	TTLReport = time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores it without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for the artifacts the engine caches.
type Keyer interface {
	// PlanKey derives the key for a built plan document from the hash of
	// its source configuration.
	PlanKey(configHash string, opts PlanKeyOpts) string

	// ReportKey derives the key for a violation report from the hash of
	// the plan state it was computed against.
	ReportKey(planHash string) string
}

// PlanKeyOpts are the build options that affect the resulting plan and must
// therefore be part of the key.
type PlanKeyOpts struct {
	FormatVersion int `json:"format_version"`
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key for a built plan document.
func (k *DefaultKeyer) PlanKey(configHash string, opts PlanKeyOpts) string {
	return hashKey("plan", configHash, opts)
}

// ReportKey generates a key for a violation report.
func (k *DefaultKeyer) ReportKey(planHash string) string {
	return hashKey("report", planHash)
}
