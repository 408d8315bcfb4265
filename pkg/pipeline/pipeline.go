// Package pipeline provides the core load → build → check pipeline.
//
// This package implements the flow shared by the CLI, the API server, and
// the TUI: load an event configuration, build the seating plan, and check it
// against the proximity rules. By centralizing this logic, all entry points
// behave identically and the plan build cache is shared.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{ConfigPath: "event.toml"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := result.Violations
//
// Run individual stages:
//
//	// Load only
//	f, raw, err := runner.Load(ctx, opts)
//
//	// Build with a loaded configuration
//	p, err := runner.Build(ctx, f, raw, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tablewright/seatplan/pkg/plan"
	"github.com/tablewright/seatplan/pkg/planfile"
	"github.com/tablewright/seatplan/pkg/rules"
)

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// ConfigPath is the path of a TOML configuration file.
	ConfigPath string `json:"config_path,omitempty"`

	// ConfigData is raw TOML, used instead of ConfigPath when set.
	ConfigData []byte `json:"config_data,omitempty"`

	// PlanName overrides the name declared in the configuration.
	PlanName string `json:"plan_name,omitempty"`

	// Refresh bypasses the build cache and rebuilds from the configuration.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ConfigPath == "" && len(o.ConfigData) == 0 {
		return fmt.Errorf("config_path or config_data is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TableCount int
	SeatCount  int
	GuestCount int
	RuleCount  int
	LoadTime   time.Duration
	BuildTime  time.Duration
	CheckTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit bool // Whether the built plan came from cache
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the live built plan.
	Plan *plan.Plan

	// Document is the built plan in its serialization format.
	Document planfile.Document

	// ConfigHash is the content hash of the source configuration.
	ConfigHash string

	// Violations is the rule report for the built plan.
	Violations []rules.Violation

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}
