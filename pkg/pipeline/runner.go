package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tablewright/seatplan/pkg/cache"
	"github.com/tablewright/seatplan/pkg/config"
	"github.com/tablewright/seatplan/pkg/observability"
	"github.com/tablewright/seatplan/pkg/plan"
	"github.com/tablewright/seatplan/pkg/planfile"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → check pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	f, raw, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.ConfigHash = cache.Hash(raw)

	name := opts.PlanName
	if name == "" {
		name = f.Name
	}

	r.Logger.Info("loaded configuration",
		"plan", name,
		"tables", len(f.Tables),
		"guests", len(f.Guests),
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, name)
	p, buildHit, err := r.BuildWithCacheInfo(ctx, f, result.ConfigHash, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	observability.Pipeline().OnBuildComplete(ctx, name, len(f.Tables), result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Plan = p
	result.Document = planfile.FromPlan(p, f.GuestList(), name)
	result.CacheInfo.BuildHit = buildHit

	st := p.Stats()
	result.Stats.TableCount = st.Tables
	result.Stats.SeatCount = st.Seats
	result.Stats.GuestCount = len(f.Guests)
	result.Stats.RuleCount = len(f.Rules)

	r.Logger.Info("built plan",
		"tables", st.Tables,
		"seats", st.Seats,
		"cached", buildHit,
		"duration", result.Stats.BuildTime)

	// Stage 3: Check
	checkStart := time.Now()
	observability.Pipeline().OnCheckStart(ctx, name, len(f.Rules))
	result.Violations = p.Violations()
	result.Stats.CheckTime = time.Since(checkStart)
	observability.Pipeline().OnCheckComplete(ctx, name, len(result.Violations), result.Stats.CheckTime, nil)

	r.Logger.Info("checked rules",
		"rules", len(f.Rules),
		"violations", len(result.Violations),
		"duration", result.Stats.CheckTime)

	return result, nil
}

// Load reads and parses the configuration named by the options. It returns
// the parsed file and the raw bytes the cache key is derived from.
func (r *Runner) Load(ctx context.Context, opts Options) (config.File, []byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return config.File{}, nil, err
	}

	raw := opts.ConfigData
	if len(raw) == 0 {
		data, err := os.ReadFile(opts.ConfigPath)
		if err != nil {
			return config.File{}, nil, fmt.Errorf("read %s: %w", opts.ConfigPath, err)
		}
		raw = data
	}

	f, err := config.Parse(raw)
	if err != nil {
		return config.File{}, nil, err
	}
	return f, raw, nil
}

// BuildWithCacheInfo builds the plan with caching and returns cache hit info.
// The cache key is derived from the configuration hash and the document
// format version, so format changes invalidate old entries.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, f config.File, configHash string, opts Options) (*plan.Plan, bool, error) {
	cacheKey := r.Keyer.PlanKey(configHash, cache.PlanKeyOpts{FormatVersion: planfile.Version})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			doc, err := planfile.UnmarshalDocument(data)
			if err == nil {
				if p, err := planfile.ToPlan(doc); err == nil {
					observability.Cache().OnCacheHit(ctx, "plan")
					return p, true, nil // Cache hit
				}
			}
			// Corrupt entry, fall through to rebuild
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	p, err := config.Build(f)
	if err != nil {
		return nil, false, err
	}

	// Cache the result. Transient backend failures are retried and then
	// given up on; a failed cache write never fails the build.
	if data, err := planfile.MarshalPlan(p, f.GuestList(), f.Name); err == nil {
		_ = cache.RetryWithBackoff(ctx, func() error {
			return r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan)
		})
		observability.Cache().OnCacheSet(ctx, "plan", len(data))
	}

	return p, false, nil // Cache miss
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Build(ctx context.Context, f config.File, configHash string, opts Options) (*plan.Plan, error) {
	p, _, err := r.BuildWithCacheInfo(ctx, f, configHash, opts)
	return p, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
