// Package cli implements the seatplan command-line interface.
//
// This package provides commands for building seating plans from TOML
// configurations, checking proximity rules, editing assignments, and serving
// the plan API over HTTP. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Build a seating plan from a TOML configuration
//   - check: Report proximity rule violations for a plan or configuration
//   - assign / swap / lock: Edit a plan file in place
//   - show: Print the seat layout and occupancy
//   - plans: Manage named plans in the plan store
//   - serve: Expose the engine over HTTP
//   - tui: Browse a plan interactively
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tablewright/seatplan/pkg/buildinfo"
	"github.com/tablewright/seatplan/pkg/cache"
	"github.com/tablewright/seatplan/pkg/errors"
	"github.com/tablewright/seatplan/pkg/pipeline"
	"github.com/tablewright/seatplan/pkg/plan"
	"github.com/tablewright/seatplan/pkg/table"
)

// appName is the application name used for directories and display.
const appName = "seatplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "seatplan",
		Short:        "Seatplan arranges guests around tables under proximity rules",
		Long:         `Seatplan builds seating plans from declarative table configurations, detects sit-together and sit-apart rule violations, and lets you edit assignments with full validation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.assignCommand())
	root.AddCommand(c.swapCommand())
	root.AddCommand(c.lockCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.plansCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. When redisURL is set the
// build cache lives in Redis, otherwise in the local file cache.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool, redisURL string) (*pipeline.Runner, error) {
	store, err := newCache(cmd, noCache, redisURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(cmd *cobra.Command, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(cmd.Context(), redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/seatplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// resolveTable finds a table by name (case-insensitive) or ID.
func resolveTable(p *plan.Plan, name string) (*table.Table, error) {
	if t, ok := p.Table(name); ok {
		return t, nil
	}
	for _, t := range p.Tables() {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return nil, errors.New(errors.ErrCodeTableNotFound, "no table named %q", name)
}

// resolveSeat finds a seat by its display number on the given table.
func resolveSeat(t *table.Table, number int) (*table.Seat, error) {
	for _, s := range t.Seats {
		if s.Number == number {
			return s, nil
		}
	}
	return nil, errors.New(errors.ErrCodeSeatNotFound, "table %q has no seat %d", t.Name, number)
}

// isConfigPath reports whether the path looks like a TOML configuration
// rather than a serialized plan.
func isConfigPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
