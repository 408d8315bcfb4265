package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tablewright/seatplan/pkg/pipeline"
	"github.com/tablewright/seatplan/pkg/plan"
	"github.com/tablewright/seatplan/pkg/planfile"
)

// buildCommand creates the build command for turning configurations into plans.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output   string
		name     string
		noCache  bool
		refresh  bool
		redisURL string
	)

	cmd := &cobra.Command{
		Use:   "build [config.toml]",
		Short: "Build a seating plan from a TOML configuration",
		Long: `Build a seating plan from a TOML configuration.

The build command materializes tables, numbers seats, applies mode patterns,
seats any preassigned guests, and checks the proximity rules. The output is a
plan.json file that the assign, swap, show, and tui commands operate on.

Results are cached locally for faster subsequent runs; --refresh forces a
rebuild and --redis moves the cache to a Redis instance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], output, name, noCache, refresh, redisURL)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.plan.json)")
	cmd.Flags().StringVar(&name, "name", "", "plan name (default: name from the configuration)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild even when a cached plan exists")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the build cache")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, input, output, name string, noCache, refresh bool, redisURL string) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(cmd, noCache, redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Building seating plan...")
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		ConfigPath: input,
		PlanName:   name,
		Refresh:    refresh,
	})
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".plan.json"
	}

	if err := writeDocument(result.Document, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Built plan %q", result.Document.Name)
	printFile(outputPath)
	printStats(result.Stats.TableCount, result.Stats.SeatCount, result.CacheInfo.BuildHit)
	if n := len(result.Violations); n > 0 {
		printWarning("%d rule violation(s), run 'seatplan check %s' for details", n, outputPath)
	}
	printNewline()
	printNextStep("Inspect", "seatplan show "+outputPath)

	return nil
}

// loadDocument reads a plan file and rebuilds the live plan from it.
func loadDocument(path string) (planfile.Document, *plan.Plan, error) {
	doc, err := planfile.ReadDocumentFile(path)
	if err != nil {
		return planfile.Document{}, nil, fmt.Errorf("load plan %s: %w", path, err)
	}
	p, err := planfile.ToPlan(doc)
	if err != nil {
		return planfile.Document{}, nil, fmt.Errorf("restore plan %s: %w", path, err)
	}
	return doc, p, nil
}

// writeDocument writes a plan document to path.
func writeDocument(doc planfile.Document, path string) error {
	return planfile.WriteDocumentFile(doc, path)
}
