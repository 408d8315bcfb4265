package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tablewright/seatplan/pkg/pipeline"
	"github.com/tablewright/seatplan/pkg/rules"
)

// checkCommand creates the check command for reporting rule violations.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		strict   bool
		noCache  bool
		redisURL string
	)

	cmd := &cobra.Command{
		Use:   "check [plan.json|config.toml]",
		Short: "Report proximity rule violations",
		Long: `Report proximity rule violations.

The check command accepts either a built plan.json file or a TOML
configuration. Configurations are built first (using the cache), then the
sit-together and sit-apart rules are evaluated against the current seat
assignments.

With --strict the command exits non-zero when any violation exists, which
makes it usable as a CI gate for checked-in seating configurations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, args[0], strict, noCache, redisURL)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when violations exist")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the build cache")

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, input string, strict, noCache bool, redisURL string) error {
	prog := newProgress(loggerFromContext(cmd.Context()))

	var (
		violations []rules.Violation
		ruleCount  int
		planName   string
	)

	if isConfigPath(input) {
		runner, err := c.newRunner(cmd, noCache, redisURL)
		if err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer runner.Close()

		result, err := runner.Execute(cmd.Context(), pipeline.Options{ConfigPath: input})
		if err != nil {
			return err
		}
		violations = result.Violations
		ruleCount = result.Stats.RuleCount
		planName = result.Document.Name
	} else {
		doc, p, err := loadDocument(input)
		if err != nil {
			return err
		}
		violations = p.Violations()
		ruleCount = len(doc.Rules)
		planName = doc.Name
	}

	prog.done(fmt.Sprintf("Checked %d rule(s)", ruleCount))

	if len(violations) == 0 {
		printSuccess("Plan %q satisfies all %d rule(s)", planName, ruleCount)
		return nil
	}

	printWarning("Plan %q breaks %d of %d rule(s)", planName, len(violations), ruleCount)
	for _, v := range violations {
		printDetail("%s", v.Reason)
	}

	if strict {
		return fmt.Errorf("%d rule violation(s)", len(violations))
	}
	return nil
}
