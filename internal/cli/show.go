package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tablewright/seatplan/pkg/planfile"
	"github.com/tablewright/seatplan/pkg/rules"
	"github.com/tablewright/seatplan/pkg/table"
)

// showCommand creates the show command for printing a plan.
func (c *CLI) showCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [plan.json]",
		Short: "Print the seat layout and occupancy",
		Long: `Print the seat layout and occupancy.

Each table is printed with its seats in serving order, the per-seat mode,
lock markers, and the assigned guest. Seats implicated in a rule violation
are flagged. A summary with occupancy and violation counts follows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(args[0])
		},
	}
	return cmd
}

func (c *CLI) runShow(path string) error {
	doc, p, err := loadDocument(path)
	if err != nil {
		return err
	}

	violations := p.Violations()
	flagged := make(map[string]bool)
	for _, v := range violations {
		for _, id := range v.SeatIDs {
			flagged[id] = true
		}
	}

	fmt.Println(StyleTitle.Render(doc.Name))
	printNewline()

	for _, t := range p.Tables() {
		printTable(t, doc, flagged)
		printNewline()
	}

	stats := p.Stats()
	printStatsLine(stats.Tables, stats.Seats, stats.Occupied, stats.Locked)
	printViolations(violations)
	return nil
}

func printTable(t *table.Table, doc planfile.Document, flagged map[string]bool) {
	header := fmt.Sprintf("%s · %s · %d seats", t.Name, t.Shape, t.SeatCount())
	fmt.Println(StyleHighlight.Render(header))

	rows := make([][]string, 0, len(t.Seats))
	for _, s := range t.Seats {
		lock := ""
		if s.Locked {
			lock = "locked"
		}
		guestName := ""
		if s.GuestID != "" {
			guestName = guestLabel(doc, s.GuestID)
		}
		mark := ""
		if flagged[s.ID] {
			mark = "!"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.Number),
			string(s.Mode),
			lock,
			guestName,
			mark,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	lt := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Seat", "Mode", "", "Guest", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < len(rows) && rows[row][4] == "!" {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle()
		})
	fmt.Println(lt.Render())
}

// printViolations prints each violation reason, or a success line when the
// report is empty.
func printViolations(violations []rules.Violation) {
	if len(violations) == 0 {
		printSuccess("No rule violations")
		return
	}
	printWarning("%d rule violation(s)", len(violations))
	for _, v := range violations {
		printDetail("%s", v.Reason)
	}
}

// printStatsLine prints plan occupancy on a single line.
func printStatsLine(tables, seats, occupied, locked int) {
	parts := []string{
		fmt.Sprintf("%d tables", tables),
		fmt.Sprintf("%d/%d seats filled", occupied, seats),
	}
	if locked > 0 {
		parts = append(parts, fmt.Sprintf("%d locked", locked))
	}
	fmt.Println("  " + StyleDim.Render(strings.Join(parts, " · ")))
}
