package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tablewright/seatplan/pkg/plan"
	"github.com/tablewright/seatplan/pkg/planfile"
	"github.com/tablewright/seatplan/pkg/table"
)

// assignCommand creates the assign command for seating a guest.
func (c *CLI) assignCommand() *cobra.Command {
	var (
		simulate bool
		clear    bool
	)

	cmd := &cobra.Command{
		Use:   "assign [plan.json] [table] [seat] [guest]",
		Short: "Seat a guest, or clear a seat with --clear",
		Long: `Seat a guest at a table.

Tables are addressed by name and seats by their display number. A guest who
is already seated elsewhere is moved; the old seat is vacated atomically.
With --clear the guest argument is omitted and the seat is emptied. With
--simulate the resulting violation report is printed without changing the
plan file.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			guestID := ""
			if len(args) == 4 {
				guestID = args[3]
			}
			if !clear && guestID == "" {
				return fmt.Errorf("guest argument required unless --clear is set")
			}
			return c.runAssign(args[0], args[1], args[2], guestID, simulate)
		},
	}

	cmd.Flags().BoolVar(&simulate, "simulate", false, "report resulting violations without committing")
	cmd.Flags().BoolVar(&clear, "clear", false, "clear the seat instead of assigning")

	return cmd
}

func (c *CLI) runAssign(path, tableName, seatArg, guestID string, simulate bool) error {
	doc, p, err := loadDocument(path)
	if err != nil {
		return err
	}

	t, s, err := locateSeat(p, tableName, seatArg)
	if err != nil {
		return err
	}

	if simulate {
		violations, err := p.DetectViolationsAfterAssign(t.ID, s.ID, guestID)
		if err != nil {
			return err
		}
		printInfo("Simulated %s at %s seat %d", guestLabel(doc, guestID), t.Name, s.Number)
		printViolations(violations)
		return nil
	}

	var res plan.Result
	if guestID == "" {
		res = p.Clear(t.ID, s.ID)
	} else {
		res = p.Assign(t.ID, s.ID, guestID)
	}
	if !res.OK {
		return resultError(res)
	}

	if err := planfile.WritePlanFile(p, doc.Guests, doc.Name, path); err != nil {
		return fmt.Errorf("write plan %s: %w", path, err)
	}

	if guestID == "" {
		printSuccess("Cleared %s seat %d", t.Name, s.Number)
	} else {
		printSuccess("Seated %s at %s seat %d", guestLabel(doc, guestID), t.Name, s.Number)
	}
	printViolations(p.Violations())
	return nil
}

// swapCommand creates the swap command for exchanging two seats.
func (c *CLI) swapCommand() *cobra.Command {
	var simulate bool

	cmd := &cobra.Command{
		Use:   "swap [plan.json] [table] [seat] [table] [seat]",
		Short: "Exchange the occupants of two seats",
		Long: `Exchange the occupants of two seats.

Both directions are validated before anything moves: if either guest cannot
take the other seat, the swap fails and neither seat changes. Swapping with
an empty seat moves the occupied guest.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSwap(args[0], args[1], args[2], args[3], args[4], simulate)
		},
	}

	cmd.Flags().BoolVar(&simulate, "simulate", false, "report resulting violations without committing")

	return cmd
}

func (c *CLI) runSwap(path, tableA, seatA, tableB, seatB string, simulate bool) error {
	doc, p, err := loadDocument(path)
	if err != nil {
		return err
	}

	ta, sa, err := locateSeat(p, tableA, seatA)
	if err != nil {
		return err
	}
	tb, sb, err := locateSeat(p, tableB, seatB)
	if err != nil {
		return err
	}

	if simulate {
		violations, err := p.DetectViolationsAfterSwap(ta.ID, sa.ID, tb.ID, sb.ID)
		if err != nil {
			return err
		}
		printInfo("Simulated swap of %s seat %d and %s seat %d", ta.Name, sa.Number, tb.Name, sb.Number)
		printViolations(violations)
		return nil
	}

	res := p.Swap(ta.ID, sa.ID, tb.ID, sb.ID)
	if !res.OK {
		return resultError(res)
	}

	if err := planfile.WritePlanFile(p, doc.Guests, doc.Name, path); err != nil {
		return fmt.Errorf("write plan %s: %w", path, err)
	}

	printSuccess("Swapped %s seat %d and %s seat %d", ta.Name, sa.Number, tb.Name, sb.Number)
	printViolations(p.Violations())
	return nil
}

// lockCommand creates the lock command for pinning seats.
func (c *CLI) lockCommand() *cobra.Command {
	var unlock bool

	cmd := &cobra.Command{
		Use:   "lock [plan.json] [table] [seat]",
		Short: "Lock a seat, or a whole table when the seat is omitted",
		Long: `Lock a seat so its occupant cannot be moved.

Locked seats reject assignment, clearing by other operations, and swaps.
Omitting the seat number locks every seat at the table. Use --unlock to
release.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			seatArg := ""
			if len(args) == 3 {
				seatArg = args[2]
			}
			return c.runLock(args[0], args[1], seatArg, !unlock)
		},
	}

	cmd.Flags().BoolVar(&unlock, "unlock", false, "unlock instead of lock")

	return cmd
}

func (c *CLI) runLock(path, tableName, seatArg string, locked bool) error {
	doc, p, err := loadDocument(path)
	if err != nil {
		return err
	}

	t, err := resolveTable(p, tableName)
	if err != nil {
		return err
	}

	verb := "Locked"
	if !locked {
		verb = "Unlocked"
	}

	var res plan.Result
	if seatArg == "" {
		if locked {
			res = p.LockAll(t.ID)
		} else {
			res = p.UnlockAll(t.ID)
		}
		if !res.OK {
			return resultError(res)
		}
		printSuccess("%s all %d seats at %s", verb, t.SeatCount(), t.Name)
	} else {
		number, err := strconv.Atoi(seatArg)
		if err != nil {
			return fmt.Errorf("seat must be a number, got %q", seatArg)
		}
		s, err := resolveSeat(t, number)
		if err != nil {
			return err
		}
		res = p.SetLocked(t.ID, s.ID, locked)
		if !res.OK {
			return resultError(res)
		}
		printSuccess("%s %s seat %d", verb, t.Name, s.Number)
	}

	if err := planfile.WritePlanFile(p, doc.Guests, doc.Name, path); err != nil {
		return fmt.Errorf("write plan %s: %w", path, err)
	}
	return nil
}

// locateSeat resolves a table name and seat number argument pair.
func locateSeat(p *plan.Plan, tableName, seatArg string) (*table.Table, *table.Seat, error) {
	t, err := resolveTable(p, tableName)
	if err != nil {
		return nil, nil, err
	}
	number, err := strconv.Atoi(seatArg)
	if err != nil {
		return nil, nil, fmt.Errorf("seat must be a number, got %q", seatArg)
	}
	s, err := resolveSeat(t, number)
	if err != nil {
		return nil, nil, err
	}
	return t, s, nil
}

// guestLabel returns a human-friendly name for a guest ID.
func guestLabel(doc planfile.Document, guestID string) string {
	for _, g := range doc.Guests {
		if g.ID == guestID {
			return g.DisplayName()
		}
	}
	return guestID
}

// resultError converts a failed mutation result into a CLI error.
func resultError(res plan.Result) error {
	return fmt.Errorf("rejected: %s", strings.Join(res.Reasons, "; "))
}
