package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tablewright/seatplan/pkg/plan"
	"github.com/tablewright/seatplan/pkg/planfile"
	"github.com/tablewright/seatplan/pkg/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the tui command for browsing a plan interactively.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [plan.json]",
		Short: "Browse a plan interactively",
		Long: `Browse a plan interactively.

Pick a table, then walk its seats. The seat view shows mode, lock state,
occupant, and which seats break a proximity rule. Pressing "l" toggles the
lock on the highlighted seat; changes are written back to the plan file on
quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(args[0])
		},
	}
}

func (c *CLI) runTUI(path string) error {
	doc, p, err := loadDocument(path)
	if err != nil {
		return err
	}

	model := newPlanModel(doc, p)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	m, ok := final.(planModel)
	if !ok || !m.dirty {
		return nil
	}
	if err := planfile.WritePlanFile(p, doc.Guests, doc.Name, path); err != nil {
		return fmt.Errorf("write plan %s: %w", path, err)
	}
	printSuccess("Saved changes to %s", path)
	return nil
}

// =============================================================================
// planModel - Table selection and seat browsing
// =============================================================================

// planModel is the bubbletea model for plan browsing. It has two screens:
// a table list and a per-table seat list.
type planModel struct {
	doc   planfile.Document
	plan  *plan.Plan
	dirty bool

	tables      []*table.Table
	tableCursor int

	inSeats    bool
	seatCursor int
}

// newPlanModel creates a plan browser model.
func newPlanModel(doc planfile.Document, p *plan.Plan) planModel {
	return planModel{doc: doc, plan: p, tables: p.Tables()}
}

func (m planModel) Init() tea.Cmd {
	return nil
}

func (m planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.inSeats {
			m.inSeats = false
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.inSeats {
			if m.seatCursor > 0 {
				m.seatCursor--
			}
		} else if m.tableCursor > 0 {
			m.tableCursor--
		}
	case "down", "j":
		if m.inSeats {
			if m.seatCursor < m.currentTable().SeatCount()-1 {
				m.seatCursor++
			}
		} else if m.tableCursor < len(m.tables)-1 {
			m.tableCursor++
		}
	case "enter":
		if !m.inSeats && len(m.tables) > 0 {
			m.inSeats = true
			m.seatCursor = 0
		}
	case "l":
		if m.inSeats {
			t := m.currentTable()
			s := t.Seats[m.seatCursor]
			if res := m.plan.SetLocked(t.ID, s.ID, !s.Locked); res.OK {
				m.dirty = true
			}
		}
	}
	return m, nil
}

func (m planModel) currentTable() *table.Table {
	return m.tables[m.tableCursor]
}

func (m planModel) View() string {
	if m.inSeats {
		return m.seatView()
	}
	return m.tableView()
}

func (m planModel) tableView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tables · " + m.doc.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	for i, t := range m.tables {
		cursor := "  "
		if i == m.tableCursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-20s %s, %d/%d seats filled",
			cursor, t.Name, t.Shape, t.OccupiedCount(), t.SeatCount())
		if i == m.tableCursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	stats := m.plan.Stats()
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d/%d seated · %d violation(s)",
		stats.Occupied, stats.Seats, stats.Violations)))

	return b.String()
}

func (m planModel) seatView() string {
	t := m.currentTable()

	flagged := make(map[string]bool)
	for _, v := range m.plan.Violations() {
		for _, id := range v.SeatIDs {
			flagged[id] = true
		}
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(t.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  l lock/unlock  esc back  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(t.Seats))
	for i, s := range t.Seats {
		cursor := "  "
		if i == m.seatCursor {
			cursor = "▸ "
		}
		lock := ""
		if s.Locked {
			lock = "locked"
		}
		guestName := ""
		if s.GuestID != "" {
			guestName = guestLabel(m.doc, s.GuestID)
		}
		mark := ""
		if flagged[s.ID] {
			mark = "!"
		}
		rows = append(rows, []string{cursor, fmt.Sprintf("%d", s.Number), string(s.Mode), lock, guestName, mark})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	lt := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Seat", "Mode", "", "Guest", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.seatCursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if row < len(rows) && rows[row][5] == "!" {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(lt.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.seatCursor+1, t.SeatCount())))

	return b.String()
}
