package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/opsboard/pkg/board"
	"github.com/matzehuels/opsboard/pkg/card"
	"github.com/matzehuels/opsboard/pkg/reconcile"
)

var (
	arrangeHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	arrangeStatusStyle = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
)

// =============================================================================
// ArrangeModel - Interactive keyboard rearranging
// =============================================================================

// ArrangeModel is the bubbletea model for rearranging a board's cards with
// the keyboard. It drives the board's drag session: space picks up the card
// under the cursor, arrows move it provisionally, enter drops it and esc
// cancels.
type ArrangeModel struct {
	ctx   context.Context
	board *board.Board

	Cursor int
	Picked string // id of the card being moved, empty when idle
	Status string
	Moves  int
}

// NewArrangeModel creates an arrange model for a mounted board.
func NewArrangeModel(ctx context.Context, b *board.Board) ArrangeModel {
	return ArrangeModel{ctx: ctx, board: b}
}

func (m ArrangeModel) Init() tea.Cmd {
	return nil
}

func (m ArrangeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		if m.Picked != "" {
			m.board.Cancel()
			m.Picked = ""
		}
		return m, tea.Quit
	case "esc":
		if m.Picked == "" {
			return m, tea.Quit
		}
		m.board.Cancel()
		m.Status = "cancelled"
		m.settle()
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(1)
	case " ", "space":
		m.pick()
	case "enter":
		m.drop()
	}
	return m, nil
}

func (m *ArrangeModel) step(delta int) {
	if m.Picked != "" {
		m.board.Step(delta)
		m.Cursor = reconcile.Index(m.board.Provisional(), m.Picked)
		return
	}
	n := len(m.board.Order())
	m.Cursor += delta
	if m.Cursor > n-1 {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *ArrangeModel) pick() {
	if m.Picked != "" {
		return
	}
	order := m.board.Order()
	if m.Cursor < 0 || m.Cursor >= len(order) {
		return
	}
	id := order[m.Cursor]
	if m.board.Pick(id) {
		m.Picked = id
		m.Status = "moving " + id
	}
}

func (m *ArrangeModel) drop() {
	if m.Picked == "" {
		return
	}
	if res, ok := m.board.Release(m.ctx); ok {
		m.Moves++
		m.Status = fmt.Sprintf("moved %s from %d to %d", res.Card, res.From, res.To)
	} else {
		m.Status = "unchanged"
	}
	m.settle()
}

// settle ends the local gesture and keeps the cursor on the card.
func (m *ArrangeModel) settle() {
	if i := reconcile.Index(m.board.Order(), m.Picked); i >= 0 {
		m.Cursor = i
	}
	m.Picked = ""
}

// cards returns the descriptors in display order.
func (m ArrangeModel) cards() []card.Descriptor {
	byID := make(map[string]card.Descriptor)
	for _, c := range m.board.Cards() {
		byID[c.ID] = c
	}
	order := m.board.Provisional()
	out := make([]card.Descriptor, 0, len(order))
	for _, id := range order {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (m ArrangeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Arrange " + m.board.Scope()))
	b.WriteString("\n")
	if m.Picked != "" {
		b.WriteString(arrangeHelpStyle.Render("↑/↓ move card  ⏎ drop  esc cancel"))
	} else {
		b.WriteString(arrangeHelpStyle.Render("↑/↓ navigate  space pick up  q quit"))
	}
	b.WriteString("\n\n")
	b.WriteString(renderCards(m.cards(), m.Cursor))
	b.WriteString("\n")
	if m.Status != "" {
		b.WriteString(arrangeStatusStyle.Render("  " + m.Status))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// arrangeCommand creates the arrange command for interactive rearranging.
func (c *CLI) arrangeCommand() *cobra.Command {
	var cf contextFlags

	cmd := &cobra.Command{
		Use:   "arrange <view>",
		Short: "Rearrange the cards of a view interactively",
		Long: `Open an interactive list of a view's cards. Pick up a card with space, move
it with the arrow keys and drop it with enter. Every drop is saved.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: card.Views(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, orders, err := c.mountBoard(ctx, args[0], &cf)
			if err != nil {
				return err
			}
			defer orders.Close()

			p := tea.NewProgram(NewArrangeModel(ctx, b),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			final, err := p.Run()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if m, ok := final.(ArrangeModel); ok && m.Moves > 0 {
				printSuccess(w, "Saved %d moves for %s", m.Moves, StyleHighlight.Render(b.Scope()))
			}
			printOrder(w, b.Order())
			return nil
		},
	}

	cf.register(cmd)
	return cmd
}
