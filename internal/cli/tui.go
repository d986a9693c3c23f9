package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontoview/pkg/triples"
	"github.com/matzehuels/ontoview/pkg/vocab"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand opens the interactive triple browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [document.yaml]",
		Short: "Browse the triples of a document interactively",
		Long: `Browse the triples of a document interactively.

Press enter on a row to focus its subject: only triples that mention it
are listed. Backspace leaves the focus.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.parse(cmd.Context(), args)
			if err != nil {
				return err
			}

			model := NewTripleBrowserModel(result.Context, result.Triples)
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// =============================================================================
// TripleBrowserModel - Interactive triple browser
// =============================================================================

// TripleBrowserModel is the bubbletea model for browsing triples.
type TripleBrowserModel struct {
	Triples []triples.Triple
	Codes   []string // resolved predicate per triple
	Focus   string   // subject filter; empty shows everything
	Cursor  int
	Height  int
	Offset  int

	visible []int
}

// NewTripleBrowserModel creates a browser over ts.
func NewTripleBrowserModel(ctx *vocab.Context, ts []triples.Triple) TripleBrowserModel {
	codes := make([]string, len(ts))
	for i, t := range ts {
		codes[i], _ = ctx.Resolve(t.Predicate)
	}
	m := TripleBrowserModel{
		Triples: ts,
		Codes:   codes,
		Height:  15,
	}
	m.filter()
	return m
}

// Visible returns the triples currently listed.
func (m TripleBrowserModel) Visible() []triples.Triple {
	out := make([]triples.Triple, len(m.visible))
	for i, idx := range m.visible {
		out[i] = m.Triples[idx]
	}
	return out
}

func (m *TripleBrowserModel) filter() {
	m.visible = nil
	for i, t := range m.Triples {
		if m.Focus == "" || t.Subject == m.Focus || t.Object == m.Focus {
			m.visible = append(m.visible, i)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m *TripleBrowserModel) move(delta int) {
	m.Cursor += delta
	if m.Cursor > len(m.visible)-1 {
		m.Cursor = len(m.visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m TripleBrowserModel) Init() tea.Cmd {
	return nil
}

func (m TripleBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Focus == "" {
				return m, tea.Quit
			}
			m.Focus = ""
			m.filter()
		case "backspace":
			m.Focus = ""
			m.filter()
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.visible))
		case "end", "G":
			m.move(len(m.visible))
		case "enter":
			if len(m.visible) == 0 {
				return m, nil
			}
			m.Focus = m.Triples[m.visible[m.Cursor]].Subject
			m.filter()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TripleBrowserModel) View() string {
	var b strings.Builder

	title := "Triples"
	if m.Focus != "" {
		title += " about " + m.Focus
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ focus subject  ⌫ all triples  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.visible) {
		end = len(m.visible)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		idx := m.visible[i]
		t := m.Triples[idx]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, t.Subject, t.Predicate, m.Codes[idx], t.Object})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Subject", "Predicate", "Code", "Object").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.visible) == 0 {
		b.WriteString(listDimStyle.Render("  no triples"))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.visible))))
	}

	return b.String()
}
