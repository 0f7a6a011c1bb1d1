package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/depsolve/pkg/universe"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ResultModel - Interactive install set browser
// =============================================================================

// ResultModel is the bubbletea model for browsing a resolved install set.
// The left table lists packages in install order; the panel below shows the
// selected package's dependencies and dependents.
type ResultModel struct {
	Result *universe.Result
	Cursor int
	Height int
	Offset int

	waves map[string]int
}

// NewResultModel creates a browser over res.
func NewResultModel(res *universe.Result) ResultModel {
	return ResultModel{
		Result: res,
		Height: 15,
		waves:  waveIndex(res),
	}
}

func (m ResultModel) Init() tea.Cmd {
	return nil
}

func (m ResultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Result.Packages)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Result.Packages)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m ResultModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Install Set"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	pkgs := m.Result.Packages
	end := min(m.Offset+m.Height, len(pkgs))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		id := pkgs[i]
		rows = append(rows, []string{cursor, id.ID, id.Version.String(), strconv.Itoa(m.waves[id.ID])})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Version", "Wave").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(pkgs))))
	b.WriteString("\n\n")
	b.WriteString(m.details())

	return b.String()
}

// details describes the selected package's edges.
func (m ResultModel) details() string {
	if len(m.Result.Packages) == 0 {
		return listDimStyle.Render("  nothing to install")
	}
	id := m.Result.Packages[m.Cursor].ID
	g := m.Result.Graph

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(id))
	b.WriteString("\n")

	deps := g.Children(id)
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  depends on (%d)", len(deps))))
	b.WriteString("\n")
	for _, e := range g.Edges() {
		if e.From != id {
			continue
		}
		line := "    " + e.To
		if r, ok := e.Meta["range"].(string); ok {
			line += " " + listDimStyle.Render(r)
		}
		b.WriteString(line + "\n")
	}

	parents := g.Parents(id)
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  required by (%d)", len(parents))))
	b.WriteString("\n")
	for _, p := range parents {
		b.WriteString("    " + p + "\n")
	}
	return b.String()
}

// runBrowser opens the result browser on the terminal.
func runBrowser(ctx context.Context, res *universe.Result) error {
	_, err := tea.NewProgram(NewResultModel(res), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
