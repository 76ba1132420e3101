package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/prereq"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listFooterStyle   = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), true, false, false, false).
				BorderForeground(colorDim).
				PaddingTop(1)
)

// =============================================================================
// BoardModel - Interactive progress board
// =============================================================================

// BoardModel is the bubbletea model for browsing subjects and toggling their
// progress. Toggling cycles unset, approved, exonerated.
type BoardModel struct {
	Engine   *prereq.Engine
	Subjects []curriculum.Subject // catalog sorted by semester
	Cursor   int
	Offset   int
	Height   int
	OnlyOpen bool // hide completed subjects
	Dirty    bool // progress changed since the board opened

	standingOf func(code string) standing
}

// NewBoardModel creates a board over the engine's catalog.
func NewBoardModel(ws *workspace) BoardModel {
	subjects := ws.engine.Catalog().Subjects()
	curriculum.SortBySemester(subjects)
	return BoardModel{
		Engine:     ws.engine,
		Subjects:   subjects,
		Height:     15,
		standingOf: ws.standingOf,
	}
}

// visible returns the subjects shown under the current filter.
func (m BoardModel) visible() []curriculum.Subject {
	if !m.OnlyOpen {
		return m.Subjects
	}
	return lo.Filter(m.Subjects, func(s curriculum.Subject, _ int) bool {
		return !m.Engine.State().IsCompleted(s.Code)
	})
}

// Current returns the subject under the cursor.
func (m BoardModel) Current() (curriculum.Subject, bool) {
	rows := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(rows) {
		return curriculum.Subject{}, false
	}
	return rows[m.Cursor], true
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.visible())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "enter":
			if s, ok := m.Current(); ok {
				m.Engine.State().Toggle(s.Code)
				m.Dirty = true
				m.clamp()
			}
		case "a":
			m.OnlyOpen = !m.OnlyOpen
			m.clamp()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-14, 5)
	}
	return m, nil
}

// clamp keeps the cursor and offset inside the visible rows.
func (m *BoardModel) clamp() {
	n := len(m.visible())
	m.Cursor = min(m.Cursor, max(n-1, 0))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
}

func (m BoardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Materias"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a only open  q quit"))
	b.WriteString("\n\n")

	subjects := m.visible()
	end := min(m.Offset+m.Height, len(subjects))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := subjects[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, s.Code, s.Name, strconv.Itoa(s.Semester), m.standingOf(s.Code).String()})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Code", "Subject", "Sem", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(subjects) {
				return lipgloss.NewStyle()
			}
			st := standingStyles[m.standingOf(subjects[idx].Code)]
			if idx == m.Cursor {
				if col == 4 {
					return st.Bold(true)
				}
				return listSelectedStyle
			}
			if col == 4 {
				return st
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(subjects)), len(subjects))))
	b.WriteString("\n")

	if s, ok := m.Current(); ok {
		b.WriteString(listFooterStyle.Render(renderMarkup(m.Engine.Explain(s.Code))))
		b.WriteString("\n")
	}
	return b.String()
}
