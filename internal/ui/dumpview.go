// Package ui provides the interactive terminal views for the pyir CLI,
// built the same way the pipeline progress view is: a Bubble Tea model
// wrapping a bubbles component, styled with lipgloss.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	dumpTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dumpFootStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// DumpModel pages through the rendered text of a translated Object tree.
type DumpModel struct {
	title string
	vp    viewport.Model
	body  string
	ready bool
}

// NewDumpModel returns a Bubble Tea model showing body, titled title.
func NewDumpModel(title, body string) tea.Model {
	return &DumpModel{title: title, body: body}
}

func (m *DumpModel) Init() tea.Cmd { return nil }

func (m *DumpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.title = truncateTitle(m.title, msg.Width-2)
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		verticalMargin := headerHeight + footerHeight
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.vp.SetContent(m.body)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - verticalMargin
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *DumpModel) View() string {
	if !m.ready {
		return "loading...\n"
	}
	return fmt.Sprintf("%s\n%s\n%s", m.headerView(), m.vp.View(), m.footerView())
}

func (m *DumpModel) headerView() string {
	return dumpTitleStyle.Render(m.title)
}

func (m *DumpModel) footerView() string {
	scrolled := fmt.Sprintf("%3.f%%", m.vp.ScrollPercent()*100)
	return dumpFootStyle.Render(strings.Join([]string{"↑/↓ scroll · q quit", scrolled}, "  "))
}

func truncateTitle(title string, width int) string {
	if width <= 3 || runewidth.StringWidth(title) <= width {
		return title
	}
	return runewidth.Truncate(title, width, "...")
}
