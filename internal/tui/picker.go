// Package tui provides terminal user interface components for hoidev
package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// moduleItem implements list.Item for module display
type moduleItem struct {
	name string
	path string
}

func (i moduleItem) Title() string {
	return i.name
}

func (i moduleItem) Description() string {
	return i.path
}

func (i moduleItem) FilterValue() string {
	return i.name
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the module picker
type Model struct {
	list     list.Model
	choice   string
	quitting bool
	width    int
	height   int
}

// NewModulePicker creates a picker over the modules in moduleDir
func NewModulePicker(moduleDir string, modules []string) Model {
	items := make([]list.Item, len(modules))
	for i, name := range modules {
		items[i] = moduleItem{
			name: name,
			path: filepath.Join(moduleDir, name),
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "hoidev - Select Module"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(moduleItem); ok {
				m.choice = item.name
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Run  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Choice returns the picked module name, empty when the picker was quit.
func (m Model) Choice() string {
	return m.choice
}

// RunModulePicker runs the interactive module picker and returns the chosen
// module name. An empty result means the user quit without choosing.
func RunModulePicker(moduleDir string, modules []string) (string, error) {
	if len(modules) == 0 {
		return "", nil
	}

	m := NewModulePicker(moduleDir, modules)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	return finalModel.(Model).Choice(), nil
}
