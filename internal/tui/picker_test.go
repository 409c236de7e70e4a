package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModuleItemMethods(t *testing.T) {
	item := moduleItem{
		name: "apache",
		path: "/srv/hoi/modules/apache",
	}

	t.Run("Title", func(t *testing.T) {
		if got := item.Title(); got != "apache" {
			t.Errorf("Title() = %q, want %q", got, "apache")
		}
	})

	t.Run("FilterValue", func(t *testing.T) {
		if got := item.FilterValue(); got != "apache" {
			t.Errorf("FilterValue() = %q, want %q", got, "apache")
		}
	})

	t.Run("Description", func(t *testing.T) {
		if got := item.Description(); got != "/srv/hoi/modules/apache" {
			t.Errorf("Description() = %q, want module path", got)
		}
	})
}

func TestPicker_EnterPicksSelected(t *testing.T) {
	m := NewModulePicker("/srv/hoi/modules", []string{"apache", "ntp"})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := updated.(Model)
	if result.Choice() != "apache" {
		t.Errorf("Choice() = %q, want apache", result.Choice())
	}
}

func TestPicker_QuitPicksNothing(t *testing.T) {
	m := NewModulePicker("/srv/hoi/modules", []string{"apache", "ntp"})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	result := updated.(Model)
	if result.Choice() != "" {
		t.Errorf("Choice() = %q, want empty after quit", result.Choice())
	}
}
