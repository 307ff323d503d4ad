package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeString(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestSubmitReturnsTypedText(t *testing.T) {
	m := typeString(NewModel(), "https://www.tradingview.com/script/abc123")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if cmd == nil {
		t.Fatal("Enter did not produce a quit command")
	}
	if m.Canceled() {
		t.Error("Canceled() = true after submit")
	}
	if got := m.Value(); got != "https://www.tradingview.com/script/abc123" {
		t.Errorf("Value() = %q", got)
	}
}

func TestEmptySubmitIsValid(t *testing.T) {
	next, _ := NewModel().Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := next.(Model)

	if m.Canceled() {
		t.Error("Canceled() = true; empty submit is not a cancel")
	}
	if m.Value() != "" {
		t.Errorf("Value() = %q; want empty", m.Value())
	}
}

func TestEscapeCancels(t *testing.T) {
	m := typeString(NewModel(), "partial")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)

	if cmd == nil {
		t.Fatal("Esc did not produce a quit command")
	}
	if !m.Canceled() {
		t.Error("Canceled() = false after Esc")
	}
}

func TestViewHidesAfterSubmit(t *testing.T) {
	m := NewModel()
	if m.View() == "" {
		t.Error("View() empty while prompt is open")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.View() != "" {
		t.Error("View() not empty after submit")
	}
}
