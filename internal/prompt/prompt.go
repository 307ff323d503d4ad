// Package prompt provides the blocking URL entry dialog. It renders a small
// modal-style text input in the terminal and returns the submitted value.
package prompt

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user dismisses the prompt without
// submitting (Esc or Ctrl+C).
var ErrCanceled = errors.New("prompt canceled")

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model for the URL prompt.
type Model struct {
	input    textinput.Model
	done     bool
	canceled bool
}

// NewModel builds the prompt model with an empty, focused text field.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "https://www.tradingview.com/script/..."
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 512
	ti.Width = 64
	return Model{input: ti}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Enter submits the current text (possibly
// empty); Esc and Ctrl+C cancel.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done || m.canceled {
		return ""
	}
	body := titleStyle.Render("Enter Indicator URL") + "\n\n" +
		m.input.View() + "\n\n" +
		hintStyle.Render("enter: ok · esc: cancel")
	return boxStyle.Render(body) + "\n"
}

// Value returns the text currently in the input field.
func (m Model) Value() string {
	return m.input.Value()
}

// Canceled reports whether the prompt was dismissed without submitting.
func (m Model) Canceled() bool {
	return m.canceled
}

// AskForURL blocks until the user submits a URL or cancels. The submitted
// text is returned as typed; an empty submit returns an empty string and a
// nil error.
func AskForURL() (string, error) {
	final, err := tea.NewProgram(NewModel()).Run()
	if err != nil {
		return "", err
	}

	m, ok := final.(Model)
	if !ok {
		return "", errors.New("prompt: unexpected model type")
	}
	if m.Canceled() {
		return "", ErrCanceled
	}
	return m.Value(), nil
}
