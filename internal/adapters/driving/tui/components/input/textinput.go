// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/tui/styles"
)

// MessageInput wraps a bubbles textinput for messages to the assistant.
type MessageInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewMessageInput creates a new focused message input.
func NewMessageInput(s *styles.Styles) *MessageInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask for a document, e.g. budget report 2023"
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	return &MessageInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init starts the cursor blink.
func (m *MessageInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (m *MessageInput) Update(msg tea.Msg) (*MessageInput, tea.Cmd) {
	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

// View renders the input.
func (m *MessageInput) View() string {
	label := m.styles.Title.Render("Ask: ")
	field := m.styles.InputField.Render(m.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (m *MessageInput) Value() string {
	return m.textinput.Value()
}

// SetValue sets the input value.
func (m *MessageInput) SetValue(value string) {
	m.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (m *MessageInput) Focus() tea.Cmd {
	return m.textinput.Focus()
}

// Blur removes focus from the input.
func (m *MessageInput) Blur() {
	m.textinput.Blur()
}

// Focused returns whether the input is focused.
func (m *MessageInput) Focused() bool {
	return m.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (m *MessageInput) SetWidth(width int) {
	m.width = width
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.textinput.Width = inputWidth
}

// Reset clears the input.
func (m *MessageInput) Reset() {
	m.textinput.Reset()
}
