// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/tui/keymap"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady    State = "ready"
	StateAsking   State = "asking"
	StateError    State = "error"
	StateResults  State = "results"
	StateNotified State = "notified"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	fileCount int
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateAsking:
		return b.styles.Muted.Render("Searching...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render(fmt.Sprintf("Error: %s", b.message))
		}
		return b.styles.Error.Render("Error")
	case StateNotified:
		return b.styles.Success.Render(b.message)
	case StateReady, StateResults:
		if b.fileCount > 0 {
			return b.styles.Normal.Render(fmt.Sprintf("%d files", b.fileCount))
		}
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	bindings := b.keymap.ShortHelp()
	if b.state == StateResults || b.state == StateNotified {
		bindings = b.keymap.ResultsHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the message shown for error and notified states.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetFileCount sets the number of files shown.
func (b *Bar) SetFileCount(count int) {
	b.fileCount = count
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}
