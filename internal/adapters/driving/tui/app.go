package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/tui/components/input"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/tui/components/list"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/tui/components/status"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/tui/keymap"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/tui/messages"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/tui/styles"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// defaultTopK limits the files shown per reply.
const defaultTopK = 10

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.MessageInput
	files     *list.FileList
	statusBar *status.Bar

	// reply is the last assistant reply, nil before the first answer.
	reply *domain.Reply

	// asking is true while a message is in flight.
	asking bool

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingAssistantService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		input:     input.NewMessageInput(s),
		files:     list.NewFileList(s),
		statusBar: status.NewBar(s, km),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("echo - document assistant"),
		a.input.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.AskRequested:
		a.asking = true
		a.err = nil
		a.statusBar.SetState(status.StateAsking)
		return a, a.ask(msg.Message)

	case messages.AskCompleted:
		a.asking = false
		if msg.Err != nil {
			a.setError(msg.Err)
			a.input.Focus()
			return a, nil
		}
		a.showReply(msg.Reply)
		return a, nil

	case messages.EmailCompleted:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.statusBar.SetState(status.StateNotified)
		a.statusBar.SetMessage("Sent to " + msg.To)
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil
	}

	var cmd tea.Cmd
	if a.input.Focused() {
		a.input, cmd = a.input.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return a, tea.Quit
	}
	if a.asking {
		return a, nil
	}

	if a.input.Focused() {
		switch {
		case keymap.Matches(keyStr, a.keymap.Submit):
			message := strings.TrimSpace(a.input.Value())
			if message == "" {
				return a, nil
			}
			a.input.Blur()
			return a, func() tea.Msg { return messages.AskRequested{Message: message} }
		case msg.Type == tea.KeyEsc:
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch {
	case keymap.Matches(keyStr, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(keyStr, a.keymap.NewSearch):
		a.input.Reset()
		a.statusBar.SetState(status.StateReady)
		a.statusBar.SetMessage("")
		return a, a.input.Focus()
	case keymap.Matches(keyStr, a.keymap.Up):
		a.files.MoveUp()
	case keymap.Matches(keyStr, a.keymap.Down):
		a.files.MoveDown()
	case keymap.Matches(keyStr, a.keymap.Email):
		return a, a.email()
	}
	return a, nil
}

// ask runs the assistant off the event loop. A missing sign-in still lets
// general questions through.
func (a *App) ask(message string) tea.Cmd {
	ctx := a.ctx
	ports := a.ports
	return func() tea.Msg {
		session, err := a.openSession(ctx)
		if err != nil && !errors.Is(err, domain.ErrAuthRequired) {
			return messages.AskCompleted{Err: err}
		}
		reply, err := ports.Assistant.Handle(ctx, session, message, domain.SearchOptions{TopK: defaultTopK})
		return messages.AskCompleted{Reply: reply, Err: err}
	}
}

// email mails the selected file to the signed-in user.
func (a *App) email() tea.Cmd {
	if a.ports.Notify == nil {
		return nil
	}
	selected := a.files.SelectedFile()
	if selected == nil {
		return nil
	}
	file := *selected
	ctx := a.ctx
	notify := a.ports.Notify
	return func() tea.Msg {
		session, err := a.openSession(ctx)
		if err != nil {
			return messages.EmailCompleted{Err: err}
		}
		to, err := notify.SendFiles(ctx, session, "", []domain.File{file})
		return messages.EmailCompleted{To: to, Err: err}
	}
}

func (a *App) openSession(ctx context.Context) (*domain.Session, error) {
	if a.ports.Auth == nil {
		return nil, domain.ErrAuthRequired
	}
	return a.ports.Auth.OpenSession(ctx, a.ports.AccountID)
}

func (a *App) showReply(reply *domain.Reply) {
	a.reply = reply
	var files []domain.File
	if reply != nil {
		files = reply.Files
	}
	a.files.SetFiles(files)
	a.statusBar.SetFileCount(len(files))
	a.statusBar.SetMessage("")
	a.statusBar.SetState(status.StateResults)
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := []string{
		a.styles.Title.Render("echo"),
		a.input.View(),
		"",
		a.viewBody(),
	}
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	gap := a.height - lipgloss.Height(body) - 1
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + a.statusBar.View()
}

func (a *App) viewBody() string {
	if a.asking {
		return a.styles.Muted.Render("Working on it...")
	}
	if a.reply == nil {
		return a.styles.Muted.Render("Ask for a document or type a question.")
	}

	if a.reply.Intent.Kind == domain.IntentGeneralResponse {
		return a.styles.Answer.Width(a.width - 4).Render(a.reply.Answer)
	}

	var b strings.Builder
	switch {
	case a.reply.Query == "" && len(a.reply.Files) > 0:
		b.WriteString(a.styles.Muted.Render("No matches, showing recent files"))
		b.WriteString("\n\n")
	case a.reply.Query != "" && a.reply.Plan != nil && len(a.reply.Plan.Variants) > 0 &&
		a.reply.Query != a.reply.Plan.Variants[0]:
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("Showing results for %q", a.reply.Query)))
		b.WriteString("\n\n")
	}
	b.WriteString(a.files.View())
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a.WithContext(a.ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Reply returns the last assistant reply.
func (a *App) Reply() *domain.Reply {
	return a.reply
}

// Files returns the listed files.
func (a *App) Files() []domain.File {
	return a.files.Files()
}

// SelectedIndex returns the selected file index.
func (a *App) SelectedIndex() int {
	return a.files.Selected()
}

// Asking reports whether a message is in flight.
func (a *App) Asking() bool {
	return a.asking
}

// InputFocused reports whether the message input has focus.
func (a *App) InputFocused() bool {
	return a.input.Focused()
}

// Status returns the status bar state.
func (a *App) Status() status.State {
	return a.statusBar.State()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.input.SetWidth(width)
	a.files.SetDimensions(width, height-8)
	a.statusBar.SetWidth(width)
}
