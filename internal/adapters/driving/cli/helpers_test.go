package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
)

type mockSearchService struct {
	files     []domain.File
	err       error
	collected bool
	queries   []string
}

func (m *mockSearchService) Search(_ context.Context, _ *domain.Session, query string) ([]domain.File, error) {
	m.queries = append(m.queries, query)
	return m.files, m.err
}

func (m *mockSearchService) Collect(_ context.Context, _ *domain.Session, query string) ([]domain.File, error) {
	m.collected = true
	m.queries = append(m.queries, query)
	return m.files, m.err
}

func (m *mockSearchService) CollectHits(ctx context.Context, session *domain.Session, query string) ([]domain.File, error) {
	return m.Collect(ctx, session, query)
}

func (m *mockSearchService) Recent(_ context.Context, _ *domain.Session) ([]domain.File, error) {
	return nil, m.err
}

type mockAssistantService struct {
	reply    *domain.Reply
	err      error
	opts     domain.SearchOptions
	messages []string
	session  *domain.Session
}

func (m *mockAssistantService) Handle(
	_ context.Context, session *domain.Session, message string, opts domain.SearchOptions,
) (*domain.Reply, error) {
	m.messages = append(m.messages, message)
	m.opts = opts
	m.session = session
	return m.reply, m.err
}

type mockAuthService struct {
	account    *domain.CachedAccount
	loginErr   error
	statusErr  error
	sessionErr error
	loggedOut  []string
	promptURI  string
}

func (m *mockAuthService) Login(
	_ context.Context, _ string, prompt func(driving.SignInPrompt),
) (*domain.CachedAccount, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	prompt(driving.SignInPrompt{VerificationURI: "https://microsoft.com/devicelogin", UserCode: "ABCD-1234"})
	return m.account, nil
}

func (m *mockAuthService) Status(context.Context, string) (*domain.CachedAccount, error) {
	return m.account, m.statusErr
}

func (m *mockAuthService) Logout(_ context.Context, accountID string) error {
	m.loggedOut = append(m.loggedOut, accountID)
	return nil
}

func (m *mockAuthService) OpenSession(_ context.Context, accountID string) (*domain.Session, error) {
	if m.sessionErr != nil {
		return nil, m.sessionErr
	}
	return domain.NewSession(accountID, "token"), nil
}

type mockSettingsService struct {
	settings    domain.AppSettings
	set         map[string]string
	setErr      error
	validateErr error
	llmErr      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"graph.client_id", "search.top_k"}
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error {
	return nil
}

func (m *mockSettingsService) ValidateLLMConfig() error {
	return m.llmErr
}

type mockNotifyService struct {
	to    string
	err   error
	files []domain.File
}

func (m *mockNotifyService) SendFiles(_ context.Context, _ *domain.Session, to string, files []domain.File) (string, error) {
	m.files = files
	if to == "" {
		to = m.to
	}
	return to, m.err
}

type testServices struct {
	search    *mockSearchService
	assistant *mockAssistantService
	auth      *mockAuthService
	settings  *mockSettingsService
	notify    *mockNotifyService
}

func testFiles() []domain.File {
	score := 0.91
	return []domain.File{
		{ID: "1", Name: "budget-2023.xlsx", Origin: domain.OriginPersonal, WebURL: "https://example.com/1", Score: &score},
		{ID: "2", Name: "budget.docx", Origin: "site-fin", WebURL: "https://example.com/2"},
		{ID: "3", Name: "notes.txt", Origin: "site-fin"},
	}
}

// setupTestServices installs mock services and returns them with a cleanup
// that restores the previous services and flag values.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		search: &mockSearchService{files: testFiles()},
		assistant: &mockAssistantService{reply: &domain.Reply{
			Intent: domain.Intent{Kind: domain.IntentFileSearch, Data: "budget 2023"},
			Plan:   &domain.QueryPlan{Year: "2023", CoreIntent: "budget", Variants: []string{"budget"}},
			Query:  "budget",
			Files:  testFiles()[:2],
		}},
		auth: &mockAuthService{account: &domain.CachedAccount{
			Username:     "alex@contoso.com",
			AccessToken:  "token",
			RefreshToken: "refresh",
			Expiry:       time.Now().Add(time.Hour),
		}},
		settings: &mockSettingsService{settings: domain.DefaultAppSettings(), set: map[string]string{}},
		notify:   &mockNotifyService{to: "alex@contoso.com"},
	}

	prevSearch, prevAssistant, prevAuth := searchService, assistantService, authService
	prevSettings, prevNotify, prevAccount := settingsService, notifyService, accountID

	searchService = ts.search
	assistantService = ts.assistant
	authService = ts.auth
	settingsService = ts.settings
	notifyService = ts.notify
	accountID = "default"

	return ts, func() {
		searchService, assistantService, authService = prevSearch, prevAssistant, prevAuth
		settingsService, notifyService, accountID = prevSettings, prevNotify, prevAccount
		resetFlags()
	}
}

func resetFlags() {
	searchLimit, searchJSON, searchRaw = 10, false, false
	askTop, askJSON, askSkipSemantic, askEmail, askTo = 0, false, false, false, ""
	authAskSecret = false
	verbose = false
}

// execute runs the root command with args and returns the combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
