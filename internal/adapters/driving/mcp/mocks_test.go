package mcp

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	files   []domain.File
	err     error
	query   string
	session *domain.Session
}

func (m *mockSearchService) Search(_ context.Context, session *domain.Session, query string) ([]domain.File, error) {
	m.query = query
	m.session = session
	return m.files, m.err
}

func (m *mockSearchService) Collect(_ context.Context, _ *domain.Session, _ string) ([]domain.File, error) {
	return m.files, m.err
}

func (m *mockSearchService) CollectHits(ctx context.Context, session *domain.Session, query string) ([]domain.File, error) {
	return m.Collect(ctx, session, query)
}

func (m *mockSearchService) Recent(_ context.Context, _ *domain.Session) ([]domain.File, error) {
	return nil, m.err
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	reply   *domain.Reply
	err     error
	opts    domain.SearchOptions
	session *domain.Session
}

func (m *mockAssistantService) Handle(
	_ context.Context, session *domain.Session, _ string, opts domain.SearchOptions,
) (*domain.Reply, error) {
	m.session = session
	m.opts = opts
	return m.reply, m.err
}

// mockAuthService is a mock implementation of driving.AuthService.
type mockAuthService struct {
	account    *domain.CachedAccount
	statusErr  error
	token      string
	sessionErr error
}

func (m *mockAuthService) Login(
	_ context.Context, _ string, _ func(driving.SignInPrompt),
) (*domain.CachedAccount, error) {
	return m.account, nil
}

func (m *mockAuthService) Status(_ context.Context, _ string) (*domain.CachedAccount, error) {
	return m.account, m.statusErr
}

func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return nil
}

func (m *mockAuthService) OpenSession(_ context.Context, accountID string) (*domain.Session, error) {
	if m.sessionErr != nil {
		return nil, m.sessionErr
	}
	return domain.NewSession(accountID, m.token), nil
}
