package tui

import (
	"context"
	"sync"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
)

type mockAssistant struct {
	mu       sync.Mutex
	reply    *domain.Reply
	err      error
	messages []string
	sessions []*domain.Session
}

func (m *mockAssistant) Handle(
	_ context.Context, session *domain.Session, message string, _ domain.SearchOptions,
) (*domain.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	m.sessions = append(m.sessions, session)
	return m.reply, m.err
}

type mockAuth struct {
	session *domain.Session
	err     error
}

func (m *mockAuth) Login(context.Context, string, func(driving.SignInPrompt)) (*domain.CachedAccount, error) {
	return nil, nil
}

func (m *mockAuth) Status(context.Context, string) (*domain.CachedAccount, error) {
	return nil, nil
}

func (m *mockAuth) Logout(context.Context, string) error {
	return nil
}

func (m *mockAuth) OpenSession(context.Context, string) (*domain.Session, error) {
	return m.session, m.err
}

type mockNotify struct {
	to    string
	err   error
	files []domain.File
}

func (m *mockNotify) SendFiles(_ context.Context, _ *domain.Session, _ string, files []domain.File) (string, error) {
	m.files = files
	return m.to, m.err
}
