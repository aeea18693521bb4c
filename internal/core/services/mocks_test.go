package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockDirectory implements driven.StorageDirectory for testing.
// Results are keyed by query; drives by site id.
type mockDirectory struct {
	mu sync.Mutex

	personal    map[string][]domain.File
	personalErr error
	sites       []domain.Container
	sitesErr    error
	drives      map[string][]domain.Container
	drivesErr   map[string]error
	driveHits   map[string][]domain.File // "driveID|query"
	recent      []domain.File
	denied      map[string]bool
	accessErr   error

	// expired makes every call behave like a 401 whose refresh failed.
	expired bool

	queries     []string
	recentCalls int
	accessCalls int
}

var _ driven.StorageDirectory = (*mockDirectory)(nil)

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		personal:  make(map[string][]domain.File),
		drives:    make(map[string][]domain.Container),
		drivesErr: make(map[string]error),
		driveHits: make(map[string][]domain.File),
		denied:    make(map[string]bool),
	}
}

func (m *mockDirectory) SearchPersonal(_ context.Context, session *domain.Session, query string) ([]domain.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if err := m.reject(session); err != nil {
		return nil, err
	}
	if m.personalErr != nil {
		return nil, m.personalErr
	}
	return copyFiles(m.personal[query]), nil
}

func (m *mockDirectory) ListContainers(_ context.Context, session *domain.Session) ([]domain.Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.reject(session); err != nil {
		return nil, err
	}
	return m.sites, m.sitesErr
}

func (m *mockDirectory) ListDrives(_ context.Context, _ *domain.Session, siteID string) ([]domain.Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.drivesErr[siteID]; err != nil {
		return nil, err
	}
	return m.drives[siteID], nil
}

func (m *mockDirectory) SearchDrive(_ context.Context, _ *domain.Session, driveID, query string) ([]domain.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyFiles(m.driveHits[driveID+"|"+query]), nil
}

func (m *mockDirectory) RecentFiles(_ context.Context, session *domain.Session) ([]domain.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recentCalls++
	if err := m.reject(session); err != nil {
		return nil, err
	}
	return copyFiles(m.recent), nil
}

func (m *mockDirectory) CheckAccess(_ context.Context, _ *domain.Session, siteID, itemID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accessCalls++
	if m.accessErr != nil {
		return false, m.accessErr
	}
	return !m.denied[siteID+"|"+itemID], nil
}

// reject records a failed refresh on the session when the directory is
// expired, the way the Graph invoker does on a 401.
func (m *mockDirectory) reject(session *domain.Session) error {
	if !m.expired {
		return nil
	}
	session.RefreshFailed()
	return errUnauthorized
}

func copyFiles(files []domain.File) []domain.File {
	if files == nil {
		return nil
	}
	out := make([]domain.File, len(files))
	copy(out, files)
	return out
}

// mockEmbedder implements driven.EmbeddingService with a fixed vector per
// keyword: a text containing a keyword embeds to that keyword's vector.
type mockEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	err      error
	batchErr error
	inputs   []string
}

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

func (m *mockEmbedder) vectorFor(text string) []float32 {
	lower := strings.ToLower(text)
	for keyword, v := range m.vectors {
		if strings.Contains(lower, keyword) {
			return v
		}
	}
	return m.fallback
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	m.inputs = append(m.inputs, texts...)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vectorFor(t)
	}
	return out, nil
}

func (m *mockEmbedder) ModelName() string            { return "mock" }
func (m *mockEmbedder) Ping(_ context.Context) error { return m.err }
func (m *mockEmbedder) Close() error                 { return nil }

// mockExtractor implements driven.TextExtractor from a map of file id to text.
type mockExtractor struct {
	texts map[string]string
}

var _ driven.TextExtractor = (*mockExtractor)(nil)

func (m *mockExtractor) TextOf(_ context.Context, _ *domain.Session, f domain.File) (string, error) {
	text, ok := m.texts[f.ID]
	if !ok {
		return "", domain.ErrExtractionFailed
	}
	return text, nil
}

// mockClassifier implements driven.IntentClassifier.
type mockClassifier struct {
	intent domain.Intent
	err    error
}

func (m *mockClassifier) Classify(_ context.Context, _ string) (domain.Intent, error) {
	return m.intent, m.err
}

// mockAnswerer implements driven.Answerer.
type mockAnswerer struct {
	answer string
	err    error
	asked  []string
}

func (m *mockAnswerer) Answer(_ context.Context, message string) (string, error) {
	m.asked = append(m.asked, message)
	return m.answer, m.err
}

// mockTokenSource implements driven.TokenSource.
type mockTokenSource struct {
	token string
	err   error
}

func (m *mockTokenSource) Token(_ context.Context, _ string) (string, error) {
	return m.token, m.err
}

func (m *mockTokenSource) Refresh(_ context.Context, _ string) (string, error) {
	return m.token, m.err
}

// mockAuthorizer implements driven.Authorizer.
type mockAuthorizer struct {
	account *domain.CachedAccount
	err     error
}

func (m *mockAuthorizer) Authorize(
	_ context.Context, prompt func(verificationURI, userCode string),
) (*domain.CachedAccount, error) {
	if m.err != nil {
		return nil, m.err
	}
	prompt("https://microsoft.com/devicelogin", "ABCD-1234")
	return m.account, nil
}

// mockProfile implements driven.ProfileReader.
type mockProfile struct {
	email string
	err   error
	token string
}

func (m *mockProfile) UserEmail(_ context.Context, session *domain.Session) (string, error) {
	m.token = session.Token()
	return m.email, m.err
}

// mockValidator implements driven.AIConfigValidator.
type mockValidator struct {
	embeddingKey string
	llmKey       string
}

func (m *mockValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	m.embeddingKey = config.APIKey
	if config.APIKey == "" {
		return domain.ErrEmbeddingUnavailable
	}
	return nil
}

func (m *mockValidator) ValidateLLM(config *domain.LLMSettings) error {
	m.llmKey = config.APIKey
	if config.APIKey == "" {
		return domain.ErrLLMUnavailable
	}
	return nil
}

var (
	errBoom         = errors.New("boom")
	errUnauthorized = errors.New("401 unauthorized")
)

func testSession() *domain.Session {
	return domain.NewSession("default", "token-1")
}
