package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides access to the store
// interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.echo/data/echo.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".echo", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "echo.db")

	// WAL mode so a running server and a CLI command can share the file
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// TokenCacheStore returns a TokenCacheStore interface backed by this store.
func (s *Store) TokenCacheStore() driven.TokenCacheStore {
	return &tokenCacheStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_token_cache.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Token Cache Store ====================

// tokenCacheStore implements driven.TokenCacheStore.
type tokenCacheStore struct {
	store *Store
}

var _ driven.TokenCacheStore = (*tokenCacheStore)(nil)

// Load retrieves the cache for an account.
func (s *tokenCacheStore) Load(ctx context.Context, accountID string) (*domain.TokenCache, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT account_id, accounts, updated_at
		FROM token_cache WHERE account_id = ?
	`, accountID)

	var cache domain.TokenCache
	var accountsJSON string
	if err := row.Scan(&cache.AccountID, &accountsJSON, &cache.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning token cache: %w", err)
	}

	if err := json.Unmarshal([]byte(accountsJSON), &cache.Accounts); err != nil {
		return nil, fmt.Errorf("unmarshalling cached accounts: %w", err)
	}
	return &cache, nil
}

// Save stores or replaces the cache for an account.
func (s *tokenCacheStore) Save(ctx context.Context, cache domain.TokenCache) error {
	if cache.AccountID == "" {
		return domain.ErrInvalidInput
	}
	if cache.Accounts == nil {
		cache.Accounts = []domain.CachedAccount{}
	}
	if cache.UpdatedAt.IsZero() {
		cache.UpdatedAt = time.Now()
	}

	accountsJSON, err := json.Marshal(cache.Accounts)
	if err != nil {
		return fmt.Errorf("marshalling cached accounts: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO token_cache (account_id, accounts, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			accounts = excluded.accounts,
			updated_at = excluded.updated_at
	`, cache.AccountID, string(accountsJSON), cache.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving token cache: %w", err)
	}
	return nil
}

// Delete removes the cache for an account.
func (s *tokenCacheStore) Delete(ctx context.Context, accountID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM token_cache WHERE account_id = ?", accountID)
	if err != nil {
		return fmt.Errorf("deleting token cache: %w", err)
	}
	return nil
}

// List returns the account identifiers with a stored cache.
func (s *tokenCacheStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT account_id FROM token_cache ORDER BY account_id")
	if err != nil {
		return nil, fmt.Errorf("listing token caches: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning account id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
