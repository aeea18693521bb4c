package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService fans a query out over the caller's personal drive and
// every shared site, then ranks the union semantically.
type SearchService struct {
	directory   driven.StorageDirectory
	ranker      *SemanticRanker
	pool        *ants.Pool
	accessCheck bool
}

// NewSearchService creates a search service that searches up to
// settings.Workers sites in parallel. ranker may be nil to skip ranking.
func NewSearchService(
	directory driven.StorageDirectory, ranker *SemanticRanker, settings domain.SearchSettings,
) (*SearchService, error) {
	workers := settings.Workers
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create search pool: %w", err)
	}
	return &SearchService{
		directory:   directory,
		ranker:      ranker,
		pool:        pool,
		accessCheck: settings.AccessCheck,
	}, nil
}

// Close releases the worker pool.
func (s *SearchService) Close() {
	s.pool.Release()
}

// Search collects candidates and ranks them by similarity to the query.
func (s *SearchService) Search(ctx context.Context, session *domain.Session, query string) ([]domain.File, error) {
	files, err := s.Collect(ctx, session, query)
	if err != nil {
		return nil, err
	}
	if s.ranker == nil {
		return files, nil
	}
	return s.ranker.Rank(ctx, query, files, 0), nil
}

// Collect runs the discovery steps without ranking:
// personal drive, then every drive of every site, then recent files when
// nothing matched. Folders are dropped.
func (s *SearchService) Collect(ctx context.Context, session *domain.Session, query string) ([]domain.File, error) {
	files, err := s.CollectHits(ctx, session, query)
	if err != nil || len(files) > 0 || ctx.Err() != nil {
		return files, err
	}
	return s.Recent(ctx, session)
}

// CollectHits searches the personal drive and every drive of every site.
// Folders are dropped. It fails with domain.ErrAuthRequired once the
// session's token can no longer be refreshed.
func (s *SearchService) CollectHits(ctx context.Context, session *domain.Session, query string) ([]domain.File, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}

	logger.Section("Federated Search")
	logger.Debug("Query: %q", query)

	var all []domain.File

	personal, err := s.directory.SearchPersonal(ctx, session, query)
	if err != nil {
		logger.Warn("Personal drive search failed: %v", err)
	}
	all = append(all, domain.TagOrigin(personal, domain.OriginPersonal)...)
	logger.Debug("Personal drive: %d hits", len(personal))
	if err := checkSession(session); err != nil {
		return nil, err
	}

	all = append(all, s.searchSites(ctx, session, query)...)
	if err := checkSession(session); err != nil {
		return nil, err
	}

	return s.finish(ctx, session, all)
}

// Recent returns the caller's recent files, tagged personal.
func (s *SearchService) Recent(ctx context.Context, session *domain.Session) ([]domain.File, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}

	logger.Debug("No hits, falling back to recent files")
	recent, err := s.directory.RecentFiles(ctx, session)
	if err != nil {
		logger.Warn("Recent files failed: %v", err)
	}
	if err := checkSession(session); err != nil {
		return nil, err
	}
	return s.finish(ctx, session, domain.TagOrigin(recent, domain.OriginPersonal))
}

// finish drops folders and, when enabled, files the caller cannot open.
func (s *SearchService) finish(ctx context.Context, session *domain.Session, all []domain.File) ([]domain.File, error) {
	files := domain.OnlyFiles(all)
	if s.accessCheck {
		files = s.filterAccessible(ctx, session, files)
		if err := checkSession(session); err != nil {
			return nil, err
		}
	}

	logger.Debug("Collected %d files", len(files))
	return files, nil
}

// checkSession fails when there is no token or it can no longer be refreshed.
func checkSession(session *domain.Session) error {
	if session == nil || session.Token() == "" {
		return domain.ErrAuthRequired
	}
	if session.Expired() {
		return fmt.Errorf("%w: token refresh failed", domain.ErrAuthRequired)
	}
	return nil
}

// searchSites searches every drive of every site on the pool.
// Each site writes its own slot; slots are joined in enumeration order.
func (s *SearchService) searchSites(ctx context.Context, session *domain.Session, query string) []domain.File {
	sites, err := s.directory.ListContainers(ctx, session)
	if err != nil {
		logger.Warn("Site enumeration failed: %v", err)
	}
	if len(sites) == 0 {
		return nil
	}
	logger.Debug("Searching %d sites", len(sites))

	results := make([][]domain.File, len(sites))
	var wg sync.WaitGroup
	for i, site := range sites {
		if session.Expired() {
			break
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = s.searchSite(ctx, session, site, query)
		}
		if err := s.pool.Submit(task); err != nil {
			wg.Done()
			logger.Warn("Site %s not searched: %v", site.ID, err)
		}
	}
	wg.Wait()

	if ctx.Err() != nil {
		logger.Warn("Search cancelled, returning partial results")
	}

	var hits []domain.File
	for _, r := range results {
		hits = append(hits, r...)
	}
	return hits
}

// searchSite searches all drives of one site and tags hits with the site id.
func (s *SearchService) searchSite(
	ctx context.Context, session *domain.Session, site domain.Container, query string,
) []domain.File {
	if ctx.Err() != nil {
		return nil
	}

	drives, err := s.directory.ListDrives(ctx, session, site.ID)
	if err != nil {
		logger.Warn("Listing drives of %s failed: %v", site.ID, err)
		return nil
	}

	var hits []domain.File
	for _, drive := range drives {
		if ctx.Err() != nil || session.Expired() {
			break
		}
		found, err := s.directory.SearchDrive(ctx, session, drive.ID, query)
		if err != nil {
			logger.Warn("Search in drive %s of %s failed: %v", drive.ID, site.ID, err)
			continue
		}
		for i := range found {
			if found[i].DriveID == "" {
				found[i].DriveID = drive.ID
			}
		}
		hits = append(hits, domain.TagOrigin(found, site.ID)...)
	}
	return hits
}

// filterAccessible drops site files the caller may not open.
// Personal files are always kept.
func (s *SearchService) filterAccessible(
	ctx context.Context, session *domain.Session, files []domain.File,
) []domain.File {
	kept := make([]domain.File, 0, len(files))
	for _, f := range files {
		if session.Expired() {
			break
		}
		if f.IsPersonal() {
			kept = append(kept, f)
			continue
		}
		ok, err := s.directory.CheckAccess(ctx, session, f.Origin, f.ID)
		if err != nil {
			logger.Debug("Access check for %q failed: %v", f.Name, err)
			continue
		}
		if ok {
			kept = append(kept, f)
		}
	}
	return kept
}
