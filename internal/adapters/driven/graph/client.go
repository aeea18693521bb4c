package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

const (
	// DefaultBaseURL is the Graph v1.0 API root.
	DefaultBaseURL = "https://graph.microsoft.com/v1.0"

	// maxSearchPages bounds how many result pages one search follows.
	maxSearchPages = 5
)

// Ensure Client implements the interfaces.
var (
	_ driven.StorageDirectory = (*Client)(nil)
	_ driven.ProfileReader    = (*Client)(nil)
)

// Client reads the caller's drives and the tenant's SharePoint sites.
type Client struct {
	caller  Caller
	baseURL string
}

// NewClient creates a Graph client. An empty baseURL uses DefaultBaseURL.
func NewClient(caller Caller, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		caller:  caller,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SearchPersonal searches the caller's OneDrive.
func (c *Client) SearchPersonal(ctx context.Context, session *domain.Session, query string) ([]domain.File, error) {
	items, err := listAll[driveItem](ctx, c.caller, session, c.baseURL+"/me/drive/root/"+searchSegment(query), maxSearchPages)
	if err != nil {
		return toFiles(items), fmt.Errorf("search personal drive: %w", err)
	}
	return toFiles(items), nil
}

// ListContainers walks every page of /sites?search=*. Any failure ends the
// walk; what was collected so far is returned without error.
func (c *Client) ListContainers(ctx context.Context, session *domain.Session) ([]domain.Container, error) {
	sites, err := listAll[site](ctx, c.caller, session, c.baseURL+"/sites?search=*", 0)
	if err != nil {
		logger.Warn("Site enumeration stopped after %d sites: %v", len(sites), err)
	}

	containers := make([]domain.Container, 0, len(sites))
	for _, s := range sites {
		if s.ID == "" {
			continue
		}
		containers = append(containers, s.toContainer())
	}
	logger.Debug("Discovered %d sites", len(containers))
	return containers, nil
}

// ListDrives lists the document libraries of a site.
func (c *Client) ListDrives(ctx context.Context, session *domain.Session, siteID string) ([]domain.Container, error) {
	drives, err := listAll[drive](ctx, c.caller, session, c.baseURL+"/sites/"+url.PathEscape(siteID)+"/drives", 0)
	if err != nil {
		return nil, fmt.Errorf("list drives of %s: %w", siteID, err)
	}

	containers := make([]domain.Container, 0, len(drives))
	for _, d := range drives {
		containers = append(containers, d.toContainer())
	}
	return containers, nil
}

// SearchDrive searches one document library.
func (c *Client) SearchDrive(
	ctx context.Context, session *domain.Session, driveID, query string,
) ([]domain.File, error) {
	endpoint := c.baseURL + "/drives/" + url.PathEscape(driveID) + "/root/" + searchSegment(query)
	items, err := listAll[driveItem](ctx, c.caller, session, endpoint, maxSearchPages)
	if err != nil {
		return nil, fmt.Errorf("search drive %s: %w", driveID, err)
	}
	return toFiles(items), nil
}

// RecentFiles lists the caller's recently used files.
func (c *Client) RecentFiles(ctx context.Context, session *domain.Session) ([]domain.File, error) {
	items, err := listAll[driveItem](ctx, c.caller, session, c.baseURL+"/me/drive/recent", 1)
	if err != nil {
		return nil, fmt.Errorf("recent files: %w", err)
	}
	return toFiles(items), nil
}

// CheckAccess reports whether the caller can read the permissions of an
// item in a site's default library. Any non-200 response means no access.
func (c *Client) CheckAccess(ctx context.Context, session *domain.Session, siteID, itemID string) (bool, error) {
	endpoint := fmt.Sprintf("%s/sites/%s/drive/items/%s/permissions",
		c.baseURL, url.PathEscape(siteID), url.PathEscape(itemID))

	resp, err := c.caller.Invoke(ctx, &Call{Method: http.MethodGet, URL: endpoint, Session: session})
	if err != nil {
		return false, err
	}
	return resp.OK(), nil
}

// UserEmail returns the caller's mail address, or the principal name when
// no mailbox address is set.
func (c *Client) UserEmail(ctx context.Context, session *domain.Session) (string, error) {
	resp, err := c.caller.Invoke(ctx, &Call{Method: http.MethodGet, URL: c.baseURL + "/me", Session: session})
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", resp.Err()
	}

	var me user
	if err := resp.Decode(&me); err != nil {
		return "", err
	}
	if me.Mail != "" {
		return me.Mail, nil
	}
	if me.UserPrincipalName != "" {
		return me.UserPrincipalName, nil
	}
	return "", fmt.Errorf("%w: profile has no mail address", domain.ErrNotFound)
}

// listAll follows @odata.nextLink from first until absent or maxPages pages
// were read (0 = no limit). On failure it returns the items collected so far
// with the error.
func listAll[T any](
	ctx context.Context, caller Caller, session *domain.Session, first string, maxPages int,
) ([]T, error) {
	var all []T
	next := first

	for page := 0; next != ""; page++ {
		if maxPages > 0 && page >= maxPages {
			break
		}
		if err := ctx.Err(); err != nil {
			return all, err
		}

		resp, err := caller.Invoke(ctx, &Call{Method: http.MethodGet, URL: next, Session: session})
		if err != nil {
			return all, err
		}
		if !resp.OK() {
			return all, resp.Err()
		}

		var body collection[T]
		if err := resp.Decode(&body); err != nil {
			return all, err
		}
		all = append(all, body.Value...)
		next = body.NextLink
	}
	return all, nil
}

// searchSegment builds the search(q='...') path segment. Single quotes are
// doubled as OData string literals require.
func searchSegment(query string) string {
	quoted := strings.ReplaceAll(query, "'", "''")
	return "search(q='" + url.PathEscape(quoted) + "')"
}
