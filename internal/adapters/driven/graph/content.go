package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// Downloader fetches file content.
type Downloader struct {
	caller  Caller
	baseURL string
}

// NewDownloader creates a downloader. An empty baseURL uses DefaultBaseURL.
func NewDownloader(caller Caller, baseURL string) *Downloader {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Downloader{caller: caller, baseURL: strings.TrimRight(baseURL, "/")}
}

// Download returns the raw bytes of a file. The pre-authenticated download
// link is used when the search result carried one; otherwise the content
// endpoint of the item's drive.
func (d *Downloader) Download(ctx context.Context, session *domain.Session, file domain.File) ([]byte, error) {
	call := &Call{Method: http.MethodGet}
	switch {
	case file.DownloadURL != "":
		call.URL = file.DownloadURL
	case file.DriveID != "":
		call.URL = fmt.Sprintf("%s/drives/%s/items/%s/content",
			d.baseURL, url.PathEscape(file.DriveID), url.PathEscape(file.ID))
		call.Session = session
	default:
		call.URL = fmt.Sprintf("%s/me/drive/items/%s/content", d.baseURL, url.PathEscape(file.ID))
		call.Session = session
	}

	resp, err := d.caller.Invoke(ctx, call)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, resp.Err()
	}
	return resp.Body, nil
}
