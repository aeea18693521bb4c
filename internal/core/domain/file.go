package domain

// OriginPersonal tags files that come from the caller's own drive.
const OriginPersonal = "personal"

// File is a single search hit returned by the remote storage API.
// It is mutated in place as it passes through tagging, extraction and
// scoring, and is never shared across concurrent searches.
type File struct {
	// ID is the remote item identifier.
	ID string `json:"id"`

	// Name is the display name of the item.
	Name string `json:"name"`

	// Origin is OriginPersonal or the id of the top-level container
	// the file was found in.
	Origin string `json:"origin"`

	// WebURL is the browser link to the item.
	WebURL string `json:"web_url,omitempty"`

	// DriveID is the drive holding the item.
	DriveID string `json:"drive_id,omitempty"`

	// MIMEType is the content type reported by the remote API.
	MIMEType string `json:"mime_type,omitempty"`

	// DownloadURL is a short-lived pre-authenticated content link, if any.
	DownloadURL string `json:"-"`

	// ExtractedText is the text content, filled in by an extractor.
	ExtractedText string `json:"-"`

	// Score is the semantic similarity, set only after semantic ranking.
	Score *float64 `json:"score,omitempty"`

	// IsFolder distinguishes folders from files.
	IsFolder bool `json:"is_folder,omitempty"`
}

// IsPersonal returns true if the file came from the caller's own drive.
func (f *File) IsPersonal() bool {
	return f.Origin == OriginPersonal || f.Origin == ""
}

// SetScore records the semantic similarity for the file.
func (f *File) SetScore(score float64) {
	f.Score = &score
}

// OnlyFiles returns the entries that are not folders, preserving order.
func OnlyFiles(items []File) []File {
	files := make([]File, 0, len(items))
	for i := range items {
		if !items[i].IsFolder {
			files = append(files, items[i])
		}
	}
	return files
}

// TagOrigin sets the origin of every item to origin.
func TagOrigin(items []File, origin string) []File {
	for i := range items {
		items[i].Origin = origin
	}
	return items
}
