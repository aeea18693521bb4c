package driven

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// StorageDirectory is the remote directory/storage API.
// Every call is authenticated with the session's bearer token and may
// refresh it on expiry.
//
// Failures local to one container never abort enumeration: list methods
// return what was collected before the failure.
type StorageDirectory interface {
	// SearchPersonal searches the caller's own drive.
	SearchPersonal(ctx context.Context, session *domain.Session, query string) ([]domain.File, error)

	// ListContainers walks every page of searchable top-level containers (sites).
	// Partial enumeration is returned without error.
	ListContainers(ctx context.Context, session *domain.Session) ([]domain.Container, error)

	// ListDrives lists the drives (sub-containers) of a site.
	ListDrives(ctx context.Context, session *domain.Session, siteID string) ([]domain.Container, error)

	// SearchDrive searches one drive.
	SearchDrive(ctx context.Context, session *domain.Session, driveID, query string) ([]domain.File, error)

	// RecentFiles lists the caller's most recently used files.
	RecentFiles(ctx context.Context, session *domain.Session) ([]domain.File, error)

	// CheckAccess reports whether the caller may open an item of a site.
	CheckAccess(ctx context.Context, session *domain.Session, siteID, itemID string) (bool, error)
}

// ProfileReader fetches the signed-in user's profile.
type ProfileReader interface {
	// UserEmail returns the mail address or principal name of the caller.
	UserEmail(ctx context.Context, session *domain.Session) (string, error)
}
