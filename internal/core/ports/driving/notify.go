package driving

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// NotifyService mails links to found files.
type NotifyService interface {
	// SendFiles mails the files to a recipient. An empty recipient means
	// the signed-in user. Returns the address the mail was sent to.
	SendFiles(ctx context.Context, session *domain.Session, to string, files []domain.File) (string, error)
}
