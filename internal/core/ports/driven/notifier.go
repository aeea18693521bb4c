package driven

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// Notifier delivers links to found files to a recipient.
type Notifier interface {
	SendFiles(ctx context.Context, session *domain.Session, to string, files []domain.File) error
}
