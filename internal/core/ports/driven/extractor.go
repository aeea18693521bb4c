package driven

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// TextExtractor returns the text content of a remote file.
// A failure is reported as an error wrapping domain.ErrExtractionFailed;
// callers decide how to score it. Implementations never panic past this boundary.
type TextExtractor interface {
	TextOf(ctx context.Context, session *domain.Session, file domain.File) (string, error)
}
