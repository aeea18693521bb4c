// Package extractor turns remote files into text by downloading their
// content and running it through the MIME normalisers.
package extractor

import (
	"context"
	"errors"
	"fmt"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Downloader fetches the raw content of a file.
type Downloader interface {
	Download(ctx context.Context, session *domain.Session, file domain.File) ([]byte, error)
}

// Extractor downloads files and normalises them to text.
// Every failure is reported as domain.ErrExtractionFailed.
type Extractor struct {
	downloader Downloader
	registry   driven.NormaliserRegistry
}

// New creates an extractor.
func New(downloader Downloader, registry driven.NormaliserRegistry) *Extractor {
	return &Extractor{downloader: downloader, registry: registry}
}

// TextOf returns the text content of file.
func (e *Extractor) TextOf(ctx context.Context, session *domain.Session, file domain.File) (string, error) {
	if file.IsFolder {
		return "", fmt.Errorf("%w: %q is a folder", domain.ErrExtractionFailed, file.Name)
	}

	content, err := e.downloader.Download(ctx, session, file)
	if err != nil {
		return "", fmt.Errorf("%w: download %q: %w", domain.ErrExtractionFailed, file.Name, err)
	}

	text, err := e.registry.Normalise(ctx, file.MIMEType, file.Name, content)
	if err != nil {
		if errors.Is(err, domain.ErrExtractionFailed) {
			return "", err
		}
		return "", fmt.Errorf("%w: %q: %w", domain.ErrExtractionFailed, file.Name, err)
	}

	logger.Debug("Extracted %d bytes of text from %q", len(text), file.Name)
	return text, nil
}
