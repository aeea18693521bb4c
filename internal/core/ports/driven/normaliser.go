package driven

import "context"

// Normaliser converts downloaded file content to plain text.
// Each normaliser handles specific MIME types (e.g., HTML, DOCX).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts the text of a file. name is used for format hints.
	Normalise(ctx context.Context, name string, content []byte) (string, error)
}

// NormaliserRegistry selects the appropriate normaliser for a file.
type NormaliserRegistry interface {
	// Normalise extracts text using the best matching normaliser for mimeType.
	Normalise(ctx context.Context, mimeType, name string, content []byte) (string, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
