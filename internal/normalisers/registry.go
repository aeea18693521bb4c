package normalisers

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/normalisers/docx"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/normalisers/html"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/normalisers/markdown"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches content to the highest priority normaliser for its MIME type.
type Registry struct {
	mu     sync.RWMutex
	byMIME map[string][]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byMIME: make(map[string][]driven.Normaliser)}
}

// Defaults returns a registry with every built-in normaliser registered.
func Defaults() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(docx.New())
	return r
}

// Register adds a normaliser for each MIME type it supports.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mimeType := range n.SupportedMIMETypes() {
		list := append(r.byMIME[mimeType], n)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byMIME[mimeType] = list
	}
}

// SupportedMIMETypes returns all registered MIME types, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byMIME))
	for mimeType := range r.byMIME {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}

// Normalise extracts text with the best normaliser for mimeType.
// When mimeType is empty or unknown the file extension of name is tried.
func (r *Registry) Normalise(ctx context.Context, mimeType, name string, content []byte) (string, error) {
	n := r.lookup(baseMIME(mimeType))
	if n == nil {
		n = r.lookup(mimeFromName(name))
	}
	if n == nil {
		return "", fmt.Errorf("%w: no normaliser for %q (%s)", domain.ErrExtractionFailed, name, mimeType)
	}
	return n.Normalise(ctx, name, content)
}

func (r *Registry) lookup(mimeType string) driven.Normaliser {
	if mimeType == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if list := r.byMIME[mimeType]; len(list) > 0 {
		return list[0]
	}
	return nil
}

// extensionTypes covers extensions the system MIME tables often lack.
var extensionTypes = map[string]string{
	".txt":      "text/plain",
	".log":      "text/plain",
	".csv":      "text/csv",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".htm":      "text/html",
	".html":     "text/html",
	".json":     "application/json",
	".docx":     docx.MIMEType,
}

func mimeFromName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mimeType, ok := extensionTypes[ext]; ok {
		return mimeType
	}
	return baseMIME(mime.TypeByExtension(ext))
}

// baseMIME drops parameters such as "; charset=utf-8".
func baseMIME(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
