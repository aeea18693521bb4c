package markdown

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\s*\n(.*?)\n---\s*(?:\n|$)`)

// Normaliser handles Markdown documents.
type Normaliser struct {
	md goldmark.Markdown
}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{md: goldmark.New()}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise renders markdown to plain text. Front matter title, description
// and tags are kept in front of the body since they are often the only
// place a document states its subject.
func (n *Normaliser) Normalise(_ context.Context, _ string, content []byte) (string, error) {
	src := strings.ReplaceAll(string(content), "\r\n", "\n")

	var parts []string
	if match := frontmatterPattern.FindStringSubmatch(src); match != nil {
		parts = append(parts, frontmatterText(match[1])...)
		src = src[len(match[0]):]
	}

	body, err := n.plainText([]byte(src))
	if err != nil {
		return "", err
	}
	if body != "" {
		parts = append(parts, body)
	}
	return strings.Join(parts, "\n"), nil
}

// plainText walks the markdown AST and collects its text, one block per line.
func (n *Normaliser) plainText(src []byte) (string, error) {
	doc := n.md.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if node.Type() == ast.TypeBlock && node.Kind() != ast.KindDocument {
				endLine(&b)
			}
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.URL(src))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(src))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("walk markdown: %w", err)
	}

	lines := strings.Split(b.String(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}

// frontmatterText extracts searchable fields from YAML front matter.
// Malformed front matter is ignored.
func frontmatterText(raw string) []string {
	var fm map[string]any
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return nil
	}

	var out []string
	for _, key := range []string{"title", "description", "summary"} {
		if s, ok := fm[key].(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	switch tags := fm["tags"].(type) {
	case string:
		out = append(out, tags)
	case []any:
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			if s, ok := t.(string); ok {
				names = append(names, s)
			}
		}
		if len(names) > 0 {
			out = append(out, strings.Join(names, " "))
		}
	}
	return out
}

func endLine(b *strings.Builder) {
	s := b.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		b.WriteByte('\n')
	}
}
