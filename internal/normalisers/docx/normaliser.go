package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
)

// MIMEType is the content type of Word documents.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// maxPartSize bounds how much of one archive member is read.
const maxPartSize = 32 << 20

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise extracts paragraph text, including text inside tables, from
// word/document.xml. The core properties title is prepended when set.
func (n *Normaliser) Normalise(_ context.Context, name string, content []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: %s is not a docx archive", domain.ErrExtractionFailed, name)
	}

	body, err := readPart(reader, "word/document.xml")
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, name, err)
	}
	text, err := paragraphText(body)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtractionFailed, name, err)
	}

	if title := coreTitle(reader); title != "" && !strings.HasPrefix(text, title) {
		text = strings.TrimSpace(title + "\n" + text)
	}
	return text, nil
}

// readPart returns the bytes of one archive member.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(io.LimitReader(rc, maxPartSize))
	}
	return nil, fmt.Errorf("missing %s", name)
}

// paragraphText streams document XML and emits one line per w:p element.
// Tabs and breaks inside a run become spaces.
func paragraphText(content []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab", "br", "cr":
				b.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
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

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title string `xml:"title"`
}

// coreTitle returns the document title from docProps/core.xml, if any.
func coreTitle(reader *zip.Reader) string {
	content, err := readPart(reader, "docProps/core.xml")
	if err != nil {
		return ""
	}
	var core coreXML
	if err := xml.Unmarshal(content, &core); err != nil {
		return ""
	}
	return strings.TrimSpace(core.Title)
}
