// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/tui/styles"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// FileList displays found files in a navigable list.
type FileList struct {
	files    []domain.File
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewFileList creates a new file list component.
func NewFileList(s *styles.Styles) *FileList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &FileList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// View renders the visible window of the list.
func (l *FileList) View() string {
	if len(l.files) == 0 {
		return l.styles.Muted.Render("No files")
	}

	lines := make([]string, 0, len(l.files)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Files (%d)", len(l.files))), "")

	// Each file takes two lines
	visibleCount := (l.height - 2) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.files) {
		end = len(l.files)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderFile(i, &l.files[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *FileList) renderFile(index int, f *domain.File) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	maxNameLen := l.width - 20
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	name := truncate(f.Name, maxNameLen)

	score := ""
	if f.Score != nil {
		score = fmt.Sprintf("%.2f", *f.Score)
	}

	var nameLine string
	if index == l.selected {
		nameLine = l.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, score))
	} else {
		nameLine = l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
			l.styles.Muted.Render(score)
	}

	origin := "OneDrive"
	if !f.IsPersonal() {
		origin = "Site " + f.Origin
	}
	detail := l.styles.Muted.Render("    " + origin)
	if f.WebURL != "" {
		detail += "  " + l.styles.Link.Render(truncate(f.WebURL, l.width-len(origin)-8))
	}
	return nameLine + "\n" + detail
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetFiles replaces the listed files and resets the selection.
func (l *FileList) SetFiles(files []domain.File) {
	l.files = files
	l.selected = 0
}

// Files returns the listed files.
func (l *FileList) Files() []domain.File {
	return l.files
}

// Selected returns the index of the selected file.
func (l *FileList) Selected() int {
	return l.selected
}

// SelectedFile returns the currently selected file, or nil if none.
func (l *FileList) SelectedFile() *domain.File {
	if len(l.files) == 0 || l.selected < 0 || l.selected >= len(l.files) {
		return nil
	}
	return &l.files[l.selected]
}

// MoveUp moves selection up.
func (l *FileList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *FileList) MoveDown() {
	if l.selected < len(l.files)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *FileList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of files.
func (l *FileList) Count() int {
	return len(l.files)
}
