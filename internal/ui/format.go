// ABOUTME: Terminal UI formatting for notebook output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/repo"
)

const (
	shortIDLen = 8
	dateLayout = "2006-01-02 15:04"
)

var (
	faint   = color.New(color.Faint).SprintFunc()
	bold    = color.New(color.Bold).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
)

// ShortID trims an id for display.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func FormatNoteListItem(note models.NotePreview, bookName string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(ShortID(note.ID)), bold(note.Title)))

	if bookName != "" {
		sb.WriteString(fmt.Sprintf("            %s %s\n", faint("Book:"), magenta(bookName)))
	}
	if len(note.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("            %s %s\n", faint("Tags:"), cyan(strings.Join(note.Tags, ", "))))
	}

	sb.WriteString(fmt.Sprintf("            %s %s\n",
		faint("Updated:"),
		faint(note.UpdatedAt.Format(dateLayout))))

	return sb.String()
}

func FormatBookListItem(book models.Book) string {
	return fmt.Sprintf("  %s  %s %s\n",
		faint(ShortID(book.ID)),
		magenta(book.Name),
		faint(fmt.Sprintf("(%d)", len(book.Notes))))
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note models.Note, bookName string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID)))
	if bookName != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Book:"), magenta(bookName)))
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(note.CreatedAt.Format(dateLayout))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(note.UpdatedAt.Format(dateLayout))))

	if len(note.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), cyan(strings.Join(note.Tags, ", "))))
	}

	sb.WriteString(Separator())
	return sb.String()
}

// FormatLineMatch renders a search hit as [Book, Note, Line N] text.
func FormatLineMatch(m repo.LineMatch) string {
	book := m.BookName
	if book == "" {
		book = "No Book"
	}
	return fmt.Sprintf("%s %s\n",
		faint(fmt.Sprintf("[%s, %s, Line %d]", book, m.NoteTitle, m.Line)),
		m.Text)
}

func FormatViolation(v repo.Violation) string {
	return fmt.Sprintf("  %s %s\n", color.New(color.FgYellow).Sprint("!"), v.String())
}

func FormatBookSectionHeader(name string) string {
	return fmt.Sprintf("\n%s %s\n", "📓", bold(name))
}

func FormatUnfiledSectionHeader() string {
	return fmt.Sprintf("\n%s %s\n", "📄", bold("No Book"))
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
