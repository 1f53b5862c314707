// ABOUTME: Markdown export with YAML frontmatter, one directory per book.
// ABOUTME: Import walks files matched by a doublestar glob and rebuilds books from them.

package transfer

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/repo"
	"gopkg.in/yaml.v3"
)

// DefaultPattern matches every markdown file below the import root.
const DefaultPattern = "**/*.md"

const frontmatterDelim = "---\n"

// WriteMarkdown writes every note to dir, filed notes under a directory named
// after their book. It returns the number of files written.
func WriteMarkdown(dir string, snap repo.Snapshot) (int, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return 0, fmt.Errorf("failed to create export directory: %w", err)
	}

	names := make(map[string]string, len(snap.Books))
	for _, b := range snap.Books {
		names[b.ID] = b.Name
	}

	used := make(map[string]bool)
	count := 0
	for _, n := range snap.Notes {
		bookName := names[n.BookID]
		target := dir
		if bookName != "" {
			target = filepath.Join(dir, sanitizeFilename(bookName))
			if err := os.MkdirAll(target, 0750); err != nil {
				return count, fmt.Errorf("failed to create book directory: %w", err)
			}
		}

		base := sanitizeFilename(n.Title)
		if base == "" {
			base = models.DefaultNoteTitle
		}
		file := filepath.Join(target, base+".md")
		if used[file] {
			file = filepath.Join(target, fmt.Sprintf("%s-%s.md", base, shortID(n.ID)))
		}
		used[file] = true

		data, err := renderMarkdown(exportNote(n, bookName), n.Content)
		if err != nil {
			return count, err
		}
		if err := os.WriteFile(file, data, 0600); err != nil {
			return count, fmt.Errorf("failed to write %s: %w", file, err)
		}
		count++
	}
	return count, nil
}

func renderMarkdown(fm ExportNote, content string) ([]byte, error) {
	front, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(frontmatterDelim)
	sb.Write(front)
	sb.WriteString(frontmatterDelim)
	sb.WriteString("\n")
	sb.WriteString(content)
	return []byte(sb.String()), nil
}

type frontmatter struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	Tags    []string  `yaml:"tags"`
	BookID  string    `yaml:"bookId"`
	Book    string    `yaml:"book"`
	Created time.Time `yaml:"created"`
	Updated time.Time `yaml:"updated"`
}

// splitFrontmatter separates YAML frontmatter from the body. ok is false when
// the file has none or it does not parse.
func splitFrontmatter(content string) (frontmatter, string, bool) {
	var fm frontmatter
	if !strings.HasPrefix(content, frontmatterDelim) {
		return fm, content, false
	}
	parts := strings.SplitN(content, frontmatterDelim, 3)
	if len(parts) < 3 {
		return fm, content, false
	}
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		return frontmatter{}, content, false
	}
	return fm, strings.TrimPrefix(parts[2], "\n"), true
}

// ReadMarkdown builds a snapshot from the files in fsys matching pattern.
// Book membership comes from frontmatter, or else from the file's directory.
func ReadMarkdown(fsys fs.FS, pattern string, now time.Time) (repo.Snapshot, []string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return repo.Snapshot{}, nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return repo.Snapshot{}, nil, fmt.Errorf("failed to match files: %w", err)
	}

	snap := repo.Snapshot{Notes: []models.Note{}, Books: []models.Book{}}
	// books maps bookKey to an index in snap.Books.
	books := make(map[string]int)
	var problems []string

	// bookFor returns the index of the book for id or name, creating it on
	// first use, or -1 for an unfiled note.
	bookFor := func(id, name string) int {
		if id == "" && name == "" {
			return -1
		}
		key := bookKey(id, name)
		if i, ok := books[key]; ok {
			return i
		}
		if id == "" {
			id = uuid.NewString()
		}
		b := models.NewBook(id, name, now)
		books[key] = len(snap.Books)
		snap.Books = append(snap.Books, b)
		return len(snap.Books) - 1
	}

	for _, match := range matches {
		raw, err := fs.ReadFile(fsys, match)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", match, err))
			continue
		}

		fm, body, hasFront := splitFrontmatter(string(raw))
		if !hasFront && strings.HasPrefix(string(raw), frontmatterDelim) {
			problems = append(problems, fmt.Sprintf("%s: unreadable frontmatter, imported as plain text", match))
		}

		title := fm.Title
		if title == "" {
			title = strings.TrimSuffix(path.Base(match), path.Ext(match))
		}

		created, updated := fm.Created, fm.Updated
		if created.IsZero() || updated.IsZero() {
			mod := now
			if info, err := fs.Stat(fsys, match); err == nil {
				mod = info.ModTime().UTC()
			}
			if created.IsZero() {
				created = mod
			}
			if updated.IsZero() {
				updated = mod
			}
		}

		bookName := fm.Book
		if bookName == "" && fm.BookID == "" {
			if dir := path.Dir(match); dir != "." {
				bookName = path.Base(dir)
			}
		}

		id := fm.ID
		if id == "" {
			id = uuid.NewString()
		}
		tags := fm.Tags
		if tags == nil {
			tags = []string{}
		}

		note := models.Note{
			ID:        id,
			Title:     title,
			Content:   body,
			CreatedAt: created,
			UpdatedAt: updated,
			Tags:      tags,
		}
		if i := bookFor(fm.BookID, bookName); i >= 0 {
			note.BookID = snap.Books[i].ID
			snap.Books[i].AddNote(note.ID)
		}
		snap.Notes = append(snap.Notes, note)
	}
	return snap, problems, nil
}

func bookKey(id, name string) string {
	if id != "" {
		return id
	}
	return "name:" + name
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = strings.TrimSpace(replacer.Replace(name))
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
