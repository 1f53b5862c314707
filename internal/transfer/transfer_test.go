// ABOUTME: Tests for JSON and markdown export/import.
// ABOUTME: Covers the localStorage dump format and glob-based markdown import.

package transfer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var when = time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

func sampleSnapshot() repo.Snapshot {
	return repo.Snapshot{
		Notes: []models.Note{
			{ID: "n1", Title: "Plan", Content: "# Plan\n- a #todo", CreatedAt: when, UpdatedAt: when, Tags: []string{}, BookID: "b1"},
			{ID: "n2", Title: "Loose", Content: "free", CreatedAt: when, UpdatedAt: when, Tags: []string{"x"}},
		},
		Books: []models.Book{
			{ID: "b1", Name: "Research", Notes: []string{"n1"}, CreatedAt: when},
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	snap := sampleSnapshot()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewExport(snap, when)))
	assert.Contains(t, buf.String(), `"version": "1.0"`)

	got, problems, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.Equal(t, snap, got)
}

func TestReadLocalStorageDump(t *testing.T) {
	notes := `[{"id":"n1","title":"Untitled Note","content":"hi","createdAt":"2024-05-01T10:00:00.000Z","updatedAt":"2024-05-01T10:05:00.000Z","tags":[],"bookId":"b1"},{"id":"","title":"broken"}]`
	books := `[{"id":"b1","name":"Research","notes":["n1"],"createdAt":"2024-05-01T09:00:00.000Z"}]`

	t.Run("string values", func(t *testing.T) {
		dump := `{"obsidian-notes":` + quote(notes) + `,"obsidian-books":` + quote(books) + `,"theme":"\"dark\""}`
		snap, problems, err := ReadJSON(strings.NewReader(dump))
		require.NoError(t, err)
		require.Len(t, snap.Notes, 1)
		assert.Equal(t, "b1", snap.Notes[0].BookID)
		assert.Equal(t, time.Date(2024, 5, 1, 10, 5, 0, 0, time.UTC), snap.Notes[0].UpdatedAt)
		require.Len(t, snap.Books, 1)
		assert.Equal(t, []string{"n1"}, snap.Books[0].Notes)
		assert.Len(t, problems, 1)
	})

	t.Run("parsed values", func(t *testing.T) {
		dump := `{"obsidian-notes":` + notes + `,"obsidian-books":` + books + `}`
		snap, _, err := ReadJSON(strings.NewReader(dump))
		require.NoError(t, err)
		assert.Len(t, snap.Notes, 1)
		assert.Len(t, snap.Books, 1)
	})

	t.Run("bare notes array", func(t *testing.T) {
		snap, _, err := ReadJSON(strings.NewReader(notes))
		require.NoError(t, err)
		assert.Len(t, snap.Notes, 1)
		assert.Empty(t, snap.Books)
	})
}

func TestReadJSONUnknown(t *testing.T) {
	_, _, err := ReadJSON(strings.NewReader(`{"something":"else"}`))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, _, err = ReadJSON(strings.NewReader(`nope`))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestMarkdownRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snap := sampleSnapshot()

	count, err := WriteMarkdown(dir, snap)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.FileExists(t, filepath.Join(dir, "Research", "Plan.md"))
	assert.FileExists(t, filepath.Join(dir, "Loose.md"))

	got, problems, err := ReadMarkdown(os.DirFS(dir), "", when)
	require.NoError(t, err)
	assert.Empty(t, problems)
	require.Len(t, got.Notes, 2)
	require.Len(t, got.Books, 1)

	byID := map[string]models.Note{}
	for _, n := range got.Notes {
		byID[n.ID] = n
	}
	assert.Equal(t, "# Plan\n- a #todo", byID["n1"].Content)
	assert.Equal(t, "b1", byID["n1"].BookID)
	assert.Equal(t, when, byID["n1"].CreatedAt)
	assert.Equal(t, []string{"x"}, byID["n2"].Tags)
	assert.Empty(t, byID["n2"].BookID)
	assert.Equal(t, "Research", got.Books[0].Name)
	assert.Equal(t, []string{"n1"}, got.Books[0].Notes)
	assert.Empty(t, repo.Check(got))
}

func TestMarkdownDuplicateTitles(t *testing.T) {
	dir := t.TempDir()
	snap := repo.Snapshot{Notes: []models.Note{
		{ID: "aaaaaaaa-1", Title: "Same", CreatedAt: when, UpdatedAt: when},
		{ID: "bbbbbbbb-2", Title: "Same", CreatedAt: when, UpdatedAt: when},
	}}
	count, err := WriteMarkdown(dir, snap)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.FileExists(t, filepath.Join(dir, "Same.md"))
	assert.FileExists(t, filepath.Join(dir, "Same-bbbbbbbb.md"))
}

func TestReadMarkdownDirectoryBooks(t *testing.T) {
	fsys := fstest.MapFS{
		"books/Travel/packing.md": {Data: []byte("- socks #todo\n"), ModTime: when},
		"books/Travel/route.md":   {Data: []byte("north"), ModTime: when},
		"books/Cooking/bread.md":  {Data: []byte("flour"), ModTime: when},
		"books/Cooking/notes.txt": {Data: []byte("ignored"), ModTime: when},
		"inbox.md":                {Data: []byte("---\ntitle: Inbox\ntags: [a]\n---\n\nbody"), ModTime: when},
		"broken.md":               {Data: []byte("---\ntitle: [unclosed\n---\nbody"), ModTime: when},
	}

	snap, problems, err := ReadMarkdown(fsys, "**/*.md", when)
	require.NoError(t, err)
	assert.Len(t, snap.Notes, 5)
	assert.Len(t, snap.Books, 2)
	assert.Len(t, problems, 1)
	assert.Empty(t, repo.Check(snap))

	titles := map[string]models.Note{}
	for _, n := range snap.Notes {
		titles[n.Title] = n
	}
	assert.Equal(t, "body", titles["Inbox"].Content)
	assert.Equal(t, []string{"a"}, titles["Inbox"].Tags)
	assert.Empty(t, titles["Inbox"].BookID)
	assert.Equal(t, titles["packing"].BookID, titles["route"].BookID)
	assert.NotEqual(t, titles["packing"].BookID, titles["bread"].BookID)
	assert.Equal(t, when, titles["route"].UpdatedAt)
}

func TestReadMarkdownPattern(t *testing.T) {
	fsys := fstest.MapFS{
		"a/one.md": {Data: []byte("1")},
		"b/two.md": {Data: []byte("2")},
	}
	snap, _, err := ReadMarkdown(fsys, "a/*.md", when)
	require.NoError(t, err)
	require.Len(t, snap.Notes, 1)
	assert.Equal(t, "one", snap.Notes[0].Title)

	_, _, err = ReadMarkdown(fsys, "[", when)
	assert.Error(t, err)
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
