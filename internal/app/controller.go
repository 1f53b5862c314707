// ABOUTME: Application state controller holding selection and cached previews.
// ABOUTME: Drives the repository and refreshes its view after every change.

package app

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_repository.go -package=mocks github.com/harper/notebook/internal/app Repository

import (
	"context"
	"sync"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/repo"
	"github.com/rs/zerolog"
)

// Repository is the part of repo.Repository the controller drives.
type Repository interface {
	CreateNoteWith(ctx context.Context, bookID string, fields repo.NoteUpdate) (models.Note, error)
	UpdateNote(ctx context.Context, id string, u repo.NoteUpdate) (*models.Note, error)
	RenameNote(ctx context.Context, id, title string) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) ([]models.Note, error)
	CreateBook(ctx context.Context, name string) (models.Book, error)
	RenameBook(ctx context.Context, id, name string) (*models.Book, error)
	DeleteBook(ctx context.Context, id string) ([]models.Book, error)
	MoveNoteToBook(ctx context.Context, noteID, targetBookID string) (repo.Snapshot, error)
	ListNotePreviews(ctx context.Context) ([]models.NotePreview, error)
	GetNoteByID(ctx context.Context, id string) (*models.Note, error)
	ListBooks(ctx context.Context) ([]models.Book, error)
}

// State is the controller's cached view. The zero selection ids mean
// nothing selected (for books, "No Book").
type State struct {
	Notes          []models.NotePreview `json:"notes"`
	Books          []models.Book        `json:"books"`
	SelectedNoteID string               `json:"selectedNoteId,omitempty"`
	SelectedBookID string               `json:"selectedBookId,omitempty"`
	SelectedNote   *models.Note         `json:"selectedNote,omitempty"`
}

func (s State) clone() State {
	out := State{
		Notes:          make([]models.NotePreview, 0, len(s.Notes)),
		Books:          make([]models.Book, 0, len(s.Books)),
		SelectedNoteID: s.SelectedNoteID,
		SelectedBookID: s.SelectedBookID,
	}
	for _, p := range s.Notes {
		p.Tags = append([]string{}, p.Tags...)
		out.Notes = append(out.Notes, p)
	}
	for _, b := range s.Books {
		out.Books = append(out.Books, b.Clone())
	}
	if s.SelectedNote != nil {
		n := s.SelectedNote.Clone()
		out.SelectedNote = &n
	}
	return out
}

// Controller serializes UI actions against the repository.
type Controller struct {
	mu    sync.Mutex
	repo  Repository
	log   zerolog.Logger
	state State
}

type Option func(*Controller)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

func NewController(r Repository, opts ...Option) *Controller {
	c := &Controller{
		repo:  r,
		log:   zerolog.Nop(),
		state: State{Notes: []models.NotePreview{}, Books: []models.Book{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the cached view.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Load refreshes the view and selects the first note when none is selected.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.refresh(ctx); err != nil {
		return err
	}
	if c.state.SelectedNoteID == "" && len(c.state.Notes) > 0 {
		return c.selectNote(ctx, c.state.Notes[0].ID)
	}
	return nil
}

// refresh reloads previews, books, and the selected note. On failure the view
// falls back to empty collections.
func (c *Controller) refresh(ctx context.Context) error {
	notes, err := c.repo.ListNotePreviews(ctx)
	if err != nil {
		c.fallback(err)
		return err
	}
	books, err := c.repo.ListBooks(ctx)
	if err != nil {
		c.fallback(err)
		return err
	}
	c.state.Notes = notes
	c.state.Books = books

	if c.state.SelectedBookID != "" && !c.hasBook(c.state.SelectedBookID) {
		c.state.SelectedBookID = ""
	}
	if c.state.SelectedNoteID == "" {
		c.state.SelectedNote = nil
		return nil
	}
	return c.selectNote(ctx, c.state.SelectedNoteID)
}

func (c *Controller) fallback(err error) {
	c.log.Warn().Err(err).Msg("failed to refresh state, showing empty view")
	c.state.Notes = []models.NotePreview{}
	c.state.Books = []models.Book{}
	c.state.SelectedNote = nil
}

func (c *Controller) selectNote(ctx context.Context, id string) error {
	if id == "" {
		c.state.SelectedNoteID = ""
		c.state.SelectedNote = nil
		return nil
	}
	note, err := c.repo.GetNoteByID(ctx, id)
	if err != nil {
		return err
	}
	if note == nil {
		c.state.SelectedNoteID = ""
		c.state.SelectedNote = nil
		return nil
	}
	c.state.SelectedNoteID = id
	c.state.SelectedNote = note
	return nil
}

func (c *Controller) hasBook(id string) bool {
	for _, b := range c.state.Books {
		if b.ID == id {
			return true
		}
	}
	return false
}

// CreateNote creates a note, optionally in a book, and selects it.
func (c *Controller) CreateNote(ctx context.Context, bookID string) (models.Note, error) {
	return c.CreateNoteWith(ctx, bookID, repo.NoteUpdate{})
}

// CreateNoteWith creates a note with its initial title and content in one
// write, then selects it.
func (c *Controller) CreateNoteWith(ctx context.Context, bookID string, fields repo.NoteUpdate) (models.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	note, err := c.repo.CreateNoteWith(ctx, bookID, fields)
	if err != nil {
		return models.Note{}, err
	}
	c.state.SelectedNoteID = note.ID
	return note, c.refresh(ctx)
}

func (c *Controller) CreateBook(ctx context.Context, name string) (models.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	book, err := c.repo.CreateBook(ctx, name)
	if err != nil {
		return models.Book{}, err
	}
	return book, c.refresh(ctx)
}

// SelectNote selects a note. An unknown id clears the selection.
func (c *Controller) SelectNote(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectNote(ctx, id)
}

// SelectBook selects a book; an empty or unknown id selects "No Book".
func (c *Controller) SelectBook(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasBook(id) {
		id = ""
	}
	c.state.SelectedBookID = id
}

func (c *Controller) EditTitle(ctx context.Context, id, title string) (*models.Note, error) {
	return c.Edit(ctx, id, repo.NoteUpdate{Title: &title})
}

func (c *Controller) EditContent(ctx context.Context, id, content string) (*models.Note, error) {
	return c.Edit(ctx, id, repo.NoteUpdate{Content: &content})
}

// RenameNote is EditTitle under the sidebar's name.
func (c *Controller) RenameNote(ctx context.Context, id, title string) (*models.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	note, err := c.repo.RenameNote(ctx, id, title)
	if err != nil {
		return nil, err
	}
	return note, c.refresh(ctx)
}

// Edit applies u to the note. It returns nil when the note does not exist.
func (c *Controller) Edit(ctx context.Context, id string, u repo.NoteUpdate) (*models.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	note, err := c.repo.UpdateNote(ctx, id, u)
	if err != nil {
		return nil, err
	}
	return note, c.refresh(ctx)
}

// DeleteNote deletes a note. When it was selected the first remaining note is
// selected instead.
func (c *Controller) DeleteNote(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.repo.DeleteNote(ctx, id); err != nil {
		return err
	}
	wasSelected := c.state.SelectedNoteID == id
	if wasSelected {
		c.state.SelectedNoteID = ""
	}
	if err := c.refresh(ctx); err != nil {
		return err
	}
	if wasSelected && len(c.state.Notes) > 0 {
		return c.selectNote(ctx, c.state.Notes[0].ID)
	}
	return nil
}

// DeleteBook deletes a book, clearing the book selection if it was selected.
func (c *Controller) DeleteBook(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	if c.state.SelectedBookID == id {
		c.state.SelectedBookID = ""
	}
	return c.refresh(ctx)
}

// MoveNote files a note under a book, or unfiles it when bookID is empty.
func (c *Controller) MoveNote(ctx context.Context, noteID, bookID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.repo.MoveNoteToBook(ctx, noteID, bookID); err != nil {
		return err
	}
	return c.refresh(ctx)
}

func (c *Controller) RenameBook(ctx context.Context, id, name string) (*models.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	book, err := c.repo.RenameBook(ctx, id, name)
	if err != nil {
		return nil, err
	}
	return book, c.refresh(ctx)
}

// BookGroup is one book with the previews filed under it.
type BookGroup struct {
	Book  models.Book          `json:"book"`
	Notes []models.NotePreview `json:"notes"`
}

// Grouping is the sidebar layout: books in order, then unfiled notes.
type Grouping struct {
	Books   []BookGroup          `json:"books"`
	Unfiled []models.NotePreview `json:"unfiled"`
}

// NotesByBook groups the cached previews by book, each book's notes in its
// membership order. Unfiled notes and notes naming a book that is not cached
// follow in collection order.
func (c *Controller) NotesByBook() Grouping {
	st := c.State()

	previews := make(map[string]models.NotePreview, len(st.Notes))
	for _, p := range st.Notes {
		previews[p.ID] = p
	}

	out := Grouping{Books: make([]BookGroup, 0, len(st.Books)), Unfiled: []models.NotePreview{}}
	index := make(map[string]int, len(st.Books))
	placed := make(map[string]bool, len(st.Notes))
	for i, b := range st.Books {
		index[b.ID] = i
		group := BookGroup{Book: b, Notes: []models.NotePreview{}}
		for _, id := range b.Notes {
			// Only notes that point back at this book belong to it.
			if p, ok := previews[id]; ok && p.BookID == b.ID && !placed[id] {
				group.Notes = append(group.Notes, p)
				placed[id] = true
			}
		}
		out.Books = append(out.Books, group)
	}
	for _, p := range st.Notes {
		if placed[p.ID] {
			continue
		}
		if i, ok := index[p.BookID]; ok && p.BookID != "" {
			// Filed but missing from the membership list.
			out.Books[i].Notes = append(out.Books[i].Notes, p)
			continue
		}
		out.Unfiled = append(out.Unfiled, p)
	}
	return out
}
