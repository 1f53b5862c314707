// ABOUTME: HTTP router exposing notes, books, and controller state as a JSON API.
// ABOUTME: Mutations go through the app controller; reads go straight to the repository.

package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/harper/notebook/internal/app"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/repo"
	"github.com/rs/zerolog"
)

// Reader is the read side of the repository used by the handlers.
type Reader interface {
	ListNotePreviews(ctx context.Context) ([]models.NotePreview, error)
	GetNoteByID(ctx context.Context, id string) (*models.Note, error)
	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBookByID(ctx context.Context, id string) (*models.Book, error)
	ListBookNotes(ctx context.Context, bookID string) ([]models.Note, error)
	FindLines(ctx context.Context, needle string) ([]repo.LineMatch, error)
}

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Controller *app.Controller
	Reader     Reader
	Logger     zerolog.Logger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	h := &handler{
		ctl:     deps.Controller,
		reader:  deps.Reader,
		preview: NewPreviewRenderer(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Route("/api", func(r chi.Router) {
		r.Route("/notes", func(r chi.Router) {
			r.Get("/", h.listNotes)
			r.Post("/", h.createNote)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getNote)
				r.Patch("/", h.updateNote)
				r.Delete("/", h.deleteNote)
				r.Put("/book", h.moveNote)
				r.Get("/preview", h.previewNote)
			})
		})
		r.Route("/books", func(r chi.Router) {
			r.Get("/", h.listBooks)
			r.Post("/", h.createBook)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getBook)
				r.Patch("/", h.renameBook)
				r.Delete("/", h.deleteBook)
				r.Get("/notes", h.listBookNotes)
			})
		})
		r.Get("/state", h.getState)
		r.Post("/state/select", h.selectState)
		r.Get("/find", h.find)
	})

	return r
}
