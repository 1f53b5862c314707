// ABOUTME: HTTP handlers for notes, books, state, and line search.
// ABOUTME: Errors are JSON {"error": "..."}; unknown ids are 404, bad bodies 400, store failures 500.

package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/harper/notebook/internal/app"
	"github.com/harper/notebook/internal/repo"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 4 << 20

type handler struct {
	ctl     *app.Controller
	reader  Reader
	preview *PreviewRenderer
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

type createNoteRequest struct {
	BookID  string  `json:"bookId"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// updateNoteRequest has no book field; membership changes go through
// PUT /api/notes/{id}/book.
type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type bookRequest struct {
	Name string `json:"name"`
}

type selectRequest struct {
	NoteID *string `json:"noteId"`
	BookID *string `json:"bookId"`
}

type stateResponse struct {
	app.State
	Sidebar app.Grouping `json:"sidebar"`
}

var errBadBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// internalError logs err and answers 500 with msg.
func internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, msg)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errBadBody
	}
	return nil
}

func (h *handler) listNotes(w http.ResponseWriter, r *http.Request) {
	previews, err := h.reader.ListNotePreviews(r.Context())
	if err != nil {
		internalError(w, r, err, "failed to list notes")
		return
	}
	writeJSON(w, http.StatusOK, previews)
}

func (h *handler) createNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	note, err := h.ctl.CreateNoteWith(r.Context(), req.BookID, repo.NoteUpdate{Title: req.Title, Content: req.Content})
	if err != nil {
		internalError(w, r, err, "failed to create note")
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *handler) getNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.reader.GetNoteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		internalError(w, r, err, "failed to get note")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *handler) updateNote(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	note, err := h.ctl.Edit(r.Context(), chi.URLParam(r, "id"), repo.NoteUpdate{Title: req.Title, Content: req.Content})
	if err != nil {
		internalError(w, r, err, "failed to update note")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	note, err := h.reader.GetNoteByID(r.Context(), id)
	if err != nil {
		internalError(w, r, err, "failed to get note")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if err := h.ctl.DeleteNote(r.Context(), id); err != nil {
		internalError(w, r, err, "failed to delete note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) moveNote(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errBadBody.Error())
		return
	}
	raw, ok := body["bookId"]
	if !ok || len(body) != 1 {
		writeError(w, http.StatusBadRequest, "bookId is required (null for no book)")
		return
	}
	var target *string
	if err := json.Unmarshal(raw, &target); err != nil {
		writeError(w, http.StatusBadRequest, "bookId must be a string or null")
		return
	}
	bookID := ""
	if target != nil {
		bookID = *target
	}

	id := chi.URLParam(r, "id")
	ctx := r.Context()
	existing, err := h.reader.GetNoteByID(ctx, id)
	if err != nil {
		internalError(w, r, err, "failed to get note")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	if err := h.ctl.MoveNote(ctx, id, bookID); err != nil {
		internalError(w, r, err, "failed to move note")
		return
	}
	note, err := h.reader.GetNoteByID(ctx, id)
	if err != nil {
		internalError(w, r, err, "failed to get note")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *handler) previewNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.reader.GetNoteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		internalError(w, r, err, "failed to get note")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	html, err := h.preview.Render(note.Content)
	if err != nil {
		internalError(w, r, err, "failed to render note")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

func (h *handler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.reader.ListBooks(r.Context())
	if err != nil {
		internalError(w, r, err, "failed to list books")
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *handler) createBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	book, err := h.ctl.CreateBook(r.Context(), req.Name)
	if err != nil {
		internalError(w, r, err, "failed to create book")
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (h *handler) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.reader.GetBookByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		internalError(w, r, err, "failed to get book")
		return
	}
	if book == nil {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *handler) renameBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	book, err := h.ctl.RenameBook(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		internalError(w, r, err, "failed to rename book")
		return
	}
	if book == nil {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	book, err := h.reader.GetBookByID(r.Context(), id)
	if err != nil {
		internalError(w, r, err, "failed to get book")
		return
	}
	if book == nil {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	if err := h.ctl.DeleteBook(r.Context(), id); err != nil {
		internalError(w, r, err, "failed to delete book")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) listBookNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.reader.ListBookNotes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		internalError(w, r, err, "failed to list book notes")
		return
	}
	if notes == nil {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *handler) getState(w http.ResponseWriter, r *http.Request) {
	if err := h.ctl.Load(r.Context()); err != nil {
		internalError(w, r, err, "failed to load state")
		return
	}
	writeJSON(w, http.StatusOK, stateResponse{State: h.ctl.State(), Sidebar: h.ctl.NotesByBook()})
}

func (h *handler) selectState(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx := r.Context()
	if req.NoteID != nil {
		if err := h.ctl.SelectNote(ctx, *req.NoteID); err != nil {
			internalError(w, r, err, "failed to select note")
			return
		}
	}
	if req.BookID != nil {
		h.ctl.SelectBook(*req.BookID)
	}
	writeJSON(w, http.StatusOK, h.ctl.State())
}

func (h *handler) find(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	matches, err := h.reader.FindLines(r.Context(), q)
	if err != nil {
		internalError(w, r, err, "failed to search notes")
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
