// ABOUTME: Repository over the Notes and Books collections.
// ABOUTME: Every mutation is one serialized KV transaction covering both collections.

package repo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/store"
	"github.com/rs/zerolog"
)

// maxIDAttempts bounds regeneration when a generated id collides.
const maxIDAttempts = 16

var ErrIDCollision = errors.New("could not generate a unique id")

// Snapshot is both collections as read in one transaction.
type Snapshot struct {
	Notes []models.Note
	Books []models.Book
}

// Note returns the note with id, or nil.
func (s Snapshot) Note(id string) *models.Note {
	if i := noteIndex(s.Notes, id); i >= 0 {
		return &s.Notes[i]
	}
	return nil
}

// Book returns the book with id, or nil.
func (s Snapshot) Book(id string) *models.Book {
	if i := bookIndex(s.Books, id); i >= 0 {
		return &s.Books[i]
	}
	return nil
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Notes: make([]models.Note, 0, len(s.Notes)),
		Books: make([]models.Book, 0, len(s.Books)),
	}
	for _, n := range s.Notes {
		out.Notes = append(out.Notes, n.Clone())
	}
	for _, b := range s.Books {
		out.Books = append(out.Books, b.Clone())
	}
	return out
}

// Repository is the only mutation path for notes and books.
type Repository struct {
	mu    sync.Mutex
	kv    store.KV
	cols  *store.Collections
	now   func() time.Time
	newID func() string
	log   zerolog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithIDGenerator overrides id allocation.
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) {
		r.newID = gen
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Repository) {
		r.log = l
	}
}

// WithCodec selects the stored encoding.
func WithCodec(c store.Codec) Option {
	return func(r *Repository) {
		r.cols = store.NewCollections(c)
	}
}

// New creates a repository over kv.
func New(kv store.KV, opts ...Option) *Repository {
	r := &Repository{
		kv:    kv,
		cols:  store.NewCollections(store.JSON()),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// working is the in-memory copy of both collections during one operation.
type working struct {
	notes      []models.Note
	books      []models.Book
	notesDirty bool
	booksDirty bool

	notesLoad store.Loaded[models.Note]
	booksLoad store.Loaded[models.Book]
}

func (w *working) snapshot() Snapshot {
	return Snapshot{Notes: w.notes, Books: w.books}.Clone()
}

func (r *Repository) load(txn store.Txn) (*working, error) {
	notes, err := r.cols.LoadNotes(txn)
	if err != nil {
		return nil, err
	}
	books, err := r.cols.LoadBooks(txn)
	if err != nil {
		return nil, err
	}
	r.report(notes.Corrupt, notes.Problems)
	r.report(books.Corrupt, books.Problems)
	return &working{
		notes:     notes.Records,
		books:     books.Records,
		notesLoad: notes,
		booksLoad: books,
	}, nil
}

func (r *Repository) report(corrupt *store.DecodeError, problems []string) {
	if corrupt != nil {
		r.log.Warn().Err(corrupt).Str("key", corrupt.Key).Msg("stored collection unreadable, treating as empty")
	}
	for _, p := range problems {
		r.log.Warn().Str("problem", p).Msg("stored record repaired on load")
	}
}

func (r *Repository) save(txn store.Txn, w *working) error {
	if w.notesDirty {
		if err := r.quarantine(txn, w.notesLoad.Corrupt, w.notesLoad.Raw); err != nil {
			return err
		}
		if err := r.cols.SaveNotes(txn, w.notes); err != nil {
			return err
		}
	}
	if w.booksDirty {
		if err := r.quarantine(txn, w.booksLoad.Corrupt, w.booksLoad.Raw); err != nil {
			return err
		}
		if err := r.cols.SaveBooks(txn, w.books); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) quarantine(txn store.Txn, corrupt *store.DecodeError, raw []byte) error {
	if corrupt == nil {
		return nil
	}
	key, err := r.cols.Quarantine(txn, corrupt.Key, raw, r.now())
	if err != nil {
		return err
	}
	r.log.Warn().Str("key", corrupt.Key).Str("quarantine", key).Msg("moved unreadable collection aside")
	return nil
}

// update runs fn over both collections inside one write transaction and saves
// whatever fn marked dirty. Nothing is written when fn or a save fails.
func (r *Repository) update(ctx context.Context, fn func(w *working) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.kv.Update(ctx, func(txn store.Txn) error {
		w, err := r.load(txn)
		if err != nil {
			return err
		}
		if err := fn(w); err != nil {
			return err
		}
		return r.save(txn, w)
	})
}

func (r *Repository) view(ctx context.Context, fn func(w *working) error) error {
	return r.kv.View(ctx, func(txn store.Txn) error {
		w, err := r.load(txn)
		if err != nil {
			return err
		}
		return fn(w)
	})
}

// Snapshot returns a consistent copy of both collections.
func (r *Repository) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := r.view(ctx, func(w *working) error {
		snap = w.snapshot()
		return nil
	})
	if err != nil {
		return Snapshot{Notes: []models.Note{}, Books: []models.Book{}}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return snap, nil
}

func (r *Repository) allocateID(taken func(id string) bool) (string, error) {
	for range maxIDAttempts {
		id := r.newID()
		if id != "" && !taken(id) {
			return id, nil
		}
	}
	return "", ErrIDCollision
}

func noteIndex(notes []models.Note, id string) int {
	return slices.IndexFunc(notes, func(n models.Note) bool { return n.ID == id })
}

func bookIndex(books []models.Book, id string) int {
	return slices.IndexFunc(books, func(b models.Book) bool { return b.ID == id })
}
