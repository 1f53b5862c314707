// ABOUTME: Whole-collection load and save of Notes and Books over a Txn.
// ABOUTME: Absent or undecodable collections load as empty; bad blobs can be quarantined.

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/harper/notebook/internal/models"
)

var (
	NotesKey = []byte("notebook:notes")
	BooksKey = []byte("notebook:books")
)

// DecodeError reports a collection whose stored bytes could not be decoded.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Loaded is one collection as read inside a transaction.
type Loaded[T any] struct {
	Records  []T
	Problems []string
	// Corrupt is set when the stored bytes were unusable; Records is then empty
	// and Raw holds the original bytes.
	Corrupt *DecodeError
	Raw     []byte
}

// Collections reads and writes the two collections with a fixed codec.
type Collections struct {
	codec Codec
}

func NewCollections(c Codec) *Collections {
	if c == nil {
		c = JSON()
	}
	return &Collections{codec: c}
}

func (c *Collections) Codec() Codec {
	return c.codec
}

func get(txn Txn, key []byte) ([]byte, bool, error) {
	data, err := txn.Get(key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrRead, key, err)
	}
	return data, true, nil
}

// LoadNotes reads the Notes collection. The error is non-nil only when the
// medium itself failed; the returned collection is then empty.
func (c *Collections) LoadNotes(txn Txn) (Loaded[models.Note], error) {
	data, found, err := get(txn, NotesKey)
	if err != nil || !found {
		return Loaded[models.Note]{Records: []models.Note{}}, err
	}
	decoded, derr := DecodeNotes(c.codec, data)
	out := Loaded[models.Note]{Records: decoded.Records, Problems: decoded.Problems}
	if derr != nil {
		out.Corrupt = &DecodeError{Key: string(NotesKey), Err: derr}
		out.Raw = data
	}
	return out, nil
}

func (c *Collections) LoadBooks(txn Txn) (Loaded[models.Book], error) {
	data, found, err := get(txn, BooksKey)
	if err != nil || !found {
		return Loaded[models.Book]{Records: []models.Book{}}, err
	}
	decoded, derr := DecodeBooks(c.codec, data)
	out := Loaded[models.Book]{Records: decoded.Records, Problems: decoded.Problems}
	if derr != nil {
		out.Corrupt = &DecodeError{Key: string(BooksKey), Err: derr}
		out.Raw = data
	}
	return out, nil
}

// SaveNotes replaces the whole Notes collection.
func (c *Collections) SaveNotes(txn Txn, notes []models.Note) error {
	data, err := EncodeNotes(c.codec, notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := txn.Set(NotesKey, data); err != nil {
		return fmt.Errorf("%w: notes: %v", ErrPersist, err)
	}
	return nil
}

// SaveBooks replaces the whole Books collection.
func (c *Collections) SaveBooks(txn Txn, books []models.Book) error {
	data, err := EncodeBooks(c.codec, books)
	if err != nil {
		return fmt.Errorf("encode books: %w", err)
	}
	if err := txn.Set(BooksKey, data); err != nil {
		return fmt.Errorf("%w: books: %v", ErrPersist, err)
	}
	return nil
}

// Quarantine copies raw bytes of an undecodable collection aside before it is
// overwritten, returning the key used.
func (c *Collections) Quarantine(txn Txn, key string, raw []byte, now time.Time) (string, error) {
	qkey := fmt.Sprintf("%s:quarantine:%d", key, now.UnixNano())
	if err := txn.Set([]byte(qkey), raw); err != nil {
		return "", fmt.Errorf("%w: quarantine %s: %v", ErrPersist, key, err)
	}
	return qkey, nil
}
