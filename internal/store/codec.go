// ABOUTME: Versioned encoding of the Notes and Books collections.
// ABOUTME: Strict decode reports per-record problems instead of trusting stored shapes.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/harper/notebook/internal/models"
)

// FormatVersion is the only envelope version this build reads or writes.
const FormatVersion = 1

var (
	ErrMalformed          = errors.New("malformed collection")
	ErrUnsupportedVersion = errors.New("unsupported collection version")
)

// Codec turns values into bytes for the medium.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// cborDecMode tolerates invalid UTF-8 in text strings written by older builds.
// The record converters repair it after decode.
var cborDecMode, _ = cbor.DecOptions{UTF8: cbor.UTF8DecodeInvalid}.DecMode()

type cborCodec struct{}

func (cborCodec) Name() string                       { return "cbor" }
func (cborCodec) Marshal(v any) ([]byte, error)      { return cbor.Marshal(v) }
func (cborCodec) Unmarshal(data []byte, v any) error { return cborDecMode.Unmarshal(data, v) }

func JSON() Codec { return jsonCodec{} }
func CBOR() Codec { return cborCodec{} }

// CodecFor returns the codec registered under name.
func CodecFor(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSON(), nil
	case "cbor":
		return CBOR(), nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

// NoteRecord is the stored shape of a note.
type NoteRecord struct {
	ID        string   `json:"id" cbor:"id"`
	Title     string   `json:"title" cbor:"title"`
	Content   string   `json:"content" cbor:"content"`
	CreatedAt string   `json:"createdAt" cbor:"createdAt"`
	UpdatedAt string   `json:"updatedAt" cbor:"updatedAt"`
	Tags      []string `json:"tags" cbor:"tags"`
	BookID    string   `json:"bookId,omitempty" cbor:"bookId,omitempty"`
}

// BookRecord is the stored shape of a book.
type BookRecord struct {
	ID        string   `json:"id" cbor:"id"`
	Name      string   `json:"name" cbor:"name"`
	Notes     []string `json:"notes" cbor:"notes"`
	CreatedAt string   `json:"createdAt" cbor:"createdAt"`
}

type envelope[T any] struct {
	Version int `json:"version" cbor:"version"`
	Records []T `json:"records" cbor:"records"`
}

// FormatTime renders a timestamp the way it is stored.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime reads a stored timestamp. Unparsable values yield the zero time
// and false.
func ParseTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidText replaces invalid UTF-8 sequences with U+FFFD. Both codecs then
// store exactly the text the caller sees.
func ValidText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

func validTexts(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = ValidText(s)
	}
	return out
}

func NoteToRecord(n models.Note) NoteRecord {
	return NoteRecord{
		ID:        ValidText(n.ID),
		Title:     ValidText(n.Title),
		Content:   ValidText(n.Content),
		CreatedAt: FormatTime(n.CreatedAt),
		UpdatedAt: FormatTime(n.UpdatedAt),
		Tags:      validTexts(n.Tags),
		BookID:    ValidText(n.BookID),
	}
}

// NoteFromRecord converts a stored record. ok is false when the record must be
// dropped; problems lists anything that was repaired or rejected.
func NoteFromRecord(r NoteRecord) (note models.Note, ok bool, problems []string) {
	if r.ID == "" {
		return models.Note{}, false, []string{"note without id dropped"}
	}
	created, okc := ParseTime(r.CreatedAt)
	if !okc {
		problems = append(problems, fmt.Sprintf("note %s: invalid createdAt %q", r.ID, r.CreatedAt))
	}
	updated, oku := ParseTime(r.UpdatedAt)
	if !oku {
		problems = append(problems, fmt.Sprintf("note %s: invalid updatedAt %q", r.ID, r.UpdatedAt))
	}
	return models.Note{
		ID:        ValidText(r.ID),
		Title:     ValidText(r.Title),
		Content:   ValidText(r.Content),
		CreatedAt: created,
		UpdatedAt: updated,
		Tags:      validTexts(r.Tags),
		BookID:    ValidText(r.BookID),
	}, true, problems
}

func BookToRecord(b models.Book) BookRecord {
	return BookRecord{
		ID:        ValidText(b.ID),
		Name:      ValidText(b.Name),
		Notes:     validTexts(b.Notes),
		CreatedAt: FormatTime(b.CreatedAt),
	}
}

func BookFromRecord(r BookRecord) (book models.Book, ok bool, problems []string) {
	if r.ID == "" {
		return models.Book{}, false, []string{"book without id dropped"}
	}
	created, okc := ParseTime(r.CreatedAt)
	if !okc {
		problems = append(problems, fmt.Sprintf("book %s: invalid createdAt %q", r.ID, r.CreatedAt))
	}
	return models.Book{
		ID:        ValidText(r.ID),
		Name:      ValidText(r.Name),
		Notes:     validTexts(r.Notes),
		CreatedAt: created,
	}, true, problems
}

// Decoded is the tagged result of a strict decode.
type Decoded[T any] struct {
	Records  []T
	Problems []string
}

func encodeEnvelope[T any](c Codec, records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	return c.Marshal(envelope[T]{Version: FormatVersion, Records: records})
}

func decodeEnvelope[T any](c Codec, data []byte) ([]T, error) {
	var env envelope[T]
	if err := c.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	return env.Records, nil
}

// EncodeNotes encodes a full Notes collection.
func EncodeNotes(c Codec, notes []models.Note) ([]byte, error) {
	records := make([]NoteRecord, 0, len(notes))
	for _, n := range notes {
		records = append(records, NoteToRecord(n))
	}
	return encodeEnvelope(c, records)
}

// DecodeNotes decodes a full Notes collection. An error means the blob as a
// whole is unusable.
func DecodeNotes(c Codec, data []byte) (Decoded[models.Note], error) {
	records, err := decodeEnvelope[NoteRecord](c, data)
	if err != nil {
		return Decoded[models.Note]{Records: []models.Note{}}, err
	}
	out := Decoded[models.Note]{Records: make([]models.Note, 0, len(records))}
	for _, r := range records {
		note, ok, problems := NoteFromRecord(r)
		out.Problems = append(out.Problems, problems...)
		if ok {
			out.Records = append(out.Records, note)
		}
	}
	return out, nil
}

func EncodeBooks(c Codec, books []models.Book) ([]byte, error) {
	records := make([]BookRecord, 0, len(books))
	for _, b := range books {
		records = append(records, BookToRecord(b))
	}
	return encodeEnvelope(c, records)
}

func DecodeBooks(c Codec, data []byte) (Decoded[models.Book], error) {
	records, err := decodeEnvelope[BookRecord](c, data)
	if err != nil {
		return Decoded[models.Book]{Records: []models.Book{}}, err
	}
	out := Decoded[models.Book]{Records: make([]models.Book, 0, len(records))}
	for _, r := range records {
		book, ok, problems := BookFromRecord(r)
		out.Problems = append(out.Problems, problems...)
		if ok {
			out.Records = append(out.Records, book)
		}
	}
	return out, nil
}
