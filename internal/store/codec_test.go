// ABOUTME: Tests for the versioned collection encoding.
// ABOUTME: Covers round-trips for both codecs and strict decode problems.

package store

import (
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/harper/notebook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollections() ([]models.Note, []models.Book) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 123456789, time.UTC)
	updated := created.Add(90 * time.Second)
	notes := []models.Note{
		{ID: "n1", Title: "First", Content: "# hello\n#todo call", CreatedAt: created, UpdatedAt: updated, Tags: []string{}, BookID: "b1"},
		{ID: "n2", Title: "Second", Content: "", CreatedAt: created, UpdatedAt: created, Tags: []string{"x", "y"}},
	}
	books := []models.Book{
		{ID: "b1", Name: "Research", Notes: []string{"n1"}, CreatedAt: created},
		{ID: "b2", Name: "Empty", Notes: []string{}, CreatedAt: created},
	}
	return notes, books
}

func TestCodecRoundTrip(t *testing.T) {
	for _, codec := range []Codec{JSON(), CBOR()} {
		t.Run(codec.Name(), func(t *testing.T) {
			notes, books := sampleCollections()

			data, err := EncodeNotes(codec, notes)
			require.NoError(t, err)
			decodedNotes, err := DecodeNotes(codec, data)
			require.NoError(t, err)
			assert.Empty(t, decodedNotes.Problems)
			assert.Equal(t, notes, decodedNotes.Records)

			data, err = EncodeBooks(codec, books)
			require.NoError(t, err)
			decodedBooks, err := DecodeBooks(codec, data)
			require.NoError(t, err)
			assert.Empty(t, decodedBooks.Problems)
			assert.Equal(t, books, decodedBooks.Records)
		})
	}
}

func TestEncodeEmptyCollection(t *testing.T) {
	data, err := EncodeNotes(JSON(), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"records":[]}`, string(data))
}

func TestEncodeFieldNames(t *testing.T) {
	notes, books := sampleCollections()
	data, err := EncodeNotes(JSON(), notes[:1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"records":[{
		"id":"n1","title":"First","content":"# hello\n#todo call",
		"createdAt":"2025-03-01T09:30:00.123456789Z",
		"updatedAt":"2025-03-01T09:31:30.123456789Z",
		"tags":[],"bookId":"b1"}]}`, string(data))

	data, err = EncodeBooks(JSON(), books[:1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"records":[{
		"id":"b1","name":"Research","notes":["n1"],
		"createdAt":"2025-03-01T09:30:00.123456789Z"}]}`, string(data))
}

func TestUnfiledNoteOmitsBookID(t *testing.T) {
	notes, _ := sampleCollections()
	data, err := EncodeNotes(JSON(), notes[1:])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "bookId")
}

func TestDecodeRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"garbage", "not json", ErrMalformed},
		{"bare array", `[{"id":"n1"}]`, ErrMalformed},
		{"missing version", `{"records":[]}`, ErrUnsupportedVersion},
		{"future version", `{"version":2,"records":[]}`, ErrUnsupportedVersion},
		{"records wrong type", `{"version":1,"records":"x"}`, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeNotes(JSON(), []byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, decoded.Records)
		})
	}
}

func TestDecodeReportsRecordProblems(t *testing.T) {
	data := `{"version":1,"records":[
		{"id":"","title":"lost"},
		{"id":"n1","title":"ok","createdAt":"yesterday","updatedAt":"2025-03-01T09:30:00Z","tags":null}
	]}`
	decoded, err := DecodeNotes(JSON(), []byte(data))
	require.NoError(t, err)

	require.Len(t, decoded.Records, 1)
	n := decoded.Records[0]
	assert.Equal(t, "n1", n.ID)
	assert.True(t, n.CreatedAt.IsZero())
	assert.False(t, n.UpdatedAt.IsZero())
	assert.NotNil(t, n.Tags)
	assert.Len(t, decoded.Problems, 2)
}

func TestInvalidUTF8RoundTrip(t *testing.T) {
	const bad = "ok \xff\xfe bytes"
	const repaired = "ok \uFFFD bytes"

	for _, codec := range []Codec{JSON(), CBOR()} {
		t.Run(codec.Name(), func(t *testing.T) {
			notes, books := sampleCollections()
			notes[0].Content = bad
			notes[1].Tags = []string{bad}
			books[0].Name = bad

			data, err := EncodeNotes(codec, notes)
			require.NoError(t, err)
			decodedNotes, err := DecodeNotes(codec, data)
			require.NoError(t, err)
			require.Len(t, decodedNotes.Records, 2)
			assert.Equal(t, repaired, decodedNotes.Records[0].Content)
			assert.Equal(t, []string{repaired}, decodedNotes.Records[1].Tags)
			assert.Equal(t, "Second", decodedNotes.Records[1].Title)

			data, err = EncodeBooks(codec, books)
			require.NoError(t, err)
			decodedBooks, err := DecodeBooks(codec, data)
			require.NoError(t, err)
			require.Len(t, decodedBooks.Records, 2)
			assert.Equal(t, repaired, decodedBooks.Records[0].Name)
		})
	}
}

func TestCBORReadsStoredInvalidUTF8(t *testing.T) {
	// Written without repair, as a blob from an older build would be.
	data, err := cbor.Marshal(envelope[NoteRecord]{
		Version: FormatVersion,
		Records: []NoteRecord{
			{ID: "n1", Title: "bad \xff", CreatedAt: "2025-03-01T09:30:00Z", UpdatedAt: "2025-03-01T09:30:00Z"},
			{ID: "n2", Title: "fine", CreatedAt: "2025-03-01T09:30:00Z", UpdatedAt: "2025-03-01T09:30:00Z"},
		},
	})
	require.NoError(t, err)

	decoded, err := DecodeNotes(CBOR(), data)
	require.NoError(t, err)
	require.Len(t, decoded.Records, 2)
	assert.Equal(t, "bad \uFFFD", decoded.Records[0].Title)
	assert.Equal(t, "fine", decoded.Records[1].Title)
}

func TestCBORCannotReadJSON(t *testing.T) {
	notes, _ := sampleCollections()
	data, err := EncodeNotes(JSON(), notes)
	require.NoError(t, err)

	_, err = DecodeNotes(CBOR(), data)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCodecFor(t *testing.T) {
	c, err := CodecFor("")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	c, err = CodecFor("cbor")
	require.NoError(t, err)
	assert.Equal(t, "cbor", c.Name())

	_, err = CodecFor("xml")
	assert.Error(t, err)
}
