package source

import (
	"archive/zip"
	"database/sql"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/f3rmion/letters/internal/decoder"
	"github.com/f3rmion/letters/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InvalidPaths(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"missing", filepath.Join(dir, "nope.txt")},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Open(tt.path)
			assert.Nil(t, src)
			assert.ErrorIs(t, err, decoder.ErrInvalidSource)
		})
	}
}

func TestOpen_MissingKeepsNotExist(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.txt")
	require.NoError(t, os.WriteFile(path, []byte("Привет"), 0644))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, path, src.Name())
	data, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, "Привет", string(data))
}

// writeDeck builds a minimal .apkg holding a notes table with the given
// flds values.
func writeDeck(t *testing.T, dbName string, flds ...string) string {
	t.Helper()
	dir := t.TempDir()

	dbPath := filepath.Join(dir, dbName)
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, flds TEXT NOT NULL)`)
	require.NoError(t, err)
	for i, f := range flds {
		_, err = db.Exec(`INSERT INTO notes (id, flds) VALUES (?, ?)`, len(flds)-i, f)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	apkg := filepath.Join(dir, "deck.apkg")
	out, err := os.Create(apkg)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	w, err := zw.Create(dbName)
	require.NoError(t, err)
	in, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	_, err = w.Write(in)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	return apkg
}

func TestOpen_Deck(t *testing.T) {
	for _, dbName := range []string{"collection.anki2", "collection.anki21"} {
		t.Run(dbName, func(t *testing.T) {
			// Inserted with descending ids, so read back in reverse.
			path := writeDeck(t, dbName,
				"second\x1f<b>Второй</b>",
				"first\x1fum &amp; ah",
			)

			src, err := Open(path)
			require.NoError(t, err)
			defer src.Close()

			_, ok := src.(*Deck)
			require.True(t, ok)
			assert.Equal(t, path, src.Name())

			data, err := io.ReadAll(src)
			require.NoError(t, err)
			assert.Equal(t, "first\num & ah\nsecond\nВторой\n", string(data))
		})
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"a<br>b", "a b"},
		{"a<br/>b", "a b"},
		{"<div>a</div><div>b</div>", "a  b"},
		{"<b>bold</b>", "bold"},
		{"x &lt; y", "x < y"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, plainText(tt.field), "plainText(%q)", tt.field)
	}
}

func TestOpen_DeckTagsSeparateWords(t *testing.T) {
	path := writeDeck(t, "collection.anki2", "кот<br>тигр<div>рак</div>")

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	data, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, "кот тигр рак\n", string(data))

	dec, err := decoder.New(src)
	require.NoError(t, err)
	got, err := stats.CountDouble(dec)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpen_DeckNotZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.apkg")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := Open(path)
	assert.ErrorIs(t, err, decoder.ErrInvalidSource)
}

func TestOpen_DeckWithoutCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.apkg")
	out, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	w, err := zw.Create("media")
	require.NoError(t, err)
	_, err = w.Write([]byte("{}"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	_, err = Open(path)
	assert.ErrorIs(t, err, decoder.ErrInvalidSource)
}
