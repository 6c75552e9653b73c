package source

import (
	"archive/zip"
	"bytes"
	"database/sql"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/f3rmion/letters/internal/decoder"
	"github.com/microcosm-cc/bluemonday"
	_ "modernc.org/sqlite"
)

// fieldSep separates note fields in the flds column.
const fieldSep = "\x1f"

// stripTags leaves a space where a tag was, so <br> and <div> still
// separate words.
var stripTags = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

// Deck is the note text of an Anki .apkg package held in memory.
type Deck struct {
	*bytes.Reader
	path string
}

// Name returns the path the deck was read from.
func (d *Deck) Name() string {
	return d.path
}

// Close is a no-op; the package is released as soon as it is read.
func (d *Deck) Close() error {
	return nil
}

// OpenDeck reads every note of an Anki package into one UTF-8 text, one
// field per line, with HTML markup removed.
func OpenDeck(path string) (*Deck, error) {
	tempDir, err := os.MkdirTemp("", "letters-apkg-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	if err := extract(path, tempDir); err != nil {
		return nil, fmt.Errorf("%w: %w", decoder.ErrInvalidSource, err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki21")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		dbPath = filepath.Join(tempDir, "collection.anki2")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("%w: no collection in %s", decoder.ErrInvalidSource, path)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	text, err := loadNoteText(db)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", decoder.ErrInvalidSource, err)
	}

	return &Deck{
		Reader: bytes.NewReader([]byte(text)),
		path:   path,
	}, nil
}

// extract unzips the .apkg file into dir.
func extract(path, dir string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		fpath := filepath.Join(dir, f.Name)

		// Prevent zip slip
		if !strings.HasPrefix(fpath, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path: %s", fpath)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), 0755); err != nil {
			return err
		}
		if err := extractFile(f, fpath); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(f *zip.File, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	return out.Close()
}

// loadNoteText joins the fields of every note, in note id order.
func loadNoteText(db *sql.DB) (string, error) {
	rows, err := db.Query(`SELECT flds FROM notes ORDER BY id`)
	if err != nil {
		return "", fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var sb strings.Builder
	for rows.Next() {
		var flds string
		if err := rows.Scan(&flds); err != nil {
			return "", fmt.Errorf("scanning note: %w", err)
		}
		for _, field := range strings.Split(flds, fieldSep) {
			sb.WriteString(plainText(field))
			sb.WriteString("\n")
		}
	}

	return sb.String(), rows.Err()
}

// plainText strips HTML markup from a field and resolves entities.
func plainText(field string) string {
	return strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(field)))
}
