// Package source opens the byte sources that letter statistics are read from.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/f3rmion/letters/internal/decoder"
)

// Source is a named, closable byte source. Callers own it and must Close it.
type Source interface {
	decoder.ByteSource
	io.Closer
	Name() string
}

// DeckExt is the extension of Anki deck packages, which are read as the
// text of their notes rather than as raw bytes.
const DeckExt = ".apkg"

// Open opens path read-only. Empty, missing and directory paths fail with
// decoder.ErrInvalidSource; the underlying os error stays reachable via
// errors.Is.
func Open(path string) (Source, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", decoder.ErrInvalidSource)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", decoder.ErrInvalidSource, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", decoder.ErrInvalidSource, path)
	}

	if strings.EqualFold(filepath.Ext(path), DeckExt) {
		deck, err := OpenDeck(path)
		if err != nil {
			return nil, err
		}
		return deck, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", decoder.ErrInvalidSource, err)
	}
	return f, nil
}
