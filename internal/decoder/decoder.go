// Package decoder reads UTF-8 text one character at a time from a seekable
// byte source.
package decoder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ByteSource is an ordered, finite, rewindable sequence of bytes.
type ByteSource interface {
	io.Reader
	io.Seeker
}

// Decoder is a forward-only character reader over a ByteSource.
// End of input is decided purely from the number of bytes consumed
// against the size of the source, so Exhausted is accurate before a read.
type Decoder struct {
	name string
	src  ByteSource
	r    *bufio.Reader
	size int64
	pos  int64
	eof  bool
}

// New creates a decoder positioned at the start of src.
func New(src ByteSource) (*Decoder, error) {
	return NewNamed("", src)
}

// NewNamed creates a decoder whose errors carry name.
func NewNamed(name string, src ByteSource) (*Decoder, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidSource)
	}

	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: measuring source: %v", ErrInvalidSource, err)
	}

	d := &Decoder{
		name: name,
		src:  src,
		size: size,
	}
	if err := d.Reset(); err != nil {
		return nil, err
	}
	return d, nil
}

// Exhausted reports whether every byte of the source has been consumed.
func (d *Decoder) Exhausted() bool {
	return d.eof
}

// Offset returns the number of bytes consumed since the last reset.
func (d *Decoder) Offset() int64 {
	return d.pos
}

// Size returns the total length of the source in bytes.
func (d *Decoder) Size() int64 {
	return d.size
}

// Name returns the name given at construction.
func (d *Decoder) Name() string {
	return d.name
}

// Reset rewinds to the first byte. If the source can no longer be
// rewound the decoder stays exhausted.
func (d *Decoder) Reset() error {
	if d.src == nil {
		d.eof = true
		return nil
	}

	if _, err := d.src.Seek(0, io.SeekStart); err != nil {
		d.eof = true
		return fmt.Errorf("%w: rewinding: %v", ErrInvalidSource, err)
	}

	if d.r == nil {
		d.r = bufio.NewReader(d.src)
	} else {
		d.r.Reset(d.src)
	}
	d.pos = 0
	d.eof = d.size == 0
	return nil
}

// ReadRune decodes the next character.
//
// It fails with ErrEndOfInput once the decoder is exhausted and with
// ErrMalformedInput when the bytes do not form a valid UTF-8 character,
// including a sequence cut short by the end of the source. Errors are
// *DecodeError values carrying the offset of the leading byte.
func (d *Decoder) ReadRune() (rune, error) {
	if d.eof {
		return utf8.RuneError, d.fail(d.pos, nil, ErrEndOfInput)
	}

	start := d.pos
	lead, err := d.r.ReadByte()
	if err != nil {
		d.eof = true
		if errors.Is(err, io.EOF) {
			return utf8.RuneError, d.fail(start, nil, ErrEndOfInput)
		}
		return utf8.RuneError, d.fail(start, nil, err)
	}
	d.pos++

	n := sequenceLength(lead)
	if n == 0 {
		d.eof = d.pos >= d.size
		return utf8.RuneError, d.fail(start, []byte{lead}, ErrMalformedInput)
	}

	var buf [utf8.UTFMax]byte
	buf[0] = lead
	for i := 1; i < n; i++ {
		b, err := d.r.ReadByte()
		if err != nil {
			d.eof = true
			if errors.Is(err, io.EOF) {
				return utf8.RuneError, d.fail(start, buf[:i], ErrMalformedInput)
			}
			return utf8.RuneError, d.fail(start, buf[:i], err)
		}
		d.pos++
		buf[i] = b
	}
	d.eof = d.pos >= d.size

	r, size := utf8.DecodeRune(buf[:n])
	if size != n {
		return utf8.RuneError, d.fail(start, buf[:n], ErrMalformedInput)
	}
	return r, nil
}

func (d *Decoder) fail(offset int64, b []byte, err error) error {
	var raw []byte
	if len(b) > 0 {
		raw = append([]byte(nil), b...)
	}
	return &DecodeError{
		Source: d.name,
		Offset: offset,
		Bytes:  raw,
		Err:    err,
	}
}

// sequenceLength returns the encoded length announced by a leading byte,
// or 0 if b cannot start a character.
func sequenceLength(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}
