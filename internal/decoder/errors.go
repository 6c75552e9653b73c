package decoder

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSource  = errors.New("invalid byte source")
	ErrEndOfInput     = errors.New("read past end of input")
	ErrMalformedInput = errors.New("malformed UTF-8 input")
)

// DecodeError reports where in a source decoding failed.
type DecodeError struct {
	Source string // Name of the source, may be empty
	Offset int64  // Byte offset of the leading byte of the failed character
	Bytes  []byte // Bytes consumed for the failed character
	Err    error  // One of the package sentinels, or the underlying read error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("byte %d: %v", e.Offset, e.Err)
	if len(e.Bytes) > 0 {
		msg += fmt.Sprintf(" (% x)", e.Bytes)
	}
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
