package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/f3rmion/letters/internal/clipboard"
)

// Sink receives finished reports.
type Sink interface {
	Write(title string, r Report) error
}

// Flusher is implemented by sinks that buffer output until Flush.
type Flusher interface {
	Flush() error
}

// PlainSink writes the bare report lines. Consecutive reports are
// separated by a blank line and preceded by their title, if any.
type PlainSink struct {
	w          io.Writer
	totalLabel string
	written    int
}

// NewPlainSink creates a sink writing to w.
func NewPlainSink(w io.Writer, totalLabel string) *PlainSink {
	return &PlainSink{w: w, totalLabel: totalLabel}
}

func (s *PlainSink) Write(title string, r Report) error {
	var b strings.Builder
	if s.written > 0 {
		b.WriteString("\n")
	}
	if title != "" {
		b.WriteString(title)
		b.WriteString("\n")
	}
	for _, line := range r.Lines(s.totalLabel) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	s.written++
	return nil
}

// ClipboardSink collects plain reports and copies them in one go on Flush.
type ClipboardSink struct {
	buf   strings.Builder
	plain *PlainSink
	copy  func(string) error
}

// NewClipboardSink creates a sink backed by the system clipboard.
func NewClipboardSink(totalLabel string) *ClipboardSink {
	s := &ClipboardSink{copy: clipboard.Write}
	s.plain = NewPlainSink(&s.buf, totalLabel)
	return s
}

func (s *ClipboardSink) Write(title string, r Report) error {
	return s.plain.Write(title, r)
}

// Flush copies everything written so far to the clipboard.
func (s *ClipboardSink) Flush() error {
	if s.buf.Len() == 0 {
		return nil
	}
	if err := s.copy(s.buf.String()); err != nil {
		return fmt.Errorf("copying report: %w", err)
	}
	return nil
}

// MultiSink fans a report out to several sinks.
type MultiSink []Sink

func (m MultiSink) Write(title string, r Report) error {
	for _, s := range m {
		if err := s.Write(title, r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every member that buffers, returning all errors joined.
func (m MultiSink) Flush() error {
	var errs []error
	for _, s := range m {
		if f, ok := s.(Flusher); ok {
			errs = append(errs, f.Flush())
		}
	}
	return errors.Join(errs...)
}
