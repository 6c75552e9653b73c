// Package stats counts letters and doubled letters read from a decoder.
package stats

import (
	"fmt"
	"unicode"

	"github.com/f3rmion/letters/internal/decoder"
	"github.com/f3rmion/letters/internal/letters"
)

// RuneReader is the part of a decoder the counters need.
type RuneReader interface {
	Reset() error
	Exhausted() bool
	ReadRune() (rune, error)
}

var _ RuneReader = (*decoder.Decoder)(nil)

// Count drains r from its first byte using the given policy.
func Count(r RuneReader, policy letters.Policy) (letters.Stats, error) {
	switch policy {
	case letters.PolicySingle:
		return CountSingle(r)
	case letters.PolicyDouble:
		return CountDouble(r)
	default:
		return nil, fmt.Errorf("unknown policy: %q", policy)
	}
}

// CountSingle counts every letter, case-sensitively. Non-letters are skipped.
func CountSingle(r RuneReader) (letters.Stats, error) {
	if err := r.Reset(); err != nil {
		return nil, err
	}

	stats := make(letters.Stats)
	for !r.Exhausted() {
		c, err := r.ReadRune()
		if err != nil {
			return nil, err
		}
		if !unicode.IsLetter(c) {
			continue
		}
		stats.Add(letters.SingleKey(c))
	}

	return stats, nil
}

// CountDouble counts pairs of adjacent characters that are equal ignoring
// case. Every adjacent position is checked on its own, so a run of k equal
// characters yields k-1 pairs. Pairs are keyed by the lowercased character
// written twice. Non-letters take part in the comparison like letters do;
// dropping them is left to the phonetic filter.
func CountDouble(r RuneReader) (letters.Stats, error) {
	if err := r.Reset(); err != nil {
		return nil, err
	}

	stats := make(letters.Stats)
	if r.Exhausted() {
		return stats, nil
	}

	prev, err := r.ReadRune()
	if err != nil {
		return nil, err
	}
	prev = unicode.ToLower(prev)

	for !r.Exhausted() {
		c, err := r.ReadRune()
		if err != nil {
			return nil, err
		}
		cur := unicode.ToLower(c)
		if cur == prev {
			stats.Add(letters.DoubleKey(cur))
		}
		prev = cur
	}

	return stats, nil
}
