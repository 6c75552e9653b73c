// Package letters provides the shared types for letter statistics.
package letters

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Key identifies a counted letter or doubled-letter pair.
// Single-letter keys keep their case; doubled keys are always lowercase.
type Key string

// First returns the first character of the key.
func (k Key) First() rune {
	r, _ := utf8.DecodeRuneInString(string(k))
	return r
}

// SingleKey builds the key for one letter, case preserved.
func SingleKey(r rune) Key {
	return Key(string(r))
}

// DoubleKey builds the key for a doubled letter from an already folded rune.
func DoubleKey(lower rune) Key {
	s := string(lower)
	return Key(s + s)
}

// Stats maps each key to the number of times it was observed.
type Stats map[Key]int

// Add increments the count for k, creating the entry on first sight.
func (s Stats) Add(k Key) {
	s[k]++
}

// Total returns the sum of all counts.
func (s Stats) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Entry is a single key/count pair, used once stats are ordered for output.
type Entry struct {
	Key   Key `yaml:"key" json:"key"`
	Count int `yaml:"count" json:"count"`
}

// Policy selects how characters are turned into keys.
type Policy string

const (
	PolicySingle Policy = "single" // Each letter on its own, case-sensitive
	PolicyDouble Policy = "double" // Adjacent identical characters, case-insensitive
)

// Class is the phonetic class used to filter aggregated stats.
type Class string

const (
	ClassVowel     Class = "vowel"
	ClassConsonant Class = "consonant"
	ClassAll       Class = "all" // No filtering
)

// ParseClass parses a class name. Plural forms are accepted.
func ParseClass(name string) (Class, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "s")
	switch c := Class(n); c {
	case ClassVowel, ClassConsonant, ClassAll:
		return c, nil
	default:
		return "", fmt.Errorf("unknown letter class: %q", name)
	}
}
