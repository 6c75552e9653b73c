// Package phonetic splits the Russian and Latin alphabets into vowels and
// consonants and filters letter stats by that split.
package phonetic

import (
	"unicode"

	"github.com/f3rmion/letters/internal/letters"
)

const (
	vowels     = "аоиеёэыуюяaeiouy"
	consonants = "бвгджзйклмнпрстфхцчшщъь" + "bcdfghjklmnpqrstvwxz"
)

var classes = buildClasses()

func buildClasses() map[rune]letters.Class {
	m := make(map[rune]letters.Class, len(vowels)+len(consonants))
	for _, r := range vowels {
		m[r] = letters.ClassVowel
	}
	for _, r := range consonants {
		m[r] = letters.ClassConsonant
	}
	return m
}

// Classify returns the class of r, ignoring case. The second result is
// false for anything outside the two alphabets, digits and punctuation
// included.
func Classify(r rune) (letters.Class, bool) {
	c, ok := classes[unicode.ToLower(r)]
	return c, ok
}

// Matches reports whether the first character of k belongs to class.
// ClassAll matches every key.
func Matches(k letters.Key, class letters.Class) bool {
	if class == letters.ClassAll {
		return true
	}
	c, ok := Classify(k.First())
	return ok && c == class
}

// Filter returns a new Stats holding only the entries whose key belongs to
// class. The input is not modified.
func Filter(s letters.Stats, class letters.Class) letters.Stats {
	out := make(letters.Stats, len(s))
	for k, n := range s {
		if Matches(k, class) {
			out[k] = n
		}
	}
	return out
}
