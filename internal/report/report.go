// Package report orders letter stats and writes them out.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/f3rmion/letters/internal/letters"
)

// DefaultTotalLabel heads the closing line of every report.
const DefaultTotalLabel = "Итого"

// Report is a sorted, totalled view of Stats.
type Report struct {
	Entries []letters.Entry `yaml:"entries" json:"entries"`
	Total   int             `yaml:"total" json:"total"`
}

// Build sorts s by key in ascending byte order and sums every count.
func Build(s letters.Stats) Report {
	entries := make([]letters.Entry, 0, len(s))
	for k, n := range s {
		entries = append(entries, letters.Entry{Key: k, Count: n})
	}

	slices.SortFunc(entries, func(a, b letters.Entry) int {
		return strings.Compare(string(a.Key), string(b.Key))
	})

	return Report{Entries: entries, Total: s.Total()}
}

// Lines renders one "key : count" line per entry followed by the total.
func (r Report) Lines(totalLabel string) []string {
	if totalLabel == "" {
		totalLabel = DefaultTotalLabel
	}

	lines := make([]string, 0, len(r.Entries)+1)
	for _, e := range r.Entries {
		lines = append(lines, EntryLine(e))
	}
	return append(lines, TotalLine(totalLabel, r.Total))
}

// EntryLine formats a single entry.
func EntryLine(e letters.Entry) string {
	return fmt.Sprintf("%s : %d", e.Key, e.Count)
}

// TotalLine formats the closing total.
func TotalLine(label string, total int) string {
	return fmt.Sprintf("%s: %d", label, total)
}
