package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#FF6B6B") // Red - titles
	ColorAccent  = lipgloss.Color("#ffe66d") // Yellow - keys
	ColorMuted   = lipgloss.Color("#666666") // Gray - empty reports
	ColorSuccess = lipgloss.Color("#a8e6cf") // Green - totals
	ColorText    = lipgloss.Color("#f1faee") // Light text
	ColorBg      = lipgloss.Color("#1a1a2e") // Dark background
	ColorBorder  = lipgloss.Color("#3d5a80") // Border color
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)

	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TotalStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

// StyledSink draws each report as a bordered table for terminals.
// Keys are padded by display width so CJK and other wide characters
// stay in line with the rest.
type StyledSink struct {
	w          io.Writer
	totalLabel string
}

// NewStyledSink creates a sink writing to w.
func NewStyledSink(w io.Writer, totalLabel string) *StyledSink {
	if totalLabel == "" {
		totalLabel = DefaultTotalLabel
	}
	return &StyledSink{w: w, totalLabel: totalLabel}
}

func (s *StyledSink) Write(title string, r Report) error {
	_, err := io.WriteString(s.w, s.Render(title, r)+"\n")
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Render returns the styled report without writing it.
func (s *StyledSink) Render(title string, r Report) string {
	keyWidth := 0
	countWidth := 0
	for _, e := range r.Entries {
		keyWidth = max(keyWidth, runewidth.StringWidth(string(e.Key)))
		countWidth = max(countWidth, len(strconv.Itoa(e.Count)))
	}

	var rows []string
	for _, e := range r.Entries {
		key := runewidth.FillRight(string(e.Key), keyWidth)
		count := fmt.Sprintf("%*d", countWidth, e.Count)
		rows = append(rows, KeyStyle.Render(key)+" : "+CountStyle.Render(count))
	}
	if len(rows) == 0 {
		rows = append(rows, EmptyStyle.Render("no matches"))
	}

	total := TotalLine(s.totalLabel, r.Total)
	width := max(keyWidth+3+countWidth, runewidth.StringWidth(total))
	rows = append(rows,
		DividerStyle.Render(strings.Repeat("─", width)),
		TotalStyle.Render(total),
	)

	box := BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if title == "" {
		return box
	}
	return lipgloss.JoinVertical(lipgloss.Left, TitleStyle.Render(title), box)
}
