// Package render prints search results as a terminal table.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"hifisearch/internal/dates"
	"hifisearch/internal/domain"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiCyan  = "\x1b[36m"
	ansiGreen = "\x1b[32m"
)

// column widths; titles dominate, the rest stay narrow
const (
	titleWidth    = 52
	dateWidth     = 10
	priceWidth    = 12
	locationWidth = 18
	sourceWidth   = 26
)

// Table writes listings as one combined table. Rows carry OSC 8
// hyperlinks so terminals that support them make the title clickable.
type Table struct {
	w     io.Writer
	color bool
	now   time.Time
}

func NewTable(w io.Writer, color bool, now time.Time) *Table {
	return &Table{w: w, color: color, now: now}
}

func (t *Table) paint(code, s string) string {
	if !t.color || s == "" {
		return s
	}
	return code + s + ansiReset
}

// truncate cuts s to max runes, appending an ellipsis when it cut.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// pad right-pads s to width in runes. ANSI and OSC sequences are added
// after padding, so callers pass plain text here.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// hyperlink wraps text in an OSC 8 link to target. Terminals without
// support render the plain text.
func hyperlink(text, target string) string {
	if target == "" {
		return text
	}
	return "\x1b]8;;" + target + "\x07" + text + "\x1b]8;;\x07"
}

func formatPrice(l domain.Listing) string {
	if !l.HasPrice {
		return "-"
	}
	if l.Price == float64(int64(l.Price)) {
		return fmt.Sprintf("%d kr", int64(l.Price))
	}
	return fmt.Sprintf("%.2f kr", l.Price)
}

func (t *Table) header() string {
	cols := pad("Title", titleWidth) + "  " +
		pad("Date", dateWidth) + "  " +
		pad("Price", priceWidth) + "  " +
		pad("Location", locationWidth) + "  " +
		pad("Source", sourceWidth)
	return t.paint(ansiBold, cols)
}

func (t *Table) row(l domain.Listing) string {
	title := pad(truncate(strings.TrimSpace(l.Title), titleWidth), titleWidth)
	if t.color {
		title = hyperlink(t.paint(ansiCyan, title), l.URL)
	} else {
		title = hyperlink(title, l.URL)
	}

	// show the provider's raw text when it resists normalization
	date := dates.NormalizeISO(l.PostedDate, t.now)
	if date == "" {
		date = strings.TrimSpace(l.PostedDate)
	}
	if date == "" {
		date = "-"
	}

	return title + "  " +
		pad(truncate(date, dateWidth), dateWidth) + "  " +
		t.paint(ansiGreen, pad(truncate(formatPrice(l), priceWidth), priceWidth)) + "  " +
		pad(truncate(strings.TrimSpace(l.Location), locationWidth), locationWidth) + "  " +
		pad(truncate(l.SourceLabel(), sourceWidth), sourceWidth)
}

// Print renders the listings followed by a total line. An empty slice
// prints just the no-results notice.
func (t *Table) Print(listings []domain.Listing) {
	if len(listings) == 0 {
		fmt.Fprintln(t.w, "No results found.")
		return
	}

	sep := strings.Repeat("-", titleWidth+dateWidth+priceWidth+locationWidth+sourceWidth+8)

	fmt.Fprintln(t.w, t.header())
	fmt.Fprintln(t.w, t.paint(ansiDim, sep))
	for _, l := range listings {
		fmt.Fprintln(t.w, t.row(l))
	}
	fmt.Fprintln(t.w, t.paint(ansiDim, sep))
	fmt.Fprintf(t.w, "%d results\n", len(listings))
}
