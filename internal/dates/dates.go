// Package dates turns the free-text posting dates that Swedish and
// international marketplaces emit ("Idag 14:32", "2 days ago", "22 sep.",
// "Oct 26, 2025") into comparable times.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var swedishMonths = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "maj": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"okt": time.October, "nov": time.November, "dec": time.December,
}

var englishMonths = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	daysAgoRe    = regexp.MustCompile(`(?i)(\d+)\s+days?\s+ago`)
	hoursAgoRe   = regexp.MustCompile(`(?i)(\d+)\s+hours?\s+ago`)
	weeksAgoRe   = regexp.MustCompile(`(?i)(\d+)\s+weeks?\s+ago`)
	isoRe        = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashRe      = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	monthFirstRe = regexp.MustCompile(`\b([A-Za-z]{3,9})\.?\s+(\d{1,2})(?:,?\s*(\d{4}))?\b`)
	dayFirstRe   = regexp.MustCompile(`\b(\d{1,2})\s+([A-Za-z]{3,9})\.?,?\s*(\d{4})?\b`)
	clockRe      = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// monthByName resolves a Swedish or English month name or abbreviation.
// Only the first three letters matter ("september", "sept" and "sep"
// all land on September).
func monthByName(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	if len(name) > 3 {
		name = name[:3]
	}
	if m, ok := swedishMonths[name]; ok {
		return m, true
	}
	m, ok := englishMonths[name]
	return m, ok
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// calendarDate builds a date and rejects values that don't round-trip
// (month 13, day 32), so malformed input falls through instead of
// producing a normalized-but-wrong date.
func calendarDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// Parse interprets a raw posting-date string relative to now. The second
// return value reports whether the text was understood at all; callers
// must not treat an unparsed date as "posted now".
//
// Recognized forms, in priority order: today/yesterday/just-now keywords
// (Swedish or English), "N days/hours/weeks ago", ISO dates, DD/MM/YYYY,
// "Oct 26, 2025", "26 okt 2025" (year optional), and a bare "HH:MM" which
// means today. Day and week offsets truncate to midnight; hour offsets
// keep the time of day.
func Parse(s string, now time.Time) (time.Time, bool) {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return time.Time{}, false
	}

	if strings.Contains(text, "just nu") || strings.Contains(text, "just now") {
		return now, true
	}
	if strings.Contains(text, "idag") || strings.Contains(text, "today") {
		return midnight(now), true
	}
	if strings.Contains(text, "igår") || strings.Contains(text, "yesterday") {
		return midnight(now.AddDate(0, 0, -1)), true
	}

	if m := daysAgoRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return midnight(now.AddDate(0, 0, -n)), true
	}
	if m := hoursAgoRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(-time.Duration(n) * time.Hour), true
	}
	if m := weeksAgoRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return midnight(now.AddDate(0, 0, -7*n)), true
	}

	if m := isoRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if t, ok := calendarDate(year, time.Month(month), day, now.Location()); ok {
			return t, true
		}
	}

	// Day first: "22/10/2025", "22-10-25"
	if m := slashRe.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		if t, ok := calendarDate(year, time.Month(month), day, now.Location()); ok {
			return t, true
		}
	}

	if m := monthFirstRe.FindStringSubmatch(text); m != nil {
		if month, ok := monthByName(m[1]); ok {
			day, _ := strconv.Atoi(m[2])
			if t, ok := yearlessDate(m[3], month, day, now); ok {
				return t, true
			}
		}
	}

	if m := dayFirstRe.FindStringSubmatch(text); m != nil {
		if month, ok := monthByName(m[2]); ok {
			day, _ := strconv.Atoi(m[1])
			if t, ok := yearlessDate(m[3], month, day, now); ok {
				return t, true
			}
		}
	}

	// "14:32" with no date at all still means today.
	if clockRe.MatchString(text) {
		return midnight(now), true
	}

	return time.Time{}, false
}

// yearlessDate resolves a textual date whose year may be absent. A
// missing year means the current one, unless that would put the date in
// the future; listings posted in late December and read in January carry
// last year's dates.
func yearlessDate(yearStr string, month time.Month, day int, now time.Time) (time.Time, bool) {
	year := now.Year()
	if yearStr != "" {
		year, _ = strconv.Atoi(yearStr)
	}
	t, ok := calendarDate(year, month, day, now.Location())
	if !ok {
		return time.Time{}, false
	}
	if yearStr == "" && t.After(now) {
		t, ok = calendarDate(year-1, month, day, now.Location())
	}
	return t, ok
}

// NormalizeISO renders a raw posting date as YYYY-MM-DD for display, or
// "" when the text isn't a recognizable date.
func NormalizeISO(s string, now time.Time) string {
	t, ok := Parse(s, now)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}
