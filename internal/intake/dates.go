package intake

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"januari": time.January, "jan": time.January, "january": time.January,
	"februari": time.February, "pebruari": time.February, "feb": time.February, "february": time.February,
	"maret": time.March, "mar": time.March, "march": time.March,
	"april": time.April, "apr": time.April,
	"mei": time.May, "may": time.May,
	"juni": time.June, "jun": time.June, "june": time.June,
	"juli": time.July, "jul": time.July, "july": time.July,
	"agustus": time.August, "agu": time.August, "agt": time.August, "aug": time.August, "august": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"oktober": time.October, "okt": time.October, "oct": time.October, "october": time.October,
	"november": time.November, "nov": time.November, "nop": time.November,
	"desember": time.December, "des": time.December, "dec": time.December, "december": time.December,
}

var (
	isoDatePattern     = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})(?:[/\-.](\d{2}|\d{4}))?\b`)
	textDatePattern    = regexp.MustCompile(`\b(\d{1,2})\s+([a-z]+)\.?(?:\s+(\d{4}))?\b`)
	relativeDays       = []struct {
		pattern *regexp.Regexp
		offset  int
	}{
		{regexp.MustCompile(`\bhari ini\b|\btoday\b`), 0},
		{regexp.MustCompile(`\bbesok\b|\btomorrow\b`), 1},
		{regexp.MustCompile(`\blusa\b`), 2},
	}
)

// ParseCalendarDate recognises a calendar date in free-form text without
// checking whether it lies in the future. Relative words ("besok", "lusa")
// resolve against now. Dates without a year take now's year, rolled to the
// next year when that day has already passed.
func ParseCalendarDate(text string, now time.Time) (time.Time, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return time.Time{}, false
	}
	today := startOfDay(now)

	for _, rel := range relativeDays {
		if rel.pattern.MatchString(s) {
			return today.AddDate(0, 0, rel.offset), true
		}
	}

	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		return buildDate(m[1], m[2], m[3], now.Location())
	}

	for _, m := range textDatePattern.FindAllStringSubmatch(s, -1) {
		if month, ok := months[m[2]]; ok {
			return resolveYear(m[1], int(month), m[3], today)
		}
	}

	if m := numericDatePattern.FindStringSubmatch(s); m != nil {
		month, err := strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, false
		}
		return resolveYear(m[1], month, m[3], today)
	}

	return time.Time{}, false
}

// ParseDate returns the calendar date named by text and whether it is
// strictly after now's calendar date
func ParseDate(text string, now time.Time) (time.Time, bool) {
	d, ok := ParseCalendarDate(text, now)
	if !ok || !d.After(startOfDay(now)) {
		return time.Time{}, false
	}
	return d, true
}

// IsFutureDate reports whether text names a date strictly after today
func IsFutureDate(text string, now time.Time) bool {
	_, ok := ParseDate(text, now)
	return ok
}

func resolveYear(day string, month int, year string, today time.Time) (time.Time, bool) {
	if year != "" {
		if len(year) == 2 {
			year = "20" + year
		}
		return buildDate(year, strconv.Itoa(month), day, today.Location())
	}

	d, ok := buildDate(strconv.Itoa(today.Year()), strconv.Itoa(month), day, today.Location())
	if !ok {
		return time.Time{}, false
	}
	if !d.After(today) {
		d = d.AddDate(1, 0, 0)
	}
	return d, true
}

func buildDate(year, month, day string, loc *time.Location) (time.Time, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 {
		return time.Time{}, false
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	// time.Date normalises 31 April into 1 May
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
