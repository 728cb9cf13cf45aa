package intake

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// NameMaxLength bounds the utterances considered as a name answer
	NameMaxLength = 50
	// NameMinIndex is the number of user turns skipped before a name is
	// looked for, so the reply to the greeting is not taken as a name
	NameMinIndex = 3
	nameMaxWords = 4
)

var (
	phoneInTextPattern = regexp.MustCompile(`(?:^|\D)((?:\+?62|08)\d{8,13})(?:\D|$)`)
	guestInTextPattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:orang|org|pax|people)\b`)
	clockInTextPattern = regexp.MustCompile(`\b\d{1,2}[:.]\d{2}\b`)
	digitPattern       = regexp.MustCompile(`\d`)
)

// Extracted is a partial reservation recovered from free-form text.
// Zero values mean nothing was found for the field.
type Extracted struct {
	Date         string
	Time         string
	GuestCount   int
	CustomerName string
	Phone        string
}

// Extract scans user utterances in order and recovers what it can of a
// reservation. The first match wins for every field.
//
// The result is best-effort and not authoritative: it only backs the
// free-form dialogue mode. The guided state machine validates each field at
// its own step and never needs it.
//
// A first guest count outside 1..20 is kept as found; callers range-check it.
func Extract(utterances []string, now time.Time) Extracted {
	var out Extracted
	guestsFound := false

	for i, raw := range utterances {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}

		if out.Phone == "" {
			if m := phoneInTextPattern.FindStringSubmatch(text); m != nil {
				out.Phone = m[1]
			}
		}

		if !guestsFound {
			if m := guestInTextPattern.FindStringSubmatch(text); m != nil {
				guestsFound = true
				if n, err := strconv.Atoi(m[1]); err == nil {
					out.GuestCount = n
				}
			}
		}

		if out.Date == "" {
			if d, ok := ParseDate(text, now); ok {
				out.Date = d.Format("2006-01-02")
			}
		}

		if out.Time == "" {
			if m := clockInTextPattern.FindString(text); m != "" {
				if t, ok := ParseTime(m); ok {
					out.Time = t
				}
			}
		}

		if out.CustomerName == "" && i >= NameMinIndex && looksLikeName(text) {
			out.CustomerName = text
		}
	}

	return out
}

func looksLikeName(text string) bool {
	if len(text) >= NameMaxLength || digitPattern.MatchString(text) {
		return false
	}
	if phoneInTextPattern.MatchString(text) || guestInTextPattern.MatchString(text) {
		return false
	}
	if IsAffirmative(text) || negationPattern.MatchString(text) {
		return false
	}
	words := strings.Fields(text)
	return len(words) >= 1 && len(words) <= nameMaxWords
}
