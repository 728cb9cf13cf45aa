// Package intake holds the field rules of the reservation dialogue: validators
// for each collected answer and a best-effort extractor for free-form chats.
package intake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	OpeningHour  = 10
	ClosingHour  = 22
	MinGuests    = 1
	MaxGuests    = 20
	maxHourChars = 2
)

var (
	phonePattern       = regexp.MustCompile(`^(?:\+?62|08)\d{8,13}$`)
	phoneSeparators    = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
	timePattern        = regexp.MustCompile(`(\d+)(?:\s*[:.]\s*(\d+))?`)
	firstNumberPattern = regexp.MustCompile(`(-?)(\d+)([.,]\d+)?`)
	eveningPattern     = regexp.MustCompile(`(?i)\b(sore|malam|pm)\b`)
	nightPattern       = regexp.MustCompile(`(?i)\bmalam\b`)
	affirmativePattern = regexp.MustCompile(`(?i)\b(ya|iya|benar|betul|ok|oke)\b`)
	negationPattern    = regexp.MustCompile(`(?i)\b(tidak|tdk|bukan|jangan|salah|gak|nggak|enggak|ga)\b`)
)

// ParseTime extracts the leading hour (and optional minutes) from text and
// reports whether it falls inside the service window. The result is HH:MM.
// "sore", "malam" or "pm" after an hour below 12 shifts it to the afternoon.
// "12 malam" is midnight and never valid.
func ParseTime(text string) (string, bool) {
	m := timePattern.FindStringSubmatch(text)
	if m == nil || len(m[1]) > maxHourChars {
		return "", false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}

	minute := 0
	if m[2] != "" {
		if len(m[2]) != 2 {
			return "", false
		}
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return "", false
		}
	}

	if eveningPattern.MatchString(text) {
		switch {
		case hour < 12:
			hour += 12
		case hour == 12 && nightPattern.MatchString(text):
			return "", false
		}
	}

	if hour < OpeningHour || hour > ClosingHour {
		return "", false
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// IsValidTime reports whether text names an hour inside the service window
func IsValidTime(text string) bool {
	_, ok := ParseTime(text)
	return ok
}

// ParseGuestCount returns the first number in text and whether it is an
// acceptable party size. Negative and fractional numbers are rejected.
func ParseGuestCount(text string) (int, bool) {
	m := firstNumberPattern.FindStringSubmatch(text)
	if m == nil || m[1] != "" || m[3] != "" {
		return 0, false
	}
	digits := m[2]
	if len(digits) > 3 {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < MinGuests || n > MaxGuests {
		return 0, false
	}
	return n, true
}

// IsValidGuestCount reports whether text carries a party size between 1 and 20
func IsValidGuestCount(text string) bool {
	_, ok := ParseGuestCount(text)
	return ok
}

// NormalizePhone strips separators from text and reports whether the
// remainder is a local (08…) or international (62… / +62…) mobile number
func NormalizePhone(text string) (string, bool) {
	phone := phoneSeparators.Replace(strings.TrimSpace(text))
	if !phonePattern.MatchString(phone) {
		return "", false
	}
	return phone, true
}

// IsValidPhone reports whether text is an acceptable contact number
func IsValidPhone(text string) bool {
	_, ok := NormalizePhone(text)
	return ok
}

// IsAffirmative reports whether text confirms a summary. A negation word
// anywhere in the text wins over an affirmative one ("tidak benar").
func IsAffirmative(text string) bool {
	if negationPattern.MatchString(text) {
		return false
	}
	return affirmativePattern.MatchString(text)
}
