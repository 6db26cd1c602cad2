package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Patterns for residual noise that occasionally leaks into free-text fields
// (pasted prompt fragments, marketing phrases) plus markdown markers.
var (
	noisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)here is.*?prompt[^.]*\.?`),
		regexp.MustCompile(`(?i)production[- ]?ready`),
	}
	markupChars = regexp.MustCompile("[#*_`>]")
	multiSpace  = regexp.MustCompile(`\s{2,}`)
)

// Sanitize strips noise phrases, markdown markers and excess whitespace from
// free-form report text. It is total (nil-safe via the empty string) and
// idempotent, so fields that already passed through it are unchanged.
func Sanitize(text string) string {
	out := text
	for _, re := range noisePatterns {
		// Removing one occurrence can splice a new one together, so run
		// each pattern to a fixpoint.
		for {
			next := re.ReplaceAllString(out, "")
			if next == out {
				break
			}
			out = next
		}
	}
	out = markupChars.ReplaceAllString(out, "")
	out = multiSpace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// SanitizeOr returns the sanitized text, or the placeholder when nothing
// survives sanitization.
func SanitizeOr(text, placeholder string) string {
	if clean := Sanitize(text); clean != "" {
		return clean
	}
	return placeholder
}

// FormatDate renders an ISO date (YYYY-MM-DD) as "2 January 2006".
func FormatDate(dateStr string) string {
	parts := strings.SplitN(strings.TrimSpace(dateStr), "-", 3)
	if len(parts) != 3 {
		return "N/A"
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(strings.TrimSuffix(parts[2], "T00:00:00"))
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return "N/A"
	}
	return fmt.Sprintf("%d %s %d", day, monthNames[month-1], year)
}

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FormatTime renders a 24h clock value (HH:MM or HH:MM:SS) as "3:04 PM".
func FormatTime(timeStr string) string {
	parts := strings.Split(strings.TrimSpace(timeStr), ":")
	if len(parts) < 2 {
		return "N/A"
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "N/A"
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%s %s", h12, parts[1], ampm)
}

// Capitalize upper-cases the first rune of an enum-ish value ("hybrid" ->
// "Hybrid"); empty input renders as the placeholder.
func Capitalize(s string) string {
	if s == "" {
		return "N/A"
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SafeFilename derives a download filename from a document title: every
// non-alphanumeric character becomes an underscore.
func SafeFilename(title string) string {
	return nonAlnum.ReplaceAllString(title, "_")
}
