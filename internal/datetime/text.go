package datetime

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const defaultInitials = "AI"

// GetInitials returns the upper-cased first letters of the first two
// space-separated tokens of name, or "AI" when there is nothing to show.
// Tokens are split on every single space, so an empty token between two
// spaces contributes no letter ("Jane  Doe" gives "J").
func GetInitials(name string) string {
	if name == "" || name == "undefined undefined" {
		return defaultInitials
	}

	var b strings.Builder
	tokens := strings.Split(name, " ")
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	for _, token := range tokens {
		if token == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(token)
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		return defaultInitials
	}
	return b.String()
}

// FormatDuration renders milliseconds as "M:SS".
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatDateForAPI renders t with its own offset ("2024-03-05T14:05:00+05:30")
// and escapes "+" as "%2B", since callers put the value straight into a query string.
func FormatDateForAPI(t time.Time) string {
	return strings.ReplaceAll(t.Format("2006-01-02T15:04:05-07:00"), "+", "%2B")
}
