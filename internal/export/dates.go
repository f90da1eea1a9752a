package export

import (
	"net/mail"
)

const unknownDate = "unknown date"

// FormatDate reduces a raw feed timestamp to a YYYY-MM-DD display
// form. Feed dates arrive in whatever shape the publisher emitted, so
// this tries the cheap ISO prefix first, then RFC 2822, and falls back
// to a truncated copy of the raw value rather than failing.
func FormatDate(raw *string) string {
	if raw == nil || *raw == "" {
		return unknownDate
	}
	s := *raw
	if len(s) >= 10 && s[4] == '-' {
		return s[:10]
	}
	if t, err := mail.ParseDate(s); err == nil {
		return t.Format("2006-01-02")
	}
	if runes := []rune(s); len(runes) > 20 {
		return string(runes[:20])
	}
	return s
}
