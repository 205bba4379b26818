package util

import (
	"fmt"
	"time"
	"unicode"
)

const ellipsis = "..."

// Truncate shortens text to at most maxLen characters, preferring to cut at
// the last whitespace before the limit and ending with "...".
func Truncate(text string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen < len(ellipsis) {
		return ellipsis[:maxLen]
	}

	truncated := runes[:maxLen-len(ellipsis)]
	for i := len(truncated) - 1; i >= 0; i-- {
		if unicode.IsSpace(truncated[i]) {
			return string(truncated[:i]) + ellipsis
		}
	}
	return string(truncated) + ellipsis
}

// ReminderBody renders the notification text for a task due at the given time.
func ReminderBody(description string, due time.Time, maxLen int) string {
	return fmt.Sprintf("%s is due at %s!", Truncate(description, maxLen), due.Format("15:04"))
}
