package util

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		text   string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"hello world again", 10, "hello..."},
		{"abcdefghijklmnop", 10, "abcdefg..."},
		{"anything", 2, ".."},
		{"anything", 0, ""},
		{"anything", 3, "..."},
		{"", 0, ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.text, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.maxLen, got, tt.want)
		}
	}
}

func TestTruncateLongDescription(t *testing.T) {
	desc := "A very very very long task description that exceeds forty characters easily"
	got := Truncate(desc, 20)
	if got != "A very very very..." {
		t.Errorf("Expected 'A very very very...', got %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected ellipsis suffix, got %q", got)
	}
}

func TestTruncateNeverExceedsLimit(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"no-spaces-at-all-in-this-rather-long-string",
		"words with spaces everywhere in it",
		"   leading spaces",
		"ünïcödé wörds häre and there",
	}
	for _, in := range inputs {
		for maxLen := 0; maxLen <= 50; maxLen++ {
			got := Truncate(in, maxLen)
			if n := utf8.RuneCountInString(got); n > maxLen {
				t.Fatalf("Truncate(%q, %d) returned %d characters: %q", in, maxLen, n, got)
			}
		}
	}
}

func TestReminderBody(t *testing.T) {
	due := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	got := ReminderBody("Pay rent", due, 100)
	if got != "Pay rent is due at 10:00!" {
		t.Errorf("Unexpected body %q", got)
	}
}
