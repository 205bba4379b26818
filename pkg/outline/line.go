package outline

import (
	"regexp"
	"strings"
)

// DefaultTime is used when a schedule annotation carries a date only.
const DefaultTime = "00:00"

var (
	todoRegex     = regexp.MustCompile(`(?i)^(?:-\s*)?TODO\s+(.+)`)
	scheduleRegex = regexp.MustCompile(`(?i)SCHEDULED:.*?<(\d{4}-\d{2}-\d{2})[^>]*?(\d{2}:\d{2})?>`)
)

// ParseTaskLine returns the description of a task-start line. Both "- TODO x"
// and "TODO x" are accepted, case-insensitively.
func ParseTaskLine(line string) (string, bool) {
	matches := todoRegex.FindStringSubmatch(strings.TrimSpace(line))
	if matches == nil {
		return "", false
	}
	desc := strings.TrimSpace(matches[1])
	if desc == "" {
		return "", false
	}
	return desc, true
}

// ParseScheduleLine extracts the date and time of a "SCHEDULED: <...>"
// annotation. The time falls back to DefaultTime. Both values are empty when
// the line has no annotation.
func ParseScheduleLine(line string) (date, clock string) {
	matches := scheduleRegex.FindStringSubmatch(line)
	if matches == nil {
		return "", ""
	}
	clock = matches[2]
	if clock == "" {
		clock = DefaultTime
	}
	return matches[1], clock
}

func hasScheduleKeyword(line string) bool {
	return strings.Contains(strings.ToUpper(line), "SCHEDULED:")
}

// isContinuation reports whether raw still belongs to the currently open task:
// blank, indented, a sub-bullet or a schedule annotation.
func isContinuation(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t") {
		return true
	}
	return strings.HasPrefix(trimmed, "-") || strings.HasPrefix(strings.ToUpper(trimmed), "SCHEDULED:")
}
