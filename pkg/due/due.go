package due

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/harrisonrobin/tasknotify/pkg/model"
)

const (
	DefaultWindow    = 5 * time.Minute
	DefaultNamespace = "logseq_md_event"
	DefaultPrefixLen = 30

	idTimeLayout = "200601021504"
)

var (
	unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_\s\v\x{85}\p{Z}-]`)
	whitespace  = regexp.MustCompile(`[\s\v\x{85}\p{Z}]+`)
)

// Status describes where a task sits relative to now.
type Status string

const (
	Unscheduled Status = "unscheduled"
	Overdue     Status = "overdue"
	DueSoon     Status = "due soon"
	Upcoming    Status = "upcoming"
)

// Selector picks the tasks whose schedule falls inside [now, now+Window].
type Selector struct {
	Window    time.Duration
	Namespace string
	PrefixLen int
}

// NewSelector returns a Selector, substituting defaults for zero values.
func NewSelector(window time.Duration, namespace string, prefixLen int) Selector {
	if window <= 0 {
		window = DefaultWindow
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if prefixLen <= 0 {
		prefixLen = DefaultPrefixLen
	}
	return Selector{Window: window, Namespace: namespace, PrefixLen: prefixLen}
}

// Select returns a DueEvent for every scheduled task inside the window, in
// input order.
func (s Selector) Select(now time.Time, tasks []model.Task) []model.DueEvent {
	var events []model.DueEvent
	for _, task := range tasks {
		if s.Classify(now, task) != DueSoon {
			continue
		}
		events = append(events, model.DueEvent{Task: task, ID: s.EventID(task)})
	}
	return events
}

// Classify reports the status of task at now.
func (s Selector) Classify(now time.Time, task model.Task) Status {
	if !task.IsScheduled() {
		return Unscheduled
	}
	diff := task.Scheduled.Sub(now)
	switch {
	case diff < 0:
		return Overdue
	case diff <= s.Window:
		return DueSoon
	default:
		return Upcoming
	}
}

// EventID derives the deduplication identity of a scheduled task. It is
// stable across runs for the same line, description and schedule.
func (s Selector) EventID(task model.Task) string {
	stamp := "unscheduled"
	if task.IsScheduled() {
		stamp = task.Scheduled.Format(idTimeLayout)
	}
	return fmt.Sprintf("%s_%d_%s_%s", s.Namespace, task.Line, Sanitize(task.Description, s.PrefixLen), stamp)
}

// Sanitize keeps letters, digits, underscores, hyphens and whitespace, joins
// whitespace runs with a single underscore and cuts the result to prefixLen
// characters.
func Sanitize(description string, prefixLen int) string {
	cleaned := unsafeChars.ReplaceAllString(description, "")
	cleaned = whitespace.ReplaceAllString(strings.TrimSpace(cleaned), "_")
	runes := []rune(cleaned)
	if prefixLen >= 0 && len(runes) > prefixLen {
		runes = runes[:prefixLen]
	}
	return string(runes)
}
