package outline

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/harrisonrobin/tasknotify/pkg/model"
)

const scheduleLayout = "2006-01-02 15:04"

// ParseFile reads an outline file and returns its tasks.
func ParseFile(filePath string, loc *time.Location) ([]model.Task, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, loc)
}

// Parse reads all lines from r and extracts tasks from them.
func Parse(r io.Reader, loc *time.Location) ([]model.Task, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read outline: %w", err)
	}
	return Extract(lines, loc), nil
}

type openTask struct {
	description string
	line        int
}

// Extract walks lines once and binds each task to at most one schedule.
//
// A task is emitted when it is closed: by the next task-start line, by a
// schedule annotation that parses, or by a line that is not a continuation.
// A task still open at the end of input is not emitted.
func Extract(lines []string, loc *time.Location) []model.Task {
	if loc == nil {
		loc = time.Local
	}
	var tasks []model.Task
	var current *openTask

	closeUnscheduled := func() {
		if current != nil {
			tasks = append(tasks, model.Task{Description: current.description, Line: current.line})
			current = nil
		}
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		desc, isTask := ParseTaskLine(line)
		if isTask {
			closeUnscheduled()
			current = &openTask{description: desc, line: i + 1}
		}

		if current != nil && hasScheduleKeyword(line) {
			scheduled, err := parseSchedule(line, loc)
			if err != nil {
				log.Printf("Warning: could not parse schedule for task '%s' (line %d): %v. Line: '%s'", current.description, i+1, err, line)
				continue
			}
			tasks = append(tasks, model.Task{Description: current.description, Scheduled: &scheduled, Line: current.line})
			current = nil
			continue
		}

		if !isTask && !isContinuation(raw) {
			closeUnscheduled()
		}
	}

	return tasks
}

func parseSchedule(line string, loc *time.Location) (time.Time, error) {
	date, clock := ParseScheduleLine(line)
	if date == "" {
		return time.Time{}, fmt.Errorf("no date in schedule annotation")
	}
	return time.ParseInLocation(scheduleLayout, date+" "+clock, loc)
}
