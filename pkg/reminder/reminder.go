package reminder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/harrisonrobin/tasknotify/pkg/config"
	"github.com/harrisonrobin/tasknotify/pkg/due"
	"github.com/harrisonrobin/tasknotify/pkg/model"
	"github.com/harrisonrobin/tasknotify/pkg/notify"
	"github.com/harrisonrobin/tasknotify/pkg/notifylog"
	"github.com/harrisonrobin/tasknotify/pkg/outline"
	"github.com/harrisonrobin/tasknotify/pkg/util"
)

// ErrInputMissing is returned when the outline file does not exist.
var ErrInputMissing = errors.New("outline file not found")

// DefaultDeliveryTimeout bounds a single notifier call.
const DefaultDeliveryTimeout = 30 * time.Second

// Summary counts what one run did.
type Summary struct {
	Tasks     int
	Scheduled int
	Due       int
	Notified  int
	Skipped   int
	Failed    int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d tasks, %d scheduled, %d due soon, %d notified, %d already sent, %d failed deliveries",
		s.Tasks, s.Scheduled, s.Due, s.Notified, s.Skipped, s.Failed)
}

// Service runs one scan-and-notify pass over an outline file.
type Service struct {
	paths    config.PathsConfig
	message  config.MessageConfig
	selector due.Selector
	loc      *time.Location
	dedup    *notifylog.Deduplicator
	notifier notify.Notifier
	timeout  time.Duration
}

func NewService(cfg *config.Config, dedup *notifylog.Deduplicator, notifier notify.Notifier) (*Service, error) {
	loc, err := cfg.Schedule.Location()
	if err != nil {
		return nil, err
	}
	return &Service{
		paths:    cfg.Paths,
		message:  cfg.Message,
		selector: due.NewSelector(cfg.Schedule.Window, cfg.Identity.Namespace, cfg.Identity.PrefixLen),
		loc:      loc,
		dedup:    dedup,
		notifier: notifier,
		timeout:  DefaultDeliveryTimeout,
	}, nil
}

// Run scans the outline and notifies every due task that was not notified
// before. Only missing or unreadable input is returned as an error; delivery
// problems are logged and counted.
func (s *Service) Run(ctx context.Context, now time.Time) (Summary, error) {
	var summary Summary

	tasks, err := s.loadTasks()
	if err != nil {
		return summary, err
	}
	summary.Tasks = len(tasks)
	for _, t := range tasks {
		if t.IsScheduled() {
			summary.Scheduled++
		}
	}

	events := s.selector.Select(now.In(s.loc), tasks)
	summary.Due = len(events)
	log.Printf("Found %d scheduled tasks, %d due within %s.", summary.Scheduled, summary.Due, s.selector.Window)

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		log.Printf("Task '%s' scheduled for %s is due soon.", util.Truncate(event.Task.Description, 50), event.Task.Scheduled.Format("2006-01-02 15:04"))

		if !s.dedup.ShouldNotify(event.ID) {
			summary.Skipped++
			continue
		}
		if err := s.deliver(ctx, event); err != nil {
			// The id stays recorded; this occurrence is not retried.
			log.Printf("Warning: %s delivery for %s failed: %v", s.notifier.Name(), event.ID, err)
			summary.Failed++
			continue
		}
		summary.Notified++
	}
	return summary, nil
}

func (s *Service) deliver(ctx context.Context, event model.DueEvent) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.notifier.Notify(ctx, s.messageFor(event))
}

func (s *Service) loadTasks() ([]model.Task, error) {
	if _, err := os.Stat(s.paths.Outline); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, s.paths.Outline)
		}
		return nil, fmt.Errorf("could not access outline %s: %w", s.paths.Outline, err)
	}
	if s.paths.OutputDir != "" {
		if err := os.MkdirAll(s.paths.OutputDir, 0700); err != nil {
			return nil, fmt.Errorf("error creating output directory %s: %w", s.paths.OutputDir, err)
		}
	}
	tasks, err := outline.ParseFile(s.paths.Outline, s.loc)
	if err != nil {
		return nil, fmt.Errorf("error reading outline %s: %w", s.paths.Outline, err)
	}
	return tasks, nil
}

func (s *Service) messageFor(event model.DueEvent) notify.Message {
	return notify.Message{
		Title:   s.message.Title,
		Body:    util.ReminderBody(event.Task.Description, *event.Task.Scheduled, s.message.MaxLen),
		EventID: event.ID,
		Due:     *event.Task.Scheduled,
	}
}
