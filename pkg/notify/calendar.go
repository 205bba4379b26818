package notify

import (
	"context"
	"fmt"

	"github.com/harrisonrobin/tasknotify/pkg/config"
	"github.com/harrisonrobin/tasknotify/pkg/google"
)

// Calendar places the reminder on a Google Calendar as a short event with a
// popup at its start.
type Calendar struct {
	cfg    config.CalendarConfig
	client *google.CalendarClient
}

func NewCalendar(cfg config.CalendarConfig) *Calendar {
	return &Calendar{cfg: cfg}
}

func (c *Calendar) Name() string { return config.TransportCalendar }

func (c *Calendar) Notify(ctx context.Context, msg Message) error {
	if c.client == nil {
		client, err := google.NewClient(ctx, c.cfg.Name)
		if err != nil {
			return fmt.Errorf("calendar client: %w", err)
		}
		c.client = client
	}
	_, err := c.client.InsertReminder(ctx, google.Reminder{
		EventID: msg.EventID,
		Summary: msg.Title,
		Details: msg.Body,
		Start:   msg.Due,
	})
	return err
}
