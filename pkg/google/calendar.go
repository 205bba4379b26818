package google

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/calendar/v3"
)

const (
	eventIDProperty = "tasknotify_id"
	reminderLength  = 30 * time.Minute
)

// Reminder is a due task rendered as a calendar event.
type Reminder struct {
	EventID string
	Summary string
	Details string
	Start   time.Time
}

// CalendarClient is a Google Calendar API client bound to one calendar.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
}

func NewCalendarClient(srv *calendar.Service, calendarID string) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID}
}

// InsertReminder creates the event for r unless one tagged with r.EventID
// already exists, in which case the existing event is returned.
func (c *CalendarClient) InsertReminder(ctx context.Context, r Reminder) (*calendar.Event, error) {
	existing, err := c.GetEventByReminderID(ctx, r.EventID)
	if err != nil {
		return nil, fmt.Errorf("error searching for event: %w", err)
	}
	if existing != nil {
		log.Printf("Calendar event for %s already exists (%s).", r.EventID, existing.Id)
		return existing, nil
	}
	created, err := c.srv.Events.Insert(c.calendarID, ToEvent(r)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to insert event: %w", err)
	}
	return created, nil
}

// GetEventByReminderID looks up an event by its private extended property.
func (c *CalendarClient) GetEventByReminderID(ctx context.Context, id string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", eventIDProperty, id)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

// ToEvent converts a reminder into a calendar event with a popup at start.
func ToEvent(r Reminder) *calendar.Event {
	start := r.Start
	if start.IsZero() {
		start = time.Now()
	}
	return &calendar.Event{
		Summary:     r.Summary,
		Description: r.Details,
		Start:       &calendar.EventDateTime{DateTime: start.UTC().Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: start.Add(reminderLength).UTC().Format(time.RFC3339)},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{{
				Method:          "popup",
				Minutes:         0,
				ForceSendFields: []string{"Minutes"},
			}},
			ForceSendFields: []string{"UseDefault"},
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{eventIDProperty: r.EventID},
		},
	}
}
