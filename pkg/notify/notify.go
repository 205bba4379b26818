package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/harrisonrobin/tasknotify/pkg/config"
)

// Message is what a transport delivers for one due event.
type Message struct {
	Title   string
	Body    string
	EventID string
	Due     time.Time
}

// Notifier delivers a message. A nil error means the delivery succeeded.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, msg Message) error
}

// New builds the notifier for the configured transports. More than one
// transport yields a Multi.
func New(cfg config.NotifierConfig) (Notifier, error) {
	var notifiers []Notifier
	for _, name := range cfg.Transports {
		n, err := newTransport(strings.ToLower(strings.TrimSpace(name)), cfg)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, n)
	}
	switch len(notifiers) {
	case 0:
		return nil, fmt.Errorf("no notification transport configured")
	case 1:
		return notifiers[0], nil
	}
	return Multi(notifiers), nil
}

func newTransport(name string, cfg config.NotifierConfig) (Notifier, error) {
	switch name {
	case config.TransportNtfy:
		return NewNtfy(cfg.Ntfy), nil
	case config.TransportLocal:
		return NewLocal(cfg.Local), nil
	case config.TransportWidget:
		return NewWidget(cfg.Widget), nil
	case config.TransportTelegram:
		return NewTelegram(cfg.Telegram), nil
	case config.TransportCalendar:
		return NewCalendar(cfg.Calendar), nil
	}
	return nil, fmt.Errorf("unknown notification transport %q", name)
}

// Multi fans a message out to every notifier. It succeeds when at least one
// of them does.
type Multi []Notifier

func (m Multi) Name() string {
	names := make([]string, 0, len(m))
	for _, n := range m {
		names = append(names, n.Name())
	}
	return strings.Join(names, "+")
}

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	delivered := 0
	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			log.Printf("Warning: %s delivery failed: %v", n.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
			continue
		}
		delivered++
	}
	if delivered > 0 {
		return nil
	}
	return errors.Join(errs...)
}
