package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrisonrobin/tasknotify/pkg/config"
)

// WidgetEntry is one line rendered by the home-screen widget.
type WidgetEntry struct {
	Title   string    `yaml:"title"`
	Body    string    `yaml:"body"`
	EventID string    `yaml:"event_id"`
	Due     time.Time `yaml:"due"`
	Sent    time.Time `yaml:"sent"`
}

type widgetFile struct {
	Updated time.Time     `yaml:"updated"`
	Entries []WidgetEntry `yaml:"entries"`
}

// Widget keeps the most recent notifications in a file a widget displays.
type Widget struct {
	path string
	keep int
	now  func() time.Time
}

func NewWidget(cfg config.WidgetConfig) *Widget {
	keep := cfg.Keep
	if keep <= 0 {
		keep = 5
	}
	return &Widget{path: cfg.Path, keep: keep, now: time.Now}
}

func (w *Widget) Name() string { return config.TransportWidget }

func (w *Widget) Notify(_ context.Context, msg Message) error {
	if w.path == "" {
		return fmt.Errorf("widget path is not configured")
	}
	state, err := w.load()
	if err != nil {
		return err
	}

	now := w.now()
	entries := append([]WidgetEntry{{
		Title:   msg.Title,
		Body:    msg.Body,
		EventID: msg.EventID,
		Due:     msg.Due,
		Sent:    now,
	}}, state.Entries...)
	if len(entries) > w.keep {
		entries = entries[:w.keep]
	}
	return w.save(widgetFile{Updated: now, Entries: entries})
}

// Entries returns the rendered notifications, newest first.
func (w *Widget) Entries() ([]WidgetEntry, error) {
	state, err := w.load()
	return state.Entries, err
}

func (w *Widget) load() (widgetFile, error) {
	var state widgetFile
	b, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("failed to read widget file: %w", err)
	}
	if err := yaml.Unmarshal(b, &state); err != nil {
		return widgetFile{}, fmt.Errorf("failed to decode widget file: %w", err)
	}
	return state, nil
}

func (w *Widget) save(state widgetFile) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0700); err != nil {
		return fmt.Errorf("failed to create widget directory: %w", err)
	}
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode widget file: %w", err)
	}
	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write widget file: %w", err)
	}
	return os.Rename(tmp, w.path)
}
