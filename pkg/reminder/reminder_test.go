package reminder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harrisonrobin/tasknotify/pkg/config"
	"github.com/harrisonrobin/tasknotify/pkg/notify"
	"github.com/harrisonrobin/tasknotify/pkg/notifylog"
)

type recordingNotifier struct {
	err      error
	messages []notify.Message
}

func (r *recordingNotifier) Name() string { return "recording" }

func (r *recordingNotifier) Notify(_ context.Context, msg notify.Message) error {
	r.messages = append(r.messages, msg)
	return r.err
}

// stalledNotifier never answers on its own and gives up only when ctx ends.
type stalledNotifier struct{}

func (stalledNotifier) Name() string { return "stalled" }

func (stalledNotifier) Notify(ctx context.Context, _ notify.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func newService(t *testing.T, content string, n notify.Notifier) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	outlinePath := filepath.Join(dir, "Tasks.md")
	if err := os.WriteFile(outlinePath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Schedule.Timezone = "UTC"
	cfg.Schedule.Window = 300 * time.Second
	cfg.Paths = config.PathsConfig{
		Outline:         outlinePath,
		OutputDir:       filepath.Join(dir, "out"),
		NotificationLog: filepath.Join(dir, "out", config.DefaultLogName),
	}

	store, err := notifylog.OpenFile(cfg.Paths.NotificationLog)
	if err != nil {
		t.Fatal(err)
	}
	svc, err := NewService(cfg, notifylog.NewDeduplicator(store), n)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc, cfg.Paths.NotificationLog
}

const rentOutline = "- TODO Pay rent\n  SCHEDULED: <2025-03-01 10:00>\n"

func TestRunNotifiesOnce(t *testing.T) {
	n := &recordingNotifier{}
	svc, logPath := newService(t, rentOutline, n)
	now := time.Date(2025, 3, 1, 9, 58, 0, 0, time.UTC)

	summary, err := svc.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Due != 1 || summary.Notified != 1 {
		t.Fatalf("Unexpected summary %+v", summary)
	}
	if len(n.messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(n.messages))
	}
	msg := n.messages[0]
	if msg.Title != "Task Reminder" || msg.Body != "Pay rent is due at 10:00!" {
		t.Errorf("Unexpected message %+v", msg)
	}
	if msg.EventID != "logseq_md_event_1_Pay_rent_202503011000" {
		t.Errorf("Unexpected event id %q", msg.EventID)
	}

	summary, err = svc.Run(context.Background(), now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if summary.Notified != 0 || summary.Skipped != 1 || len(n.messages) != 1 {
		t.Errorf("Expected the second run to skip, got %+v", summary)
	}

	b, _ := os.ReadFile(logPath)
	if string(b) != msg.EventID+"\n" {
		t.Errorf("Unexpected log contents %q", string(b))
	}
}

func TestRunPastDue(t *testing.T) {
	n := &recordingNotifier{}
	svc, _ := newService(t, rentOutline, n)

	summary, err := svc.Run(context.Background(), time.Date(2025, 3, 1, 10, 6, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Due != 0 || len(n.messages) != 0 {
		t.Errorf("Expected nothing due, got %+v", summary)
	}
}

func TestRunUnscheduledTask(t *testing.T) {
	n := &recordingNotifier{}
	svc, _ := newService(t, "TODO Buy milk\n", n)

	summary, err := svc.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Due != 0 || len(n.messages) != 0 {
		t.Errorf("Expected no events, got %+v", summary)
	}
}

func TestRunDeliveryFailureIsNotRetried(t *testing.T) {
	n := &recordingNotifier{err: errors.New("offline")}
	svc, _ := newService(t, rentOutline, n)
	now := time.Date(2025, 3, 1, 9, 58, 0, 0, time.UTC)

	summary, err := svc.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run should not fail on delivery errors: %v", err)
	}
	if summary.Failed != 1 {
		t.Errorf("Expected 1 failed delivery, got %+v", summary)
	}

	n.err = nil
	summary, _ = svc.Run(context.Background(), now)
	if summary.Skipped != 1 || len(n.messages) != 1 {
		t.Errorf("Expected the failed occurrence to stay suppressed, got %+v", summary)
	}
}

func TestRunDeliveryTimesOut(t *testing.T) {
	svc, _ := newService(t, rentOutline, stalledNotifier{})
	svc.timeout = 50 * time.Millisecond
	now := time.Date(2025, 3, 1, 9, 58, 0, 0, time.UTC)

	start := time.Now()
	summary, err := svc.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run should not fail on a stalled delivery: %v", err)
	}
	if summary.Failed != 1 || summary.Notified != 0 {
		t.Errorf("Expected the stalled delivery to count as failed, got %+v", summary)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Run took %s, expected the delivery timeout to apply", elapsed)
	}
}

func TestRunMissingOutline(t *testing.T) {
	svc, _ := newService(t, rentOutline, &recordingNotifier{})
	svc.paths.Outline = filepath.Join(t.TempDir(), "missing.md")

	if _, err := svc.Run(context.Background(), time.Now()); !errors.Is(err, ErrInputMissing) {
		t.Errorf("Expected ErrInputMissing, got %v", err)
	}
}
