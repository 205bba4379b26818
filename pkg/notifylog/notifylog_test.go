package notifylog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestShouldNotifyOncePerID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tracker.txt")

	if !ShouldNotify(path, "event_1") {
		t.Fatal("Expected first call to return true")
	}
	if ShouldNotify(path, "event_1") {
		t.Error("Expected second call with the same id to return false")
	}
	if !ShouldNotify(path, "event_2") {
		t.Error("Expected a new id to return true")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(b) != "event_1\nevent_2\n" {
		t.Errorf("Unexpected log contents %q", string(b))
	}
}

func TestShouldNotifyMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.txt")
	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	seen, err := store.Contains("anything")
	if err != nil || seen {
		t.Errorf("Contains on missing file = (%v, %v), want (false, nil)", seen, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected file to be created lazily, stat err = %v", err)
	}
}

func TestShouldNotifyFailsClosedWithoutPath(t *testing.T) {
	if ShouldNotify("", "event_1") {
		t.Error("Expected false for an unset path")
	}
	var d *Deduplicator
	if d.ShouldNotify("event_1") {
		t.Error("Expected false for a nil deduplicator")
	}
}

func TestShouldNotifyFailsClosedWhenDirCannotBeCreated(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if ShouldNotify(filepath.Join(blocker, "tracker.txt"), "event_1") {
		t.Error("Expected false when the log directory cannot be created")
	}
}

func TestFileLogIgnoresSurroundingWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.txt")
	if err := os.WriteFile(path, []byte("event_1  \r\n\nevent_2\n"), 0600); err != nil {
		t.Fatal(err)
	}
	store, _ := OpenFile(path)
	d := NewDeduplicator(store)
	if d.ShouldNotify("event_1") || d.ShouldNotify("event_2") {
		t.Error("Expected existing ids to be recognised")
	}
	ids, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if strings.Join(ids, ",") != "event_1,event_2" {
		t.Errorf("Unexpected ids %v", ids)
	}
}

func TestFileLogRejectsLineBreaks(t *testing.T) {
	store, _ := OpenFile(filepath.Join(t.TempDir(), "tracker.txt"))
	if err := store.Append("bad\nid"); err == nil {
		t.Error("Expected an error for an id containing a newline")
	}
}

func TestShouldNotifyRejectsEmptyID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.txt")
	if ShouldNotify(path, "") {
		t.Error("Expected false for an empty id")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected no log file to be written, stat err = %v", err)
	}
}

func TestFileLogReadsLongLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.txt")
	long := strings.Repeat("x", 100*1024)
	if err := os.WriteFile(path, []byte(long+"\nevent_1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	store, _ := OpenFile(path)
	if NewDeduplicator(store).ShouldNotify("event_1") {
		t.Error("Expected an id after a long line to be recognised")
	}
}

func TestShouldNotifyFailsClosedWhenLogUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.txt")
	oversized := strings.Repeat("x", maxLineSize+1)
	if err := os.WriteFile(path, []byte(oversized+"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	store, _ := OpenFile(path)
	if NewDeduplicator(store).ShouldNotify("event_1") {
		t.Error("Expected false when the log cannot be read")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "event_1") {
		t.Error("Expected nothing to be appended to an unreadable log")
	}

	dirPath := t.TempDir()
	if NewDeduplicator(&FileLog{Path: dirPath}).ShouldNotify("event_1") {
		t.Error("Expected false when the log path is a directory")
	}
}

func TestSQLiteLog(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "notifications.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer store.Close()

	d := NewDeduplicator(store)
	if !d.ShouldNotify("event_1") {
		t.Fatal("Expected first call to return true")
	}
	if d.ShouldNotify("event_1") {
		t.Error("Expected second call to return false")
	}
	if !d.ShouldNotify("event_2") {
		t.Error("Expected new id to return true")
	}
	ids, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("Expected 2 ids, got %v", ids)
	}
}
