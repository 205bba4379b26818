package notifylog

import (
	"errors"
	"log"
)

// ErrNoPath is returned when a log is used without a configured location.
var ErrNoPath = errors.New("notification log path is not configured")

// Store is an append-only set of identities that were already notified.
type Store interface {
	// Contains reports whether id was appended before.
	Contains(id string) (bool, error)
	// Append records id. Each call is a single self-contained write.
	Append(id string) error
	// List returns every recorded identity in the order they were written.
	List() ([]string, error)
	Close() error
}

// Deduplicator decides, once per identity, whether a notification may fire.
type Deduplicator struct {
	store Store
}

func NewDeduplicator(store Store) *Deduplicator {
	return &Deduplicator{store: store}
}

// ShouldNotify returns true exactly when id was not seen before and has now
// been recorded. It returns false when the id is known or cannot be recorded.
func (d *Deduplicator) ShouldNotify(id string) bool {
	if d == nil || d.store == nil {
		log.Println("Error: notification log is not configured.")
		return false
	}
	if id == "" {
		log.Println("Error: refusing to record an empty event ID.")
		return false
	}

	seen, err := d.store.Contains(id)
	if err != nil {
		// A log that exists but cannot be read may already hold id.
		log.Printf("Error reading notification log: %v", err)
		return false
	}
	if seen {
		log.Printf("Notification previously sent for event ID: %s.", id)
		return false
	}

	if err := d.store.Append(id); err != nil {
		log.Printf("Error writing to notification log: %v", err)
		return false
	}
	log.Printf("Notification for event ID %s marked as sent.", id)
	return true
}

// ShouldNotify is a convenience for a one-off check against a file log.
func ShouldNotify(logPath, id string) bool {
	store, err := OpenFile(logPath)
	if err != nil {
		log.Printf("Error: could not open notification log %q: %v", logPath, err)
		return false
	}
	defer store.Close()
	return NewDeduplicator(store).ShouldNotify(id)
}

// Open returns the store for backend: "sqlite" uses sqlitePath, anything
// else the plain text file at filePath.
func Open(backend, filePath, sqlitePath string) (Store, error) {
	if backend == "sqlite" {
		return OpenSQLite(sqlitePath)
	}
	return OpenFile(filePath)
}
