package notifylog

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Notification is one row of the SQLite-backed log.
type Notification struct {
	ID         string    `gorm:"primaryKey;size:26"`
	EventID    string    `gorm:"uniqueIndex;not null"`
	NotifiedAt time.Time `gorm:"not null"`
}

// SQLiteLog stores identities in a SQLite database.
type SQLiteLog struct {
	db *gorm.DB
}

// OpenSQLite opens (and migrates) the database at dsn.
func OpenSQLite(dsn string) (*SQLiteLog, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrNoPath
	}
	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("open notification db: %w", err)
	}
	if err := db.AutoMigrate(&Notification{}); err != nil {
		return nil, fmt.Errorf("migrate notification db: %w", err)
	}
	return &SQLiteLog{db: db}, nil
}

func (l *SQLiteLog) Contains(id string) (bool, error) {
	var n Notification
	err := l.db.Where("event_id = ?", id).Take(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *SQLiteLog) Append(id string) error {
	row := Notification{
		ID:         ulid.Make().String(),
		EventID:    id,
		NotifiedAt: time.Now(),
	}
	if err := l.db.Create(&row).Error; err != nil {
		return fmt.Errorf("record notification: %w", err)
	}
	return nil
}

func (l *SQLiteLog) List() ([]string, error) {
	var ids []string
	if err := l.db.Model(&Notification{}).Order("id").Pluck("event_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (l *SQLiteLog) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ensureDirForSQLite creates the parent dir of a file-backed DSN.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
