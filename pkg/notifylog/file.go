package notifylog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxLineSize bounds a single log line; longer lines make the log unreadable.
const maxLineSize = 1024 * 1024

// FileLog keeps one identity per line in a plain text file. The file is
// created lazily on the first append and is never rewritten.
type FileLog struct {
	Path string
}

// OpenFile prepares a FileLog at path, creating its parent directory.
func OpenFile(path string) (*FileLog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoPath
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create notification log directory %s: %w", dir, err)
		}
	}
	return &FileLog{Path: path}, nil
}

func (l *FileLog) Contains(id string) (bool, error) {
	ids, err := l.read()
	if err != nil {
		return false, err
	}
	_, ok := ids[id]
	return ok, nil
}

func (l *FileLog) Append(id string) error {
	if strings.ContainsAny(id, "\r\n") {
		return fmt.Errorf("identity %q contains a line break", id)
	}
	f, err := os.OpenFile(l.Path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("failed to open notification log %s: %w", l.Path, err)
	}
	if _, err := f.WriteString(id + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to notification log %s: %w", l.Path, err)
	}
	return f.Close()
}

func (l *FileLog) List() ([]string, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if id := strings.TrimSpace(scanner.Text()); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, scanner.Err()
}

func (l *FileLog) Close() error { return nil }

func (l *FileLog) read() (map[string]struct{}, error) {
	ids, err := l.List()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
