// Package report writes the operator-facing category log files and the cycle
// summary.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileLog appends timestamped lines to per-category log files (polymarket.log,
// trade_timing.log, source_fetch_times.log). Write failures are swallowed:
// the log files are diagnostics, never part of the pipeline.
type FileLog struct {
	mu    sync.Mutex
	dir   string
	files map[string]*os.File
}

// NewFileLog creates a file logger rooted at dir, creating it if needed.
func NewFileLog(dir string) (*FileLog, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return &FileLog{dir: dir, files: make(map[string]*os.File)}, nil
}

// Append writes one timestamped line to the named category file.
func (f *FileLog) Append(category, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, ok := f.files[category]
	if !ok {
		var err error
		file, err = os.OpenFile(filepath.Join(f.dir, category), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		f.files[category] = file
	}

	line := fmt.Sprintf("%s - %s\n", time.Now().Format("2006-01-02 15:04:05"), message)
	_, _ = file.WriteString(line)
}

// Close releases all open category files.
func (f *FileLog) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var firstErr error
	for name, file := range f.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(f.files, name)
	}
	return firstErr
}

// ExtractDomain pulls the host out of a source URL for display.
func ExtractDomain(url string) string {
	parts := strings.SplitN(url, "//", 2)
	if len(parts) == 2 {
		if host := strings.SplitN(parts[1], "/", 2)[0]; host != "" {
			return host
		}
	}
	return "unknown-source"
}
