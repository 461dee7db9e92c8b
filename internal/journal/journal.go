// Package journal appends pipeline events to a plain text file, one
// "[timestamp] message" line per event. The file is write-only from the
// pipeline's perspective and a failed write never disturbs the scan loop.
package journal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Writer appends timestamped lines to a log file
type Writer struct {
	mu   sync.Mutex
	file *os.File
}

// Open creates or appends to the journal file at path. An empty path
// disables the journal; Append becomes a no-op.
func Open(path string) (*Writer, error) {
	if path == "" {
		return &Writer{}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	return &Writer{file: file}, nil
}

// Append writes one event line, best-effort
func (w *Writer) Append(format string, args ...interface{}) {
	if w == nil || w.file == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	line := fmt.Sprintf("[%s] %s\n", time.Now().UTC().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
	if _, err := w.file.WriteString(line); err != nil {
		log.Warn().Err(err).Msg("journal write failed")
	}
}

// Close releases the underlying file
func (w *Writer) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	return w.file.Close()
}
