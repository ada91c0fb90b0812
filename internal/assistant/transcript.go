package assistant

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// TranscriptEvent is one assistant exchange written to a user's transcript.
type TranscriptEvent struct {
	Timestamp string `json:"ts"`
	UserID    int64  `json:"user_id"`
	Channel   string `json:"channel"`
	Query     string `json:"query"`
	Response  string `json:"response"`
	Intent    string `json:"intent"`
	QueryID   int64  `json:"query_id,omitempty"`
}

// Transcript records assistant exchanges outside the database.
type Transcript interface {
	Log(event TranscriptEvent)
	Close() error
}

// TranscriptConfig controls NDJSON transcript logging.
type TranscriptConfig struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// NewTranscript returns a file-backed transcript writer, or a no-op writer
// when logging is disabled.
func NewTranscript(cfg TranscriptConfig, logger *slog.Logger) (Transcript, error) {
	if !cfg.Enabled {
		return noopTranscript{}, nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}

	t := &fileTranscript{
		dir:    cfg.Dir,
		queue:  make(chan TranscriptEvent, cfg.QueueSize),
		files:  make(map[int64]*os.File),
		logger: logger,
	}
	t.wg.Add(1)
	go t.run()
	return t, nil
}

type noopTranscript struct{}

func (noopTranscript) Log(TranscriptEvent) {}
func (noopTranscript) Close() error        { return nil }

// fileTranscript appends one JSON object per line to <dir>/<user_id>.ndjson.
// Events are written by a single goroutine; a full queue drops events.
type fileTranscript struct {
	dir    string
	queue  chan TranscriptEvent
	files  map[int64]*os.File
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func (t *fileTranscript) Log(event TranscriptEvent) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return
	}
	select {
	case t.queue <- event:
	default:
		t.logger.Warn("Transcript queue full, dropping event", "user_id", event.UserID)
	}
}

func (t *fileTranscript) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	close(t.queue)
	t.mu.Unlock()

	t.wg.Wait()

	var firstErr error
	for userID, f := range t.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close transcript for user %d: %w", userID, err)
		}
	}
	return firstErr
}

func (t *fileTranscript) run() {
	defer t.wg.Done()
	for event := range t.queue {
		if err := t.write(event); err != nil {
			t.logger.Warn("Failed to write transcript event", "user_id", event.UserID, "error", err)
		}
	}
}

func (t *fileTranscript) write(event TranscriptEvent) error {
	f, ok := t.files[event.UserID]
	if !ok {
		path := filepath.Join(t.dir, strconv.FormatInt(event.UserID, 10)+".ndjson")
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		t.files[event.UserID] = f
	}

	line, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = f.Write(append(line, '\n'))
	return err
}
