// Package logging implements common.GameLogger on top of the standard log package
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andrescamacho/spacemining-go/internal/infrastructure/config"
)

// Log levels, lowest first
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// recentCapacity bounds the in-memory tail served to "logs" callers
const recentCapacity = 500

// LogEntry is one emitted log line
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Logger writes leveled entries as text or JSON lines and keeps a bounded
// tail of recent entries in memory
type Logger struct {
	mu       sync.RWMutex
	out      *log.Logger
	minLevel int
	json     bool
	recent   []LogEntry
	closer   io.Closer
}

// New creates a logger writing to w
func New(w io.Writer, level, format string) *Logger {
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank[LevelInfo]
	}
	return &Logger{
		out:      log.New(w, "", 0),
		minLevel: rank,
		json:     strings.EqualFold(format, "json"),
	}
}

// NewFromConfig creates a logger for the configured output
func NewFromConfig(cfg config.LoggingConfig) (*Logger, error) {
	var w io.Writer
	var closer io.Closer

	switch cfg.Output {
	case "stderr":
		w = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	default:
		w = os.Stdout
	}

	l := New(w, cfg.Level, cfg.Format)
	l.closer = closer
	if cfg.IncludeCaller {
		l.out.SetFlags(log.Lshortfile)
	}
	return l, nil
}

// Log implements common.GameLogger
func (l *Logger) Log(level, message string, metadata map[string]interface{}) {
	level = strings.ToUpper(level)
	rank, ok := levelRank[level]
	if !ok {
		level, rank = LevelInfo, levelRank[LevelInfo]
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Metadata:  metadata,
	}

	l.mu.Lock()
	l.recent = append(l.recent, entry)
	if len(l.recent) > recentCapacity {
		l.recent = l.recent[len(l.recent)-recentCapacity:]
	}
	l.mu.Unlock()

	if rank < l.minLevel {
		return
	}

	if l.json {
		data, err := json.Marshal(entry)
		if err != nil {
			l.out.Printf("[%s] %s: %s (metadata not encodable: %v)", entry.Timestamp.Format(time.RFC3339), level, message, err)
			return
		}
		l.out.Print(string(data))
		return
	}

	l.out.Printf("[%s] %s: %s%s", entry.Timestamp.Format(time.RFC3339), level, message, formatMetadata(metadata))
}

// Recent returns up to limit of the newest entries, oldest first, optionally
// restricted to one level. A limit of 0 returns the whole tail.
func (l *Logger) Recent(limit int, level string) []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	level = strings.ToUpper(level)
	filtered := make([]LogEntry, 0, len(l.recent))
	for _, entry := range l.recent {
		if level != "" && entry.Level != level {
			continue
		}
		filtered = append(filtered, entry)
	}

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func formatMetadata(metadata map[string]interface{}) string {
	if len(metadata) == 0 {
		return ""
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	return b.String()
}
