package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Logger writes timestamped lines to a log file, or to stdout when no file
// was configured or the file could not be opened. Diagnostics from the
// sampling pipeline are informational only; a broken log target must never
// take the process down.
type Logger struct {
	writeFile *os.File
}

// NewLogger opens the given log file for appending. An empty path selects
// stdout. Open failures are reported once on stderr and fall back to stdout.
func NewLogger(logFile string) *Logger {
	logger := &Logger{}
	if logFile == "" {
		return logger
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log directory (%s): %v\n", logFile, err)
		return logger
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file (%s): %v\n", logFile, err)
		return logger
	}
	logger.writeFile = f
	return logger
}

// Write appends a timestamped message to the log (or stdout when no file).
func (l *Logger) Write(message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%s: %s\n", timestamp, message)
	if l != nil && l.writeFile != nil {
		l.writeFile.WriteString(line)
		l.writeFile.Sync()
		return
	}
	fmt.Print(line)
}

// Writef formats and writes a timestamped message.
func (l *Logger) Writef(format string, args ...interface{}) {
	l.Write(fmt.Sprintf(format, args...))
}

// Close releases the underlying file handle if one is open.
func (l *Logger) Close() {
	if l != nil && l.writeFile != nil {
		_ = l.writeFile.Close()
		l.writeFile = nil
	}
}
