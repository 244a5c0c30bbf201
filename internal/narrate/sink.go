package narrate

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Sink receives rendered narrative lines.
type Sink interface {
	Write(line string)
}

// Buffer collects lines in memory. It is safe for concurrent use.
type Buffer struct {
	mu    sync.Mutex
	lines []string
}

// Write appends line.
func (b *Buffer) Write(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
}

// Lines returns a copy of everything written so far.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// LogSink writes each line to a zap logger at info level.
type LogSink struct {
	Logger *zap.Logger
}

// Write logs line.
func (s LogSink) Write(line string) {
	s.Logger.Info("narrate", zap.String("line", line))
}

// WriterSink writes one line per call to an io.Writer, ignoring write errors.
type WriterSink struct {
	W io.Writer
}

// Write prints line followed by a newline.
func (s WriterSink) Write(line string) {
	_, _ = fmt.Fprintln(s.W, line)
}

// Discard drops every line.
type Discard struct{}

// Write does nothing.
func (Discard) Write(string) {}
