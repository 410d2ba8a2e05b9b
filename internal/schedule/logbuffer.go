package schedule

import (
	"fmt"
	"sync"
	"time"
)

// logBufferCap bounds the diagnostic trace. Same FIFO eviction as history.
const logBufferCap = 100

// LogBuffer keeps a bounded, timestamped, human-readable trace of pipeline
// progress for the presentation layer. It is never consulted for
// correctness decisions.
type LogBuffer struct {
	mu    sync.Mutex
	lines []string
	now   func() time.Time
}

// NewLogBuffer creates an empty log buffer.
func NewLogBuffer() *LogBuffer {
	return &LogBuffer{now: time.Now}
}

// Appendf formats a line, prefixes it with the current time and appends it,
// evicting the oldest line beyond the cap.
func (b *LogBuffer) Appendf(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	line := fmt.Sprintf("[%s] %s", b.now().Format("15:04:05"), fmt.Sprintf(format, args...))
	b.lines = append(b.lines, line)
	if excess := len(b.lines) - logBufferCap; excess > 0 {
		b.lines = append(b.lines[:0:0], b.lines[excess:]...)
	}
}

// Lines returns a copy of the retained lines, oldest first.
func (b *LogBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// Len returns the number of retained lines.
func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}
