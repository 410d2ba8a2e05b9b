package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBufferAppendf(t *testing.T) {
	buf := NewLogBuffer()
	buf.now = func() time.Time {
		return time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC)
	}

	buf.Appendf("batch started: %d topics", 3)

	lines := buf.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "[14:30:05] batch started: 3 topics", lines[0])
}

func TestLogBufferEviction(t *testing.T) {
	buf := NewLogBuffer()

	for i := 0; i < logBufferCap+10; i++ {
		buf.Appendf("line %d", i)
	}

	lines := buf.Lines()
	require.Len(t, lines, logBufferCap)
	assert.Contains(t, lines[0], "line 10", "oldest lines evicted")
	assert.Contains(t, lines[len(lines)-1], fmt.Sprintf("line %d", logBufferCap+9))
}

func TestLogBufferLinesReturnsCopy(t *testing.T) {
	buf := NewLogBuffer()
	buf.Appendf("original")

	lines := buf.Lines()
	lines[0] = "mutated"

	assert.Contains(t, buf.Lines()[0], "original")
}
