// Package notify delivers batch completion notifications.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/noteforge/noteforge/internal/logger"
	"github.com/noteforge/noteforge/internal/schedule"
)

// Notifier delivers the outcome of one finished batch.
type Notifier interface {
	BatchFinished(ctx context.Context, summary schedule.Summary) error
}

// Multi fans a notification out to several notifiers. Delivery failures are
// logged and do not stop the remaining notifiers.
type Multi struct {
	notifiers []Notifier
	logger    *logger.Logger
}

// NewMulti creates a fan-out notifier. Nil entries are skipped.
func NewMulti(log *logger.Logger, notifiers ...Notifier) *Multi {
	m := &Multi{logger: log}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

func (m *Multi) BatchFinished(ctx context.Context, summary schedule.Summary) error {
	for _, n := range m.notifiers {
		if err := n.BatchFinished(ctx, summary); err != nil {
			m.logger.Warn("notification delivery failed",
				logger.Field{Key: "batch_id", Value: summary.BatchID},
				logger.Field{Key: "error", Value: err.Error()})
		}
	}
	return nil
}

// formatSummary renders the batch outcome as a short human-readable report.
func formatSummary(s schedule.Summary) string {
	var b strings.Builder

	if s.Failed == 0 {
		b.WriteString("✅ Batch finished\n")
	} else if s.Success == 0 {
		b.WriteString("❌ Batch failed\n")
	} else {
		b.WriteString("⚠️ Batch finished with errors\n")
	}

	fmt.Fprintf(&b, "Topics: %d total, %d succeeded, %d failed\n", s.Total, s.Success, s.Failed)
	fmt.Fprintf(&b, "Duration: %s", s.Duration.Round(timeRound))

	for _, e := range s.Errors {
		b.WriteString("\n• ")
		b.WriteString(e)
	}
	return b.String()
}
