package publish

import (
	"strings"
	"time"
)

// DefaultMessage is used when the configured template leaves unresolved
// placeholders or is empty.
const DefaultMessage = "docs: add generated notes"

// formatMessage expands the commit message template. Supported variables:
// {date}, {time}, {datetime}, {count}, {topic}. Extra vars from the caller
// override none of the time variables.
func formatMessage(template string, now time.Time, vars map[string]string) string {
	if template == "" {
		return DefaultMessage
	}

	pairs := []string{
		"{date}", now.Format("2006-01-02"),
		"{time}", now.Format("15:04"),
		"{datetime}", now.Format("2006-01-02 15:04:05"),
	}
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}

	msg := strings.NewReplacer(pairs...).Replace(template)
	if strings.Contains(msg, "{") && strings.Contains(msg, "}") {
		return DefaultMessage
	}
	return msg
}
