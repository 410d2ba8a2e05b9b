package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// TriggerKind identifies how a job's fire times are computed.
type TriggerKind string

const (
	// TriggerDaily fires once a day at a fixed anchor time.
	TriggerDaily TriggerKind = "daily"
	// TriggerInterval fires at a fixed period.
	TriggerInterval TriggerKind = "interval"
)

// Trigger is the tagged rule determining when a job fires. Anchor is set for
// daily triggers ("HH:MM"), Period for interval triggers.
type Trigger struct {
	Kind   TriggerKind
	Anchor string
	Period time.Duration
}

// Daily returns a trigger firing every day at the given "HH:MM" anchor.
func Daily(anchor string) Trigger {
	return Trigger{Kind: TriggerDaily, Anchor: anchor}
}

// Interval returns a trigger firing every period.
func Interval(period time.Duration) Trigger {
	return Trigger{Kind: TriggerInterval, Period: period}
}

// schedule validates the trigger and maps it to a cron schedule. A daily
// anchor becomes the standard spec "M H * * *", whose first fire is the next
// occurrence of the anchor (today if still in the future, else tomorrow).
func (t Trigger) schedule() (cron.Schedule, error) {
	switch t.Kind {
	case TriggerDaily:
		hour, minute, err := parseAnchor(t.Anchor)
		if err != nil {
			return nil, err
		}
		sched, err := cron.ParseStandard(fmt.Sprintf("%d %d * * *", minute, hour))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		return sched, nil
	case TriggerInterval:
		if t.Period < time.Second {
			return nil, fmt.Errorf("%w: interval period must be at least 1s, got %s", ErrConfiguration, t.Period)
		}
		return cron.Every(t.Period), nil
	default:
		return nil, fmt.Errorf("%w: unknown trigger kind %q", ErrConfiguration, t.Kind)
	}
}

func (t Trigger) String() string {
	switch t.Kind {
	case TriggerDaily:
		return fmt.Sprintf("daily at %s", t.Anchor)
	case TriggerInterval:
		return fmt.Sprintf("every %s", t.Period)
	default:
		return string(t.Kind)
	}
}

// parseAnchor parses a "HH:MM" anchor time.
func parseAnchor(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: anchor time must be HH:MM, got %q", ErrConfiguration, s)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid hour in %q", ErrConfiguration, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid minute in %q", ErrConfiguration, s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: anchor time %q out of range", ErrConfiguration, s)
	}

	return hour, minute, nil
}
