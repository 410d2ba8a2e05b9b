package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchOf(id string, outcomes ...TopicOutcome) BatchResult {
	res := BatchResult{ID: id, Outcomes: outcomes, FinishedAt: time.Now()}
	for _, o := range outcomes {
		if o.Status == StatusSuccess {
			res.SuccessCount++
		} else {
			res.FailedCount++
		}
	}
	return res
}

func TestTrackerCounters(t *testing.T) {
	tr := NewTracker()

	tr.Record(batchOf("b1",
		TopicOutcome{Topic: "a", Status: StatusSuccess},
		TopicOutcome{Topic: "b", Status: StatusFailed},
	))
	tr.Record(batchOf("b2",
		TopicOutcome{Topic: "c", Status: StatusSuccess},
	))

	totalRuns, success, failed, lastRun, _ := tr.Counters()
	assert.Equal(t, 2, totalRuns, "one increment per batch, not per topic")
	assert.Equal(t, 2, success)
	assert.Equal(t, 1, failed)
	require.NotNil(t, lastRun)
}

func TestTrackerNextRun(t *testing.T) {
	tr := NewTracker()

	next := time.Now().Add(time.Hour)
	tr.SetNextRun(&next)
	_, _, _, _, got := tr.Counters()
	require.NotNil(t, got)
	assert.Equal(t, next, *got)

	tr.SetNextRun(nil)
	_, _, _, _, got = tr.Counters()
	assert.Nil(t, got)
}

func TestTrackerHistoryNewestFirst(t *testing.T) {
	tr := NewTracker()
	tr.Record(batchOf("b1",
		TopicOutcome{Topic: "first", Status: StatusSuccess},
		TopicOutcome{Topic: "second", Status: StatusSuccess},
	))
	tr.Record(batchOf("b2",
		TopicOutcome{Topic: "third", Status: StatusFailed},
	))

	got := tr.History(0)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Topic)
	assert.Equal(t, "second", got[1].Topic)
	assert.Equal(t, "first", got[2].Topic)

	limited := tr.History(2)
	require.Len(t, limited, 2)
	assert.Equal(t, "third", limited[0].Topic)
}

func TestTrackerHistoryEviction(t *testing.T) {
	tr := NewTracker()

	for i := 0; i < historyCap+25; i++ {
		tr.Record(batchOf(fmt.Sprintf("b%d", i),
			TopicOutcome{Topic: fmt.Sprintf("topic-%d", i), Status: StatusSuccess},
		))
	}

	assert.Equal(t, historyCap, tr.Len())

	got := tr.History(0)
	assert.Equal(t, fmt.Sprintf("topic-%d", historyCap+24), got[0].Topic, "newest retained")
	assert.Equal(t, "topic-25", got[len(got)-1].Topic, "oldest evicted")

	totalRuns, _, _, _, _ := tr.Counters()
	assert.Equal(t, historyCap+25, totalRuns, "counters unaffected by eviction")
}
