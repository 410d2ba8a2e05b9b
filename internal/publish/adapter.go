package publish

import (
	"context"

	"github.com/noteforge/noteforge/internal/logger"
)

// Adapter narrows GitPublisher to the error-only interface the scheduler
// consumes, logging the step detail the scheduler does not care about.
type Adapter struct {
	pub    *GitPublisher
	logger *logger.Logger
}

// NewAdapter wraps a publisher for use by the scheduler.
func NewAdapter(pub *GitPublisher, log *logger.Logger) *Adapter {
	return &Adapter{pub: pub, logger: log}
}

func (a *Adapter) CommitAndPush(ctx context.Context, paths []string, vars map[string]string) error {
	res, err := a.pub.CommitAndPush(ctx, paths, vars)
	if err != nil {
		return err
	}
	a.logger.Debug("publish finished",
		logger.Field{Key: "staged", Value: res.Staged},
		logger.Field{Key: "committed", Value: res.Committed},
		logger.Field{Key: "pushed", Value: res.Pushed},
		logger.Field{Key: "hash", Value: res.CommitHash})
	return nil
}
