package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const defaultPollInterval = 2 * time.Second

// WaitForTerminal polls a job's status at the given interval until the job
// reaches a terminal state or ctx is canceled. The first check happens
// immediately; the ticker guarantees the loop stops exactly once on a
// terminal observation or teardown, never recursing without bound.
//
// A failed job is a successful poll: callers inspect the returned status.
func (c *Client) WaitForTerminal(ctx context.Context, jobID string, interval time.Duration) (*StatusResponse, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	status, err := c.Status(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if status.Status.Terminal() {
		return status, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("polling job %s: %w", jobID, ctx.Err())
		case <-ticker.C:
			status, err = c.Status(ctx, jobID)
			if err != nil {
				return nil, err
			}
			c.logger.Debug("job status",
				slog.String("job_id", jobID),
				slog.String("status", string(status.Status)))
			if status.Status.Terminal() {
				return status, nil
			}
		}
	}
}
