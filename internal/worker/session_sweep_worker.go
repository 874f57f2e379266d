package worker

import (
	"context"

	"github.com/tacticbot/tacticbot/internal/logger"
)

// SessionSweeper expires overdue negotiation phases.
type SessionSweeper interface {
	Sweep(ctx context.Context) int
}

// SessionSweepJob runs one sweep over the live battle sessions. Scheduled
// at a fixed interval so abandoned challenges and stalled setup dialogues
// release their participants.
type SessionSweepJob struct {
	sweeper SessionSweeper
}

// NewSessionSweepJob creates a new sweep job.
func NewSessionSweepJob(sweeper SessionSweeper) *SessionSweepJob {
	return &SessionSweepJob{sweeper: sweeper}
}

// Process runs the sweep.
func (j *SessionSweepJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgSessionSweepStarting)

	if expired := j.sweeper.Sweep(ctx); expired > 0 {
		log.Info(LogMsgSessionSweepExpired, "count", expired)
	}
	return nil
}
