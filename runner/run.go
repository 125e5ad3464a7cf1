package runner

import (
	"context"

	"github.com/habiliai/assistantchat/entity"
	"github.com/habiliai/assistantchat/errors"
	"github.com/habiliai/assistantchat/transcript"
)

// SendMessage relays one user message and returns the full authoritative
// transcript from the remote store. Callers replace their local copy with
// the result, never append to it.
//
// The user message and the run are durable remote side effects created
// before any failure branch of the polling loop; a Timeout or RunFailed
// therefore leaves the remote thread with an orphaned user message and
// possibly a still-running run. No rollback is attempted.
func (s *runner) SendMessage(ctx context.Context, req SendMessageRequest) (entity.Transcript, error) {
	if req.ThreadID == "" || req.AssistantID == "" {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "thread id and assistant id are required")
	}

	if !s.acquire(req.ThreadID) {
		return nil, errors.Wrapf(errors.ErrThreadBusy, "a run is already in flight on thread %s", req.ThreadID)
	}
	defer s.release(req.ThreadID)

	if err := s.client.AppendMessage(ctx, req.ThreadID, entity.RoleUser, req.Text); err != nil {
		return nil, errors.Wrapf(errors.ErrRemoteUnavailable, "append message: %v", err)
	}

	run, err := s.client.CreateRun(ctx, req.ThreadID, req.AssistantID)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrRemoteUnavailable, "create run: %v", err)
	}

	s.logger.Debug("created run",
		"thread_id", run.ThreadID,
		"run_id", run.ID,
		"status", run.Status,
	)

	if err := s.pollToTerminal(ctx, run); err != nil {
		return nil, err
	}

	rawMessages, err := s.client.ListMessages(ctx, req.ThreadID)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrRemoteUnavailable, "list messages: %v", err)
	}

	return transcript.Project(rawMessages), nil
}

// pollToTerminal re-fetches the run until it completes, fails, or the
// wall-clock deadline passes. Expiry stops only the local wait: the remote
// run is left running and its id is logged for later inspection.
func (s *runner) pollToTerminal(ctx context.Context, run *entity.Run) error {
	deadline := s.clock.Now().Add(s.conf.RunTimeout)

	for {
		switch {
		case run.Status == entity.RunStatusCompleted:
			return nil
		case run.Status.Failure():
			s.logger.Warn("run ended in failure, user message is orphaned on the remote thread",
				"thread_id", run.ThreadID,
				"run_id", run.ID,
				"status", run.Status,
			)
			return errors.Wrapf(errors.ErrRunFailed, "run %s ended with status %s", run.ID, run.Status)
		case !run.Status.Pending():
			// Unknown protocol state, treated as non-retryable.
			return errors.Wrapf(errors.ErrRemoteUnavailable, "run %s reported unexpected status %q", run.ID, run.Status)
		}

		if !s.clock.Now().Before(deadline) {
			s.logger.Warn("run polling deadline exceeded, remote run left running",
				"thread_id", run.ThreadID,
				"run_id", run.ID,
				"last_status", run.Status,
				"timeout", s.conf.RunTimeout,
			)
			return errors.Wrapf(errors.ErrTimeout, "run %s still %s after %s", run.ID, run.Status, s.conf.RunTimeout)
		}

		if err := s.clock.Sleep(ctx, s.conf.PollInterval); err != nil {
			// Local cancellation, not a run timeout: the context error
			// stays visible to the caller.
			return errors.Wrapf(err, "wait for run %s interrupted", run.ID)
		}

		next, err := s.client.GetRun(ctx, run.ThreadID, run.ID)
		if err != nil {
			return errors.Wrapf(errors.ErrRemoteUnavailable, "poll run %s: %v", run.ID, err)
		}
		run = next
	}
}
