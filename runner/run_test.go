package runner_test

import (
	"context"
	"time"

	"github.com/habiliai/assistantchat/assistants"
	"github.com/habiliai/assistantchat/entity"
	"github.com/habiliai/assistantchat/errors"
	"github.com/habiliai/assistantchat/internal/mylog"
	"github.com/habiliai/assistantchat/runner"
	"github.com/stretchr/testify/mock"
)

const (
	threadID    = "thread_1"
	assistantID = "asst_1"
	runID       = "run_1"
)

func (s *RunnerTestSuite) run(status entity.RunStatus) *entity.Run {
	return &entity.Run{
		ID:       runID,
		ThreadID: threadID,
		Status:   status,
	}
}

func (s *RunnerTestSuite) TestSendMessageCompletesAfterTwoPolls() {
	s.client.On("AppendMessage", mock.Anything, threadID, entity.RoleUser, "Hello").Return(nil).Once()
	s.client.On("CreateRun", mock.Anything, threadID, assistantID).Return(s.run(entity.RunStatusQueued), nil).Once()
	s.client.On("GetRun", mock.Anything, threadID, runID).Return(s.run(entity.RunStatusInProgress), nil).Once()
	s.client.On("GetRun", mock.Anything, threadID, runID).Return(s.run(entity.RunStatusCompleted), nil).Once()
	s.client.On("ListMessages", mock.Anything, threadID).Return([]assistants.RawMessage{
		{Role: "user", Content: []assistants.ContentBlock{{Text: "Hello"}}, CreatedAt: 1},
		{Role: "assistant", Content: []assistants.ContentBlock{{Text: "Hi there!"}}, CreatedAt: 2},
	}, nil).Once()

	result, err := s.runner.SendMessage(s.Context, runner.SendMessageRequest{
		ThreadID:    threadID,
		AssistantID: assistantID,
		Text:        "Hello",
	})
	s.Require().NoError(err)

	s.Require().Equal(entity.Transcript{
		{Role: entity.RoleUser, Content: "Hello"},
		{Role: entity.RoleAssistant, Content: "Hi there!"},
	}, result)
	s.Require().Equal(2, s.clock.Sleeps())
	s.client.AssertExpectations(s.T())
}

func (s *RunnerTestSuite) TestSendMessageTimesOutAtDeadline() {
	s.client.On("AppendMessage", mock.Anything, threadID, entity.RoleUser, "slow").Return(nil).Once()
	s.client.On("CreateRun", mock.Anything, threadID, assistantID).Return(s.run(entity.RunStatusQueued), nil).Once()
	s.client.On("GetRun", mock.Anything, threadID, runID).Return(s.run(entity.RunStatusInProgress), nil)

	start := s.clock.Now()
	_, err := s.runner.SendMessage(s.Context, runner.SendMessageRequest{
		ThreadID:    threadID,
		AssistantID: assistantID,
		Text:        "slow",
	})
	s.Require().ErrorIs(err, errors.ErrTimeout)

	// Virtual time advanced to the deadline, not before and not beyond.
	s.Require().Equal(s.conf.RunTimeout, s.clock.Now().Sub(start))
	s.Require().Equal(int(s.conf.RunTimeout/s.conf.PollInterval), s.clock.Sleeps())
}

func (s *RunnerTestSuite) TestSendMessageFailsOnTerminalFailure() {
	for _, status := range []entity.RunStatus{
		entity.RunStatusFailed,
		entity.RunStatusCancelled,
		entity.RunStatusExpired,
	} {
		s.SetupTest()

		s.client.On("AppendMessage", mock.Anything, threadID, entity.RoleUser, "hi").Return(nil).Once()
		s.client.On("CreateRun", mock.Anything, threadID, assistantID).Return(s.run(status), nil).Once()

		_, err := s.runner.SendMessage(s.Context, runner.SendMessageRequest{
			ThreadID:    threadID,
			AssistantID: assistantID,
			Text:        "hi",
		})
		s.Require().ErrorIs(err, errors.ErrRunFailed, "status %s", status)
		s.Require().Contains(err.Error(), string(status))
		s.client.AssertNotCalled(s.T(), "GetRun", mock.Anything, mock.Anything, mock.Anything)
		s.client.AssertNotCalled(s.T(), "ListMessages", mock.Anything, mock.Anything)
	}
}

func (s *RunnerTestSuite) TestSendMessageRejectsUnknownStatus() {
	s.client.On("AppendMessage", mock.Anything, threadID, entity.RoleUser, "hi").Return(nil).Once()
	s.client.On("CreateRun", mock.Anything, threadID, assistantID).Return(s.run("requires_action"), nil).Once()

	_, err := s.runner.SendMessage(s.Context, runner.SendMessageRequest{
		ThreadID:    threadID,
		AssistantID: assistantID,
		Text:        "hi",
	})
	s.Require().ErrorIs(err, errors.ErrRemoteUnavailable)
}

func (s *RunnerTestSuite) TestSendMessageAbortsWhenAppendFails() {
	s.client.On("AppendMessage", mock.Anything, threadID, entity.RoleUser, "hi").
		Return(errors.New("boom")).Once()

	_, err := s.runner.SendMessage(s.Context, runner.SendMessageRequest{
		ThreadID:    threadID,
		AssistantID: assistantID,
		Text:        "hi",
	})
	s.Require().ErrorIs(err, errors.ErrRemoteUnavailable)
	s.client.AssertNotCalled(s.T(), "CreateRun", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RunnerTestSuite) TestSendMessageRequiresThreadAndAssistant() {
	_, err := s.runner.SendMessage(s.Context, runner.SendMessageRequest{Text: "hi"})
	s.Require().ErrorIs(err, errors.ErrInvalidParams)
	s.client.AssertNotCalled(s.T(), "AppendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RunnerTestSuite) TestSendMessageRejectsOverlappingSendsOnOneThread() {
	clock := newGateClock()
	s.runner = runner.NewRunner(
		mylog.NewLogger("error", "json"),
		s.client,
		s.conf,
		runner.WithClock(clock),
	)

	s.client.On("AppendMessage", mock.Anything, threadID, entity.RoleUser, "first").Return(nil).Once()
	s.client.On("CreateRun", mock.Anything, threadID, assistantID).Return(s.run(entity.RunStatusQueued), nil).Once()
	s.client.On("GetRun", mock.Anything, threadID, runID).Return(s.run(entity.RunStatusCompleted), nil).Once()
	s.client.On("ListMessages", mock.Anything, threadID).Return([]assistants.RawMessage{}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := s.runner.SendMessage(s.Context, runner.SendMessageRequest{
			ThreadID:    threadID,
			AssistantID: assistantID,
			Text:        "first",
		})
		done <- err
	}()

	<-clock.entered

	_, err := s.runner.SendMessage(s.Context, runner.SendMessageRequest{
		ThreadID:    threadID,
		AssistantID: assistantID,
		Text:        "second",
	})
	s.Require().ErrorIs(err, errors.ErrThreadBusy)

	close(clock.release)
	s.Require().NoError(<-done)

	// Only the first send reached the remote store.
	s.client.AssertNumberOfCalls(s.T(), "AppendMessage", 1)
}

func (s *RunnerTestSuite) TestSendMessageFailsWhenRePollErrors() {
	s.client.On("AppendMessage", mock.Anything, threadID, entity.RoleUser, "hi").Return(nil).Once()
	s.client.On("CreateRun", mock.Anything, threadID, assistantID).Return(s.run(entity.RunStatusQueued), nil).Once()
	s.client.On("GetRun", mock.Anything, threadID, runID).
		Return(nil, errors.New("connection reset")).Once()

	_, err := s.runner.SendMessage(s.Context, runner.SendMessageRequest{
		ThreadID:    threadID,
		AssistantID: assistantID,
		Text:        "hi",
	})
	s.Require().ErrorIs(err, errors.ErrRemoteUnavailable)
	s.client.AssertNotCalled(s.T(), "ListMessages", mock.Anything, mock.Anything)
}

func (s *RunnerTestSuite) TestSendMessageSurfacesCancellationNotTimeout() {
	s.runner = runner.NewRunner(
		mylog.NewLogger("error", "json"),
		s.client,
		s.conf,
		runner.WithClock(&cancelClock{}),
	)

	s.client.On("AppendMessage", mock.Anything, threadID, entity.RoleUser, "hi").Return(nil).Once()
	s.client.On("CreateRun", mock.Anything, threadID, assistantID).Return(s.run(entity.RunStatusQueued), nil).Once()

	_, err := s.runner.SendMessage(s.Context, runner.SendMessageRequest{
		ThreadID:    threadID,
		AssistantID: assistantID,
		Text:        "hi",
	})
	s.Require().ErrorIs(err, context.Canceled)
	s.Require().NotErrorIs(err, errors.ErrTimeout)
}

func (s *RunnerTestSuite) TestSendMessageSurfacesTimeoutAfterSleeps() {
	// One poll interval short of the deadline still polls; the next
	// iteration trips it.
	s.conf.RunTimeout = time.Second
	s.conf.PollInterval = 400 * time.Millisecond

	s.client.On("AppendMessage", mock.Anything, threadID, entity.RoleUser, "hi").Return(nil).Once()
	s.client.On("CreateRun", mock.Anything, threadID, assistantID).Return(s.run(entity.RunStatusInProgress), nil).Once()
	s.client.On("GetRun", mock.Anything, threadID, runID).Return(s.run(entity.RunStatusInProgress), nil)

	_, err := s.runner.SendMessage(s.Context, runner.SendMessageRequest{
		ThreadID:    threadID,
		AssistantID: assistantID,
		Text:        "hi",
	})
	s.Require().ErrorIs(err, errors.ErrTimeout)
	s.Require().Equal(3, s.clock.Sleeps())
}
