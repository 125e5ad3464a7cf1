package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/habiliai/assistantchat/directory"
	"github.com/habiliai/assistantchat/entity"
	"github.com/habiliai/assistantchat/errors"
	"github.com/habiliai/assistantchat/feedback"
	"github.com/habiliai/assistantchat/internal/mylog"
	"github.com/habiliai/assistantchat/runner"
	"github.com/habiliai/assistantchat/thread"
)

// FallbackAssistantMessage is appended locally when a run fails or times
// out, so the transcript never shows a silent no-op for a submitted
// message.
const FallbackAssistantMessage = "Sorry, I couldn't process that message. Please try again."

type (
	// Session owns one conversation: the remote thread handle, the
	// resolved assistant, and the displayed transcript. It is the only
	// mutator of its transcript and serializes sends.
	Session struct {
		logger *mylog.Logger
		runner runner.Runner
		thread thread.Manager
		sink   feedback.Sink

		mu          sync.Mutex
		selector    string
		assistantID string
		descriptor  *entity.AssistantDescriptor
		threadID    string
		transcript  entity.Transcript
	}

	Params struct {
		Logger    *slog.Logger
		Threads   thread.Manager
		Directory directory.Directory
		Runner    runner.Runner
		Feedback  feedback.Sink
		Selector  string
	}
)

// New resolves the selector, fetches the assistant descriptor, and
// allocates a fresh remote thread. Any failure halts initialization: a
// session never starts half-ready.
func New(ctx context.Context, p Params) (*Session, error) {
	assistantID, err := p.Directory.Resolve(p.Selector)
	if err != nil {
		return nil, err
	}

	descriptor, err := p.Directory.FetchDescriptor(ctx, assistantID)
	if err != nil {
		return nil, err
	}

	threadID, err := p.Threads.CreateThread(ctx)
	if err != nil {
		return nil, err
	}

	return &Session{
		logger:      p.Logger,
		runner:      p.Runner,
		thread:      p.Threads,
		sink:        p.Feedback,
		selector:    p.Selector,
		assistantID: assistantID,
		descriptor:  descriptor,
		threadID:    threadID,
	}, nil
}

// Send relays one user message. On success the transcript is replaced
// wholesale with the remote store's authoritative history. On RunFailed or
// Timeout the exchange is kept locally with a synthetic apology reply and
// the error is still returned; on RemoteUnavailable nothing is mutated and
// the user must resubmit.
func (s *Session) Send(ctx context.Context, text string) (entity.Transcript, error) {
	if strings.TrimSpace(text) == "" {
		return s.Transcript(), errors.Wrapf(errors.ErrInvalidParams, "message text is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.runner.SendMessage(ctx, runner.SendMessageRequest{
		ThreadID:    s.threadID,
		AssistantID: s.assistantID,
		Text:        text,
	})
	switch {
	case err == nil:
		s.transcript = result
	case errors.Is(err, errors.ErrRunFailed) || errors.Is(err, errors.ErrTimeout):
		s.transcript = append(s.transcript,
			entity.Message{Role: entity.RoleUser, Content: text},
			entity.Message{Role: entity.RoleAssistant, Content: FallbackAssistantMessage},
		)
	}

	return s.transcript.Clone(), err
}

// Clear abandons the current thread handle and starts over on a fresh one.
// The old remote thread is not deleted, only forgotten.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	threadID, err := s.thread.CreateThread(ctx)
	if err != nil {
		return err
	}

	s.logger.Debug("conversation cleared", "old_thread_id", s.threadID, "new_thread_id", threadID)

	s.threadID = threadID
	s.transcript = nil

	return nil
}

// RecordFeedback records sentiment against the trailing user/assistant
// pair. It is a no-op when the transcript does not end with one.
func (s *Session) RecordFeedback(ctx context.Context, sentiment feedback.Sentiment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, assistant, ok := s.transcript.LastExchange()
	if !ok {
		s.logger.Debug("no exchange to record feedback against")
		return
	}

	s.sink.Record(ctx, sentiment, []entity.Message{user, assistant})
}

func (s *Session) Transcript() entity.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transcript.Clone()
}

func (s *Session) Descriptor() entity.AssistantDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.descriptor
}

func (s *Session) ThreadID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.threadID
}

func (s *Session) Selector() string {
	return s.selector
}
