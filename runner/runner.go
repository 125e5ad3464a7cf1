package runner

import (
	"context"
	"log/slog"
	"sync"

	"github.com/habiliai/assistantchat/assistants"
	"github.com/habiliai/assistantchat/config"
	"github.com/habiliai/assistantchat/entity"
	"github.com/habiliai/assistantchat/internal/mylog"
)

type (
	// Runner coordinates one message exchange against the remote store:
	// append the user message, create a run, poll it to a terminal state
	// under the configured deadline, and project the resulting thread
	// messages into a transcript. Stateless between invocations apart
	// from the per-thread busy guard.
	Runner interface {
		SendMessage(ctx context.Context, req SendMessageRequest) (entity.Transcript, error)
	}

	SendMessageRequest struct {
		ThreadID    string `json:"thread_id"`
		AssistantID string `json:"assistant_id"`
		Text        string `json:"text"`
	}

	runner struct {
		logger *mylog.Logger
		client assistants.Client
		conf   *config.ChatConfig
		clock  Clock

		mu       sync.Mutex
		inFlight map[string]struct{}
	}

	Option func(*runner)
)

var _ Runner = (*runner)(nil)

func NewRunner(logger *slog.Logger, client assistants.Client, conf *config.ChatConfig, opts ...Option) Runner {
	s := &runner{
		logger:   logger,
		client:   client,
		conf:     conf,
		clock:    systemClock{},
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func WithClock(clock Clock) Option {
	return func(s *runner) {
		s.clock = clock
	}
}

// acquire marks a thread busy. Overlapping sends on one thread are
// rejected rather than queued, so one call never waits behind another's
// full deadline.
func (s *runner) acquire(threadID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[threadID]; busy {
		return false
	}
	s.inFlight[threadID] = struct{}{}
	return true
}

func (s *runner) release(threadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, threadID)
}
