package thread

import (
	"context"
	"log/slog"

	"github.com/habiliai/assistantchat/assistants"
	"github.com/habiliai/assistantchat/errors"
	"github.com/habiliai/assistantchat/internal/mylog"
)

type (
	// Manager allocates remote conversation threads. There is no update
	// or delete: clearing a conversation abandons the old handle and
	// creates a new one.
	Manager interface {
		CreateThread(ctx context.Context) (string, error)
	}

	manager struct {
		logger *mylog.Logger
		client assistants.Client
	}
)

var _ Manager = (*manager)(nil)

func NewManager(logger *slog.Logger, client assistants.Client) Manager {
	return &manager{
		logger: logger,
		client: client,
	}
}

func (s *manager) CreateThread(ctx context.Context) (string, error) {
	threadID, err := s.client.CreateThread(ctx)
	if err != nil {
		s.logger.Error("failed to create thread", "error", err)
		return "", errors.Wrapf(errors.ErrRemoteUnavailable, "create thread: %v", err)
	}

	s.logger.Debug("created thread", "thread_id", threadID)

	return threadID, nil
}
