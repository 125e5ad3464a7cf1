package assistants

import (
	"context"

	"github.com/habiliai/assistantchat/entity"
)

type (
	// ContentBlock is one block of a remote message body. Only text
	// blocks are carried; other block kinds are dropped by the adapter.
	ContentBlock struct {
		Text string
	}

	// RawMessage is a remote thread message as returned by the hosted
	// store, before projection into the local transcript.
	RawMessage struct {
		Role      string
		Content   []ContentBlock
		CreatedAt int64
	}

	// Client is the remote hosted-assistant API surface this module
	// consumes. Implementations must be safe for concurrent use.
	Client interface {
		CreateThread(ctx context.Context) (string, error)
		AppendMessage(ctx context.Context, threadID string, role entity.Role, text string) error
		CreateRun(ctx context.Context, threadID string, assistantID string) (*entity.Run, error)
		GetRun(ctx context.Context, threadID string, runID string) (*entity.Run, error)
		ListMessages(ctx context.Context, threadID string) ([]RawMessage, error)
		GetAssistant(ctx context.Context, assistantID string) (*entity.AssistantDescriptor, error)
	}
)
