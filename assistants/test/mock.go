package assistantstest

import (
	"context"

	"github.com/habiliai/assistantchat/assistants"
	"github.com/habiliai/assistantchat/entity"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) CreateThread(ctx context.Context) (string, error) {
	args := c.Called(ctx)
	return args.String(0), args.Error(1)
}

func (c *Client) AppendMessage(ctx context.Context, threadID string, role entity.Role, text string) error {
	args := c.Called(ctx, threadID, role, text)
	return args.Error(0)
}

func (c *Client) CreateRun(ctx context.Context, threadID string, assistantID string) (*entity.Run, error) {
	args := c.Called(ctx, threadID, assistantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Run), args.Error(1)
}

func (c *Client) GetRun(ctx context.Context, threadID string, runID string) (*entity.Run, error) {
	args := c.Called(ctx, threadID, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Run), args.Error(1)
}

func (c *Client) ListMessages(ctx context.Context, threadID string) ([]assistants.RawMessage, error) {
	args := c.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]assistants.RawMessage), args.Error(1)
}

func (c *Client) GetAssistant(ctx context.Context, assistantID string) (*entity.AssistantDescriptor, error) {
	args := c.Called(ctx, assistantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AssistantDescriptor), args.Error(1)
}

var (
	_ assistants.Client = (*Client)(nil)
)
