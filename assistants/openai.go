package assistants

import (
	"context"

	"github.com/habiliai/assistantchat/entity"
	"github.com/habiliai/assistantchat/errors"
	"github.com/mokiat/gog"
	"github.com/sashabaranov/go-openai"
)

// listMessagesLimit caps one transcript fetch. Conversations in a single
// session stay well under this; the remote API pages beyond it.
const listMessagesLimit = 100

type openaiClient struct {
	api *openai.Client
}

var _ Client = (*openaiClient)(nil)

// NewOpenAIClient returns a Client backed by the hosted OpenAI
// Assistants API.
func NewOpenAIClient(apiKey string) Client {
	return &openaiClient{
		api: openai.NewClient(apiKey),
	}
}

func (c *openaiClient) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", errors.Wrapf(err, "failed to create thread")
	}

	return thread.ID, nil
}

func (c *openaiClient) AppendMessage(ctx context.Context, threadID string, role entity.Role, text string) error {
	if _, err := c.api.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    string(role),
		Content: text,
	}); err != nil {
		return errors.Wrapf(err, "failed to append message to thread %s", threadID)
	}

	return nil
}

func (c *openaiClient) CreateRun(ctx context.Context, threadID string, assistantID string) (*entity.Run, error) {
	run, err := c.api.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID: assistantID,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create run on thread %s", threadID)
	}

	return convertRun(run), nil
}

func (c *openaiClient) GetRun(ctx context.Context, threadID string, runID string) (*entity.Run, error) {
	run, err := c.api.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to retrieve run %s", runID)
	}

	return convertRun(run), nil
}

func (c *openaiClient) ListMessages(ctx context.Context, threadID string) ([]RawMessage, error) {
	// Ascending is requested explicitly; the projector still re-sorts by
	// creation time rather than trusting received order.
	list, err := c.api.ListMessage(ctx, threadID,
		gog.PtrOf(listMessagesLimit),
		gog.PtrOf("asc"),
		nil,
		nil,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list messages of thread %s", threadID)
	}

	return gog.Map(list.Messages, func(msg openai.Message) RawMessage {
		raw := RawMessage{
			Role:      msg.Role,
			CreatedAt: int64(msg.CreatedAt),
		}
		for _, content := range msg.Content {
			if content.Text == nil {
				continue
			}
			raw.Content = append(raw.Content, ContentBlock{Text: content.Text.Value})
		}
		return raw
	}), nil
}

func (c *openaiClient) GetAssistant(ctx context.Context, assistantID string) (*entity.AssistantDescriptor, error) {
	assistant, err := c.api.RetrieveAssistant(ctx, assistantID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to retrieve assistant %s", assistantID)
	}

	descriptor := &entity.AssistantDescriptor{
		ID:    assistant.ID,
		Model: assistant.Model,
		Tools: gog.Map(assistant.Tools, func(tool openai.AssistantTool) string {
			return string(tool.Type)
		}),
	}
	if assistant.Name != nil {
		descriptor.Name = *assistant.Name
	}

	return descriptor, nil
}

func convertRun(run openai.Run) *entity.Run {
	return &entity.Run{
		ID:       run.ID,
		ThreadID: run.ThreadID,
		Status:   entity.RunStatus(run.Status),
	}
}
