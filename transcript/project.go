package transcript

import (
	"slices"

	"github.com/habiliai/assistantchat/assistants"
	"github.com/habiliai/assistantchat/entity"
	"github.com/mokiat/gog"
)

// Project converts the raw remote message list into the local transcript,
// oldest first. Received order is not trusted: messages are re-sorted by
// their creation timestamp before projection.
func Project(rawMessages []assistants.RawMessage) entity.Transcript {
	messages := slices.Clone(rawMessages)
	slices.SortStableFunc(messages, func(a, b assistants.RawMessage) int {
		switch {
		case a.CreatedAt < b.CreatedAt:
			return -1
		case a.CreatedAt > b.CreatedAt:
			return 1
		default:
			return 0
		}
	})

	return gog.Map(messages, func(msg assistants.RawMessage) entity.Message {
		var content string
		if len(msg.Content) > 0 {
			content = msg.Content[0].Text
		}
		return entity.Message{
			Role:    entity.Role(msg.Role),
			Content: content,
		}
	})
}
