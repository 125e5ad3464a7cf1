package feedback

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/habiliai/assistantchat/entity"
	"github.com/habiliai/assistantchat/internal/mylog"
)

type (
	Sentiment string

	// Sink records user feedback against the last exchange. Feedback is
	// best-effort telemetry: recording never fails the caller.
	Sink interface {
		Record(ctx context.Context, sentiment Sentiment, lastExchange []entity.Message)
	}

	sink struct {
		logger *mylog.Logger
		now    func() time.Time
	}
)

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

var _ Sink = (*sink)(nil)

func NewSink(logger *slog.Logger) Sink {
	return &sink{
		logger: logger,
		now:    time.Now,
	}
}

func (s *sink) Record(ctx context.Context, sentiment Sentiment, lastExchange []entity.Message) {
	exchange, err := json.Marshal(lastExchange)
	if err != nil {
		// Swallowed: telemetry must not disturb the conversation.
		s.logger.Warn("failed to serialize feedback exchange", "error", err)
		exchange = []byte("[]")
	}

	s.logger.InfoContext(ctx, "user feedback",
		"event_id", uuid.NewString(),
		"recorded_at", s.now().UTC().Format(time.RFC3339),
		"sentiment", string(sentiment),
		"exchange", string(exchange),
	)
}
