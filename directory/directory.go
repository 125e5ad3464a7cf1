package directory

import (
	"context"
	"log/slog"
	"slices"

	"github.com/habiliai/assistantchat/assistants"
	"github.com/habiliai/assistantchat/config"
	"github.com/habiliai/assistantchat/entity"
	"github.com/habiliai/assistantchat/errors"
	"github.com/habiliai/assistantchat/internal/mylog"
	"github.com/samber/lo"
)

type (
	// Directory resolves logical assistant selectors to remote assistant
	// identifiers and fetches their descriptive metadata.
	Directory interface {
		Resolve(selector string) (string, error)
		FetchDescriptor(ctx context.Context, assistantID string) (*entity.AssistantDescriptor, error)
		Selectors() []string
	}

	directory struct {
		logger *mylog.Logger
		conf   *config.AssistantsConfig
		client assistants.Client
	}
)

var _ Directory = (*directory)(nil)

func NewDirectory(logger *slog.Logger, conf *config.AssistantsConfig, client assistants.Client) Directory {
	return &directory{
		logger: logger,
		conf:   conf,
		client: client,
	}
}

// Resolve maps a selector to its configured remote assistant id. It
// touches configuration only, never the remote API.
func (s *directory) Resolve(selector string) (string, error) {
	id, ok := s.conf.Lookup(selector)
	if !ok {
		return "", errors.Wrapf(errors.ErrConfigMissing, "no assistant id configured for selector %q", selector)
	}

	return id, nil
}

func (s *directory) FetchDescriptor(ctx context.Context, assistantID string) (*entity.AssistantDescriptor, error) {
	descriptor, err := s.client.GetAssistant(ctx, assistantID)
	if err != nil {
		s.logger.Error("failed to fetch assistant descriptor", "assistant_id", assistantID, "error", err)
		return nil, errors.Wrapf(errors.ErrRemoteUnavailable, "fetch assistant %s: %v", assistantID, err)
	}

	s.logger.Debug("fetched assistant descriptor",
		"assistant_id", descriptor.ID,
		"name", descriptor.Name,
		"model", descriptor.Model,
	)

	return descriptor, nil
}

// Selectors lists the configured selectors, default first.
func (s *directory) Selectors() []string {
	selectors := lo.Keys(s.conf.Assistants)
	slices.Sort(selectors)
	if s.conf.Default != "" {
		selectors = append([]string{config.DefaultSelector}, selectors...)
	}
	return selectors
}
