package assistantchat

import (
	"context"
	"log/slog"

	"github.com/habiliai/assistantchat/assistants"
	"github.com/habiliai/assistantchat/config"
	"github.com/habiliai/assistantchat/directory"
	"github.com/habiliai/assistantchat/errors"
	"github.com/habiliai/assistantchat/feedback"
	"github.com/habiliai/assistantchat/internal/mylog"
	"github.com/habiliai/assistantchat/runner"
	"github.com/habiliai/assistantchat/session"
	"github.com/habiliai/assistantchat/thread"
)

type (
	// AssistantChat wires the remote client and the domain managers into
	// one embeddable front door. Presentation (pages, buttons, token
	// counters) stays with the caller.
	AssistantChat struct {
		logger    *slog.Logger
		client    assistants.Client
		threads   thread.Manager
		directory directory.Directory
		runner    runner.Runner
		feedback  feedback.Sink
		clock     runner.Clock

		logConfig        *config.LogConfig
		openaiConfig     *config.OpenAIConfig
		chatConfig       *config.ChatConfig
		assistantsConfig *config.AssistantsConfig
		assistantsFile   string
	}

	Option func(*AssistantChat)
)

func NewAssistantChat(ctx context.Context, optionFuncs ...Option) (*AssistantChat, error) {
	e := &AssistantChat{
		logConfig:        config.NewLogConfig(),
		openaiConfig:     config.NewOpenAIConfig(),
		assistantsConfig: config.NewAssistantsConfig(),
	}
	for _, f := range optionFuncs {
		f(e)
	}

	if e.logger == nil {
		e.logger = mylog.NewLogger(e.logConfig.LogLevel, e.logConfig.LogHandler)
	}

	if e.chatConfig == nil {
		conf, err := config.NewChatConfig()
		if err != nil {
			return nil, err
		}
		e.chatConfig = conf
	}

	if e.assistantsFile != "" {
		fileConf, err := config.LoadAssistantsFromFile(e.assistantsFile)
		if err != nil {
			return nil, err
		}
		e.assistantsConfig = e.assistantsConfig.Merge(fileConf)
	}

	if e.client == nil {
		// Hard startup failure: without a credential no remote call can
		// succeed, so halt before any is attempted.
		if e.openaiConfig.APIKey == "" {
			return nil, errors.Wrapf(errors.ErrConfigMissing, "OPENAI_API_KEY is not set")
		}
		e.client = assistants.NewOpenAIClient(e.openaiConfig.APIKey)
	}

	e.threads = thread.NewManager(e.logger, e.client)
	e.directory = directory.NewDirectory(e.logger, e.assistantsConfig, e.client)

	var runnerOpts []runner.Option
	if e.clock != nil {
		runnerOpts = append(runnerOpts, runner.WithClock(e.clock))
	}
	e.runner = runner.NewRunner(e.logger, e.client, e.chatConfig, runnerOpts...)

	e.feedback = feedback.NewSink(e.logger)

	return e, nil
}

// NewSession starts a conversation with the assistant behind the given
// selector. Initialization is all-or-nothing.
func (c *AssistantChat) NewSession(ctx context.Context, selector string) (*session.Session, error) {
	return session.New(ctx, session.Params{
		Logger:    c.logger,
		Threads:   c.threads,
		Directory: c.directory,
		Runner:    c.runner,
		Feedback:  c.feedback,
		Selector:  selector,
	})
}

func (c *AssistantChat) Directory() directory.Directory {
	return c.directory
}

func (c *AssistantChat) Runner() runner.Runner {
	return c.runner
}

func (c *AssistantChat) ThreadManager() thread.Manager {
	return c.threads
}

func (c *AssistantChat) FeedbackSink() feedback.Sink {
	return c.feedback
}

func (c *AssistantChat) Logger() *slog.Logger {
	return c.logger
}

func WithOpenAIAPIKey(apiKey string) Option {
	return func(e *AssistantChat) {
		e.openaiConfig.APIKey = apiKey
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *AssistantChat) {
		e.logger = logger
	}
}

func WithLogConfig(logConfig *config.LogConfig) Option {
	return func(e *AssistantChat) {
		e.logConfig = logConfig
	}
}

func WithChatConfig(chatConfig *config.ChatConfig) Option {
	return func(e *AssistantChat) {
		e.chatConfig = chatConfig
	}
}

func WithAssistantsConfig(conf *config.AssistantsConfig) Option {
	return func(e *AssistantChat) {
		e.assistantsConfig = conf
	}
}

// WithAssistantsFile overlays a YAML assistant directory file onto the
// env-sourced mapping.
func WithAssistantsFile(file string) Option {
	return func(e *AssistantChat) {
		e.assistantsFile = file
	}
}

// WithClient replaces the remote client, mainly for tests.
func WithClient(client assistants.Client) Option {
	return func(e *AssistantChat) {
		e.client = client
	}
}

// WithClock replaces the coordinator's clock, mainly for tests.
func WithClock(clock runner.Clock) Option {
	return func(e *AssistantChat) {
		e.clock = clock
	}
}
