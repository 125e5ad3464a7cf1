package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/habiliai/assistantchat"
	"github.com/habiliai/assistantchat/errors"
	"github.com/habiliai/assistantchat/feedback"
	"github.com/habiliai/assistantchat/internal/mylog"
	"github.com/habiliai/assistantchat/session"
	"github.com/habiliai/assistantchat/transcript"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newCmd() *cobra.Command {
	params := &struct {
		Assistant      string
		AssistantsFile string
		LogLevel       string
		LogHandler     string
	}{}

	cmd := &cobra.Command{
		Use:   "assistantchat",
		Short: "Chat with a hosted assistant from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			_ = godotenv.Load()

			logger := mylog.NewLogger(params.LogLevel, params.LogHandler)

			opts := []assistantchat.Option{
				assistantchat.WithLogger(logger),
			}
			if params.AssistantsFile != "" {
				opts = append(opts, assistantchat.WithAssistantsFile(params.AssistantsFile))
			}

			chat, err := assistantchat.NewAssistantChat(ctx, opts...)
			if err != nil {
				return err
			}

			sess, err := chat.NewSession(ctx, params.Assistant)
			if err != nil {
				return err
			}

			descriptor := sess.Descriptor()
			fmt.Printf("%s (model: %s)\n", descriptor.Name, descriptor.Model)
			if len(descriptor.Tools) > 0 {
				fmt.Printf("tools: %s\n", strings.Join(descriptor.Tools, ", "))
			}
			fmt.Println(`commands: /clear /save <file> /good /bad /quit`)

			return chatLoop(ctx, sess)
		},
	}

	cmd.Flags().StringVar(&params.Assistant, "assistant", "", "Assistant selector (default entry when empty)")
	cmd.Flags().StringVar(&params.AssistantsFile, "assistants-file", "", "YAML file mapping selectors to assistant ids")
	cmd.Flags().StringVar(&params.LogLevel, "log-level", "info", "Log level")
	cmd.Flags().StringVar(&params.LogHandler, "log-handler", "default", "Log handler (default or json)")

	return cmd
}

func chatLoop(ctx context.Context, sess *session.Session) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := runCommand(ctx, sess, line)
			if err != nil {
				fmt.Printf("! %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		result, err := sess.Send(ctx, line)
		switch {
		case err == nil,
			errors.Is(err, errors.ErrRunFailed),
			errors.Is(err, errors.ErrTimeout):
			// Failed exchanges carry a local apology message, so the
			// reply to print is always the transcript tail.
			if len(result) > 0 {
				fmt.Printf("%s\n", result[len(result)-1].Content)
			}
		default:
			// RemoteUnavailable or busy: nothing was recorded, the user
			// resubmits.
			fmt.Printf("! %v\n", err)
		}
	}
}

func runCommand(ctx context.Context, sess *session.Session, line string) (quit bool, err error) {
	name, arg, _ := strings.Cut(line, " ")

	switch name {
	case "/quit", "/exit":
		return true, nil
	case "/clear":
		if err := sess.Clear(ctx); err != nil {
			return false, err
		}
		fmt.Println("conversation cleared")
	case "/save":
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return false, errors.New("usage: /save <file>")
		}
		data, err := transcript.ExportJSON(sess.Transcript())
		if err != nil {
			return false, err
		}
		if err := os.WriteFile(arg, data, 0o644); err != nil {
			return false, errors.Wrapf(err, "failed to write %s", arg)
		}
		fmt.Printf("saved to %s\n", arg)
	case "/good":
		sess.RecordFeedback(ctx, feedback.SentimentPositive)
		fmt.Println("thanks for the feedback")
	case "/bad":
		sess.RecordFeedback(ctx, feedback.SentimentNegative)
		fmt.Println("thanks for the feedback")
	default:
		return false, errors.Errorf("unknown command %q", name)
	}

	return false, nil
}
