package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Er-rdhtiwari/ai-app/internal/config"
	"github.com/Er-rdhtiwari/ai-app/internal/infrastructure/chatapi"
	"github.com/Er-rdhtiwari/ai-app/internal/services/chatform"
	"github.com/Er-rdhtiwari/ai-app/internal/tui"
	"github.com/Er-rdhtiwari/ai-app/pkg/logger"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	url     string
	timeout time.Duration
	logFile string
}

// runProgram is swapped out in tests
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Terminal client for the AI chat application",
		Long: `Opens the chat form in the terminal and submits each message to the
chat API's /api/chat endpoint.

Keys: enter or ctrl+s sends, alt+enter inserts a newline, esc or ctrl+c quits.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", config.GetChatAPIURL(), "Chat API base URL (or set CHAT_API_URL)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", config.GetChatAPITimeout(), "Per-request timeout, 0 for none (or set CHAT_API_TIMEOUT)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of discarding them")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	// The terminal belongs to the UI, so logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger.InitWithWriter(w, config.GetLogLevel(), "production")

	client := chatapi.NewClient(opts.url, chatapi.WithTimeout(opts.timeout))
	log.Info().Str("url", client.BaseURL()).Dur("timeout", opts.timeout).Msg("Starting terminal chat client")

	form := chatform.New(client)
	if err := runProgram(tui.New(ctx, form, config.GetAppVersion())); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

func main() {
	config.LoadDotEnv(".env", ".env.local")

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
