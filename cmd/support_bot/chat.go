package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shoply/support-bot/internal/recorder"
)

var chatCommand = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive support chat session",
	Long: `Runs the read/answer loop: free-text questions are answered in the brand
voice, "/order <id>" looks up order status, and "выход", "quit" or "exit"
ends the session. Empty input is skipped.`,
	RunE: runChatCmd,
}

var chatPromptVersion string

func init() {
	chatCommand.Flags().StringVar(&chatPromptVersion, "prompt-version", "current", "Prompt catalog version to use")
	rootCmd.AddCommand(chatCommand)
}

// exitCommands terminate the session, matched case-insensitively.
var exitCommands = map[string]bool{
	"выход": true,
	"quit":  true,
	"exit":  true,
}

func runChatCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	b, err := bootstrap(ctx, cmd, chatPromptVersion, true)
	if err != nil {
		return err
	}
	defer b.close()

	rec, err := recorder.New(b.cfg.LogDir, b.session.ID().String())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Чат-бот запущен! Можете задавать вопросы. Для выхода введите 'выход'.")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "Вы: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if exitCommands[strings.ToLower(input)] {
			fmt.Fprintln(out, "Бот: До свидания!")
			b.log.Info().Str("session", b.session.ID().String()).Msg("user initiated exit")
			break
		}

		b.log.Info().Str("user", input).Msg("user turn")

		reply, tokens, err := b.session.Respond(ctx, input)
		if err != nil {
			// Failed turns are reported distinctly; the session continues.
			b.log.Error().Err(err).Msg("turn failed")
			fmt.Fprintf(out, "Бот: [Ошибка] %v\n", err)
			continue
		}

		answer := reply.AnswerText()
		b.log.Info().Str("bot", answer).Int("tokens", tokens).Msg("bot turn")
		fmt.Fprintf(out, "Бот: %s\n", answer)

		if err := rec.Record(input, answer, tokens); err != nil {
			// Logging failures never unwind a successful chat turn.
			b.log.Warn().Err(err).Msg("failed to record turn")
		}
	}

	return scanner.Err()
}
