package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shoply/support-bot/internal/chat"
	"github.com/shoply/support-bot/internal/config"
	"github.com/shoply/support-bot/internal/llm"
	"github.com/shoply/support-bot/internal/observability"
	"github.com/shoply/support-bot/internal/orders"
	"github.com/shoply/support-bot/internal/prompts"
	"github.com/shoply/support-bot/internal/styleguide"
)

// Data file names inside the data directory.
const (
	styleGuideFile  = "style_guide.yaml"
	promptsFile     = "prompts.yaml"
	ordersFile      = "orders.json"
	faqFile         = "faq.json"
	evalPromptsFile = "eval_prompts.txt"
)

// bot bundles everything a command needs after startup.
type bot struct {
	cfg     *config.Config
	guide   *styleguide.StyleGuide
	client  llm.Client
	session *chat.Session
	log     zerolog.Logger
}

// bootstrap loads configuration and data files, composes the prompt, and
// opens a fresh session. Any failure here is fatal: the prompt is fixed per
// session, so composition errors cannot be recovered mid-run.
func bootstrap(ctx context.Context, cmd *cobra.Command, promptVersion string, pretty bool) (*bot, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := observability.NewLogger(observability.Config{
		Level:   "info",
		LogDir:  cfg.LogDir,
		Console: cmd.ErrOrStderr(),
		Pretty:  pretty,
	})
	if err != nil {
		return nil, err
	}

	guide, err := styleguide.Load(filepath.Join(cfg.DataDir, styleGuideFile))
	if err != nil {
		return nil, err
	}

	catalog, err := prompts.LoadCatalog(filepath.Join(cfg.DataDir, promptsFile))
	if err != nil {
		return nil, err
	}

	composed, err := prompts.NewComposer(guide, catalog).Compose(promptVersion)
	if err != nil {
		return nil, fmt.Errorf("prompt composition failed: %w", err)
	}

	lookup, err := orders.LoadLookup(filepath.Join(cfg.DataDir, ordersFile))
	if err != nil {
		return nil, err
	}

	faq, err := orders.LoadFAQ(filepath.Join(cfg.DataDir, faqFile))
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(ctx, llm.Options{
		APIKey:      cfg.APIKey,
		Endpoint:    cfg.APIBase,
		Model:       cfg.ModelName,
		Temperature: cfg.Temperature,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	session := chat.NewSession(chat.Params{
		Prompt:            composed,
		Client:            client,
		Orders:            lookup,
		FAQ:               faq,
		MaxReplayMessages: cfg.MaxHistoryMessages,
	})

	log.Info().
		Str("session", session.ID().String()).
		Str("prompt_version", composed.Version).
		Str("model", cfg.ModelName).
		Msg("new session")

	return &bot{cfg: cfg, guide: guide, client: client, session: session, log: log}, nil
}

// close releases the model client.
func (b *bot) close() {
	if err := b.client.Close(); err != nil {
		b.log.Warn().Err(err).Msg("failed to close model client")
	}
}
