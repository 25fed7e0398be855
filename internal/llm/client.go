// Package llm provides the model client abstraction used for chat turns and
// for the secondary grading calls.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/shoply/support-bot/internal/history"
)

// Request is one model invocation: an optional system instruction, replayed
// prior turns, the current user message, and an optional output schema.
// When Schema is set the model is constrained to JSON matching it.
type Request struct {
	System  string
	History []history.Message
	User    string
	Schema  *genai.Schema
}

// Completion is the model's reply plus token accounting. TotalTokens is 0
// when the backend reports no usage metadata; absence is never an error.
type Completion struct {
	Text        string
	TotalTokens int
}

// Client is an abstraction over LLM providers.
type Client interface {
	// Complete runs one model invocation and returns the completion.
	Complete(ctx context.Context, req *Request) (*Completion, error)
	// Close releases any resources held by the client.
	Close() error
}

// Options configures a client instance.
type Options struct {
	APIKey      string
	Endpoint    string // optional API base override
	Model       string
	Temperature float64
	Timeout     time.Duration // per-call deadline; the sole abort mechanism
}

// NewClient creates a model client. Gemini is the only wired provider; the
// Options shape leaves room for others.
func NewClient(ctx context.Context, opts Options) (Client, error) {
	return NewGeminiClient(ctx, opts)
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	opts   Options
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, opts Options) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(opts.APIKey)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, opts: opts}, nil
}

// Complete runs one chat invocation with the configured timeout.
func (c *GeminiClient) Complete(ctx context.Context, req *Request) (*Completion, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	model := c.client.GenerativeModel(c.opts.Model)
	model.SetTemperature(float32(c.opts.Temperature))

	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	if req.Schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = req.Schema
	}

	cs := model.StartChat()
	cs.History = toGenaiHistory(req.History)

	resp, err := cs.SendMessage(ctx, genai.Text(req.User))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return &Completion{Text: text, TotalTokens: totalTokens(resp)}, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// toGenaiHistory converts transcript messages to provider content. Gemini
// names the assistant role "model"; system entries never appear in replayed
// history (the system slot is carried separately).
func toGenaiHistory(messages []history.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := "user"
		if msg.Role == history.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return contents
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// totalTokens pulls token usage from response metadata, defaulting to 0
// when the backend omits it.
func totalTokens(resp *genai.GenerateContentResponse) int {
	if resp.UsageMetadata == nil {
		return 0
	}
	return int(resp.UsageMetadata.TotalTokenCount)
}
