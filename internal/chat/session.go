package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shoply/support-bot/internal/history"
	"github.com/shoply/support-bot/internal/llm"
	"github.com/shoply/support-bot/internal/orders"
	"github.com/shoply/support-bot/internal/prompts"
)

// OrderCommand is the turn prefix that triggers an order-status lookup.
const OrderCommand = "/order"

// Params carries the collaborators a session needs. Everything is passed in
// explicitly; the session reads no globals.
type Params struct {
	Prompt *prompts.ComposedPrompt
	Client llm.Client
	Orders *orders.Lookup
	FAQ    *orders.FAQ // optional
	// MaxReplayMessages bounds how many transcript entries are replayed into
	// the prompt. Non-positive replays everything. The transcript itself is
	// never truncated.
	MaxReplayMessages int
}

// Session owns one conversation: identity, composed prompt, and append-only
// history. It is not safe for concurrent use; each session has one caller.
type Session struct {
	id      uuid.UUID
	prompt  *prompts.ComposedPrompt
	client  llm.Client
	orders  *orders.Lookup
	faq     *orders.FAQ
	replay  int
	history []history.Message
}

// NewSession creates a session with a fresh UUID.
func NewSession(p Params) *Session {
	return &Session{
		id:     uuid.New(),
		prompt: p.Prompt,
		client: p.Client,
		orders: p.Orders,
		faq:    p.FAQ,
		replay: p.MaxReplayMessages,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Snapshot returns a copy of the transcript. History is mutated only by
// Respond; callers cannot alter session state through the returned slice.
func (s *Session) Snapshot() []history.Message {
	snap := make([]history.Message, len(s.history))
	copy(snap, s.history)
	return snap
}

// Respond drives one chat turn and returns the reply plus token usage.
//
// A bare "/order <id>" short-circuits to the raw status with no model call.
// "/order <id> <question>" appends the status as context and still asks the
// model for a styled answer. History gains exactly one user and one
// assistant entry per successful turn; a failed turn leaves it unchanged.
func (s *Session) Respond(ctx context.Context, userTurn string) (Reply, int, error) {
	modelInput := userTurn

	if orderID, question, ok := parseOrderCommand(userTurn); ok {
		if orderID == "" {
			// Nothing to look up; answer without touching model or history.
			return PlainAnswer{Text: "Пожалуйста, укажите номер заказа после команды /order."}, 0, nil
		}

		status := s.orders.Status(orderID)
		if question == "" {
			// Documented fast path: raw status, no model call.
			reply := PlainAnswer{Text: status}
			s.append(userTurn, status)
			return reply, 0, nil
		}

		// The visible transcript keeps the command text; only the model
		// input is augmented with the resolved status.
		modelInput = fmt.Sprintf("%s\n\nСтатус заказа %s: %s", userTurn, orderID, status)
	}

	if s.faq != nil {
		if answer, ok := s.faq.Match(userTurn); ok {
			modelInput = fmt.Sprintf("%s\n\nСправка из FAQ: %s", modelInput, answer)
		}
	}

	req := &llm.Request{
		System: s.prompt.System,
		User:   s.prompt.RenderUser(modelInput),
		Schema: ReplySchema(),
	}
	if s.prompt.HasHistorySlot {
		req.History = history.Truncate(s.Snapshot(), s.replay)
	}

	completion, err := s.client.Complete(ctx, req)
	if err != nil {
		return nil, 0, &ModelInvocationError{Message: "chat turn failed", Cause: err}
	}

	reply, err := ParseStructuredReply(completion.Text)
	if err != nil {
		return nil, 0, err
	}

	s.append(userTurn, reply.Answer)
	return StructuredAnswer{Reply: *reply}, completion.TotalTokens, nil
}

// append records a completed turn: user entry first, then assistant.
func (s *Session) append(userTurn, answer string) {
	s.history = append(s.history,
		history.NewMessage(history.RoleUser, userTurn),
		history.NewMessage(history.RoleAssistant, answer),
	)
}

// parseOrderCommand splits "/order <id> [question...]" into its parts.
// Returns ok=false when the turn is not an order command.
func parseOrderCommand(turn string) (orderID, question string, ok bool) {
	trimmed := strings.TrimSpace(turn)
	if trimmed != OrderCommand && !strings.HasPrefix(trimmed, OrderCommand+" ") {
		return "", "", false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, OrderCommand))
	if rest == "" {
		return "", "", true
	}

	parts := strings.SplitN(rest, " ", 2)
	orderID = parts[0]
	if len(parts) == 2 {
		question = strings.TrimSpace(parts[1])
	}
	return orderID, question, true
}
