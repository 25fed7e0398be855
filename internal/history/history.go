// Package history holds the conversation message model and the bounded
// replay helpers used when rendering prompts.
package history

import "time"

// Message roles as they appear in the transcript and in prompt replay.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation entry.
type Message struct {
	Role       string
	Content    string
	TokenCount int
	Timestamp  time.Time
}

// NewMessage builds a message with an estimated token count.
func NewMessage(role, content string) Message {
	return Message{
		Role:       role,
		Content:    content,
		TokenCount: EstimateTokens(content),
		Timestamp:  time.Now(),
	}
}

// Truncate returns the newest messages up to maxMessages. A non-positive
// bound disables truncation. The input slice is not modified; callers keep
// their full transcript.
func Truncate(messages []Message, maxMessages int) []Message {
	if maxMessages <= 0 || len(messages) <= maxMessages {
		return messages
	}
	return messages[len(messages)-maxMessages:]
}

// EstimateTokens estimates the token count for text using a Unicode-aware
// heuristic: ~4 ASCII characters per token, ~1 token per non-ASCII rune
// (Cyrillic, CJK, emoji).
func EstimateTokens(text string) int {
	weight := 0
	for _, r := range text {
		if r <= 127 {
			weight++
		} else {
			weight += 4
		}
	}
	return (weight + 3) / 4
}
