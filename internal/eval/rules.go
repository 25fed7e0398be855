// Package eval scores assistant replies against the brand style: fast
// deterministic rules first, then a grading model call, combined into a
// weighted final score.
package eval

import "strings"

const (
	emojiPenalty  = 20
	shoutPenalty  = 10
	lengthPenalty = 10
	maxAnswerLen  = 600
)

// RuleScore computes the deterministic, non-model quality score for an
// answer. It starts at 100 and subtracts fixed penalties: 20 for any emoji
// code point, 10 for the literal "!!!", 10 for answers over 600 characters.
// The result is clamped to [0, 100].
func RuleScore(text string) int {
	score := 100

	if containsEmoji(text) {
		score -= emojiPenalty
	}
	if strings.Contains(text, "!!!") {
		score -= shoutPenalty
	}
	if len([]rune(text)) > maxAnswerLen {
		score -= lengthPenalty
	}

	if score < 0 {
		return 0
	}
	return score
}

// containsEmoji reports whether the text has a code point in the emoji
// blocks U+1F300..U+1FAFF.
func containsEmoji(text string) bool {
	for _, r := range text {
		if r >= 0x1F300 && r <= 0x1FAFF {
			return true
		}
	}
	return false
}
