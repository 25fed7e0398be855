package eval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"plain short text", "plain short text", 100},
		{"emoji", "Ваш заказ в пути 😀", 80},
		{"triple bang", "Поздравляем!!!", 90},
		{"over 600 chars", strings.Repeat("д", 601), 90},
		{"all penalties", "Wow!!! 😀" + strings.Repeat("x", 600), 60},
		{"exactly 600 chars is fine", strings.Repeat("x", 600), 100},
		{"double bang is fine", "Спасибо!!", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RuleScore(tt.text))
		})
	}
}

func TestRuleScore_ClampedToZeroFloor(t *testing.T) {
	score := RuleScore("😀!!!" + strings.Repeat("x", 601))
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}

func TestFinalScore(t *testing.T) {
	assert.Equal(t, 88, FinalScore(100, 80))
	assert.Equal(t, 100, FinalScore(100, 100))
	assert.Equal(t, 0, FinalScore(0, 0))
	// 0.4*85 + 0.6*72 = 77.2 -> floor
	assert.Equal(t, 77, FinalScore(85, 72))
}
