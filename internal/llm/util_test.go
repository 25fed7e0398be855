package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json", `{"answer": "ok"}`, `{"answer": "ok"}`},
		{"json block", "```json\n{\"answer\": \"ok\"}\n```", `{"answer": "ok"}`},
		{"generic block", "```\n{\"answer\": \"ok\"}\n```", `{"answer": "ok"}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestToGenaiHistory_RoleMapping(t *testing.T) {
	msgs := historyMessages("привет", "здравствуйте")

	contents := toGenaiHistory(msgs)
	assert.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
}
