package eval

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"github.com/shoply/support-bot/internal/llm"
	"github.com/shoply/support-bot/internal/prompts"
	"github.com/shoply/support-bot/internal/styleguide"
)

// Grade is the validated output of a grading model call.
type Grade struct {
	Score int    `json:"score"`
	Notes string `json:"notes"`
}

const graderRubric = `Ты — строгий ревьюер соответствия голосу бренда {{.Brand}}.
Тон: {{.Persona}}. Избегай: {{.Avoid}}. Обязательно: {{.MustInclude}}.
Оцени ответ ассистента по шкале 0..100 и объясни оценку одной-двумя фразами.`

const graderQuestion = `Ответ ассистента:
{{.Answer}}

Дай целочисленный score 0..100 и краткие заметки почему.`

// Grader scores replies against the brand rubric via a secondary model call.
type Grader struct {
	client llm.Client
	rubric string
}

// NewGrader builds a grader with a rubric rendered from the style guide.
// The rubric is fixed for the grader's lifetime.
func NewGrader(client llm.Client, guide *styleguide.StyleGuide) *Grader {
	rubric := prompts.Format(graderRubric, map[string]string{
		"Brand":       guide.Brand,
		"Persona":     guide.Tone.Persona,
		"Avoid":       guide.AvoidList(),
		"MustInclude": guide.MustIncludeList(),
	})
	return &Grader{client: client, rubric: rubric}
}

// Grade scores one answer. Output that cannot be validated into the Grade
// shape fails with GradingError; a score is never silently defaulted.
func (g *Grader) Grade(ctx context.Context, answer string) (*Grade, error) {
	req := &llm.Request{
		System: g.rubric,
		User:   prompts.Format(graderQuestion, map[string]string{"Answer": answer}),
		Schema: gradeSchema(),
	}

	completion, err := g.client.Complete(ctx, req)
	if err != nil {
		return nil, &GradingError{Message: "grading call failed", Cause: err}
	}

	return parseGrade(completion.Text)
}

// parseGrade validates raw grader output into a Grade.
func parseGrade(raw string) (*Grade, error) {
	cleaned := llm.CleanJSONBlock(raw)

	// Score is a pointer so a missing field is distinguishable from zero.
	var resp struct {
		Score *int   `json:"score"`
		Notes string `json:"notes"`
	}
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, &GradingError{Message: "grader output is not valid JSON", Cause: err}
	}
	if resp.Score == nil {
		return nil, &GradingError{Message: "grader output has no score"}
	}
	if *resp.Score < 0 || *resp.Score > 100 {
		return nil, &GradingError{Message: fmt.Sprintf("grader score %d outside [0, 100]", *resp.Score)}
	}

	return &Grade{Score: *resp.Score, Notes: resp.Notes}, nil
}

func gradeSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score": {Type: genai.TypeInteger, Description: "Оценка соответствия голосу бренда, 0..100"},
			"notes": {Type: genai.TypeString, Description: "Краткое объяснение оценки"},
		},
		Required: []string{"score", "notes"},
	}
}
