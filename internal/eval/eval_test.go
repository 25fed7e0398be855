package eval

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoply/support-bot/internal/chat"
	"github.com/shoply/support-bot/internal/orders"
	"github.com/shoply/support-bot/internal/prompts"
)

func evalSession(client *stubClient) *chat.Session {
	return chat.NewSession(chat.Params{
		Prompt: &prompts.ComposedPrompt{
			System:         "Ты — ассистент бренда Shoply.",
			HasHistorySlot: true,
			UserTemplate:   "Вопрос: {{.Input}}",
		},
		Client: client,
		Orders: orders.NewLookup(nil),
	})
}

func TestEvaluateBatch_Deterministic(t *testing.T) {
	chatClient := &stubClient{texts: []string{
		`{"answer": "plain short text", "tone": "да", "actions": []}`,
	}}
	gradeClient := &stubClient{texts: []string{
		`{"score": 80, "notes": "хорошо"}`,
	}}

	evaluator := NewEvaluator(evalSession(chatClient), NewGrader(gradeClient, graderGuide(t)), zerolog.Nop())

	report, err := evaluator.EvaluateBatch(context.Background(), []string{"вопрос 1", "вопрос 2"})
	require.NoError(t, err)

	require.Len(t, report.Items, 2)
	for _, item := range report.Items {
		assert.Empty(t, item.Error)
		assert.Equal(t, 100, item.RuleScore)
		assert.Equal(t, 80, item.LLMScore)
		assert.Equal(t, 88, item.FinalScore) // 0.4*100 + 0.6*80
	}
	assert.Equal(t, 88.0, report.MeanFinal)

	// Items preserve input order.
	assert.Equal(t, "вопрос 1", report.Items[0].Prompt)
	assert.Equal(t, "вопрос 2", report.Items[1].Prompt)
}

func TestEvaluateBatch_MixedScoresRoundedMean(t *testing.T) {
	chatClient := &stubClient{texts: []string{
		`{"answer": "plain short text", "tone": "да", "actions": []}`,
		`{"answer": "Ура!!!", "tone": "нет", "actions": []}`,
	}}
	gradeClient := &stubClient{texts: []string{
		`{"score": 80, "notes": "хорошо"}`,
		`{"score": 51, "notes": "крик"}`,
	}}

	evaluator := NewEvaluator(evalSession(chatClient), NewGrader(gradeClient, graderGuide(t)), zerolog.Nop())

	report, err := evaluator.EvaluateBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)

	// Item 1: 0.4*100 + 0.6*80 = 88. Item 2: 0.4*90 + 0.6*51 = 66.6 -> 66.
	assert.Equal(t, 88, report.Items[0].FinalScore)
	assert.Equal(t, 66, report.Items[1].FinalScore)
	assert.Equal(t, 77.0, report.MeanFinal)
}

func TestEvaluateBatch_GradingFailureIsolated(t *testing.T) {
	chatClient := &stubClient{texts: []string{
		`{"answer": "plain short text", "tone": "да", "actions": []}`,
	}}
	gradeClient := &stubClient{texts: []string{
		`{"score": 80, "notes": "хорошо"}`,
		`нет оценки`,
		`{"score": 80, "notes": "хорошо"}`,
	}}

	evaluator := NewEvaluator(evalSession(chatClient), NewGrader(gradeClient, graderGuide(t)), zerolog.Nop())

	report, err := evaluator.EvaluateBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, report.Items, 3)

	assert.Empty(t, report.Items[0].Error)
	assert.NotEmpty(t, report.Items[1].Error)
	assert.Contains(t, report.Items[1].Error, "grading")
	assert.Empty(t, report.Items[2].Error)

	// The failed item is excluded from the mean, never defaulted to a score.
	assert.Equal(t, 88.0, report.MeanFinal)
}

func TestEvaluateBatch_TurnFailureIsolated(t *testing.T) {
	chatClient := &stubClient{texts: []string{`не json`}}
	gradeClient := &stubClient{texts: []string{`{"score": 80, "notes": "x"}`}}

	evaluator := NewEvaluator(evalSession(chatClient), NewGrader(gradeClient, graderGuide(t)), zerolog.Nop())

	report, err := evaluator.EvaluateBatch(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.NotEmpty(t, report.Items[0].Error)
	assert.Equal(t, 0.0, report.MeanFinal)
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	report := &Report{
		MeanFinal: 88.0,
		Items: []EvaluationRecord{
			{Prompt: "вопрос", Answer: "ответ", Actions: []string{}, FinalScore: 88},
		},
	}

	path, err := WriteReport(report, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ReportFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Report
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, 88.0, loaded.MeanFinal)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "вопрос", loaded.Items[0].Prompt)

	// A second run overwrites the artifact.
	report.MeanFinal = 90.0
	_, err = WriteReport(report, dir)
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, 90.0, loaded.MeanFinal)
}
