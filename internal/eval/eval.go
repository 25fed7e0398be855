package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/shoply/support-bot/internal/chat"
)

// Final score weights: deterministic rules 40%, grading model 60%.
const (
	ruleWeight = 0.4
	llmWeight  = 0.6
)

// ReportFileName is the report artifact, overwritten on each batch run.
const ReportFileName = "style_eval.json"

// EvaluationRecord is the per-prompt result. Failed items carry Error and
// contribute nothing to the mean.
type EvaluationRecord struct {
	Prompt     string   `json:"prompt"`
	Answer     string   `json:"answer"`
	Actions    []string `json:"actions"`
	ToneModel  string   `json:"tone_model"`
	RuleScore  int      `json:"rule_score"`
	LLMScore   int      `json:"llm_score"`
	FinalScore int      `json:"final"`
	Notes      string   `json:"notes"`
	Error      string   `json:"error,omitempty"`
}

// Report aggregates a batch run.
type Report struct {
	MeanFinal float64            `json:"mean_final"`
	Items     []EvaluationRecord `json:"items"`
}

// Evaluator replays prompts through a chat session and scores each reply.
type Evaluator struct {
	session *chat.Session
	grader  *Grader
	log     zerolog.Logger
}

// NewEvaluator builds an evaluator over an existing session and grader.
func NewEvaluator(session *chat.Session, grader *Grader, log zerolog.Logger) *Evaluator {
	return &Evaluator{session: session, grader: grader, log: log}
}

// EvaluateBatch drives each prompt through a full chat turn, scores the
// reply with rules plus the grading model, and aggregates the results.
// Prompts are processed in input order for reproducible reports. A failed
// item is recorded distinctly and excluded from the mean.
func (e *Evaluator) EvaluateBatch(ctx context.Context, promptList []string) (*Report, error) {
	report := &Report{Items: make([]EvaluationRecord, 0, len(promptList))}

	var sum, scored int
	for _, prompt := range promptList {
		item := e.evaluateOne(ctx, prompt)
		report.Items = append(report.Items, item)

		if item.Error == "" {
			sum += item.FinalScore
			scored++
		} else {
			e.log.Warn().Str("prompt", prompt).Str("error", item.Error).Msg("evaluation item failed")
		}
	}

	if scored > 0 {
		report.MeanFinal = round2(float64(sum) / float64(scored))
	}

	return report, nil
}

func (e *Evaluator) evaluateOne(ctx context.Context, prompt string) EvaluationRecord {
	item := EvaluationRecord{Prompt: prompt, Actions: []string{}}

	reply, _, err := e.session.Respond(ctx, prompt)
	if err != nil {
		item.Error = err.Error()
		return item
	}

	item.Answer = reply.AnswerText()
	if structured, ok := reply.(chat.StructuredAnswer); ok {
		item.Actions = structured.Reply.Actions
		item.ToneModel = structured.Reply.Tone
	}

	item.RuleScore = RuleScore(item.Answer)

	grade, err := e.grader.Grade(ctx, item.Answer)
	if err != nil {
		item.Error = err.Error()
		return item
	}

	item.LLMScore = grade.Score
	item.Notes = grade.Notes
	item.FinalScore = FinalScore(item.RuleScore, grade.Score)
	return item
}

// FinalScore combines rule and model scores with the fixed weights,
// truncating to an integer.
func FinalScore(ruleScore, llmScore int) int {
	return int(math.Floor(ruleWeight*float64(ruleScore) + llmWeight*float64(llmScore)))
}

// WriteReport writes the report artifact into dir, overwriting any previous
// run, and returns the file path.
func WriteReport(report *Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	path := filepath.Join(dir, ReportFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
