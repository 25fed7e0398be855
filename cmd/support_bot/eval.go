package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shoply/support-bot/internal/eval"
)

var evalCommand = &cobra.Command{
	Use:   "eval",
	Short: "Replay evaluation prompts and score replies against the style guide",
	Long: `Drives each prompt from the evaluation set through a full chat turn,
scores the reply with deterministic rules plus a grading model call, and
writes the aggregate report to the report directory.`,
	RunE: runEvalCmd,
}

var (
	evalPromptsPath   string
	evalPromptVersion string
)

func init() {
	evalCommand.Flags().StringVar(&evalPromptsPath, "prompts", "", "Path to evaluation prompts file (default <data-dir>/eval_prompts.txt)")
	evalCommand.Flags().StringVar(&evalPromptVersion, "prompt-version", "current", "Prompt catalog version to evaluate")
	rootCmd.AddCommand(evalCommand)
}

func runEvalCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	b, err := bootstrap(ctx, cmd, evalPromptVersion, false)
	if err != nil {
		return err
	}
	defer b.close()

	path := evalPromptsPath
	if path == "" {
		path = filepath.Join(b.cfg.DataDir, evalPromptsFile)
	}

	promptList, err := readPrompts(path)
	if err != nil {
		return err
	}
	if len(promptList) == 0 {
		return fmt.Errorf("no evaluation prompts in %s", path)
	}

	evaluator := eval.NewEvaluator(b.session, eval.NewGrader(b.client, b.guide), b.log)
	report, err := evaluator.EvaluateBatch(ctx, promptList)
	if err != nil {
		return err
	}

	reportPath, err := eval.WriteReport(report, b.cfg.ReportDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Средний балл: %.2f\n", report.MeanFinal)
	fmt.Fprintf(out, "Отчёт: %s\n", reportPath)
	return nil
}

// readPrompts loads one prompt per non-empty line.
func readPrompts(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read evaluation prompts %s: %w", path, err)
	}

	var promptList []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			promptList = append(promptList, line)
		}
	}
	return promptList, nil
}
