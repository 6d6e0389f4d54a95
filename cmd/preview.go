package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/smartprep/internal/assessment"
	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/llm"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated questions for a topic (no database)",
	Long: `Generate and interactively answer multiple-choice questions for a topic.

This is a stateless developer tool: no database, no streak, no history.
Useful for evaluating question quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", "", "Topic to generate questions for, e.g. Aptitude or Java")
	previewCmd.Flags().Bool("mixed", false, "Generate a mixed Aptitude/Core CS set instead of a single topic")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	mixed, _ := cmd.Flags().GetBool("mixed")
	count, _ := cmd.Flags().GetInt("count")
	if topic == "" && !mixed {
		return fmt.Errorf("pass --topic or --mixed")
	}
	if count < 1 {
		return fmt.Errorf("invalid count %d: must be at least 1", count)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// No EventRepo: request logging is skipped.
	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, cfg.LLM.ToLLM(), nil, zap.NewNop())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	svc := content.New(provider, content.Config{
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})

	label := topic
	if mixed {
		label = "Aptitude + Core CS"
	}
	fmt.Printf("Topic: %s (%s)\n", label, provider.ModelID())
	fmt.Printf("Generating %d questions...\n\n", count)

	var questions []content.Question
	if mixed {
		questions, err = svc.MixedQuestions(ctx, count)
	} else {
		questions, err = svc.Questions(ctx, topic, count)
	}
	if err != nil {
		return fmt.Errorf("generate questions: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	answers := make([]int, 0, len(questions))

	for i, q := range questions {
		fmt.Printf("── Question %d/%d ──", i+1, len(questions))
		if q.Category != "" {
			fmt.Printf(" [%s]", q.Category)
		}
		fmt.Println()
		fmt.Println(q.Text)
		for j, o := range q.Options {
			fmt.Printf("  %c) %s\n", 'a'+j, o)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		choice := parseChoice(scanner.Text(), len(q.Options))
		answers = append(answers, choice)
		switch {
		case choice < 0:
			fmt.Println("(skipped)")
		case choice == q.CorrectIndex:
			fmt.Println("\033[32m✓ Correct!\033[0m")
		default:
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %c) %s\n", 'a'+q.CorrectIndex, q.Options[q.CorrectIndex])
		}
		fmt.Println()
	}

	score := assessment.CountCorrect(questions, answers)
	fmt.Printf("── Summary: %d/%d correct ──\n", score, len(questions))
	return nil
}

// parseChoice accepts a letter or a 1-based number; -1 means skipped.
func parseChoice(in string, n int) int {
	in = strings.ToLower(strings.TrimSpace(in))
	if len(in) != 1 {
		return -1
	}
	c := in[0]
	switch {
	case c >= 'a' && int(c-'a') < n:
		return int(c - 'a')
	case c >= '1' && int(c-'1') < n:
		return int(c - '1')
	}
	return -1
}
