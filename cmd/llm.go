package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/smartprep/internal/llm"
	"github.com/abhisek/smartprep/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged model calls",
	Long: `Every question set, challenge, code run, evaluation and roadmap request
is logged with its prompt, reply, token counts and latency. These commands
read that log.`,
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE:  runLLMList,
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one call",
	Args:  cobra.ExactArgs(1),
	RunE:  runLLMView,
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token usage per purpose and estimated cost per model",
	RunE:  runLLMStats,
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose ("+purposeNames()+")")
	llmListCmd.Flags().Duration("since", 0, "Only show calls newer than this, e.g. 24h")
	llmListCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	llmStatsCmd.Flags().Bool("json", false, "Print JSON instead of tables")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}

func runLLMList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	purpose, _ := cmd.Flags().GetString("purpose")
	since, _ := cmd.Flags().GetDuration("since")
	asJSON, _ := cmd.Flags().GetBool("json")

	if purpose != "" {
		if _, ok := llm.ParsePurpose(purpose); !ok {
			return fmt.Errorf("unknown purpose %q: want one of %s", purpose, purposeNames())
		}
	}
	opts := store.QueryOpts{Limit: limit, Purpose: purpose}
	if since > 0 {
		opts.From = time.Now().Add(-since)
	}

	s, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("query model calls: %w", err)
	}
	if asJSON {
		return writeJSON(os.Stdout, events)
	}
	if len(events) == 0 {
		fmt.Println("No model calls logged yet.")
		return nil
	}

	rows := make([][]string, len(events))
	for i, e := range events {
		status := "ok"
		if !e.Success {
			status = "failed"
		}
		rows[i] = []string{
			strconv.Itoa(e.ID),
			humanize.Time(e.Timestamp),
			e.Purpose,
			truncate(e.Model, 28),
			tokens(e.InputTokens),
			tokens(e.OutputTokens),
			(time.Duration(e.LatencyMs) * time.Millisecond).String(),
			status,
		}
	}
	writeTable(os.Stdout, []string{"ID", "Time", "Purpose", "Model", "In", "Out", "Latency", "Status"}, rows, nil)
	return nil
}

func runLLMView(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid ID %q: must be a number", args[0])
	}

	s, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get model call: %w", err)
	}
	if e == nil {
		return fmt.Errorf("no model call with ID %d", id)
	}

	fields := [][2]string{
		{"Time", e.Timestamp.Local().Format(timeLayout) + " (" + humanize.Time(e.Timestamp) + ")"},
		{"Purpose", e.Purpose},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Tokens", tokens(e.InputTokens) + " in, " + tokens(e.OutputTokens) + " out"},
		{"Latency", (time.Duration(e.LatencyMs) * time.Millisecond).String()},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Printf("%-9s %s\n", f[0]+":", f[1])
	}

	section := func(name, body string) {
		fmt.Printf("\n── %s %s\n", name, strings.Repeat("─", 50-len(name)))
		if body == "" {
			body = "(not captured)"
		}
		fmt.Println(body)
	}
	section("Prompt", e.RequestBody)
	section("Reply", e.ResponseBody)
	return nil
}

func runLLMStats(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	s, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("usage by purpose: %w", err)
	}
	byModel, err := s.EventRepo().LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("usage by model: %w", err)
	}

	if asJSON {
		return writeJSON(os.Stdout, map[string]any{"purposes": byPurpose, "models": byModel})
	}
	if len(byPurpose) == 0 {
		fmt.Println("No model calls logged yet.")
		return nil
	}

	var calls, in, out int
	rows := make([][]string, 0, len(byPurpose))
	for _, u := range byPurpose {
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
		rows = append(rows, []string{
			u.Purpose,
			strconv.Itoa(u.Calls),
			tokens(u.InputTokens),
			tokens(u.OutputTokens),
			strconv.FormatInt(u.AvgLatencyMs, 10) + "ms",
		})
	}
	fmt.Println("Usage by purpose")
	writeTable(os.Stdout, []string{"Purpose", "Calls", "In", "Out", "Avg latency"}, rows,
		[]string{"total", strconv.Itoa(calls), tokens(in), tokens(out), ""})

	if len(byModel) == 0 {
		return nil
	}
	rows, total, unpriced := costRows(byModel)
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	fmt.Println("\nEstimated cost (USD)")
	writeTable(os.Stdout, []string{"Model", "Calls", "In", "Out", "Cost"}, rows,
		[]string{label, "", "", "", formatCost(total)})
	if len(unpriced) > 0 {
		fmt.Printf("No pricing for: %s\n", strings.Join(unpriced, ", "))
	}
	return nil
}

// costRows prices each model's usage. Models missing from the price
// table are shown with "?" and listed in unpriced.
func costRows(usage []store.ModelUsage) (rows [][]string, total float64, unpriced []string) {
	for _, u := range usage {
		cost := "?"
		if c := llm.LookupCost(u.Model); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			cost = formatCost(usd)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		rows = append(rows, []string{
			truncate(u.Model, 32),
			strconv.Itoa(u.Calls),
			tokens(u.InputTokens),
			tokens(u.OutputTokens),
			cost,
		})
	}
	return rows, total, unpriced
}

func purposeNames() string {
	names := make([]string, len(llm.Purposes))
	for i, p := range llm.Purposes {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
