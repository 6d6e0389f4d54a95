package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartprep/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show assessment history and average score per topic",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of assessments to show")
	statsCmd.Flags().StringP("user", "u", "", "Only show assessments for this user")
	statsCmd.Flags().Bool("json", false, "Print JSON instead of tables")
}

func runStats(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	user, _ := cmd.Flags().GetString("user")
	asJSON, _ := cmd.Flags().GetBool("json")

	s, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.EventRepo().QueryAssessments(cmd.Context(), store.QueryOpts{Limit: limit, Username: user})
	if err != nil {
		return fmt.Errorf("query assessments: %w", err)
	}
	if asJSON {
		return writeJSON(os.Stdout, events)
	}
	if len(events) == 0 {
		fmt.Println("No assessments recorded yet.")
		return nil
	}

	rows := make([][]string, len(events))
	for i, e := range events {
		rows[i] = []string{
			e.Timestamp.Local().Format(timeLayout),
			truncate(e.Username, 12),
			truncate(e.Topic, 28),
			e.Kind,
			fmt.Sprintf("%d/%d", e.Score, e.Total),
			e.Level,
		}
	}
	writeTable(os.Stdout, []string{"Time", "User", "Topic", "Kind", "Score", "Level"}, rows, nil)

	if avgs := topicAverages(events); len(avgs) > 0 {
		rows = rows[:0]
		for _, a := range avgs {
			rows = append(rows, []string{truncate(a.Topic, 32), strconv.Itoa(a.Percent) + "%", strconv.Itoa(a.Attempts)})
		}
		fmt.Println("\nAverage by topic")
		writeTable(os.Stdout, []string{"Topic", "Average", "Attempts"}, rows, nil)
	}
	return nil
}

type topicAverage struct {
	Topic    string
	Percent  int
	Attempts int
}

// topicAverages is the mean score percentage per topic, sorted by topic.
// Assessments with no questions are skipped.
func topicAverages(events []store.AssessmentEvent) []topicAverage {
	sum := map[string]*topicAverage{}
	for _, e := range events {
		if e.Total <= 0 {
			continue
		}
		a, ok := sum[e.Topic]
		if !ok {
			a = &topicAverage{Topic: e.Topic}
			sum[e.Topic] = a
		}
		a.Percent += e.Score * 100 / e.Total
		a.Attempts++
	}

	out := make([]topicAverage, 0, len(sum))
	for _, a := range sum {
		out = append(out, topicAverage{Topic: a.Topic, Percent: a.Percent / a.Attempts, Attempts: a.Attempts})
	}
	slices.SortFunc(out, func(a, b topicAverage) int { return strings.Compare(a.Topic, b.Topic) })
	return out
}
