package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartprep/internal/streak"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the streak and/or assessment history",
	RunE: func(cmd *cobra.Command, args []string) error {
		clearStreak, _ := cmd.Flags().GetBool("streak")
		clearHistory, _ := cmd.Flags().GetBool("history")
		if all, _ := cmd.Flags().GetBool("all"); all {
			clearStreak, clearHistory = true, true
		}
		if !clearStreak && !clearHistory {
			return errors.New("nothing to reset: pass --streak, --history or --all")
		}

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		if clearStreak {
			if err := streak.New(s.PreferenceRepo()).Reset(ctx); err != nil {
				return fmt.Errorf("reset streak: %w", err)
			}
			fmt.Println("Streak cleared.")
		}
		if clearHistory {
			n, err := s.EventRepo().ClearAssessments(ctx)
			if err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Printf("Removed %d assessment(s).\n", n)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("streak", false, "Clear the daily streak")
	resetCmd.Flags().Bool("history", false, "Delete assessment history")
	resetCmd.Flags().Bool("all", false, "Clear everything")
}
