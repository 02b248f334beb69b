package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteRecordCmd = &cobra.Command{
	Use:   "delete-record <id>",
	Short: "Delete one history record by its history id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid history id %q: %w", args[0], err)
		}

		app := newAppContext()
		ex, err := app.loadExercise()
		if err != nil {
			return err
		}

		if err := app.store.DeleteRecord(ex.ID, id); err != nil {
			return err
		}

		printBoxedHeader("DELETED")
		printMetric("History id", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteRecordCmd)
}
