package cmd

import (
	"fmt"
	"time"

	"github.com/misterclayt0n/lazaro/internal/planner"
	"github.com/misterclayt0n/lazaro/internal/utils"
	"github.com/spf13/cobra"
)

var (
	skipFrom string
	skipDays int
)

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Shift the schedule forward (or back) by N days from a date, via the REST-record mechanism",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newAppContext()
		ex, err := app.loadExercise()
		if err != nil {
			return err
		}

		from := time.Now()
		if skipFrom != "" {
			from, err = utils.ParseISODate(skipFrom)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
		}

		if verr := planner.ValidateShiftDays(skipDays); verr != nil {
			return verr
		}

		history, err := app.store.ListHistory(ex.ID)
		if err != nil {
			return err
		}

		res, err := planner.ShiftForward(history, ex.ID, from, skipDays)
		if err != nil {
			return err
		}

		if len(res.Append) > 0 {
			if _, err := app.store.AppendMany(res.Append); err != nil {
				return err
			}
		}
		if len(res.RemoveDates) > 0 {
			dates := make([]string, len(res.RemoveDates))
			for i, d := range res.RemoveDates {
				dates[i] = utils.FormatISODate(d)
			}
			if err := app.store.RemoveByDates(ex.ID, dates); err != nil {
				return err
			}
		}

		printBoxedHeader("SKIP")
		printMetric("New plan start", utils.FormatISODate(res.PlanStart))
		printMetric("REST records added", len(res.Append))
		printMetric("REST records removed", len(res.RemoveDates))
		return nil
	},
}

func init() {
	skipCmd.Flags().StringVar(&skipFrom, "from", "", "date to shift from, YYYY-MM-DD (default today)")
	skipCmd.Flags().IntVar(&skipDays, "days", 0, "days to shift; positive inserts REST, negative removes previously-inserted REST")
	skipCmd.MarkFlagRequired("days")
	rootCmd.AddCommand(skipCmd)
}
