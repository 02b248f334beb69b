package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/lazaro/internal/maxestimator"
	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/misterclayt0n/lazaro/internal/utils"
	"github.com/spf13/cobra"
)

var plotMaxTrajectory bool

type maxPoint struct {
	Date   string  `json:"date"`
	Source string  `json:"source"`
	Value  float64 `json:"value"`
}

var plotMaxCmd = &cobra.Command{
	Use:   "plot-max",
	Short: "Plot observed TEST maxes and, optionally, the between-test Track B estimates",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newAppContext()
		ex, err := app.loadExercise()
		if err != nil {
			return err
		}
		history, err := app.store.ListHistory(ex.ID)
		if err != nil {
			return err
		}

		var points []maxPoint
		for _, h := range history {
			switch {
			case h.SessionType == models.SessionTest:
				points = append(points, maxPoint{Date: utils.FormatISODate(h.Date), Source: "TEST", Value: float64(h.MaxReps())})
			case plotMaxTrajectory && len(h.Sets) >= 2:
				if est, ok := maxestimator.Compute(h.Sets, -1); ok {
					points = append(points, maxPoint{Date: utils.FormatISODate(h.Date), Source: "fi_estimate", Value: est.FIEstimate})
					points = append(points, maxPoint{Date: utils.FormatISODate(h.Date), Source: "nuzzo_estimate", Value: est.NuzzoEstimate})
				}
			}
		}

		if jsonFlag {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(points)
		}

		printBoxedHeader("MAX TRAJECTORY")
		maxVal := 1.0
		for _, p := range points {
			if p.Value > maxVal {
				maxVal = p.Value
			}
		}
		for _, p := range points {
			barLen := int(p.Value / maxVal * 40)
			bar := strings.Repeat("█", barLen)
			c := color.New(color.FgGreen)
			if p.Source != "TEST" {
				c = color.New(color.FgCyan)
			}
			fmt.Printf("  %s %-14s %s %.1f\n", p.Date, p.Source, c.Sprint(bar), p.Value)
		}
		return nil
	},
}

func init() {
	plotMaxCmd.Flags().BoolVar(&plotMaxTrajectory, "trajectory", false, "include between-test Track B estimates alongside TEST points")
	rootCmd.AddCommand(plotMaxCmd)
}
