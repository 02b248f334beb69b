package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/lazaro/configs"
	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/misterclayt0n/lazaro/internal/validate"
	"github.com/spf13/cobra"
)

var (
	initBodyweight float64
	initBaseline   int
	initDays       int
	initHeight     float64
	initSex        string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a user profile and load the bundled exercise definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := models.UserProfile{
			HeightCm:           initHeight,
			Sex:                initSex,
			BodyweightKg:       initBodyweight,
			DefaultDaysPerWeek: initDays,
			TargetMaxReps:      initBaseline,
			EnabledExercises:   configs.ExerciseIDs(),
			BaselineMax:        map[string]float64{},
		}
		if err := validate.Profile(profile); err != nil {
			return err
		}
		if err := validate.DaysPerWeek(initDays); err != nil {
			return err
		}

		app := newAppContext()
		if err := app.store.SaveProfile(profile); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		for _, id := range configs.ExerciseIDs() {
			ex, err := configs.Exercise(id)
			if err != nil {
				return err
			}
			if err := validate.Exercise(ex); err != nil {
				return err
			}
			if err := app.store.SaveExercise(ex); err != nil {
				return fmt.Errorf("save exercise %s: %w", id, err)
			}
		}

		printBoxedHeader("INITIALIZED")
		printMetric("Bodyweight", fmt.Sprintf("%.1f kg", initBodyweight))
		printMetric("Baseline max reps", initBaseline)
		printMetric("Days per week", initDays)
		fmt.Println(color.New(color.FgGreen).Sprint("  Loaded exercises: pull_up, dip, bss"))
		return nil
	},
}

func init() {
	initCmd.Flags().Float64Var(&initBodyweight, "bodyweight", 0, "bodyweight in kg")
	initCmd.Flags().IntVar(&initBaseline, "baseline", 0, "baseline max reps before any TEST session")
	initCmd.Flags().IntVar(&initDays, "days", 3, "default training days per week (1-5)")
	initCmd.Flags().Float64Var(&initHeight, "height", 0, "height in cm")
	initCmd.Flags().StringVar(&initSex, "sex", "", "sex, free text")
	initCmd.MarkFlagRequired("bodyweight")
	initCmd.MarkFlagRequired("baseline")
	rootCmd.AddCommand(initCmd)
}
