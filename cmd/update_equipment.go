package cmd

import (
	"fmt"
	"sort"

	"github.com/misterclayt0n/lazaro/internal/utils"
	"github.com/spf13/cobra"
)

var updateEquipmentPath string

var updateEquipmentCmd = &cobra.Command{
	Use:   "update-equipment",
	Short: "Load an equipment preset (TOML) and attach it to future log-session records for this exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		if updateEquipmentPath == "" {
			return fmt.Errorf("--preset is required")
		}

		eq, err := utils.ParseEquipmentPresetFromTOML(updateEquipmentPath)
		if err != nil {
			return fmt.Errorf("parse equipment preset: %w", err)
		}

		app := newAppContext()
		ex, err := app.loadExercise()
		if err != nil {
			return err
		}
		if err := app.store.SaveEquipment(ex.ID, eq); err != nil {
			return err
		}

		printBoxedHeader("EQUIPMENT UPDATED")
		keys := make([]string, 0, len(eq))
		for k := range eq {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			printMetric(k, eq[k])
		}
		return nil
	},
}

func init() {
	updateEquipmentCmd.Flags().StringVar(&updateEquipmentPath, "preset", "", "path to an equipment preset TOML file")
	rootCmd.AddCommand(updateEquipmentCmd)
}
