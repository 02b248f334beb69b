package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/lazaro/internal/adaptation"
	"github.com/misterclayt0n/lazaro/internal/config"
	"github.com/misterclayt0n/lazaro/internal/logging"
	"github.com/misterclayt0n/lazaro/internal/models"
	"github.com/misterclayt0n/lazaro/internal/physiology"
	"github.com/misterclayt0n/lazaro/internal/storage"
	"github.com/spf13/cobra"
)

// timeNowUTC returns the current wall-clock time in UTC. The volume
// command and its averageWeeklySets helper read the clock through it;
// the other commands call time.Now directly.
func timeNowUTC() time.Time {
	return time.Now().UTC()
}

var rootCmd = &cobra.Command{
	Use:           "lazaro",
	Short:         "Adaptive bodyweight resistance-training planner",
	SilenceErrors: true,
	SilenceUsage:  true,
}

var (
	exerciseFlag    string
	historyPathFlag string
	jsonFlag        bool
	debugFlag       bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&exerciseFlag, "exercise", "pull_up", "exercise id: pull_up, dip, bss")
	rootCmd.PersistentFlags().StringVar(&historyPathFlag, "history-path", "", "path to this exercise's local database file")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "emit machine-readable JSON instead of formatted text")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "emit debug-level diagnostics on stderr")
	cobra.OnInitialize(func() {
		logging.Default = logging.New(os.Stderr, debugFlag)
	})
}

func Execute() error {
	return rootCmd.Execute()
}

// appContext is the bundle every command needs: an open store and the
// loaded config. The exercise the --exercise flag selected is loaded on
// demand by loadExercise.
type appContext struct {
	store *storage.Storage
	cfg   config.Config
}

func newAppContext() *appContext {
	var cfgResult config.LoadResult
	if path, err := config.GetConfigPath(); err == nil {
		cfgResult = config.Load(path)
	} else {
		cfgResult = config.LoadResult{Config: config.Config{Defaults: config.BundledDefaults()}}
	}
	if cfgResult.Warning != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgYellow).Sprint("config: ")+cfgResult.Warning.Error())
		logging.Default.Warn("config degraded to bundled defaults", "error", cfgResult.Warning.Error())
	}

	dsn := ""
	if historyPathFlag != "" {
		dsn = "file:" + historyPathFlag
	}

	return &appContext{
		store: storage.NewStorageAt(dsn),
		cfg:   cfgResult.Config,
	}
}

func (a *appContext) loadExercise() (models.Exercise, error) {
	ex, err := a.store.GetExercise(exerciseFlag)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("exercise %q is not configured; run `lazaro init` first: %w", exerciseFlag, err)
	}
	return *ex, nil
}

func (a *appContext) loadProfile() (models.UserProfile, error) {
	p, err := a.store.LoadProfile()
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("no profile found; run `lazaro init` first: %w", err)
	}
	return *p, nil
}

// physiologyTunables converts the loaded config overlay into the core
// engine's Tunables, so a user's config.yaml overrides actually reach
// internal/physiology rather than being silently ignored.
func (a *appContext) physiologyTunables() physiology.Tunables {
	d := a.cfg.Defaults
	return physiology.Tunables{
		FitnessTauDays: d.FitnessTauDays,
		FatigueTauDays: d.FatigueTauDays,
		FitnessGain:    d.FitnessGain,
		FatigueGain:    d.FatigueGain,
		EWMAMaxAlpha:   d.EWMAMaxAlpha,
		EWMAVarBeta:    d.EWMAVarBeta,
		ReadinessAlpha: d.ReadinessAlpha,
		InitialSigmaM:  d.InitialSigmaM,
	}
}

// adaptationTunables converts the loaded config overlay into the core
// engine's Tunables (see physiologyTunables).
func (a *appContext) adaptationTunables() adaptation.Tunables {
	d := a.cfg.Defaults
	return adaptation.Tunables{
		AutoregGateSessions:   d.AutoregGateSessions,
		PlateauSlopeThreshold: d.PlateauSlopeThreshold,
		PlateauWindowDays:     d.PlateauWindowDays,
		DeloadReadinessZ:      d.DeloadReadinessZ,
		UnderperformFraction:  d.UnderperformFraction,
		ComplianceDeloadFloor: d.ComplianceDeloadFloor,
	}
}

// printBoxedHeader prints a title centered inside a Unicode box.
func printBoxedHeader(title string) {
	width := 44
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + centerText(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

func printMetric(label string, value interface{}) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

