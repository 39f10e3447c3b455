package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/verletsim/internal/config"
)

var (
	dataDir    string
	configFile string
	preset     string
	particles  int
	dt         float64
	duration   float64
	substeps   int
	seed       int64
	gravity    float32
	// Frame rate for live view
	frameRate int
	gifPath   string
	benchRuns int
	verbose   bool
	// export-svg
	svgFrame int
	svgTrail int
	// sweep
	sweepMetric string

	logger *log.Logger
)

// main registers the commands and runs the live view when no subcommand is given.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "verletsim",
		Short: "verlet particle universe",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".verletsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store its frames",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark ticks per second across particle counts",
		Args:  cobra.NoArgs,
		RunE:  benchUniverse,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "independent universes for the ensemble pass")

	addSimFlags(rootCmd, runCmd, liveCmd, benchCmd)
	for _, cmd := range []*cobra.Command{rootCmd, liveCmd} {
		cmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")
		cmd.Flags().StringVar(&gifPath, "gif", "simulation.gif", "output path for G recordings")
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot kinetic energy and particle count of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored frame or a particle trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgFrame, "frame", -1, "frame index, negative counts from the end")
	exportSVGCmd.Flags().IntVar(&svgTrail, "trail", -1, "draw the trajectory of this particle id instead")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search response coefficient and sub-steps",
		Args:  cobra.NoArgs,
		RunE:  sweepParams,
	}
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "max_overlap", "metric to minimise")
	addSimFlags(sweepCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, benchCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, sweepCmd, presetsCmd)
	return rootCmd
}

func addSimFlags(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
		cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "initial random particles")
		cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frame time")
		cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
		cmd.Flags().IntVar(&substeps, "substeps", config.DefaultSubSteps, "ticks per frame")
		cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
		cmd.Flags().Float32Var(&gravity, "gravity", config.DefaultGravity, "downward acceleration")
	}
}

func newLogger(debug bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "verletsim",
	})
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// resolveConfig layers the preset, then the config file, then any flag the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Particles = particles
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("substeps") {
		cfg.SubSteps = substeps
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
