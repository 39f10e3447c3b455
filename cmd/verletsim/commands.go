package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/export"
	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/optim"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
	"github.com/san-kum/verletsim/internal/storage"
	"github.com/san-kum/verletsim/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rnd := rand.New(rand.NewSource(cfg.Seed))
	u := cfg.NewUniverse(rnd)
	s := sim.New(u)
	s.SetLogger(logger)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	if cfg.Fountain.Enabled {
		s.AddSpawner(cfg.NewFountain(rnd))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running simulation", "preset", cfg.Name, "particles", u.Len(), "seed", cfg.Seed)
	start := time.Now()

	simCfg := cfg.SimConfig()
	result, err := s.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		logger.Warn("simulation error", "err", e)
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset:    cfg.Name,
		Seed:      cfg.Seed,
		Particles: cfg.Particles,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		SubSteps:  cfg.SubSteps,
		Gravity:   cfg.Gravity,

		Center:         physics.Vec2{X: cfg.Boundary.X, Y: cfg.Boundary.Y},
		BoundaryRadius: cfg.Boundary.Radius,
	}, result)
	s.Release(result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rnd := rand.New(rand.NewSource(cfg.Seed))
	u := cfg.NewUniverse(rnd)
	m := viz.NewModel(cfg.Name, u, cfg.NewFountain(rnd), cfg.SimConfig()).
		WithFPS(frameRate).
		WithGIFPath(gifPath)

	logger.Debug("starting live view", "preset", cfg.Name, "particles", u.Len(), "fps", frameRate)
	return viz.Run(m)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tPARTICLES\tDURATION\tDT\tSUBSTEPS\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0f\t%.2f\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Duration,
			run.Dt,
			run.SubSteps,
			run.Frames,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) < 2 {
		return fmt.Errorf("not enough frames to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(frames))

	energy := make([]float64, len(frames))
	count := make([]float64, len(frames))
	for i, f := range frames {
		energy[i] = metrics.Kinetic(f.Particles)
		count[i] = float64(len(f.Particles))
	}

	series := []struct {
		data    []float64
		caption string
	}{
		{energy, "kinetic energy"},
		{count, "particle count"},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.WriteFramesCSV(os.Stdout, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	bounds := export.Bounds{Center: meta.Center, Radius: meta.BoundaryRadius}
	if bounds.Radius <= 0 {
		bounds = export.Bounds{
			Center: physics.Vec2{X: physics.DefaultCenterX, Y: physics.DefaultCenterY},
			Radius: physics.DefaultBoundaryRadius,
		}
	}

	if svgTrail >= 0 {
		points := export.Trajectory(frames, uint32(svgTrail))
		if len(points) < 2 {
			return fmt.Errorf("particle %d appears in fewer than 2 frames", svgTrail)
		}
		return export.WriteSVG(os.Stdout, export.TrajectoryToSVG(points, bounds, "#00ff88"))
	}

	idx := svgFrame
	if idx < 0 {
		idx += len(frames)
	}
	if idx < 0 || idx >= len(frames) {
		return fmt.Errorf("frame %d out of range (run has %d frames)", svgFrame, len(frames))
	}
	return export.WriteSVG(os.Stdout, export.FrameToSVG(frames[idx], bounds))
}

func sweepParams(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := []string{"response_coeff", "substeps"}
	ranges := [][]float64{{0.25, 0.5, 0.75, 1}, {1, 2, 4, 8}}

	build := func(params map[string]float64) (*sim.Simulator, sim.Config, error) {
		c := *cfg
		c.ResponseCoeff = float32(params["response_coeff"])
		c.SubSteps = int(params["substeps"])
		rnd := rand.New(rand.NewSource(c.Seed))
		s := sim.New(c.NewUniverse(rnd))
		s.SetLogger(logger)
		for _, m := range metrics.Default() {
			s.AddMetric(m)
		}
		if c.Fountain.Enabled {
			s.AddSpawner(c.NewFountain(rnd))
		}
		simCfg := c.SimConfig()
		simCfg.RecordEvery = 0
		return s, simCfg, nil
	}

	fmt.Printf("sweeping %s on %s (seed %d)\n\n", sweepMetric, cfg.Name, cfg.Seed)
	best, val, trials, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), build, sweepMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RESPONSE\tSUBSTEPS\t%s\n", sweepMetric)
	for _, tr := range trials {
		fmt.Fprintf(w, "%.2f\t%.0f\t%.6f\n", tr.Params["response_coeff"], tr.Params["substeps"], tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: response_coeff=%.2f substeps=%.0f (%s=%.6f)\n",
		best["response_coeff"], best["substeps"], sweepMetric, val)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARTICLES\tGRAVITY\tSUBSTEPS\tCHAIN\tFOUNTAIN")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%g\t%d\t%d\t%t\n",
			name, p.Particles, p.Gravity, p.SubSteps, p.Chain.Length, p.Fountain.Enabled)
	}
	return w.Flush()
}

func benchUniverse(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	counts := []int{50, 100, 200, 400}
	frames := 100

	fmt.Printf("benchmarking %s (%d frames, %d substeps)\n\n", cfg.Name, frames, cfg.SubSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tTICKS\tTIME\tTICKS/SEC\tPAIRS/SEC")

	for _, n := range counts {
		c := *cfg
		c.Particles = n
		c.Fountain.Enabled = false
		u := c.NewUniverse(rand.New(rand.NewSource(c.Seed)))

		tickDt := float32(c.Dt / float64(c.SubSteps))
		ticks := frames * c.SubSteps
		start := time.Now()
		for i := 0; i < ticks; i++ {
			u.Tick(tickDt)
		}
		elapsed := time.Since(start)

		perSec := float64(ticks) / elapsed.Seconds()
		pairs := float64(u.Len()*(u.Len()-1)/2) * perSec
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.3g\n", u.Len(), ticks, elapsed, perSec, pairs)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return benchEnsemble(cmd.Context(), cfg, frames)
}

// benchEnsemble steps independent universes on separate goroutines.
func benchEnsemble(ctx context.Context, cfg *config.Config, frames int) error {
	if benchRuns < 1 {
		return nil
	}
	c := *cfg
	c.Fountain.Enabled = false
	factory := func(seed int64) *sim.Simulator {
		return sim.New(c.NewUniverse(rand.New(rand.NewSource(seed))))
	}

	simCfg := c.SimConfig()
	simCfg.Duration = float64(frames) * simCfg.Dt
	simCfg.RecordEvery = 0

	ens := sim.NewEnsemble(factory, benchRuns, c.Seed)
	start := time.Now()
	results, err := ens.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	total := 0
	for _, r := range results {
		total += r.StepsTaken
	}
	fmt.Printf("\nensemble: %d universes × %d particles, %d frames in %v (%.0f frames/sec)\n",
		benchRuns, c.Particles, total, elapsed, float64(total)/elapsed.Seconds())
	return nil
}
