package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/P4GAN/PhysicsSims/internal/analysis"
	"github.com/P4GAN/PhysicsSims/internal/automation"
	"github.com/P4GAN/PhysicsSims/internal/config"
	"github.com/P4GAN/PhysicsSims/internal/export"
	"github.com/P4GAN/PhysicsSims/internal/gui"
	"github.com/P4GAN/PhysicsSims/internal/metrics"
	"github.com/P4GAN/PhysicsSims/internal/sim"
	"github.com/P4GAN/PhysicsSims/internal/storage"
	"github.com/P4GAN/PhysicsSims/internal/viz"
)

var (
	dataDir    string
	configFile string
	fps        float64
	duration   float64
	substeps   int
	maxFrameDt float64
	gravity    float64
	dragCoef   float64
	stiffness  float64
	noSave     bool
	// Per-particle commands; -1 selects the anchor
	particle  int
	coordName string
	// Export destinations
	outPath    string
	trajectory bool
	// Sweep
	paramName string
	paramMin  float64
	paramMax  float64
	numSteps  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ropesim",
		Short: "particle and spring rope lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.Run(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ropesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a preset headlessly and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a particle's coordinates over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&particle, "particle", -1, "particle index (-1 for the anchor)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with its spring topology as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export recorded positions as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the final frame, or a particle's path, as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")
	exportSVGCmd.Flags().BoolVar(&trajectory, "trajectory", false, "draw the path of --particle instead of the final frame")
	exportSVGCmd.Flags().IntVar(&particle, "particle", -1, "particle index (-1 for the anchor)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "find the dominant oscillation frequency of a particle",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&particle, "particle", -1, "particle index (-1 for the anchor)")
	analyzeCmd.Flags().StringVar(&coordName, "coord", "y", "coordinate (x or y)")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "ascii phase portrait of one coordinate",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&particle, "particle", -1, "particle index (-1 for the anchor)")
	phaseCmd.Flags().StringVar(&coordName, "coord", "y", "coordinate (x or y)")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [substeps...]",
		Short: "run one preset at several sub-step counts",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSubsteps,
	}
	addConfigFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep one parameter and report stability",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&paramName, "param", "stiffness", "parameter ("+strings.Join(automation.ParamNames(), ", ")+")")
	sweepCmd.Flags().Float64Var(&paramMin, "min", 500, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 20000, "last value")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 8, "number of values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config file helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path] [preset]",
		Short: "write a config file for a preset",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "replay a yaml gesture scenario headlessly",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "interactive rope in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	addConfigFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "interactive rope in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}
	addConfigFlags(guiCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd,
		analyzeCmd, phaseCmd, compareCmd, sweepCmd, presetsCmd, configCmd, scenarioCmd, liveCmd, guiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&fps, "fps", 60, "frames per second")
	cmd.Flags().Float64Var(&duration, "time", 10, "duration in seconds")
	cmd.Flags().IntVar(&substeps, "substeps", 16, "sub-steps per frame")
	cmd.Flags().Float64Var(&maxFrameDt, "max-frame-dt", 0.05, "longest frame step in seconds")
	cmd.Flags().Float64Var(&gravity, "gravity", 9.8, "gravitational acceleration")
	cmd.Flags().Float64Var(&dragCoef, "drag", 0.5, "linear drag coefficient")
	cmd.Flags().Float64Var(&stiffness, "stiffness", 2000, "spring constant")
}

// resolveConfig starts from the named preset, replaces it with the config
// file if one is given, then applies flags the user actually set.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := config.DefaultPreset
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("fps") {
		cfg.Run.FPS = fps
	}
	if cmd.Flags().Changed("time") {
		cfg.Run.Duration = duration
	}
	if cmd.Flags().Changed("substeps") {
		cfg.Physics.Substeps = substeps
	}
	if cmd.Flags().Changed("max-frame-dt") {
		cfg.Physics.MaxFrameDt = maxFrameDt
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Physics.Gravity = gravity
	}
	if cmd.Flags().Changed("drag") {
		cfg.Physics.Drag = dragCoef
	}
	if cmd.Flags().Changed("stiffness") {
		cfg.Chain.Stiffness = stiffness
	}
	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	runner, err := newRunner(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s for %.1fs at %.0f fps, %d sub-steps...\n", cfg.Preset, cfg.Run.Duration, cfg.Run.FPS, cfg.Physics.Substeps)
	start := time.Now()

	result, err := runner.Run(ctx, cfg.RunConfig())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	printResult(result)
	return nil
}

func printResult(result *sim.Result) {
	fmt.Printf("frames: %d\n", result.Frames)
	if result.Diverged {
		fmt.Println("status: diverged")
	}
	for _, err := range result.Errors {
		fmt.Printf("  %v\n", err)
	}
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tFPS\tSUBSTEPS\tFRAMES\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Diverged {
			status = "diverged"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.0f\t%d\t%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.FPS,
			run.Substeps,
			run.Frames,
			status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}
	p, err := particleIndex(meta)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(result.States))

	for _, c := range []analysis.Coordinate{analysis.X, analysis.Y} {
		data, err := analysis.Series(result.States, p, c)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("particle %d %s vs time", p, c)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	cfg := metaConfig(meta)
	s, err := cfg.NewStepper()
	if err != nil {
		return err
	}

	data := export.NewExportData(cfg, result, export.SpringPairs(s.World().Springs()))
	if outPath == "" {
		return export.ExportJSONStdout(data)
	}
	if err := export.ExportJSON(outPath, data); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteStatesCSV(os.Stdout, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("no data to export")
	}
	cfg := metaConfig(meta)

	var svg string
	if trajectory {
		p, err := particleIndex(meta)
		if err != nil {
			return err
		}
		points, err := analysis.Points(result.States, p)
		if err != nil {
			return err
		}
		svg = export.TrajectoryToSVG(points, int(cfg.World.SurfaceWidth), int(cfg.World.SurfaceHeight), "#00ff87")
	} else {
		frame, err := frameAt(cfg, result.States[len(result.States)-1])
		if err != nil {
			return err
		}
		mapping, err := cfg.Mapping()
		if err != nil {
			return err
		}
		svg = export.FrameToSVG(frame, mapping)
	}

	if outPath == "" {
		fmt.Print(svg)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	p, err := particleIndex(meta)
	if err != nil {
		return err
	}
	c, err := analysis.ParseCoordinate(coordName)
	if err != nil {
		return err
	}
	data, err := analysis.Series(result.States, p, c)
	if err != nil {
		return err
	}

	spectrum, err := analysis.DominantFrequency(data, meta.FPS)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s, particle %d %s\n\n", meta.Preset, p, c)

	window := data[len(data)-spectrum.Samples:]
	ps := analysis.PowerSpectrum(centred(window))
	plotData := ps[:max(len(ps)/4, 2)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%.3f hz per bin)", spectrum.Resolution)),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("dominant frequency: %.3f hz\n", spectrum.Frequency)
	if spectrum.Frequency > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/spectrum.Frequency)
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	p, err := particleIndex(meta)
	if err != nil {
		return err
	}
	c, err := analysis.ParseCoordinate(coordName)
	if err != nil {
		return err
	}

	portrait, err := analysis.GeneratePhasePortrait(result.States, p, c, 1/meta.FPS)
	if err != nil {
		return err
	}

	fmt.Printf("phase portrait: particle %d, %s vs d%s/dt\n\n", p, c, c)
	fmt.Print(analysis.PhasePortraitToASCII(portrait, 80, 24))
	return nil
}

// compareSubsteps runs the same preset at each sub-step count concurrently
// and measures how far each run drifts from the finest one.
func compareSubsteps(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[:1])
	if err != nil {
		return err
	}

	counts := []int{1, 4, 16, 64}
	if len(args) > 1 {
		counts = counts[:0]
		for _, a := range args[1:] {
			n, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("bad sub-step count %q: %w", a, err)
			}
			counts = append(counts, n)
		}
	}

	builders := make([]sim.Builder, len(counts))
	finest := 0
	for i, n := range counts {
		c := cfg.Clone()
		c.Physics.Substeps = n
		builders[i] = func() (*sim.Runner, error) { return newRunner(c) }
		if n > counts[finest] {
			finest = i
		}
	}

	start := time.Now()
	results, err := sim.NewEnsemble(builders...).Run(context.Background(), cfg.RunConfig())
	if err != nil {
		return err
	}

	fmt.Printf("comparing sub-steps for %s (%.0f fps, %.1fs) in %v\n\n", cfg.Preset, cfg.Run.FPS, cfg.Run.Duration, time.Since(start))
	fmt.Printf("%-10s  %-8s  %-10s  %-12s  %-12s\n", "substeps", "frames", "status", "energy_drift", "max_sep")
	fmt.Println(strings.Repeat("-", 60))

	for i, r := range results {
		status := "ok"
		if r.Diverged {
			status = "diverged"
		}
		sep := analysis.Separation(r.States, results[finest].States)
		fmt.Printf("%-10d  %-8d  %-10s  %12.2e  %12.4f\n", counts[i], r.Frames, status, r.Metrics["energy_drift"], sep.Max)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), &automation.ParameterSweep{
		Base:      cfg,
		ParamName: paramName,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  numSteps,
	})
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s over %s (%d values)\n\n", paramName, cfg.Preset, len(results))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tFRAMES\tSTATUS\tENERGY_DRIFT\tMAX_STRAIN")
	for _, r := range results {
		status := "ok"
		if r.Diverged {
			status = "diverged"
		}
		fmt.Fprintf(w, "%g\t%d\t%s\t%.2e\t%.4f\n", r.ParamValue, r.Frames, status, r.EnergyDrift, r.MaxStrain)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stable, unstable := automation.SweepStats(results)
	fmt.Printf("\nstable: %d, diverged: %d\n", stable, unstable)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSEGMENTS\tSTIFFNESS\tREST\tDAMPING\tEND_MASS\tSUBSTEPS\tPINNED")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		endMass := c.Chain.EndMass
		if endMass == 0 {
			endMass = c.Chain.Mass
		}
		pinned := "one end"
		if c.Chain.PinBothEnds {
			pinned = "both ends"
		}
		fmt.Fprintf(w, "%s\t%d\t%g\t%g\t%g\t%g\t%d\t%s\n",
			name, c.Chain.Segments, c.Chain.Stiffness, c.Chain.RestLength, c.Chain.Damping, endMass, c.Physics.Substeps, pinned)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	name := config.DefaultPreset
	if len(args) > 1 {
		name = args[1]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", args[0], name)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, os.Stdout)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	for _, r := range results {
		fmt.Printf("\n%s:\n", r.Config.Preset)
		printResult(r.Result)
		if r.Step.SaveAs == "" {
			continue
		}
		if err := st.Init(); err != nil {
			return err
		}
		r.Config.Preset = r.Step.SaveAs
		runID, err := st.Save(r.Config, r.Result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func newRunner(cfg *config.Config) (*sim.Runner, error) {
	s, err := cfg.NewStepper()
	if err != nil {
		return nil, err
	}
	r := sim.NewRunner(s)
	for _, m := range metrics.Standard(cfg.Run.Bound) {
		r.AddMetric(m)
	}
	return r, nil
}
