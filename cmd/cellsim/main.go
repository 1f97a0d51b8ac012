package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cellsim/internal/config"
	"github.com/san-kum/cellsim/internal/engine"
	"github.com/san-kum/cellsim/internal/forces"
	"github.com/san-kum/cellsim/internal/metrics"
	"github.com/san-kum/cellsim/internal/sim"
	"github.com/san-kum/cellsim/internal/storage"
	"github.com/san-kum/cellsim/internal/sweep"
	"github.com/san-kum/cellsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	dt         float64
	steps      int
	seed       int64
	noSave     bool
	// show
	frameIdx int
	// export-svg
	svgOut    string
	svgWidth  int
	svgHeight int
	// sweep
	sweepAxes   []string
	sweepMetric string
	sweepMin    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cellsim",
		Short: "pairwise-force cell population simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cellsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip writing the run to disk")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot summary statistics of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "render one frame of a stored run as a scatter plot",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (-1 for last)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a simulation with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addModelFlags(liveCmd)

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export cell trajectories as an SVG image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep force parameters over a grid",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepAxes, "axis", nil,
		"axis as term:param:v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "mean_pair_distance", "score metric")
	sweepCmd.Flags().BoolVar(&sweepMin, "min", false, "prefer the lowest score")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in model presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCELLS\tFORCES\tSTEPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				cells := 0
				for _, pop := range p.Populations {
					cells += pop.Count
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", name, cells, len(p.Forces), p.Steps)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping across population sizes",
		RunE:  benchModel,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, showCmd, liveCmd, exportCmd,
		exportSVGCmd, sweepCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses current time)")
}

// resolveConfig picks the model description: a preset by name, a YAML
// file, or the default config. CLI flags override file values.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case len(args) > 0:
		p := config.GetPreset(args[0])
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		// Copy so flag overrides never touch the shared preset.
		cp := *p
		cfg = &cp
	default:
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg, nil
}

func defaultMetrics(cfg *config.Config) []sim.Metric {
	ms := []sim.Metric{
		metrics.NewMeanPairDistance(),
		metrics.NewRadiusOfGyration(),
		metrics.NewNearestNeighbor(),
	}
	if len(cfg.Forces) > 0 {
		ft := cfg.Forces[0]
		if law, err := forces.Get(ft.Law); err == nil {
			maxRange := ft.MaxRange
			if maxRange <= 0 {
				maxRange = math.Inf(1)
			}
			ms = append(ms, metrics.NewPotentialEnergy(law, ft.Params, ft.MinRange, maxRange))
		}
	}
	return ms
}

func simConfig(cfg *config.Config) sim.Config {
	runCfg := sim.DefaultConfig()
	runCfg.Dt = cfg.Dt
	runCfg.Steps = cfg.Steps
	runCfg.Seed = cfg.Seed
	return runCfg
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	model, err := cfg.Build()
	if err != nil {
		return err
	}

	s := sim.New(model.Terms)
	for _, m := range defaultMetrics(cfg) {
		s.AddMetric(m)
	}

	fmt.Printf("running %s (%d cells, %d steps)...\n", cfg.Name, len(model.Positions), cfg.Steps)
	start := time.Now()

	result, err := s.Run(context.Background(), model.Positions, simConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	for _, simErr := range result.Errors {
		fmt.Printf("warning: %v\n", simErr)
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Name, simConfig(cfg), model.Types, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSTEPS\tDT\tCELLS\tTYPES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.NumCells,
			strings.Join(uniqueStrings(run.CellTypes), ","),
		)
	}

	return w.Flush()
}

func uniqueStrings(in []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("frames: %d\n\n", len(frames))

	series := []struct {
		caption string
		fn      func(engine.Positions) float64
	}{
		{"mean pair distance", frameMeanPairDistance},
		{"radius of gyration", frameRadiusOfGyration},
	}

	for _, s := range series {
		data := make([]float64, len(frames))
		for i, f := range frames {
			data[i] = s.fn(f)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func frameMeanPairDistance(pos engine.Positions) float64 {
	n := len(pos)
	if n < 2 {
		return 0
	}
	_, _, dist := engine.Dists(pos)
	sum := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += dist.At(i, j)
		}
	}
	return sum / float64(n*(n-1)/2)
}

func frameRadiusOfGyration(pos engine.Positions) float64 {
	if len(pos) == 0 {
		return 0
	}
	cy, cx := pos.Centroid()
	sum := 0.0
	for _, p := range pos {
		dy, dx := p[0]-cy, p[1]-cx
		sum += dy*dy + dx*dx
	}
	return math.Sqrt(sum / float64(len(pos)))
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, times, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to show")
	}

	idx := frameIdx
	if idx < 0 || idx >= len(frames) {
		idx = len(frames) - 1
	}

	fmt.Printf("run: %s  model: %s  frame: %d/%d  t=%.3f\n\n",
		meta.ID, meta.Model, idx, len(frames)-1, times[idx])

	// Shared bounds across all frames keep successive shows comparable.
	bounds := viz.FitBounds(frames)
	canvas := viz.NewCanvas(76, 22)
	canvas.Plot(frames[idx], bounds)
	fmt.Println(canvas.String())

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	model, err := cfg.Build()
	if err != nil {
		return err
	}

	return viz.RunLive(cfg.Name, model.Positions, model.Terms, simConfig(cfg))
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

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, _, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	svg := viz.TrajectorySVG(frames, svgWidth, svgHeight)

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

// parseAxis decodes "term:param:v1,v2,v3".
func parseAxis(s string) (sweep.Axis, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return sweep.Axis{}, fmt.Errorf("axis %q: want term:param:v1,v2,...", s)
	}
	term, err := strconv.Atoi(parts[0])
	if err != nil {
		return sweep.Axis{}, fmt.Errorf("axis %q: bad term index", s)
	}
	param, err := strconv.Atoi(parts[1])
	if err != nil {
		return sweep.Axis{}, fmt.Errorf("axis %q: bad param index", s)
	}
	var vals []float64
	for _, v := range strings.Split(parts[2], ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return sweep.Axis{}, fmt.Errorf("axis %q: bad value %q", s, v)
		}
		vals = append(vals, f)
	}
	return sweep.Axis{Term: term, Param: param, Values: vals}, nil
}

func metricFactory(name string) (func() sim.Metric, error) {
	switch name {
	case "mean_pair_distance":
		return func() sim.Metric { return metrics.NewMeanPairDistance() }, nil
	case "radius_of_gyration":
		return func() sim.Metric { return metrics.NewRadiusOfGyration() }, nil
	case "nearest_neighbor":
		return func() sim.Metric { return metrics.NewNearestNeighbor() }, nil
	}
	return nil, fmt.Errorf("unknown metric: %s (available: mean_pair_distance, radius_of_gyration, nearest_neighbor)", name)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	if len(sweepAxes) == 0 {
		return fmt.Errorf("at least one --axis is required")
	}

	axes := make([]sweep.Axis, 0, len(sweepAxes))
	for _, s := range sweepAxes {
		a, err := parseAxis(s)
		if err != nil {
			return err
		}
		axes = append(axes, a)
	}

	factory, err := metricFactory(sweepMetric)
	if err != nil {
		return err
	}

	g := sweep.NewGrid(cfg, axes, factory)
	g.Minimize = sweepMin

	fmt.Printf("sweeping %s over %d points...\n", cfg.Name, g.Size())
	start := time.Now()

	res, err := g.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := make([]string, 0, len(axes)+2)
	for _, a := range axes {
		header = append(header, strings.ToUpper(a.Name()))
	}
	header = append(header, strings.ToUpper(sweepMetric), "")
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for i, p := range res.Points {
		row := make([]string, 0, len(p.Values)+2)
		for _, v := range p.Values {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if p.Err != nil {
			row = append(row, "error: "+p.Err.Error(), "")
		} else {
			mark := ""
			if i == res.Best {
				mark = "<- best"
			}
			row = append(row, fmt.Sprintf("%.6f", p.Score), mark)
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

func benchModel(cmd *cobra.Command, args []string) error {
	counts := []int{25, 50, 100, 200}
	stepCounts := []int{100, 400}

	fmt.Println("benchmarking pairwise stepping")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CELLS\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range counts {
		for _, nSteps := range stepCounts {
			cfg := &config.Config{
				Name: "bench", Dt: 0.01, Steps: nSteps, Seed: 42,
				Populations: []config.Population{
					{Type: "cell", Count: n, Layout: "uniform", Width: 10, Height: 10},
				},
				Forces: []config.ForceTerm{
					{Law: "hooke", Params: []float64{1.0, 0.5}, MaxRange: 2.0},
				},
			}

			model, err := cfg.Build()
			if err != nil {
				return err
			}

			s := sim.New(model.Terms)
			start := time.Now()
			result, err := s.Run(context.Background(), model.Positions, simConfig(cfg))
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
