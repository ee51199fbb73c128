package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rotsim/internal/config"
	"github.com/san-kum/rotsim/internal/experiment"
	"github.com/san-kum/rotsim/internal/metrics"
	"github.com/san-kum/rotsim/internal/storage"
	"github.com/san-kum/rotsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	numBodies  int
	numBuckets int
	steps      int
	seed       int64
	topN       int
	parallel   bool
	frameRate  int
	outDir     string
	saveConfig string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rotsim",
		Short: "rotating body bucket classifier",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rotsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a random network and vote on the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved config to this path")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a random network with a live bucket view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print the report of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).WriteJSON(os.Stdout, args[0])
		},
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render bucket weights and classification trace as PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tBUCKETS\tSTEPS\tSEED")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", name, p.Bodies, p.Buckets, p.Steps, p.Seed)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, showCmd, exportJSONCmd, exportPNGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&numBodies, "bodies", config.DefaultBodies, "number of bodies")
	cmd.Flags().IntVar(&numBuckets, "buckets", config.DefaultBuckets, "number of buckets")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of time steps")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().IntVar(&topN, "top", config.DefaultTopN, "ranked contenders to keep (0 = all)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "integrate bodies in parallel")
}

// resolveConfig layers preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("bodies") {
		cfg.Bodies = numBodies
	}
	if flags.Changed("buckets") {
		cfg.Buckets = numBuckets
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("top") {
		cfg.TopN = topN
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(metrics.Defaults()); err != nil {
		return err
	}

	fmt.Printf("running %s: %d bodies, %d buckets, %d steps...\n", cfg.Name, cfg.Bodies, cfg.Buckets, cfg.Steps)
	start := time.Now()

	out, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	net := exp.GetSimulator().Network()

	runID, err := st.Save(cfg, out, net.Centers())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)

	fmt.Println(viz.Report(viz.Summary{
		Title:   cfg.Name,
		Steps:   out.Result.StepsTaken,
		Final:   out.Decision.Final,
		Winner:  out.Decision.Winner,
		Top:     out.Decision.Top,
		Metrics: out.Result.Metrics,
		Weights: out.Result.Weights,
		Centers: net.Centers(),
		Stream:  out.Result.Classifications,
	}))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	net, err := experiment.BuildNetwork(cfg)
	if err != nil {
		return err
	}

	m := viz.NewLiveModel(net, cfg.Name, cfg.Steps, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBODIES\tBUCKETS\tSTEPS\tSEED\tWINNER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d (%d)\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Buckets,
			run.Steps,
			run.Seed,
			run.Winner.Value,
			run.Winner.Count,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	data, err := storage.New(dataDir).Export(args[0])
	if err != nil {
		return err
	}

	weights, centers := splitBuckets(data.Buckets)
	meta := data.Meta
	fmt.Println(viz.Report(viz.Summary{
		Title:   fmt.Sprintf("%s (%s)", meta.Name, meta.ID),
		Steps:   meta.Steps,
		Final:   meta.Final,
		Winner:  meta.Winner,
		Top:     meta.Top,
		Metrics: meta.Metrics,
		Weights: weights,
		Centers: centers,
		Stream:  data.Classifications,
	}))
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	data, err := storage.New(dataDir).Export(runID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	weights, _ := splitBuckets(data.Buckets)
	title := strings.TrimSpace(data.Meta.Name + " " + runID)

	weightsPath := filepath.Join(outDir, runID+"_buckets.png")
	if err := viz.SaveWeightsPNG(weightsPath, title, weights); err != nil {
		return err
	}
	tracePath := filepath.Join(outDir, runID+"_trace.png")
	if err := viz.SaveTracePNG(tracePath, title, data.Classifications); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", weightsPath)
	fmt.Printf("wrote %s\n", tracePath)
	return nil
}

func splitBuckets(rows []storage.BucketRow) (weights, centers []float64) {
	weights = make([]float64, len(rows))
	centers = make([]float64, len(rows))
	for i, r := range rows {
		weights[i] = r.Weight
		centers[i] = r.Center
	}
	return weights, centers
}
