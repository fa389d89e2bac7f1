package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/chill/internal/analysis"
	"github.com/san-kum/chill/internal/config"
	"github.com/san-kum/chill/internal/metrics"
	"github.com/san-kum/chill/internal/sim"
	"github.com/san-kum/chill/internal/storage"
	"github.com/san-kum/chill/internal/thermal"
	"github.com/san-kum/chill/internal/viz"
)

var (
	dataDir        string
	dt             float64
	duration       float64
	sampleInterval float64
	preset         string
	snapshotFirst  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chill",
		Short: "thermal network simulation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".chill", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [network.yaml]",
		Short: "run a network simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNetwork,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "internal timestep [s] (overrides config)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "simulated duration [s] (overrides config)")
	runCmd.Flags().Float64Var(&sampleInterval, "sample", 0, "history sample interval [s] (overrides config)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use a built-in network")
	runCmd.Flags().BoolVar(&snapshotFirst, "snapshot-initial", false, "record the t=0 state before stepping")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot node temperature histories",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id] [node]",
		Short: "frequency analysis of one node's trace",
		Args:  cobra.ExactArgs(2),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run history to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run history to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in networks",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [network.yaml]",
		Short: "run with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use a built-in network")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "internal timestep [s] (overrides config)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return cfg, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a network file or --preset is required")
	}
	cfg, err := config.Load(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to load network: %w", err)
	}
	return cfg, nil
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("sample") {
		cfg.SampleInterval = sampleInterval
	}
	if cmd.Flags().Changed("snapshot-initial") {
		cfg.SnapshotInitial = snapshotFirst
	}
}

func buildSimulator(cfg *config.Config) (*sim.Simulator, *thermal.Network, error) {
	net, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	s := sim.New(net)
	if err := s.SetDt(cfg.Dt); err != nil {
		return nil, nil, err
	}
	return s, net, nil
}

func runNetwork(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	applyOverrides(cmd, cfg)

	s, net, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	energy := metrics.NewTotalEnergy(net)
	drift := metrics.NewEnergyDrift(net)
	s.AddMetric(energy)
	s.AddMetric(drift)

	if cfg.SnapshotInitial {
		s.Snapshot()
	}

	fmt.Printf("running %s (%d nodes, %d edges)...\n", cfg.Name, net.NodeCount(), net.EdgeCount())
	start := time.Now()

	execErr := s.Execute(context.Background(), cfg.Duration, cfg.SampleInterval)
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results := map[string]float64{
		energy.Name(): energy.Value(),
		drift.Name():  drift.Value(),
	}
	runID, err := st.Save(cfg.Name, cfg.Dt, cfg.Duration, cfg.SampleInterval, net.NodeNames(), s.History(), results)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(s.History()))
	fmt.Printf("simulated time: %.2fs in %d steps\n", s.Elapsed(), s.StepCount())
	fmt.Println("\nmetrics:")
	for name, val := range results {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if execErr != nil {
		// history up to the failure was saved above
		var stepErr *thermal.StepError
		if errors.As(execErr, &stepErr) {
			fmt.Fprintf(os.Stderr, "diverged at step %d (t=%.4fs), node %q; recorded history is intact\n",
				stepErr.Step, stepErr.Time, stepErr.Name)
		}
		return execErr
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
	fmt.Fprintln(w, "ID\tNETWORK\tTIME\tDURATION\tDT\tSAMPLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Network,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Samples,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("network: %s\n", meta.Network)
	fmt.Printf("samples: %d\n\n", len(samples))

	maxPlots := 6
	numNodes := len(meta.NodeNames)
	if numNodes > maxPlots {
		numNodes = maxPlots
	}

	for idx := 0; idx < numNodes; idx++ {
		data := make([]float64, len(samples))
		for i := range samples {
			if idx < len(samples[i].Temps) {
				data[i] = samples[i].Temps[idx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(meta.NodeNames[idx]+" [K]"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID, nodeName := args[0], args[1]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data")
	}

	nodeIdx := -1
	for i, name := range meta.NodeNames {
		if name == nodeName {
			nodeIdx = i
			break
		}
	}
	if nodeIdx < 0 {
		return fmt.Errorf("unknown node %q (nodes: %v)", nodeName, meta.NodeNames)
	}

	data := make([]float64, len(samples))
	for i := range samples {
		data[i] = samples[i].Temps[nodeIdx]
	}

	fmt.Printf("frequency analysis: %s, node %s\n\n", meta.ID, nodeName)

	ps := analysis.PowerSpectrum(data)
	if len(ps) > 4 {
		graph := asciigraph.Plot(ps,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq, power := analysis.DominantFrequency(data, meta.SampleInterval)
	if freq > 0 {
		fmt.Printf("dominant frequency: %.5f hz (power %.2f)\n", freq, power)
		fmt.Printf("period: %.2f s\n", 1.0/freq)
	} else {
		fmt.Println("no dominant frequency (trace too short or flat)")
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, meta, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	applyOverrides(cmd, cfg)

	s, _, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg.Name, s)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
