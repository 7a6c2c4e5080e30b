package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/y624745579/pism/internal/atmosphere"
	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/forcing"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
	"github.com/y624745579/pism/internal/ncio"
	"github.com/y624745579/pism/internal/render"
	"github.com/y624745579/pism/internal/storage"
	"github.com/y624745579/pism/internal/taucompare"
	"github.com/y624745579/pism/internal/units"
	"github.com/y624745579/pism/internal/viz"
)

var (
	dataDir string

	// tauc-compare
	inputFile string
	taucCap   float64
	relCap    float64
	outputDir string
	saveRun   bool

	// forcing
	configFile string
	forcingIn  string
	runTime    float64
	runDt      float64
	plotFile   string
	stateFile  string
	frameDays  float64
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pismtool",
		Short: "ice-sheet inversion comparison and atmosphere forcing toolkit",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pismtool", "data directory")

	taucCmd := &cobra.Command{
		Use:   "tauc-compare",
		Short: "compare inverted basal yield stress against the synthetic truth",
		RunE:  runTaucCompare,
	}
	taucCmd.Flags().StringVar(&inputFile, "input_file", "", "inversion output file (NetCDF)")
	taucCmd.Flags().Float64Var(&taucCap, "tauc_cap", 2e5, "yield stress color scale bound (Pa)")
	taucCmd.Flags().Float64Var(&relCap, "rel_cap", 1.0, "relative difference color scale bound")
	taucCmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory for figure files")
	taucCmd.Flags().BoolVar(&saveRun, "save", false, "save run statistics to the data directory")
	taucCmd.MarkFlagRequired("input_file")

	forcingCmd := &cobra.Command{
		Use:   "forcing",
		Short: "atmosphere forcing models",
	}

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run one init/update cycle of an atmosphere model",
		Args:  cobra.ExactArgs(1),
		RunE:  runForcing,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&forcingIn, "input", "", "model input file (NetCDF)")
	runCmd.Flags().Float64Var(&runTime, "time", 0.0, "update window start (model days)")
	runCmd.Flags().Float64Var(&runDt, "dt", 365.0, "update window length (model days)")
	runCmd.Flags().StringVar(&plotFile, "plot", "", "write the probe-cell yearly series as a PNG chart")
	runCmd.Flags().StringVar(&stateFile, "write-state", "", "write the model state to a NetCDF file")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list registered models and modifiers",
		Run: func(cmd *cobra.Command, args []string) {
			registry := atmosphere.NewRegistry()
			fmt.Println("models:")
			for _, name := range registry.Models() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("modifiers:")
			for _, name := range registry.Modifiers() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	seriesCmd := &cobra.Command{
		Use:   "series [file] [variable]",
		Short: "plot a scalar forcing time series",
		Args:  cobra.ExactArgs(2),
		RunE:  runSeries,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "step a model through the year with a live view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&forcingIn, "input", "", "model input file (NetCDF)")
	liveCmd.Flags().Float64Var(&frameDays, "step", 1.0, "model days per frame")

	forcingCmd.AddCommand(runCmd, modelsCmd, seriesCmd, liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved comparison runs",
		RunE:  listRuns,
	}

	rootCmd.AddCommand(taucCmd, forcingCmd, listCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTaucCompare(cmd *cobra.Command, args []string) error {
	opts := taucompare.Options{
		InputFile: inputFile,
		TaucCap:   taucCap,
		RelCap:    relCap,
	}

	res, err := taucompare.Run(opts)
	if err != nil {
		return err
	}

	diffMap := render.Heatmap{
		Title: "tauc - tauc_true, relative",
		Cmap:  render.BlueWhiteRed,
		Norm:  render.Symmetric(opts.RelCap),
	}
	if err := diffMap.RenderFile(filepath.Join(outputDir, "tauc_diff.png"),
		render.Panel{Label: "(tauc - tauc_true) / tauc_true", Data: res.RelDiff}); err != nil {
		return err
	}

	comparison := render.Heatmap{
		Title: "basal yield stress (Pa)",
		Cmap:  render.Viridis,
		Norm:  render.Linear(0, opts.TaucCap),
	}
	if err := comparison.RenderFile(filepath.Join(outputDir, "tauc_compare.png"),
		render.Panel{Label: "tauc", Data: res.Tauc},
		render.Panel{Label: "tauc_true", Data: res.TaucTrue}); err != nil {
		return err
	}

	speedMap := render.Heatmap{
		Title: "sliding speed (m/year)",
		Cmap:  render.Viridis,
		Norm:  render.Log(0.1, 1000),
	}
	if err := speedMap.RenderFile(filepath.Join(outputDir, "sliding_speed.png"),
		render.Panel{Label: "|(u, v)|", Data: res.Speed}); err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("TAUC COMPARISON"))
	printStat("input", res.Options.InputFile)
	printStat("ice cells", fmt.Sprintf("%d", res.Stats.IceCells))
	printStat("sliding cells", fmt.Sprintf("%d", res.Stats.SlidingCells))
	printStat("mean |diff|", fmt.Sprintf("%.4g Pa", res.Stats.MeanAbsDiff))
	printStat("max |diff|", fmt.Sprintf("%.4g Pa", res.Stats.MaxAbsDiff))
	printStat("rms rel error", fmt.Sprintf("%.4g", res.Stats.RMSRelError))
	printStat("max speed", fmt.Sprintf("%.4g m/year", res.Stats.MaxSpeed))

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run %s\n", runID)
	}
	return nil
}

func printStat(label, value string) {
	fmt.Println(labelStyle.Render(label) + valueStyle.Render(value))
}

func loadConfig(spec string) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	if forcingIn != "" {
		base := strings.SplitN(spec, "+", 2)[0]
		switch base {
		case "given":
			cfg.Atmosphere.Given.File = forcingIn
		case "yearly_cycle":
			cfg.Atmosphere.YearlyCycle.File = forcingIn
		case "pik":
			cfg.Atmosphere.PIK.File = forcingIn
		case "searise_greenland":
			cfg.Atmosphere.SeaRISEGreenland.File = forcingIn
		case "weather_station":
			cfg.Atmosphere.OneStation.File = forcingIn
		}
	}
	return cfg, nil
}

// demoGeometry fills a synthetic surface for models that only need
// latitude, longitude and elevation. PIK parameterizations are Antarctic
// fits, so the pik model gets southern-hemisphere latitudes.
func demoGeometry(g *grid.Grid, southern bool) *geometry.Geometry {
	geom := geometry.New(g)
	for j := 0; j < g.My; j++ {
		for i := 0; i < g.Mx; i++ {
			if southern {
				geom.Latitude.Set(i, j, -80.0+float64(j))
				geom.Longitude.Set(i, j, -60.0+2.0*float64(i))
			} else {
				geom.Latitude.Set(i, j, 70.0+float64(j))
				geom.Longitude.Set(i, j, -50.0+2.0*float64(i))
			}
			geom.BedElevation.Set(i, j, 0.0)
			geom.SeaLevel.Set(i, j, 0.0)
			geom.IceThickness.Set(i, j, 1000.0+100.0*float64(j))
		}
	}
	geom.EnsureConsistency(10.0)
	return geom
}

func buildModel(spec string) (atmosphere.Model, *geometry.Geometry, *config.Config, error) {
	cfg, err := loadConfig(spec)
	if err != nil {
		return nil, nil, nil, err
	}

	g := grid.Shallow()
	geom := demoGeometry(g, strings.HasPrefix(spec, "pik"))

	registry := atmosphere.NewRegistry()
	model, err := registry.Create(spec, g, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := model.Init(geom); err != nil {
		return nil, nil, nil, err
	}
	return model, geom, cfg, nil
}

func runForcing(cmd *cobra.Command, args []string) error {
	spec := args[0]

	model, geom, cfg, err := buildModel(spec)
	if err != nil {
		return err
	}

	t := runTime * 86400
	dt := runDt * 86400
	if err := model.Update(geom, t, dt); err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(strings.ToUpper(spec)))
	printStat("mean air_temp", fmt.Sprintf("%.3f K", model.MeanAnnualTemp().Mean()))
	printStat("mean precip", fmt.Sprintf("%.6g kg m-2 s-1", model.MeanPrecipitation().Mean()))
	if bound := model.MaxTimestep(t); !bound.Infinite() {
		printStat("max timestep", fmt.Sprintf("%.2f d", bound.Value/86400))
	} else {
		printStat("max timestep", "unlimited")
	}

	// 13 points spanning one model year, so the first and last samples
	// land on the same day of the cycle.
	const n = 13
	ts := make([]float64, n)
	for k := range ts {
		ts[k] = t + float64(k)*units.SecondsPerModelYear/(n-1)
	}
	if err := model.InitTimeseries(ts); err != nil {
		return err
	}
	model.BeginPointwiseAccess()
	temps := model.TempTimeSeries(cfg.Probe.I, cfg.Probe.J)
	precs := model.PrecipTimeSeries(cfg.Probe.I, cfg.Probe.J)
	model.EndPointwiseAccess()

	fmt.Println()
	fmt.Println(render.AsciiSeries(temps,
		fmt.Sprintf("air_temp at (%d, %d) over one year (K)", cfg.Probe.I, cfg.Probe.J)))

	pmin, pmax := precs[0], precs[0]
	for _, p := range precs[1:] {
		pmin = math.Min(pmin, p)
		pmax = math.Max(pmax, p)
	}
	printStat("probe precip", fmt.Sprintf("%.6g..%.6g kg m-2 s-1", pmin, pmax))

	if plotFile != "" {
		days := make([]float64, n)
		for k := range days {
			days[k] = (ts[k] - t) / 86400
		}
		err := render.SeriesChartFile(plotFile, spec, "day", "air_temp (K)",
			days, map[string][]float64{"air_temp": temps})
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", plotFile)
	}

	if stateFile != "" {
		w := ncio.NewWriter(stateFile, geom.Grid)
		model.DefineModelState(w)
		model.WriteModelState(w)
		if err := w.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", stateFile)
	}
	return nil
}

func runSeries(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]

	sc, err := forcing.ReadScalar(path, name)
	if err != nil {
		return err
	}

	// Sample the piecewise-linear series densely for plotting.
	const n = 80
	lo, hi := sc.Times()[0], sc.Times()[len(sc.Times())-1]
	values := make([]float64, n)
	for k := range values {
		values[k] = sc.Value(lo + float64(k)*(hi-lo)/(n-1))
	}

	fmt.Println(render.AsciiSeries(values,
		fmt.Sprintf("%s from %s (%.3g..%.3g model years)",
			name, filepath.Base(path), lo/units.SecondsPerYear, hi/units.SecondsPerYear)))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	spec := args[0]

	model, geom, cfg, err := buildModel(spec)
	if err != nil {
		return err
	}

	m := viz.NewModel(model, geom, spec, cfg.Probe.I, cfg.Probe.J, frameDays*86400)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
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
	fmt.Fprintln(w, "ID\tINPUT\tTIME\tICE\tSLIDING\tMEAN|DIFF|\tRMS REL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4g\t%.4g\n",
			run.ID,
			filepath.Base(run.InputFile),
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.IceCells,
			run.SlidingCells,
			run.MeanAbsDiff,
			run.RMSRelError,
		)
	}
	return w.Flush()
}
