package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/simpson/internal/config"
	"github.com/san-kum/simpson/internal/equations"
	"github.com/san-kum/simpson/internal/input"
	"github.com/san-kum/simpson/internal/logging"
	"github.com/san-kum/simpson/internal/quad"
	"github.com/san-kum/simpson/internal/report"
	"github.com/san-kum/simpson/internal/session"
	"github.com/san-kum/simpson/internal/storage"
	"github.com/san-kum/simpson/internal/tui"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	preset     string

	equation  int
	lower     float64
	upper     float64
	intervals int
	epsilon   float64
	noTable   bool
	estimate  bool
	save      bool
	plot      bool
	asJSON    bool
	levels    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "simpson",
		Short:         "definite integrals by the composite Simpson's rule",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(os.Stderr, logLevel)
		},
		RunE: runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "integrate a registered equation",
		Args:  cobra.NoArgs,
		RunE:  runCalc,
	}
	addParamFlags(calcCmd)
	calcCmd.Flags().BoolVar(&estimate, "estimate", true, "print Runge and fourth-derivative error estimates")
	calcCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	calcCmd.Flags().BoolVar(&plot, "plot", false, "plot the sampled function values")
	calcCmd.Flags().BoolVar(&asJSON, "json", false, "print the outcome as JSON")

	estimateCmd := &cobra.Command{
		Use:   "estimate",
		Short: "print only the error estimates",
		Args:  cobra.NoArgs,
		RunE:  runEstimate,
	}
	addParamFlags(estimateCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "integrate at successive doublings of the subinterval count",
		Args:  cobra.NoArgs,
		RunE:  runConverge,
	}
	addParamFlags(convergeCmd)
	convergeCmd.Flags().IntVar(&levels, "levels", 5, "number of resolutions")
	convergeCmd.Flags().BoolVar(&plot, "plot", false, "plot the Runge error per level")

	equationsCmd := &cobra.Command{
		Use:   "equations",
		Short: "list available equations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			report.Equations(os.Stdout, equations.Default())
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [equation]",
		Short: "list available presets for an equation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := input.ParseInt(args[0])
			if err != nil {
				return err
			}
			presets := config.ListPresets(id)
			if len(presets) == 0 {
				fmt.Printf("no presets for equation: %d\n", id)
				return nil
			}
			fmt.Printf("presets for %d:\n", id)
			for _, p := range presets {
				cfg := config.GetPreset(id, p)
				fmt.Printf("  %-12s [%g, %g], n = %d\n", p, cfg.Lower, cfg.Upper, cfg.Intervals)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the samples of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	promptCmd := &cobra.Command{
		Use:   "prompt",
		Short: "read the parameters line by line from stdin",
		Args:  cobra.NoArgs,
		RunE:  runPrompt,
	}
	promptCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")

	interactiveCmd := &cobra.Command{
		Use:   "interactive",
		Short: "terminal form (default when no command is given)",
		Args:  cobra.NoArgs,
		RunE:  runInteractive,
	}
	interactiveCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")

	rootCmd.AddCommand(calcCmd, estimateCmd, convergeCmd, equationsCmd, presetsCmd, listCmd, showCmd, plotCmd, promptCmd, interactiveCmd)

	if err := rootCmd.Execute(); err != nil {
		log := logging.Logger()
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&equation, "equation", "e", config.DefaultEquation, "equation id (see 'simpson equations')")
	cmd.Flags().Float64Var(&lower, "lower", config.DefaultLower, "lower limit")
	cmd.Flags().Float64Var(&upper, "upper", config.DefaultUpper, "upper limit")
	cmd.Flags().IntVarP(&intervals, "intervals", "n", config.DefaultIntervals, "number of subintervals (positive, even)")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "repair offset (0 means half a step)")
	cmd.Flags().BoolVar(&noTable, "no-table", false, "skip the known-singularity pre-check")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers config file, preset and explicitly set flags, in
// that order, and applies the resulting log level.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(equation, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(equation))
		}
		cfg.Equation, cfg.Lower, cfg.Upper, cfg.Intervals = p.Equation, p.Lower, p.Upper, p.Intervals
	}

	flags := cmd.Flags()
	if flags.Changed("equation") && preset == "" {
		cfg.Equation = equation
	}
	if flags.Changed("lower") {
		cfg.Lower = lower
	}
	if flags.Changed("upper") {
		cfg.Upper = upper
	}
	if flags.Changed("intervals") {
		cfg.Intervals = intervals
	}
	if flags.Changed("epsilon") {
		cfg.Epsilon = epsilon
	}
	if flags.Changed("no-table") {
		cfg.SingularityTable = !noTable
	}
	if flags.Changed("estimate") {
		cfg.Estimate = estimate
	}
	if flags.Changed("save") {
		cfg.Save = save
	}
	if flags.Changed("data") || configFile == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logging.Setup(os.Stderr, cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSession(cfg *config.Config) *session.Session {
	return session.New(equations.Default(),
		session.WithIntegrator(quad.NewIntegrator(quad.WithEpsilon(cfg.Epsilon))),
		session.WithSingularityTable(cfg.SingularityTable),
		session.WithLogger(logging.Logger()),
	)
}

func paramsOf(cfg *config.Config) session.Params {
	return session.Params{
		Equation:  cfg.Equation,
		Lower:     cfg.Lower,
		Upper:     cfg.Upper,
		Intervals: cfg.Intervals,
		Estimate:  cfg.Estimate,
	}
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	out, err := newSession(cfg).Run(paramsOf(cfg))
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("%s [%d] %s on [%g, %g], n = %d\n", report.Label.Render("integrating"), out.Equation, out.EquationName, out.Lower, out.Upper, out.Intervals)
	report.Outcome(os.Stdout, out)

	if plot && out.Result.Resolved {
		graph, err := report.Samples(out.Nodes, out.EquationName)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(graph)
	}

	if cfg.Save {
		return saveOutcome(cfg.DataDir, out)
	}
	return nil
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p := paramsOf(cfg)
	p.Estimate = true

	out, err := newSession(cfg).Run(p)
	if err != nil {
		return err
	}
	if !out.Result.Resolved {
		report.Result(os.Stdout, out.Result)
		return quad.ErrUnresolved
	}
	if out.Estimate == nil {
		return errors.New("no error estimate: the coarse resolution hit an unrepairable discontinuity")
	}
	report.Estimate(os.Stdout, *out.Estimate)
	return nil
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	lv, err := newSession(cfg).Converge(paramsOf(cfg), levels)
	if err != nil {
		return err
	}
	if err := report.Levels(os.Stdout, lv); err != nil {
		return err
	}

	if plot {
		graph, err := report.Convergence(lv)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func runPrompt(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sess := newSession(cfg)

	fmt.Println("Program for approximating definite integral of a function.")
	report.Equations(os.Stdout, sess.Registry())

	in, err := input.NewProvider(os.Stdin, os.Stdout).Collect(sess.Registry().IDs())
	if err != nil {
		return err
	}

	out, err := sess.Run(session.Params{
		Equation:  in.Equation,
		Lower:     in.Lower,
		Upper:     in.Upper,
		Intervals: in.Intervals,
		Estimate:  true,
	})
	if err != nil {
		return err
	}
	report.Outcome(os.Stdout, out)

	if cfg.Save {
		return saveOutcome(cfg.DataDir, out)
	}
	return nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	out, err := tui.Run(newSession(cfg), input.Params{
		Equation:  cfg.Equation,
		Lower:     cfg.Lower,
		Upper:     cfg.Upper,
		Intervals: cfg.Intervals,
	})
	if err != nil {
		return err
	}
	if out != nil && cfg.Save {
		return saveOutcome(cfg.DataDir, out)
	}
	return nil
}

func saveOutcome(dir string, out *session.Outcome) error {
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Equation:        out.Equation,
		EquationName:    out.EquationName,
		Lower:           out.Lower,
		Upper:           out.Upper,
		Intervals:       out.Intervals,
		Resolved:        out.Result.Resolved,
		Discontinuities: out.Result.Discontinuities,
		Estimate:        out.Estimate,
	}
	if out.Result.Resolved {
		v := out.Result.Value
		meta.Value = &v
	}

	runID, err := st.Save(meta, out.Nodes)
	if err != nil {
		return err
	}

	log := logging.Logger()
	log.Info().Str("run", runID).Str("dir", dir).Msg("run saved")
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	return report.Runs(os.Stdout, runs)
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	report.Run(os.Stdout, meta)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	nodes, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	graph, err := report.Samples(nodes, meta.EquationName)
	if err != nil {
		return err
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(nodes))
	fmt.Println(graph)
	return nil
}
