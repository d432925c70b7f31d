package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/milk9111/siege/config"
	"github.com/milk9111/siege/prefabs"
	"github.com/milk9111/siege/sim"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	scenario string
	config   string
	runs     int
	ticks    int
	seed     int64
	watch    bool
	verbose  bool
}

func main() {
	var opts options
	flag.StringVar(&opts.scenario, "scenario", "siege_default.yaml", "scenario prefab name or path")
	flag.StringVar(&opts.config, "config", "", "tuning file (yaml); defaults when empty")
	flag.IntVar(&opts.runs, "runs", 1, "number of headless simulation runs")
	flag.IntVar(&opts.ticks, "ticks", 0, "ticks per run; 0 uses sim.ticks")
	flag.Int64Var(&opts.seed, "seed", -1, "seed for run 1, incremented per run; -1 uses sim.seed")
	flag.BoolVar(&opts.watch, "watch", false, "re-run when scenario, script or config files change")
	flag.BoolVar(&opts.verbose, "v", false, "development logging at debug level")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	if opts.runs <= 0 {
		return errors.New("-runs must be > 0")
	}

	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log.Level, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := report(ctx, opts, cfg, logger, out); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}
	return watch(ctx, opts, logger, out)
}

func report(ctx context.Context, opts options, cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	scenario, err := prefabs.LoadScenario(opts.scenario)
	if err != nil {
		return err
	}

	seed := cfg.Sim.Seed
	if opts.seed >= 0 {
		seed = opts.seed
	}
	ticks := opts.ticks
	if ticks <= 0 {
		ticks = cfg.Sim.Ticks
	}

	fmt.Fprintf(out, "=== Siege Report ===\n")
	fmt.Fprintf(out, "scenario=%s runs=%d ticks=%d seed=%d\n\n", scenario.Name, opts.runs, ticks, seed)

	all := make([]sim.Stats, 0, opts.runs)
	for i := 0; i < opts.runs; i++ {
		runCfg := *cfg
		runCfg.Sim.Seed = seed + int64(i)

		s, err := sim.New(scenario, &runCfg, logger)
		if err != nil {
			return err
		}
		st, err := s.Run(ctx, ticks)
		if err != nil {
			return err
		}
		all = append(all, st)
		printRun(out, i+1, runCfg.Sim.Seed, st)
	}
	printSummary(out, all)
	return nil
}

func printRun(out io.Writer, index int, seed int64, st sim.Stats) {
	fmt.Fprintf(out, "--- Run %d (seed=%d id=%s) ---\n", index, seed, st.RunID)
	fmt.Fprintf(out, "enemies: spawned=%d active=%d breached=%d\n", st.Spawned, st.Active, st.Breaches)
	fmt.Fprintf(out, "barriers: broken=%d repaired=%d\n", st.BarriersBroken, st.BarriersRepaired)
	fmt.Fprintf(out, "combat: hold_transitions=%d player_hits=%d overlap_corrections=%d\n\n", st.HoldTransitions, st.PlayerHits, st.Corrections)
}

func printSummary(out io.Writer, all []sim.Stats) {
	if len(all) == 0 {
		return
	}
	var breaches, broken, hits, holds int
	firstBreach := 0
	for _, st := range all {
		breaches += st.Breaches
		broken += st.BarriersBroken
		hits += st.PlayerHits
		holds += st.HoldTransitions
		if st.Breaches > 0 {
			firstBreach++
		}
	}
	n := float64(len(all))
	fmt.Fprintf(out, "=== Summary ===\n")
	fmt.Fprintf(out, "runs=%d runs_breached=%d\n", len(all), firstBreach)
	fmt.Fprintf(out, "avg_per_run: breaches=%.1f barriers_broken=%.1f player_hits=%.1f hold_transitions=%.1f\n",
		float64(breaches)/n, float64(broken)/n, float64(hits)/n, float64(holds)/n)
}

// watch re-runs the report for every change under the watched directories
// until ctx is done.
func watch(ctx context.Context, opts options, logger *zap.Logger, out io.Writer) error {
	w, err := prefabs.NewWatcher(watchDirs(opts)...)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	logger.Info("watching for changes", zap.Strings("dirs", watchDirs(opts)))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Info("change detected, re-running", zap.String("file", name))
			cfg, err := config.Load(opts.config)
			if err != nil {
				logger.Error("reload config", zap.Error(err))
				continue
			}
			if err := report(ctx, opts, cfg, logger, out); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				logger.Error("re-run failed", zap.Error(err))
			}
		}
	}
}

func watchDirs(opts options) []string {
	seen := map[string]bool{}
	var dirs []string
	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	add("prefabs")
	add(filepath.Join("prefabs", "scripts"))
	if _, err := os.Stat(opts.scenario); err == nil {
		add(filepath.Dir(opts.scenario))
	}
	if opts.config != "" {
		add(filepath.Dir(opts.config))
	}
	return dirs
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
