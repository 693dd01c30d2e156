// Command scenepack plans GPU storage for glTF scenes and reports the layout.
//
// Usage:
//
//	scenepack [flags] <file or directory>...
//
// Scenes are planned against a limits profile from the config, or against the local
// adapter with -device. With -watch, changed files are reloaded and planned again.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/config"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/loader"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/planner"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/profiler"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/renderer"
	"github.com/charmbracelet/log"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to a TOML config file")
		profile     = flag.String("profile", "", "limits profile to plan against (default from config)")
		device      = flag.Bool("device", false, "plan against the local GPU and upload the result")
		software    = flag.Bool("software", false, "with -device, force the software fallback adapter")
		watch       = flag.Bool("watch", false, "re-plan scenes when their files change")
		workers     = flag.Int("workers", 0, "number of planning workers (default from config)")
		logLevel    = flag.String("log-level", "", "log level: debug, info, warn, error")
		printConfig = flag.Bool("print-config", false, "print the effective config and exit")
	)
	flag.Parse()

	if err := run(options{
		configPath:  *configPath,
		profile:     *profile,
		device:      *device,
		software:    *software,
		watch:       *watch,
		workers:     *workers,
		logLevel:    *logLevel,
		printConfig: *printConfig,
		paths:       flag.Args(),
	}); err != nil {
		common.Logger().Error(err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	profile     string
	device      bool
	software    bool
	watch       bool
	workers     int
	logLevel    string
	printConfig bool
	paths       []string
}

func run(opts options) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	cfg.Workers = common.Coalesce(opts.workers, cfg.Workers)
	cfg.LogLevel = common.Coalesce(opts.logLevel, cfg.LogLevel)

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	common.Logger().SetLevel(level)

	if opts.printConfig {
		return cfg.Write(os.Stdout)
	}

	files, err := collectFiles(opts.paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .gltf or .glb files given")
	}

	var (
		limits capacity.LimitsSource
		gpu    renderer.Renderer
	)
	if opts.device {
		gpu, err = renderer.NewRenderer(renderer.BackendTypeWGPU, renderer.WithForceSoftwareRenderer(opts.software))
		if err != nil {
			return err
		}
		defer gpu.Release()
		limits = gpu
	} else {
		p, err := cfg.Profile(opts.profile)
		if err != nil {
			return fmt.Errorf("%w (have %v)", err, cfg.ProfileNames())
		}
		limits = p
	}

	job := &planJob{
		loader: loader.NewLoader(loader.BackendTypeGLTF),
		newPlanner: func() planner.Planner {
			return planner.NewPlanner(limits, cfg.PlannerOptions()...)
		},
		limits:   limits.Limits(),
		profiler: profiler.NewProfiler(0),
		gpu:      gpu,
	}

	results := job.planAll(files, cfg.Workers)
	fmt.Println(renderReport(results))

	if opts.watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return job.watch(ctx, files, func(r result) {
			fmt.Println(renderReport([]result{r}))
		})
	}

	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%d of %d scenes failed to plan", countFailed(results), len(results))
		}
	}
	return nil
}

func countFailed(results []result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
