package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/loader"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/planner"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/profiler"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/renderer"
)

// result is the outcome of planning one scene file.
type result struct {
	Path     string
	Scene    *model.SceneDescription
	Plan     *planner.Plan
	Arenas   []planner.Arena
	Uploaded bool
	Elapsed  time.Duration
	Err      error
}

// planJob plans scene files. Every pass gets its own planner; the loader cache is shared.
type planJob struct {
	loader     loader.Loader
	newPlanner func() planner.Planner
	limits     capacity.HardwareLimits
	profiler   *profiler.Profiler

	// gpu, when set, backs each plan with real buffers. Builds run one at a time.
	gpu   renderer.Renderer
	gpuMu sync.Mutex
}

// planAll plans files on a dynamic worker pool and returns the results in file order.
func (j *planJob) planAll(files []string, workers int) []result {
	pool := worker.NewDynamicWorkerPool(max(workers, 1), 256, 1*time.Second)

	results := make([]result, len(files))
	var wg sync.WaitGroup
	for i, path := range files {
		wg.Add(1)
		idx := i
		p := path
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				results[idx] = j.planFile(p)
				return nil, results[idx].Err
			},
		})
	}
	wg.Wait()
	if j.profiler != nil {
		j.profiler.Flush()
	}
	return results
}

func (j *planJob) planFile(path string) (res result) {
	start := time.Now()
	res = result{Path: path}
	defer func() {
		res.Elapsed = time.Since(start)
		if j.profiler != nil && res.Plan != nil {
			j.profiler.Tick(ledgerBytes(res.Plan))
		}
	}()

	scene, err := j.loader.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Scene = scene

	plan, err := j.newPlanner().Plan(scene)
	if err != nil {
		res.Err = err
		common.Logger().Warn("planning failed", "path", path, "err", err)
		return res
	}
	res.Plan = plan

	if j.gpu == nil {
		arenas := planner.NewArenaBuilder(j.limits)
		if _, err := plan.Bind(arenas); err != nil {
			res.Err = err
			return res
		}
		res.Arenas = arenas.Arenas()
		return res
	}

	j.gpuMu.Lock()
	defer j.gpuMu.Unlock()
	bindings, err := plan.Bind(j.gpu)
	if err != nil {
		res.Err = err
		return res
	}
	if err := j.gpu.UploadPlan(plan, scene, bindings); err != nil {
		res.Err = err
		return res
	}
	res.Arenas = j.gpu.Arenas()
	res.Uploaded = true
	return res
}

// ledgerBytes sums the sizes of every entry in a plan's ledger.
func ledgerBytes(p *planner.Plan) uint64 {
	var n uint64
	for _, e := range p.Ledger {
		n += e.Size
	}
	return n
}

// collectFiles expands directories into the scene files below them. Explicit file
// arguments are kept even when their extension is unknown, so the loader reports them.
func collectFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Clean(p))
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && loader.IsSceneFile(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}
