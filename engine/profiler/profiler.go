package profiler

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
)

// Profiler tracks planning throughput and memory statistics.
// Outputs stats to the log at a configurable interval. Safe for concurrent use.
type Profiler struct {
	mu             sync.Mutex
	planCount      int
	byteCount      uint64
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// Stats is one interval's worth of measurements.
type Stats struct {
	PlansPerSecond float64
	PlannedBytes   uint64
	HeapMB         float64
	AllocRateMB    float64
	GCCount        uint32
	LastPauseUs    uint64
	MaxPauseUs     uint64
	SysMB          float64
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - interval: how often Tick logs, 0 for one second
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: common.Coalesce(interval, time.Second),
	}
}

// Tick should be called once per finished plan.
// Logs statistics when the update interval has elapsed.
//
// Parameters:
//   - plannedBytes: the ledger bytes of the finished plan
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(plannedBytes uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.planCount++
	p.byteCount += plannedBytes
	if time.Since(p.lastTime) < p.updateInterval {
		return false
	}
	p.logLocked("planning")
	return true
}

// Flush logs whatever the current interval holds, if any plan finished in it.
func (p *Profiler) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.planCount > 0 {
		p.logLocked("planning done")
	}
}

func (p *Profiler) logLocked(msg string) {
	s := p.sampleLocked(time.Now())
	common.Logger().Info(msg,
		"plans/s", s.PlansPerSecond,
		"planned_bytes", s.PlannedBytes,
		"heap_mb", s.HeapMB,
		"alloc_mb/s", s.AllocRateMB,
		"gc", s.GCCount,
		"gc_last_us", s.LastPauseUs,
		"gc_max_us", s.MaxPauseUs,
		"sys_mb", s.SysMB,
	)
}

// sampleLocked reads the runtime counters and starts a new interval.
func (p *Profiler) sampleLocked(now time.Time) Stats {
	elapsed := now.Sub(p.lastTime).Seconds()
	if elapsed <= 0 {
		elapsed = 1e-9
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		PlansPerSecond: float64(p.planCount) / elapsed,
		PlannedBytes:   p.byteCount,
		HeapMB:         float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:          float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB:    float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed,
		GCCount:        p.memStats.NumGC,
	}

	gcCount := p.memStats.NumGC
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		s.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.planCount = 0
	p.byteCount = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return s
}
