package profiler

import (
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

// Stats is one sampling window's worth of frame and memory statistics.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Stats are logged at a configurable interval while the profiler is visible.
type Profiler struct {
	logger         *slog.Logger
	now            func() time.Time
	visible        atomic.Bool
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a visible Profiler sampling once per second.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:         slog.Default(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	p.visible.Store(true)
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// SetVisible toggles stats output. Frames are still counted while hidden.
func (p *Profiler) SetVisible(visible bool) {
	p.visible.Store(visible)
}

// Visible reports whether stats are logged.
func (p *Profiler) Visible() bool {
	return p.visible.Load()
}

// Last returns the most recent sample.
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per frame to track frame timing.
// When the update interval has elapsed it samples FPS, heap usage, allocation rate,
// GC count and pause times, and logs them if visible.
//
// Returns:
//   - bool: true if a sample was taken this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
	}

	// PauseNs is a circular buffer of the last 256 pauses
	if s.GCCount > 0 {
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	if p.visible.Load() {
		p.logger.Info("stats",
			"fps", s.FPS,
			"heap_mb", s.HeapMB,
			"alloc_rate_mb_s", s.AllocRateMB,
			"gc", s.GCCount,
			"gc_last_us", s.LastPauseUs,
			"gc_max_us", s.MaxPauseUs,
			"sys_mb", s.SysMB,
		)
	}

	p.last = s
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
