package profiler

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const mb = 1 << 20

// Profiler counts render frames and engine ticks and logs their rates, with heap and GC
// figures, once per interval at debug level.
//
// Ticks are counted from the tick goroutine and frames from the render goroutine;
// Frame does the reporting.
type Profiler struct {
	logger   zerolog.Logger
	interval time.Duration
	now      func() time.Time

	ticks atomic.Int64

	frames      int
	windowStart time.Time
	lastGC      uint32
	lastAlloc   uint64
}

// NewProfiler creates a profiler reporting to logger every second.
//
// Parameters:
//   - logger: destination for the stats line
//
// Returns:
//   - *Profiler: the new profiler
func NewProfiler(logger zerolog.Logger) *Profiler {
	return &Profiler{
		logger:      logger.With().Str("component", "profiler").Logger(),
		interval:    time.Second,
		now:         time.Now,
		windowStart: time.Now(),
	}
}

// SetInterval changes the reporting interval. Non-positive values are ignored.
func (p *Profiler) SetInterval(interval time.Duration) {
	if interval > 0 {
		p.interval = interval
	}
}

// Tick records one engine tick.
func (p *Profiler) Tick() {
	p.ticks.Add(1)
}

// Frame records one render frame and logs the stats line when the interval has passed.
//
// Returns:
//   - bool: true if a stats line was written
func (p *Profiler) Frame() bool {
	p.frames++
	now := p.now()
	elapsed := now.Sub(p.windowStart)
	if elapsed < p.interval {
		return false
	}
	secs := elapsed.Seconds()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	p.logger.Debug().
		Float64("fps", float64(p.frames)/secs).
		Float64("tps", float64(p.ticks.Swap(0))/secs).
		Float64("heap_mb", float64(ms.HeapAlloc)/mb).
		Float64("alloc_rate_mb_s", float64(ms.TotalAlloc-p.lastAlloc)/mb/secs).
		Uint32("gc_cycles", ms.NumGC-p.lastGC).
		Dur("gc_last_pause", time.Duration(ms.PauseNs[(ms.NumGC+255)%256])).
		Msg("frame stats")

	p.frames = 0
	p.windowStart = now
	p.lastGC = ms.NumGC
	p.lastAlloc = ms.TotalAlloc
	return true
}
