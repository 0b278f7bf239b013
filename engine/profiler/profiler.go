package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Profiler tracks frame rate, frame time and memory statistics.
// Frame measurements go into a private prometheus registry; once per interval the registry is gathered and a
// summary is logged.
type Profiler struct {
	mu *sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	// previous histogram totals, so each log line reports the interval only
	lastFrameSum   float64
	lastFrameCount uint64

	registry    *prometheus.Registry
	frames      prometheus.Counter
	frameTime   prometheus.Histogram
	picks       *prometheus.CounterVec
	heapBytes   prometheus.Gauge
	labelsDrawn prometheus.Gauge
}

// NewProfiler creates a new Profiler logging once per second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
		lastTime:       time.Now(),
		updateInterval: time.Second,
		registry:       prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ontography",
			Name:      "frames_total",
			Help:      "Frames drawn since start.",
		}),
		frameTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ontography",
			Name:      "frame_seconds",
			Help:      "Time spent stepping and drawing one frame.",
			Buckets:   []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.133},
		}),
		picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ontography",
			Name:      "picks_total",
			Help:      "Per-frame pick results.",
		}, []string{"result"}),
		heapBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ontography",
			Name:      "heap_bytes",
			Help:      "Live heap at the last log tick.",
		}),
		labelsDrawn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ontography",
			Name:      "labels_drawn",
			Help:      "Labels that survived frustum culling in the last frame.",
		}),
	}
	p.registry.MustRegister(p.frames, p.frameTime, p.picks, p.heapBytes, p.labelsDrawn)
	return p
}

// Registry exposes the profiler's metrics, for tests and for callers that want to export them.
func (p *Profiler) Registry() *prometheus.Registry {
	return p.registry
}

// ObserveFrame records one frame's duration.
//
// Parameters:
//   - d: wall time of the frame step and draw
func (p *Profiler) ObserveFrame(d time.Duration) {
	p.frames.Inc()
	p.frameTime.Observe(d.Seconds())
}

// ObservePick records whether the frame's pick hit a node.
func (p *Profiler) ObservePick(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.picks.WithLabelValues(result).Inc()
}

// ObserveLabels records how many labels were drawn after culling.
func (p *Profiler) ObserveLabels(n int) {
	p.labelsDrawn.Set(float64(n))
}

// Tick should be called once per frame. When the interval has elapsed it logs FPS, mean frame time from the
// registry, heap usage, allocation rate and GC pauses.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()
	p.heapBytes.Set(float64(p.memStats.Alloc))

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		start := p.lastGCCount
		if gcCount-start > 256 {
			start = gcCount - 256
		}
		for i := start; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	frameMs, hits := p.summarize()

	log.Printf("[Profiler] FPS: %.2f | Frame: %.2f ms | Hover hits: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, frameMs, hits, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// summarize gathers the registry and returns the mean frame time since the previous call and the total pick hits.
func (p *Profiler) summarize() (float64, uint64) {
	families, err := p.registry.Gather()
	if err != nil {
		log.Printf("[Profiler] gather failed: %v", err)
		return 0, 0
	}

	var frameMs float64
	var hits uint64
	for _, mf := range families {
		switch mf.GetName() {
		case "ontography_frame_seconds":
			h := mf.GetMetric()[0].GetHistogram()
			if n := h.GetSampleCount() - p.lastFrameCount; n > 0 {
				frameMs = (h.GetSampleSum() - p.lastFrameSum) / float64(n) * 1000
			}
			p.lastFrameSum, p.lastFrameCount = h.GetSampleSum(), h.GetSampleCount()
		case "ontography_picks_total":
			hits = counterWithLabel(mf.GetMetric(), "result", "hit")
		}
	}
	return frameMs, hits
}

func counterWithLabel(metrics []*dto.Metric, name, value string) uint64 {
	for _, m := range metrics {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == name && lp.GetValue() == value {
				return uint64(m.GetCounter().GetValue())
			}
		}
	}
	return 0
}
