package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// GoroutineMonitor tracks goroutine counts over a long run. The arena uses it to spot
// exchanges with killed bots that never returned.
type GoroutineMonitor struct {
	mu              sync.RWMutex
	baseline        int
	current         int
	peak            int
	checkInterval   time.Duration
	alertThreshold  int
	lastAlert       time.Time
	alertCooldown   time.Duration
	stopChan        chan struct{}
	stopOnce        sync.Once
	componentCounts map[string]int
	logger          zerolog.Logger
}

// NewGoroutineMonitor creates a monitor that alerts once the count grows past
// baseline+headroom.
func NewGoroutineMonitor(checkInterval time.Duration, headroom int, logger zerolog.Logger) *GoroutineMonitor {
	baseline := runtime.NumGoroutine()
	return &GoroutineMonitor{
		baseline:        baseline,
		current:         baseline,
		peak:            baseline,
		checkInterval:   checkInterval,
		alertThreshold:  baseline + headroom,
		alertCooldown:   5 * time.Minute,
		stopChan:        make(chan struct{}),
		componentCounts: make(map[string]int),
		logger:          logger.With().Str("component", "GoroutineMonitor").Logger(),
	}
}

// Start begins monitoring goroutines
func (gm *GoroutineMonitor) Start() {
	go gm.monitor()
	gm.logger.Info().
		Int("baseline", gm.baseline).
		Int("threshold", gm.alertThreshold).
		Msg("Started goroutine monitoring")
}

// Stop stops the monitor. It is safe to call more than once.
func (gm *GoroutineMonitor) Stop() {
	gm.stopOnce.Do(func() { close(gm.stopChan) })
}

func (gm *GoroutineMonitor) monitor() {
	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.Check()
		case <-gm.stopChan:
			return
		}
	}
}

// Check samples the goroutine count now and reports whether it is over the threshold.
func (gm *GoroutineMonitor) Check() bool {
	current := runtime.NumGoroutine()

	gm.mu.Lock()
	gm.current = current
	gm.peak = max(gm.peak, current)
	over := current > gm.alertThreshold
	shouldAlert := over && time.Since(gm.lastAlert) > gm.alertCooldown
	if shouldAlert {
		gm.lastAlert = time.Now()
	}
	peak := gm.peak
	gm.mu.Unlock()

	gm.logger.Debug().
		Int("current", current).
		Int("baseline", gm.baseline).
		Int("peak", peak).
		Msg("Goroutine metrics")

	if shouldAlert {
		gm.logger.Warn().
			Int("current", current).
			Int("threshold", gm.alertThreshold).
			Msg("High goroutine count detected - possible leak")
	}
	return over
}

// RegisterComponent records how many goroutines a component is expected to hold.
func (gm *GoroutineMonitor) RegisterComponent(name string, count int) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.componentCounts[name] = count
}

// GetMetrics returns current goroutine metrics
func (gm *GoroutineMonitor) GetMetrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	counts := make(map[string]int, len(gm.componentCounts))
	for k, v := range gm.componentCounts {
		counts[k] = v
	}
	return GoroutineMetrics{
		Current:         gm.current,
		Baseline:        gm.baseline,
		Peak:            gm.peak,
		Growth:          gm.current - gm.baseline,
		ComponentCounts: counts,
	}
}

// GoroutineMetrics contains goroutine statistics
type GoroutineMetrics struct {
	Current         int            `json:"current"`
	Baseline        int            `json:"baseline"`
	Peak            int            `json:"peak"`
	Growth          int            `json:"growth"`
	ComponentCounts map[string]int `json:"component_counts"`
}
