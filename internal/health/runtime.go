// Runtime introspection, adapted from internal/services/runtime_config.go:
// same GOMAXPROCS/GC/profiling knobs and memstats snapshot, logged
// through this module's own logging package instead of the teacher's
// internal/telemetry (not part of this engine's retrieved pack).
package health

import (
	"runtime"
	"runtime/debug"

	"github.com/vantage-quant/taengine/internal/logging"
)

type RuntimeConfig struct {
	MaxProcs         int
	GCPercent        int
	MemoryLimitMB    int64
	BlockProfileRate int
	MutexProfileRate int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		MaxProcs:      0,
		GCPercent:     100,
		MemoryLimitMB: 0,
	}
}

type RuntimeOptimizer struct {
	config RuntimeConfig
	logger *logging.Logger
}

func NewRuntimeOptimizer(config RuntimeConfig) *RuntimeOptimizer {
	return &RuntimeOptimizer{config: config, logger: logging.Default()}
}

func (ro *RuntimeOptimizer) Apply() {
	previousProcs := runtime.GOMAXPROCS(ro.config.MaxProcs)
	ro.logger.WithFields(logging.Fields{
		"previous": previousProcs,
		"current":  runtime.GOMAXPROCS(0),
	}).Info("configured GOMAXPROCS")

	if ro.config.GCPercent > 0 {
		previous := debug.SetGCPercent(ro.config.GCPercent)
		ro.logger.WithFields(logging.Fields{"previous": previous, "current": ro.config.GCPercent}).Info("configured GC percentage")
	}

	if ro.config.MemoryLimitMB > 0 {
		previous := debug.SetMemoryLimit(ro.config.MemoryLimitMB * 1024 * 1024)
		ro.logger.WithFields(logging.Fields{
			"previous_mb": previous / 1024 / 1024,
			"current_mb":  ro.config.MemoryLimitMB,
		}).Info("configured memory limit")
	}

	if ro.config.BlockProfileRate > 0 {
		runtime.SetBlockProfileRate(ro.config.BlockProfileRate)
	}
	if ro.config.MutexProfileRate > 0 {
		runtime.SetMutexProfileFraction(ro.config.MutexProfileRate)
	}
}

// Stats is the runtime/memstats snapshot returned by GetStats.
type Stats struct {
	GOMAXPROCS    int     `json:"gomaxprocs"`
	NumCPU        int     `json:"num_cpu"`
	NumGoroutine  int     `json:"num_goroutine"`
	GoVersion     string  `json:"go_version"`
	HeapAllocMB   uint64  `json:"heap_alloc_mb"`
	HeapSysMB     uint64  `json:"heap_sys_mb"`
	NumGC         uint32  `json:"num_gc"`
	GCCPUFraction float64 `json:"gc_cpu_fraction"`
}

func GetStats() Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Stats{
		GOMAXPROCS:    runtime.GOMAXPROCS(0),
		NumCPU:        runtime.NumCPU(),
		NumGoroutine:  runtime.NumGoroutine(),
		GoVersion:     runtime.Version(),
		HeapAllocMB:   m.HeapAlloc / 1024 / 1024,
		HeapSysMB:     m.HeapSys / 1024 / 1024,
		NumGC:         m.NumGC,
		GCCPUFraction: m.GCCPUFraction,
	}
}

// RecommendedWorkerCount sizes the marketdata HTTP client's
// per-host connection pool from available CPU and heap headroom, the
// way the teacher scales its own worker pool. Multi-symbol scans in
// internal/engine are deliberately sequential (§5 rate-limits upstream
// providers), so this bounds outbound connection concurrency instead
// of a goroutine fan-out.
func RecommendedWorkerCount() int {
	cpuCount := runtime.NumCPU()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	availableMB := m.HeapSys / 1024 / 1024

	switch {
	case availableMB >= 8192:
		return min(cpuCount*4, 32)
	case availableMB >= 4096:
		return min(cpuCount*3, 24)
	case availableMB >= 2048:
		return min(cpuCount*2, 16)
	default:
		return max(cpuCount, 4)
	}
}
