package metrics

import "runtime"

// MemorySnapshot is the subset of runtime.MemStats the run summary reports,
// plus the goroutine count at the moment it was read.
type MemorySnapshot struct {
	HeapAlloc    uint64
	HeapSys      uint64
	HeapObjects  uint64
	Sys          uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
	Goroutines   int
}

// MemoryDelta is the change between two snapshots taken around a run.
type MemoryDelta struct {
	Allocated  uint64 // bytes allocated between the snapshots
	GCCycles   uint32 // GC cycles completed between the snapshots
	PauseNs    uint64 // GC pause time between the snapshots
	PeakHeap   uint64 // larger of the two HeapAlloc readings
	Goroutines int    // goroutines alive at the second snapshot
}

// MemoryCollector takes MemorySnapshots. The zero value reads the live
// runtime.
type MemoryCollector struct {
	readStats  func(*runtime.MemStats)
	goroutines func() int
}

func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{readStats: runtime.ReadMemStats, goroutines: runtime.NumGoroutine}
}

func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	read, count := runtime.ReadMemStats, runtime.NumGoroutine
	if mc != nil && mc.readStats != nil {
		read = mc.readStats
	}
	if mc != nil && mc.goroutines != nil {
		count = mc.goroutines
	}
	var ms runtime.MemStats
	read(&ms)
	snap := MemorySnapshot{Goroutines: count()}
	snap.HeapAlloc, snap.HeapSys, snap.HeapObjects = ms.HeapAlloc, ms.HeapSys, ms.HeapObjects
	snap.Sys, snap.TotalAlloc = ms.Sys, ms.TotalAlloc
	snap.NumGC, snap.PauseTotalNs = ms.NumGC, ms.PauseTotalNs
	return snap
}

// Since returns the change from before to s. Counters that went backwards
// (which runtime.MemStats never does) clamp to zero.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	d := MemoryDelta{
		PeakHeap:   max(s.HeapAlloc, before.HeapAlloc),
		Goroutines: s.Goroutines,
	}
	if s.TotalAlloc > before.TotalAlloc {
		d.Allocated = s.TotalAlloc - before.TotalAlloc
	}
	if s.NumGC > before.NumGC {
		d.GCCycles = s.NumGC - before.NumGC
	}
	if s.PauseTotalNs > before.PauseTotalNs {
		d.PauseNs = s.PauseTotalNs - before.PauseTotalNs
	}
	return d
}
