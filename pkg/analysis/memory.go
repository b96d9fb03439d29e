package analysis

import (
	"fmt"
	"runtime"
)

// liveMemoryMB reports the heap currently allocated, in MB.
func liveMemoryMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}

// checkMemoryBudget enforces the configured allocation ceiling. Graphs
// in this workload reach a gigabyte on disk, and exhausting memory is
// its dominant failure mode; checking between stages turns an opaque
// crash into a reportable ErrOutOfMemory.
func checkMemoryBudget(limitMB int64, stage string) error {
	if limitMB <= 0 {
		return nil
	}
	if used := liveMemoryMB(); used > limitMB {
		return fatal(ErrOutOfMemory, stage, fmt.Errorf("heap %d MB over budget %d MB", used, limitMB))
	}
	return nil
}
