// Package workers sizes worker pools from the CPUs actually available to
// the process, respecting container CPU limits via GOMAXPROCS.
package workers

import (
	"os"
	"runtime"
	"strconv"
)

// Count returns a worker count scaled by multiplier from the available CPUs
// and capped at limit (0 for no cap). The SCAN_WORKERS environment variable
// overrides the computed value.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv("SCAN_WORKERS"); override != "" {
		if n, err := strconv.Atoi(override); err == nil && n > 0 {
			if limit > 0 && n > limit {
				return limit
			}
			return n
		}
	}

	n := int(float64(runtime.GOMAXPROCS(0)) * multiplier)
	if n < 1 {
		n = 1
	}
	if limit > 0 && n > limit {
		n = limit
	}
	return n
}

// ForIO returns a worker count for I/O-bound work (2 per CPU).
func ForIO(limit int) int {
	return Count(2.0, limit)
}

// ForCPU returns a worker count for CPU-bound work (1 per CPU).
func ForCPU(limit int) int {
	return Count(1.0, limit)
}
