package clip2md

import "runtime"

// Worker sizing constants for batch conversion.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent conversions.
	MaxWorkers = 8
)

// ResolveWorkers returns n when positive, otherwise GOMAXPROCS.
// The result is clamped to [MinWorkers, MaxWorkers].
func ResolveWorkers(n int) int {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return min(max(n, MinWorkers), MaxWorkers)
}
