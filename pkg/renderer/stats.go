package renderer

import (
	"fmt"
	"sync/atomic"
)

// RayStats counts the rays cast during a render. Counters are atomic so
// worker goroutines can share one instance.
type RayStats struct {
	Primary    atomic.Int64 // camera rays, one per sample
	Shadow     atomic.Int64 // occlusion rays toward lights
	Reflection atomic.Int64 // recursive bounce rays
}

// Total returns the number of rays cast across all categories.
func (rs *RayStats) Total() int64 {
	return rs.Primary.Load() + rs.Shadow.Load() + rs.Reflection.Load()
}

func (rs *RayStats) String() string {
	return fmt.Sprintf("%d rays (%d primary, %d shadow, %d reflection)",
		rs.Total(), rs.Primary.Load(), rs.Shadow.Load(), rs.Reflection.Load())
}
