package app

import (
	"fmt"
	"time"
)

// FrameCounter aggregates frame times into a once-per-second frame rate.
type FrameCounter struct {
	FPS          float64
	AvgFrameTime float64 // ms

	count  int
	sumMs  float64
	window time.Time
}

// Record adds a frame that took frameTime and reports whether the per-second
// statistics were refreshed.
func (f *FrameCounter) Record(now time.Time, frameTime time.Duration) bool {
	if f.window.IsZero() {
		f.window = now
	}
	f.count++
	f.sumMs += float64(frameTime.Microseconds()) / 1000.0

	elapsed := now.Sub(f.window)
	if elapsed < time.Second {
		return false
	}
	f.FPS = float64(f.count) / elapsed.Seconds()
	f.AvgFrameTime = f.sumMs / float64(f.count)
	f.count, f.sumMs = 0, 0
	f.window = now
	return true
}

// TitleStats is what the window title reports.
type TitleStats struct {
	FPS          float64
	AvgFrameTime float64
	Palette      int // zero-based
	Palettes     int
	Paused       bool
	Triangles    int
	GPUBytes     int64
}

// Title builds the window title.
func Title(s TitleStats) string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	return fmt.Sprintf("Waves (%.1f FPS, %.2fms/frame, palette %d/%d, %s, %d triangles, %.1fMiB GPU)",
		s.FPS,
		s.AvgFrameTime,
		s.Palette+1,
		s.Palettes,
		state,
		s.Triangles,
		float64(s.GPUBytes)/(1024.0*1024.0),
	)
}
