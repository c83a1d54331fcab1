package memory

import (
	"fmt"
	"strings"
)

const (
	// FloatsPerVertex is the interleaved layout: x, y, r, g, b, a.
	FloatsPerVertex = 6
	// VertexStride is the size of one vertex in bytes.
	VertexStride = FloatsPerVertex * 4

	InitialCapacity = 16384             // vertices
	GrowthMaxBytes  = 256 * 1024 * 1024 // 256 MiB
)

// Stats tracks the vertex buffer's usage.
type Stats struct {
	TotalVertices     int64
	TotalGPUBytes     int64
	Capacity          int
	InitialCapacity   int
	Uploads           int
	GrowthEvents      int
	DrawCallsPerFrame int
	LastUploadTimeUs  float64
}

// Utilization is the fraction of the buffer's capacity holding the current
// frame.
func (s Stats) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.TotalVertices) / float64(s.Capacity)
}

func bytesFor(vertices int) int64 {
	return int64(vertices) * VertexStride
}

// NextCapacity doubles capacity until it holds need vertices. It reports
// false when that would exceed GrowthMaxBytes.
func NextCapacity(capacity, need int) (int, bool) {
	if capacity <= 0 {
		capacity = InitialCapacity
	}
	for capacity < need {
		capacity *= 2
	}
	if bytesFor(capacity) > GrowthMaxBytes {
		return 0, false
	}
	return capacity, true
}

// ValidateVertices checks that vertices holds whole triangles of
// FloatsPerVertex-wide vertices.
func ValidateVertices(vertices []float32) error {
	if len(vertices)%FloatsPerVertex != 0 {
		return fmt.Errorf("vertex data of %d floats is not a multiple of %d", len(vertices), FloatsPerVertex)
	}
	if n := len(vertices) / FloatsPerVertex; n%3 != 0 {
		return fmt.Errorf("%d vertices do not form whole triangles", n)
	}
	return nil
}

// makeUtilizationBar creates a visual bar for utilization percentage.
func makeUtilizationBar(utilization float64, width int) string {
	if utilization < 0 {
		utilization = 0
	}
	if utilization > 1 {
		utilization = 1
	}

	filled := int(utilization * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// formatNumber formats large numbers with K/M suffixes for readability.
func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000.0)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000.0)
}
