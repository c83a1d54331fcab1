// Package memory manages the GPU vertex storage for the wave frames.
//
// Every frame is re-tessellated on the CPU and uploaded in full, so a single
// dynamically sized VBO suffices: it grows by doubling until it fits the
// frame, up to GrowthMaxBytes.
package memory

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var memoryLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("WAVES_DEBUG_MEMORY") == "1" {
		memoryLogger = log.New(os.Stdout, "[memory] ", log.Ltime|log.Lmsgprefix)
	}
}

// VertexBuffer holds interleaved x,y,r,g,b,a float32 vertices in one VAO/VBO
// pair.
type VertexBuffer struct {
	vao, vbo    uint32
	capacity    int // in vertices
	vertexCount int
	stats       Stats
}

// NewVertexBuffer allocates a buffer with room for initialCapacity vertices
// (InitialCapacity when non-positive). A GL context must be current.
func NewVertexBuffer(initialCapacity int) (*VertexBuffer, error) {
	if initialCapacity <= 0 {
		initialCapacity = InitialCapacity
	}
	if bytesFor(initialCapacity) > GrowthMaxBytes {
		return nil, fmt.Errorf("initial capacity of %d vertices exceeds %s", initialCapacity, formatNumber(GrowthMaxBytes))
	}

	vb := &VertexBuffer{}
	gl.GenVertexArrays(1, &vb.vao)
	gl.GenBuffers(1, &vb.vbo)
	if vb.vao == 0 || vb.vbo == 0 {
		vb.Cleanup()
		return nil, fmt.Errorf("failed to allocate vertex buffer")
	}
	vb.allocate(initialCapacity)
	vb.stats.InitialCapacity = initialCapacity
	memoryLogger.Printf("allocated vertex buffer (%s vertices, %s GPU)",
		formatNumber(int64(initialCapacity)), formatNumber(bytesFor(initialCapacity)))
	return vb, nil
}

// allocate (re)creates the VBO storage for capacity vertices and points the
// VAO's attributes at it.
func (vb *VertexBuffer) allocate(capacity int) {
	gl.BindVertexArray(vb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, int(bytesFor(capacity)), nil, gl.DYNAMIC_DRAW)

	// Position (x, y).
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, VertexStride, gl.PtrOffset(0))
	// Colour (r, g, b, a).
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, VertexStride, gl.PtrOffset(8))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	vb.capacity = capacity
}

// Upload replaces the buffer's contents with vertices, growing the VBO when
// they do not fit.
func (vb *VertexBuffer) Upload(vertices []float32) error {
	if err := ValidateVertices(vertices); err != nil {
		return err
	}
	count := len(vertices) / FloatsPerVertex
	if count == 0 {
		vb.vertexCount = 0
		return nil
	}

	start := time.Now()
	if count > vb.capacity {
		next, ok := NextCapacity(vb.capacity, count)
		if !ok {
			return fmt.Errorf("frame of %d vertices exceeds the %s buffer limit", count, formatNumber(GrowthMaxBytes))
		}
		memoryLogger.Printf("growing vertex buffer %s -> %s vertices",
			formatNumber(int64(vb.capacity)), formatNumber(int64(next)))
		vb.allocate(next)
		vb.stats.GrowthEvents++
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	vb.vertexCount = count
	vb.stats.Uploads++
	vb.stats.LastUploadTimeUs = float64(time.Since(start).Microseconds())
	return nil
}

// Draw renders the uploaded vertices as triangles.
func (vb *VertexBuffer) Draw() {
	if vb.vertexCount == 0 {
		vb.stats.DrawCallsPerFrame = 0
		return
	}
	gl.BindVertexArray(vb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(vb.vertexCount))
	gl.BindVertexArray(0)
	vb.stats.DrawCallsPerFrame = 1
}

// Cleanup releases the OpenGL resources.
func (vb *VertexBuffer) Cleanup() {
	if vb.vao != 0 {
		gl.DeleteVertexArrays(1, &vb.vao)
		vb.vao = 0
	}
	if vb.vbo != 0 {
		gl.DeleteBuffers(1, &vb.vbo)
		vb.vbo = 0
	}
	vb.capacity, vb.vertexCount = 0, 0
}

// Stats returns current buffer statistics.
func (vb *VertexBuffer) Stats() Stats {
	s := vb.stats
	s.Capacity = vb.capacity
	s.TotalVertices = int64(vb.vertexCount)
	s.TotalGPUBytes = bytesFor(vb.capacity)
	return s
}

// PrintStats logs buffer statistics with a utilization bar.
func (vb *VertexBuffer) PrintStats() {
	s := vb.Stats()
	memoryLogger.Printf("%s %.0f%% used (%s/%s vertices, %s triangles), %s GPU, %d uploads (%.2fμs last), %d growth events",
		makeUtilizationBar(s.Utilization(), 12),
		s.Utilization()*100,
		formatNumber(s.TotalVertices),
		formatNumber(int64(s.Capacity)),
		formatNumber(s.TotalVertices/3),
		formatNumber(s.TotalGPUBytes),
		s.Uploads,
		s.LastUploadTimeUs,
		s.GrowthEvents,
	)
}
