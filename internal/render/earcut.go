package render

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/waves/internal/geom"
)

// earClip triangulates a simple polygon (a closed wave band) with the earcut
// algorithm, returning its triangles. The winding of the input doesn't
// matter.
func earClip(polygon []geom.Point) ([][3]geom.Point, error) {
	if len(polygon) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(polygon))
	}

	// Format: [x0, y0, x1, y1, ..., xn, yn]
	coords := make([]float64, len(polygon)*2)
	for i, p := range polygon {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}

	indices, err := earcut.Earcut(coords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulating %d-vertex polygon: %w", len(polygon), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle count (indices: %d, not divisible by 3)", len(indices))
	}

	triangles := make([][3]geom.Point, len(indices)/3)
	for t := range triangles {
		for v := 0; v < 3; v++ {
			triangles[t][v] = polygon[indices[t*3+v]]
		}
	}
	return triangles, nil
}
