package plot

import "gonum.org/v1/gonum/floats"

// Bounds returns the extent of points for axis scaling. ok is false when
// points is empty.
func Bounds(points []Point) (ext Extent, ok bool) {
	if len(points) == 0 {
		return Extent{}, false
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return Extent{
		MinX: floats.Min(xs),
		MaxX: floats.Max(xs),
		MinY: floats.Min(ys),
		MaxY: floats.Max(ys),
	}, true
}
