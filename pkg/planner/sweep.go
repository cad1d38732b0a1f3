package planner

import (
	"github.com/paulmach/orb"

	"crop-survey-system/pkg/geometry"
)

// generateSweep будує сирі точки газонокосарного проходу всередині
// безпечної зони. Треки йдуть горизонтально з кроком spacing, напрямок
// чергується: парні треки зліва направо, непарні — справа наліво, щоб
// мінімізувати відстань розвороту між сусідніми треками.
func generateSweep(zone geometry.Region, spacingM float64) []orb.Point {
	bound := zone.Bound()
	minY, maxY := bound.Min[1], bound.Max[1]

	numTracks := int((maxY-minY)/spacingM) + 1
	var points []orb.Point

	for i := 0; i < numTracks; i++ {
		y := minY + float64(i)*spacingM

		segments := zone.ClipHorizontal(y)
		if len(segments) == 0 {
			// Трек не перетинає безпечну зону, точок не дає.
			continue
		}

		leftToRight := i%2 == 0
		if leftToRight {
			for _, seg := range segments {
				points = append(points, seg.A, seg.B)
			}
		} else {
			for j := len(segments) - 1; j >= 0; j-- {
				points = append(points, segments[j].B, segments[j].A)
			}
		}
	}
	return points
}
