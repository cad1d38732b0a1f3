package planner

import (
	"github.com/paulmach/orb"

	"crop-survey-system/pkg/geometry"
)

// routeAroundObstacle шукає обхідні точки між A та B навколо блокуючої
// геометрії. Перебираються чотири маршрути через кути обмежувального
// прямокутника (зверху, знизу, ліворуч, праворуч); серед безпечних
// обирається найкоротший. Якщо жоден кутовий маршрут не підходить,
// використовуються найближчі до A та B вершини межі блокуючої
// геометрії. Кандидати перевіряються проти повного набору перешкод
// obstacles, а не лише блокуючих: обхід однієї перешкоди не має
// заводити маршрут в іншу. Повертає false, якщо навіть запасний
// маршрут перетинає перешкоду — тоді обхідні точки не вставляються.
func (pl *Planner) routeAroundObstacle(a, b orb.Point, blockers, obstacles geometry.Region) ([]orb.Point, bool) {
	bound := blockers.Bound()
	buf := pl.profile.RoutingCornerBufferM

	topLeft := orb.Point{bound.Min[0] - buf, bound.Max[1] + buf}
	topRight := orb.Point{bound.Max[0] + buf, bound.Max[1] + buf}
	bottomLeft := orb.Point{bound.Min[0] - buf, bound.Min[1] - buf}
	bottomRight := orb.Point{bound.Max[0] + buf, bound.Min[1] - buf}

	candidates := [][]orb.Point{
		{topLeft, topRight},       // обхід зверху
		{bottomLeft, bottomRight}, // обхід знизу
		{topLeft, bottomLeft},     // обхід ліворуч
		{topRight, bottomRight},   // обхід праворуч
	}

	var best []orb.Point
	bestDistance := 0.0

	for _, route := range candidates {
		path := make([]orb.Point, 0, len(route)+2)
		path = append(path, a)
		path = append(path, route...)
		path = append(path, b)

		if obstacles.PathIntersects(path) {
			continue
		}

		total := pathLength(path)
		if best == nil || total < bestDistance {
			best = route
			bestDistance = total
		}
	}

	if best != nil {
		return best, true
	}

	// Запасний маршрут через вершини межі блокуючої геометрії.
	nearA := blockers.NearestVertex(a)
	nearB := blockers.NearestVertex(b)

	fallback := []orb.Point{nearA}
	if !nearA.Equal(nearB) {
		fallback = append(fallback, nearB)
	}

	path := make([]orb.Point, 0, len(fallback)+2)
	path = append(path, a)
	path = append(path, fallback...)
	path = append(path, b)
	if obstacles.PathIntersects(path) {
		return nil, false
	}
	return fallback, true
}

// pathLength обчислює сумарну довжину ламаної.
func pathLength(points []orb.Point) float64 {
	total := 0.0
	for i := 0; i+1 < len(points); i++ {
		total += geometry.Distance(points[i], points[i+1])
	}
	return total
}
