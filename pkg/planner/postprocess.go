package planner

import "math"

// deduplicateWaypoints прибирає точки, що лежать надто близько до
// попередньої збереженої точки в площині XY. Фільтр потоковий і
// зберігає порядок; перша точка лишається завжди.
func (pl *Planner) deduplicateWaypoints(waypoints []Waypoint) []Waypoint {
	if len(waypoints) == 0 {
		return nil
	}

	filtered := make([]Waypoint, 0, len(waypoints))
	filtered = append(filtered, waypoints[0])

	for _, wp := range waypoints[1:] {
		last := filtered[len(filtered)-1]
		dist := math.Hypot(float64(wp.X-last.X), float64(wp.Y-last.Y))
		if dist >= pl.profile.DedupThresholdCm {
			filtered = append(filtered, wp)
		}
	}
	return filtered
}

// maxWaypoints обчислює, скільки точок вміщується в один цикл батареї.
func (pl *Planner) maxWaypoints() int {
	capacity := math.Floor(
		(pl.profile.UsableFlightTimeSec() - pl.profile.WaypointOverheadSec) / pl.profile.WaypointCostSec)
	return int(capacity * pl.profile.WaypointSafetyFactor)
}

// subsampleWaypoints рівномірно проріджує список до max точок,
// безумовно зберігаючи першу й останню. Порядок точок не змінюється.
func subsampleWaypoints(waypoints []Waypoint, max int) []Waypoint {
	if len(waypoints) <= max {
		return waypoints
	}
	if max < 2 {
		return []Waypoint{waypoints[0], waypoints[len(waypoints)-1]}
	}

	step := float64(len(waypoints)) / float64(max)

	result := make([]Waypoint, 0, max)
	result = append(result, waypoints[0])
	for i := 1; i <= max-2; i++ {
		result = append(result, waypoints[int(float64(i)*step)])
	}
	result = append(result, waypoints[len(waypoints)-1])
	return result
}
