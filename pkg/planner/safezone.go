package planner

import (
	"github.com/paulmach/orb"

	"crop-survey-system/pkg/geometry"
)

// buildSafeZone віднімає буферизовані перешкоди та безпольотні зони
// від межі поля. Без перешкод безпечна зона дорівнює самому полю.
// Якщо після віднімання не лишається площі, поле вважається повністю
// заблокованим.
func (pl *Planner) buildSafeZone(field orb.Ring, obstacles []orb.Ring) (geometry.Region, error) {
	if len(obstacles) == 0 {
		return geometry.Region{field}, nil
	}

	merged := geometry.Union(obstacles)

	// Розширюються зовнішні контури об'єднання перешкод.
	buffered := make([]orb.Ring, 0, len(merged))
	for _, ring := range merged {
		buffered = append(buffered, geometry.Buffer(ring, pl.profile.ObstacleClearanceM))
	}

	safeZone := geometry.Difference(field, geometry.Union(buffered))
	if len(safeZone) == 0 || safeZone.Area() < 1e-9 {
		return nil, ErrFieldObstructed
	}
	return safeZone, nil
}

// bufferedObstacles повертає кожну перешкоду, окремо розширену на
// запас безпеки. Використовується маршрутизатором обходу, який працює
// з індивідуальними перешкодами, а не з їх об'єднанням.
func (pl *Planner) bufferedObstacles(obstacles []orb.Ring) []orb.Ring {
	buffered := make([]orb.Ring, 0, len(obstacles))
	for _, ring := range obstacles {
		buffered = append(buffered, geometry.Buffer(ring, pl.profile.ObstacleClearanceM))
	}
	return buffered
}
