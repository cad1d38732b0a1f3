package planner

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crop-survey-system/pkg/geometry"
)

func TestRouteAroundObstaclePicksCornerRoute(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())

	blockers := geometry.Region{geometry.RingFromPoints([]orb.Point{
		{4, 4}, {6, 4}, {6, 6}, {4, 6},
	})}

	detour, ok := pl.routeAroundObstacle(orb.Point{0, 5}, orb.Point{10, 5}, blockers, blockers)
	require.True(t, ok)
	require.Len(t, detour, 2)

	// Кути обходу винесені за межі з відступом 0.5 м.
	assert.InDelta(t, 3.5, detour[0][0], 1e-9)
	assert.InDelta(t, 6.5, detour[0][1], 1e-9)
	assert.InDelta(t, 6.5, detour[1][0], 1e-9)
	assert.InDelta(t, 6.5, detour[1][1], 1e-9)

	// Повний маршрут з обходом не заходить у перешкоду.
	path := []orb.Point{{0, 5}, detour[0], detour[1], {10, 5}}
	assert.False(t, blockers.PathIntersects(path))
}

func TestRouteAroundObstacleUnblockedSegment(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())

	blockers := geometry.Region{geometry.RingFromPoints([]orb.Point{
		{4, 4}, {6, 4}, {6, 6}, {4, 6},
	})}

	// Відрізок нижче перешкоди: підходить перший безпечний кутовий маршрут.
	detour, ok := pl.routeAroundObstacle(orb.Point{0, 0}, orb.Point{10, 0}, blockers, blockers)
	require.True(t, ok)
	assert.NotEmpty(t, detour)
}

func TestRouteAroundObstacleAvoidsOtherObstacles(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())

	blockers := geometry.Region{geometry.RingFromPoints([]orb.Point{
		{0, 0}, {3, 0}, {3, 10}, {0, 10},
	})}
	// Додаткова перешкода нижче блокуючої стіни.
	all := geometry.Region{
		blockers[0],
		geometry.RingFromPoints([]orb.Point{{3, 0}, {20, 0}, {20, 3}, {3, 3}}),
	}

	// Нижній обхід коротший, але заводить у другу перешкоду: обирається
	// безпечний верхній маршрут.
	detour, ok := pl.routeAroundObstacle(orb.Point{-2, 4}, orb.Point{8, 4}, blockers, all)
	require.True(t, ok)

	path := append([]orb.Point{{-2, 4}}, detour...)
	path = append(path, orb.Point{8, 4})
	assert.False(t, all.PathIntersects(path))
}

func TestRouteAroundObstacleNoSafeRoute(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())

	// Чотири стіни замикають порожнину (3,7)x(3,7): будь-який шлях
	// ззовні до центру порожнини перетинає одну зі стін.
	walls := geometry.Region{
		geometry.RingFromPoints([]orb.Point{{0, 0}, {10, 0}, {10, 3}, {0, 3}}),
		geometry.RingFromPoints([]orb.Point{{0, 7}, {10, 7}, {10, 10}, {0, 10}}),
		geometry.RingFromPoints([]orb.Point{{0, 0}, {3, 0}, {3, 10}, {0, 10}}),
		geometry.RingFromPoints([]orb.Point{{7, 0}, {10, 0}, {10, 10}, {7, 10}}),
	}
	blockers := geometry.Region{walls[2]}

	detour, ok := pl.routeAroundObstacle(orb.Point{-2, 5}, orb.Point{5, 5}, blockers, walls)
	assert.False(t, ok)
	assert.Nil(t, detour)
}

func TestPathLength(t *testing.T) {
	length := pathLength([]orb.Point{{0, 0}, {3, 4}, {3, 8}})
	assert.InDelta(t, 9.0, length, 1e-9)
}
