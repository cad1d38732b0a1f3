package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateWaypoints(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())

	waypoints := []Waypoint{
		{X: 0, Y: 0, Z: 200},
		{X: 10, Y: 0, Z: 200}, // 10 см від попередньої, відкидається
		{X: 50, Y: 0, Z: 200},
		{X: 50, Y: 20, Z: 200}, // 20 см, відкидається
		{X: 50, Y: 100, Z: 200},
	}

	filtered := pl.deduplicateWaypoints(waypoints)
	require.Len(t, filtered, 3)
	assert.Equal(t, Waypoint{X: 0, Y: 0, Z: 200}, filtered[0])
	assert.Equal(t, Waypoint{X: 50, Y: 0, Z: 200}, filtered[1])
	assert.Equal(t, Waypoint{X: 50, Y: 100, Z: 200}, filtered[2])

	assert.Nil(t, pl.deduplicateWaypoints(nil))
}

func TestMaxWaypoints(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())
	assert.Equal(t, 643, pl.maxWaypoints())
}

func TestSubsampleWaypoints(t *testing.T) {
	waypoints := make([]Waypoint, 10)
	for i := range waypoints {
		waypoints[i] = Waypoint{X: i * 100, Y: 0, Z: 200}
	}

	result := subsampleWaypoints(waypoints, 5)
	require.Len(t, result, 5)

	// Перша й остання точки зберігаються завжди.
	assert.Equal(t, waypoints[0], result[0])
	assert.Equal(t, waypoints[9], result[4])

	// Короткий список не змінюється.
	short := subsampleWaypoints(waypoints, 20)
	assert.Len(t, short, 10)
}

func TestSubsampleWaypointsPreservesOrder(t *testing.T) {
	waypoints := make([]Waypoint, 100)
	for i := range waypoints {
		waypoints[i] = Waypoint{X: i, Y: 0, Z: 200}
	}

	result := subsampleWaypoints(waypoints, 17)
	require.Len(t, result, 17)
	for i := 1; i < len(result); i++ {
		assert.Greater(t, result[i].X, result[i-1].X)
	}
}
