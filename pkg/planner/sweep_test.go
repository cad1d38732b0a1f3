package planner

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crop-survey-system/pkg/geometry"
)

func TestGenerateSweepSerpentine(t *testing.T) {
	zone := geometry.Region{geometry.RingFromPoints([]orb.Point{
		{0, 0}, {10, 0}, {10, 10}, {0, 10},
	})}

	points := generateSweep(zone, 3.0)
	require.Len(t, points, 8)

	expected := []orb.Point{
		{0, 0}, {10, 0}, // зліва направо
		{10, 3}, {0, 3}, // справа наліво
		{0, 6}, {10, 6},
		{10, 9}, {0, 9},
	}
	for i, want := range expected {
		assert.InDelta(t, want[0], points[i][0], 1e-9, "point %d x", i)
		assert.InDelta(t, want[1], points[i][1], 1e-9, "point %d y", i)
	}
}

func TestGenerateSweepIncludesBoundaryTrack(t *testing.T) {
	zone := geometry.Region{geometry.RingFromPoints([]orb.Point{
		{0, 0}, {10, 0}, {10, 10}, {0, 10},
	})}

	// Висота зони кратна кроку: останній трек лягає точно на верхню межу
	// і теж дає точки.
	points := generateSweep(zone, 5.0)
	require.Len(t, points, 6)

	expected := []orb.Point{
		{0, 0}, {10, 0},
		{10, 5}, {0, 5},
		{0, 10}, {10, 10},
	}
	for i, want := range expected {
		assert.InDelta(t, want[0], points[i][0], 1e-9, "point %d x", i)
		assert.InDelta(t, want[1], points[i][1], 1e-9, "point %d y", i)
	}
}

func TestGenerateSweepSplitsAroundHole(t *testing.T) {
	zone := geometry.Difference(
		geometry.RingFromPoints([]orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}),
		geometry.Region{geometry.RingFromPoints([]orb.Point{{4, 2}, {6, 2}, {6, 8}, {4, 8}})},
	)

	points := generateSweep(zone, 5.0)

	// Середній трек (y=5) перетинає дірку й розпадається на два відрізки.
	var midTrack []orb.Point
	for _, p := range points {
		if p[1] == 5.0 {
			midTrack = append(midTrack, p)
		}
	}
	require.Len(t, midTrack, 4)

	for _, p := range midTrack {
		assert.True(t, p[0] <= 4.0 || p[0] >= 6.0, "point %v inside hole", p)
	}
}
