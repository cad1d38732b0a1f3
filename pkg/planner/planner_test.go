package planner

import (
	"errors"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crop-survey-system/pkg/geometry"
)

func fieldConfig(name string, boundary orb.Ring) FieldConfig {
	return FieldConfig{
		FieldID:  "f-1",
		Name:     name,
		Boundary: boundary,
	}
}

func TestPlanGridMissionSimpleField(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())
	config := fieldConfig("Back Field", orb.Ring{{0, 0}, {20, 0}, {20, 15}, {0, 15}})

	mission, err := pl.PlanGridMission(config, 2.0, 0.3, false)
	require.NoError(t, err)

	assert.Equal(t, "grid", mission.Pattern)
	assert.Equal(t, "f-1", mission.FieldID)
	assert.Equal(t, "Back Field", mission.FieldName)
	assert.Equal(t, 200, mission.AltitudeCm)
	assert.InDelta(t, 0.3, mission.OverlapFraction, 1e-9)

	// 7 треків по 2 точки, всі в межах поля.
	require.Len(t, mission.Waypoints, 14)
	assert.Equal(t, len(mission.Waypoints), mission.TotalWaypoints)
	for _, wp := range mission.Waypoints {
		assert.GreaterOrEqual(t, wp.X, 0)
		assert.LessOrEqual(t, wp.X, 2000)
		assert.GreaterOrEqual(t, wp.Y, 0)
		assert.LessOrEqual(t, wp.Y, 1500)
		assert.Equal(t, 200, wp.Z)
	}

	assert.True(t, mission.IsFeasible)
	assert.Equal(t, 1, mission.BatteriesNeeded)
	assert.InDelta(t, 300.0, mission.CoverageAreaSqm, 1e-6)
	assert.Empty(t, mission.Warnings)
	assert.Greater(t, mission.EstimatedDurationSec, 0)
}

func TestPlanGridMissionRoutesAroundObstacle(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())
	config := fieldConfig("Orchard", orb.Ring{{0, 0}, {20, 0}, {20, 15}, {0, 15}})
	config.Obstacles = []Obstacle{{
		Kind:     "tree",
		Boundary: orb.Ring{{5, 5}, {7, 5}, {7, 7}, {5, 7}},
	}}

	mission, err := pl.PlanGridMission(config, 2.0, 0.3, false)
	require.NoError(t, err)

	// Безпечна зона: поле мінус буферизоване дерево 6x6.
	assert.InDelta(t, 264.0, mission.CoverageAreaSqm, 1e-6)

	// Жодна точка маршруту не потрапляє всередину самого дерева.
	for _, wp := range mission.Waypoints {
		inside := wp.X > 500 && wp.X < 700 && wp.Y > 500 && wp.Y < 700
		assert.False(t, inside, "waypoint %+v inside obstacle", wp)
	}

	// Розірвані треки з'єднуються обходами поза буфером перешкоди.
	assert.Contains(t, mission.Waypoints, Waypoint{X: 250, Y: 250, Z: 200})
	assert.Contains(t, mission.Waypoints, Waypoint{X: 950, Y: 250, Z: 200})
	assert.Empty(t, mission.Warnings)

	// Без попереджень жоден відрізок фінального маршруту не заходить
	// у буферизовану перешкоду.
	buffered := geometry.Region{geometry.RingFromPoints([]orb.Point{
		{3, 3}, {9, 3}, {9, 9}, {3, 9},
	})}
	for i := 0; i+1 < len(mission.Waypoints); i++ {
		a := orb.Point{float64(mission.Waypoints[i].X) / 100, float64(mission.Waypoints[i].Y) / 100}
		b := orb.Point{float64(mission.Waypoints[i+1].X) / 100, float64(mission.Waypoints[i+1].Y) / 100}
		assert.False(t, buffered.SegmentIntersects(a, b),
			"segment %d enters buffered obstacle: %v -> %v", i, a, b)
	}
}

func TestPlanGridMissionWarnsWhenNoSafeRoute(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())
	config := fieldConfig("Walled Garden", orb.Ring{{0, 0}, {30, 0}, {30, 30}, {0, 30}})

	// Чотири стіни замикають внутрішній двір: після буферизації прохід
	// до нього відсутній, тож безпечного обходу між двором і рештою
	// поля не існує.
	config.Obstacles = []Obstacle{
		{Kind: "wall", Boundary: orb.Ring{{8, 8}, {22, 8}, {22, 12}, {8, 12}}},
		{Kind: "wall", Boundary: orb.Ring{{8, 18}, {22, 18}, {22, 22}, {8, 22}}},
		{Kind: "wall", Boundary: orb.Ring{{8, 8}, {12, 8}, {12, 22}, {8, 22}}},
		{Kind: "wall", Boundary: orb.Ring{{18, 8}, {22, 8}, {22, 22}, {18, 22}}},
	}

	mission, err := pl.PlanGridMission(config, 2.0, 0.3, false)
	require.NoError(t, err)

	found := false
	for _, w := range mission.Warnings {
		if strings.Contains(w, "no safe route around obstacle") {
			found = true
		}
	}
	require.True(t, found, "expected routing warning, got %v", mission.Warnings)

	// Прямий відрізок у двір зберігається без вставлених обхідних точок.
	adjacent := false
	for i := 0; i+1 < len(mission.Waypoints); i++ {
		a, b := mission.Waypoints[i], mission.Waypoints[i+1]
		if a.X == 600 && b.X == 1400 && a.Y == b.Y {
			adjacent = true
		}
	}
	assert.True(t, adjacent, "expected straight segment into the courtyard to be retained")
}

func TestPlanGridMissionDeterministic(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())
	config := fieldConfig("Orchard", orb.Ring{{0, 0}, {20, 0}, {20, 15}, {0, 15}})
	config.Obstacles = []Obstacle{{
		Kind:     "tree",
		Boundary: orb.Ring{{5, 5}, {7, 5}, {7, 7}, {5, 7}},
	}}

	first, err := pl.PlanGridMission(config, 2.0, 0.3, true)
	require.NoError(t, err)
	second, err := pl.PlanGridMission(config, 2.0, 0.3, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPlanGridMissionFullyObstructed(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())
	config := fieldConfig("Blocked", orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	config.NoFlyZones = []orb.Ring{{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}

	_, err := pl.PlanGridMission(config, 2.0, 0.3, false)
	require.ErrorIs(t, err, ErrFieldObstructed)
}

func TestPlanGridMissionLargeFieldInfeasible(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())
	config := fieldConfig("Big", orb.Ring{{0, 0}, {500, 0}, {500, 500}, {0, 500}})

	mission, err := pl.PlanGridMission(config, 2.0, 0.3, false)
	require.NoError(t, err)

	assert.False(t, mission.IsFeasible)
	assert.Greater(t, mission.EstimatedBatteryPct, 100)
	assert.Greater(t, mission.BatteriesNeeded, 1)

	found := false
	for _, w := range mission.Warnings {
		if strings.Contains(w, "mission requires") {
			found = true
		}
	}
	assert.True(t, found, "expected battery warning, got %v", mission.Warnings)
}

func TestPlanGridMissionOptimizeCapsWaypoints(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())
	config := fieldConfig("Big", orb.Ring{{0, 0}, {500, 0}, {500, 500}, {0, 500}})

	mission, err := pl.PlanGridMission(config, 2.0, 0.3, true)
	require.NoError(t, err)

	assert.LessOrEqual(t, mission.TotalWaypoints, pl.maxWaypoints())
}

func TestPlanGridMissionConfigErrors(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())
	valid := fieldConfig("Field", orb.Ring{{0, 0}, {20, 0}, {20, 15}, {0, 15}})

	cases := []struct {
		name    string
		config  FieldConfig
		alt     float64
		overlap float64
		field   string
	}{
		{"zero altitude", valid, 0, 0.3, "altitude_m"},
		{"negative altitude", valid, -1, 0.3, "altitude_m"},
		{"overlap too high", valid, 2.0, 1.0, "overlap_fraction"},
		{"negative overlap", valid, 2.0, -0.1, "overlap_fraction"},
		{"empty boundary", fieldConfig("Field", nil), 2.0, 0.3, "boundary"},
		{"degenerate boundary", fieldConfig("Field", orb.Ring{{0, 0}, {1, 1}}), 2.0, 0.3, "boundary"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pl.PlanGridMission(tc.config, tc.alt, tc.overlap, false)
			var configErr *ConfigError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tc.field, configErr.Field)
		})
	}
}

func TestPlanGridMissionRejectsDegenerateObstacle(t *testing.T) {
	pl := NewPlanner(DefaultTelloProfile())
	config := fieldConfig("Field", orb.Ring{{0, 0}, {20, 0}, {20, 15}, {0, 15}})
	config.Obstacles = []Obstacle{{Kind: "tree", Boundary: orb.Ring{{5, 5}, {6, 6}}}}

	_, err := pl.PlanGridMission(config, 2.0, 0.3, false)
	var configErr *ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "obstacles[0].boundary", configErr.Field)
}
