// Package planner реалізує генерацію маршрутів покриття поля для
// агрозйомки: газонокосарний прохід із кроком за відбитком камери,
// обхід перешкод, проріджування точок під бюджет батареї та розрахунок
// здійсненності місії. Кожен виклик є чистою детермінованою функцією
// від своїх вхідних даних без спільного змінюваного стану.
package planner

import (
	"fmt"

	"github.com/paulmach/orb"

	"crop-survey-system/pkg/geometry"
)

// Planner генерує плани польоту для заданого профілю апарата.
type Planner struct {
	profile VehicleProfile
}

// NewPlanner створює новий екземпляр Planner.
func NewPlanner(profile VehicleProfile) *Planner {
	return &Planner{profile: profile}
}

// Profile повертає профіль апарата, з яким працює планувальник.
func (pl *Planner) Profile() VehicleProfile {
	return pl.profile
}

// PlanGridMission генерує газонокосарний план покриття поля.
// Структурні помилки конфігурації та повністю заблоковане поле
// повертаються як помилки; геометрична чи батарейна нездійсненність
// повідомляється всередині місії через прапорці й попередження.
func (pl *Planner) PlanGridMission(config FieldConfig, altitudeM, overlapFraction float64, optimizeForBattery bool) (*Mission, error) {
	if err := pl.validateConfig(config, altitudeM, overlapFraction); err != nil {
		return nil, err
	}

	field := geometry.RingFromPoints(config.Boundary)
	validation := pl.ValidateField(field, altitudeM, overlapFraction)

	obstacleRings := collectObstacleRings(config)

	safeZone, err := pl.buildSafeZone(field, obstacleRings)
	if err != nil {
		return nil, err
	}

	footprintW, _ := pl.profile.CameraFootprint(altitudeM)
	spacing := footprintW * (1 - overlapFraction)

	raw := generateSweep(safeZone, spacing)
	buffered := pl.bufferedObstacles(obstacleRings)

	waypoints, warnings := pl.assembleRoute(raw, buffered, altitudeM)
	waypoints = pl.deduplicateWaypoints(waypoints)

	if optimizeForBattery {
		if max := pl.maxWaypoints(); len(waypoints) > max {
			waypoints = subsampleWaypoints(waypoints, max)
		}
	}

	meta := pl.calculateMetadata(waypoints)

	switch {
	case meta.BatteryPct > 100:
		warnings = append(warnings, fmt.Sprintf(
			"mission requires %d%% battery (%d batteries)", meta.BatteryPct, meta.BatteriesNeeded))
	case meta.BatteryPct > 80:
		warnings = append(warnings, fmt.Sprintf(
			"estimated battery usage is %d%%", meta.BatteryPct))
	}

	return &Mission{
		FieldID:              config.FieldID,
		FieldName:            config.Name,
		Pattern:              "grid",
		Waypoints:            waypoints,
		AltitudeCm:           int(altitudeM * 100),
		OverlapFraction:      overlapFraction,
		TotalWaypoints:       len(waypoints),
		EstimatedDurationSec: meta.DurationSec,
		EstimatedBatteryPct:  meta.BatteryPct,
		BatteriesNeeded:      meta.BatteriesNeeded,
		TotalDistanceM:       meta.DistanceM,
		CoverageAreaSqm:      safeZone.Area(),
		Validation:           validation,
		Warnings:             warnings,
		IsFeasible:           meta.BatteryPct <= 100,
	}, nil
}

// assembleRoute перетворює сирі точки проходу на фінальну послідовність
// у сантиметрах, вставляючи обхідні точки там, де прямий відрізок до
// наступної точки перетинає буферизовану перешкоду. Обхід будується
// лише навколо перешкод, що фактично блокують відрізок.
func (pl *Planner) assembleRoute(raw []orb.Point, buffered []orb.Ring, altitudeM float64) ([]Waypoint, []string) {
	altCm := int(altitudeM * 100)
	var warnings []string

	waypoints := make([]Waypoint, 0, len(raw))
	for i, p := range raw {
		waypoints = append(waypoints, Waypoint{X: int(p[0] * 100), Y: int(p[1] * 100), Z: altCm})

		if i+1 >= len(raw) || len(buffered) == 0 {
			continue
		}
		next := raw[i+1]

		var blocking []orb.Ring
		for _, ring := range buffered {
			if (geometry.Region{ring}).SegmentIntersects(p, next) {
				blocking = append(blocking, ring)
			}
		}
		if len(blocking) == 0 {
			continue
		}

		detour, ok := pl.routeAroundObstacle(p, next, geometry.Union(blocking), geometry.Region(buffered))
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"segment %d: no safe route around obstacle, straight segment retained", i))
			continue
		}
		for _, d := range detour {
			waypoints = append(waypoints, Waypoint{X: int(d[0] * 100), Y: int(d[1] * 100), Z: altCm})
		}
	}
	return waypoints, warnings
}

// validateConfig перевіряє структурну коректність вхідних даних до
// будь-яких геометричних обчислень.
func (pl *Planner) validateConfig(config FieldConfig, altitudeM, overlapFraction float64) error {
	if altitudeM <= 0 {
		return &ConfigError{Field: "altitude_m", Reason: "must be positive"}
	}
	if overlapFraction < 0 || overlapFraction >= 1 {
		return &ConfigError{Field: "overlap_fraction", Reason: "must be in [0, 1)"}
	}
	if len(config.Boundary) == 0 {
		return &ConfigError{Field: "boundary", Reason: "no field boundary defined"}
	}
	ring := geometry.RingFromPoints(config.Boundary)
	if len(ring) < 4 {
		return &ConfigError{Field: "boundary", Reason: "polygon needs at least 3 vertices"}
	}
	if geometry.Area(ring) <= 0 {
		return &ConfigError{Field: "boundary", Reason: "polygon has zero area"}
	}
	for i, obs := range config.Obstacles {
		if len(geometry.RingFromPoints(obs.Boundary)) < 4 {
			return &ConfigError{
				Field:  fmt.Sprintf("obstacles[%d].boundary", i),
				Reason: "polygon needs at least 3 vertices",
			}
		}
	}
	for i, nfz := range config.NoFlyZones {
		if len(geometry.RingFromPoints(nfz)) < 4 {
			return &ConfigError{
				Field:  fmt.Sprintf("no_fly_zones[%d]", i),
				Reason: "polygon needs at least 3 vertices",
			}
		}
	}
	return nil
}

// collectObstacleRings зводить перешкоди та безпольотні зони до
// єдиного списку замкнених кілець.
func collectObstacleRings(config FieldConfig) []orb.Ring {
	rings := make([]orb.Ring, 0, len(config.Obstacles)+len(config.NoFlyZones))
	for _, obs := range config.Obstacles {
		rings = append(rings, geometry.RingFromPoints(obs.Boundary))
	}
	for _, nfz := range config.NoFlyZones {
		rings = append(rings, geometry.RingFromPoints(nfz))
	}
	return rings
}
