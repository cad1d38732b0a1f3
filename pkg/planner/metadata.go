package planner

import "math"

// missionMetadata містить розрахункові показники місії.
type missionMetadata struct {
	DurationSec     int
	BatteryPct      int
	BatteriesNeeded int
	DistanceM       float64
}

// calculateMetadata обчислює тривалість, дистанцію та витрату батареї
// для фінальної послідовності точок.
func (pl *Planner) calculateMetadata(waypoints []Waypoint) missionMetadata {
	if len(waypoints) < 2 {
		meta := missionMetadata{}
		if len(waypoints) > 0 {
			// Непорожня місія завжди потребує хоча б однієї батареї.
			meta.BatteriesNeeded = 1
		}
		return meta
	}

	totalDistanceCm := 0.0
	for i := 0; i+1 < len(waypoints); i++ {
		a, b := waypoints[i], waypoints[i+1]
		dx := float64(b.X - a.X)
		dy := float64(b.Y - a.Y)
		dz := float64(b.Z - a.Z)
		totalDistanceCm += math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	totalDistanceM := totalDistanceCm / 100

	flightTime := totalDistanceM / pl.profile.CruiseSpeedMS
	hoverTime := float64(len(waypoints)) * pl.profile.HoverPerWaypointSec
	totalTime := flightTime + hoverTime + pl.profile.TakeoffLandingSec

	batteryPct := int(totalTime / pl.profile.UsableFlightTimeSec() * 100)
	batteriesNeeded := int(math.Ceil(float64(batteryPct) / 100))
	if batteriesNeeded < 1 {
		batteriesNeeded = 1
	}

	return missionMetadata{
		DurationSec:     int(totalTime),
		BatteryPct:      batteryPct,
		BatteriesNeeded: batteriesNeeded,
		DistanceM:       math.Round(totalDistanceM*100) / 100,
	}
}
