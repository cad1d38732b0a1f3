package planner

import "math"

// CameraFootprint обчислює покриття камери на землі (ширину й висоту в
// метрах) для заданої висоти польоту. Передумова: altitude > 0; для
// нульової чи від'ємної висоти результат не визначений, відсікання
// таких значень відбувається вище за стеком.
func (p VehicleProfile) CameraFootprint(altitudeM float64) (widthM, heightM float64) {
	fovH := p.CameraFOVHorizontalDeg * math.Pi / 180
	fovV := p.CameraFOVVerticalDeg * math.Pi / 180

	widthM = 2 * altitudeM * math.Tan(fovH/2)
	heightM = 2 * altitudeM * math.Tan(fovV/2)
	return widthM, heightM
}

// MaxCoveragePerCycle оцінює площу, яку апарат здатен покрити за один
// цикл батареї. Це груба попередня оцінка для вибору режиму
// одиночного чи багаторазового польоту, а не фактична дистанція місії.
func (p VehicleProfile) MaxCoveragePerCycle(altitudeM, overlapFraction float64) float64 {
	footprintW, _ := p.CameraFootprint(altitudeM)
	effectiveWidth := footprintW * (1 - overlapFraction)

	usableTime := p.UsableFlightTimeSec() - p.TakeoffLandingSec
	flightTime := usableTime - float64(p.EstimatedHoverStops)*p.HoverPerWaypointSec

	totalDistance := flightTime * p.MaxSpeedMS
	return totalDistance * effectiveWidth
}
