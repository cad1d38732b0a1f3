package planner

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"crop-survey-system/pkg/geometry"
)

// ValidateField перевіряє, чи придатне поле для зйомки апаратом:
// радіус зв'язку та площа покриття за один цикл батареї. Результат
// дорадчий: попередження не забороняють спробу планування.
func (pl *Planner) ValidateField(boundary orb.Ring, altitudeM, overlapFraction float64) ValidationResult {
	ring := geometry.RingFromPoints(boundary)

	area := geometry.Area(ring)
	centroid := geometry.Centroid(ring)

	maxDistance := 0.0
	for i := 0; i+1 < len(ring); i++ {
		d := geometry.Distance(ring[i], centroid)
		maxDistance = math.Max(maxDistance, d)
	}

	var warnings []string

	if maxDistance > pl.profile.MaxRangeM {
		warnings = append(warnings, fmt.Sprintf(
			"field extends %.1fm from center (link range limit: %.0fm)",
			maxDistance, pl.profile.MaxRangeM))
	}

	maxCoverage := pl.profile.MaxCoveragePerCycle(altitudeM, overlapFraction)
	if area > maxCoverage {
		cycles := int(math.Ceil(area / maxCoverage))
		warnings = append(warnings, fmt.Sprintf(
			"field requires ~%d battery cycles (area: %.0fm², max per flight: %.0fm²)",
			cycles, area, maxCoverage))
	}

	return ValidationResult{
		Valid:                   len(warnings) == 0,
		FieldAreaSqm:            area,
		MaxCoveragePerFlightSqm: maxCoverage,
		MaxDistanceFromCenterM:  maxDistance,
		Warnings:                warnings,
	}
}
