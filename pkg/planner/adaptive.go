package planner

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"crop-survey-system/pkg/geometry"
)

// PlanAdaptiveMission планує поле, площа якого може перевищувати
// покриття одного циклу батареї. Мале поле дає одну місію; велике
// розбивається на вертикальні смуги рівної ширини, і повний конвеєр
// планування запускається незалежно для кожної смуги. Між смугами не
// гарантується жодна неперервність маршруту: кожна місія розрахована
// на окремий цикл батареї із заміною між польотами.
func (pl *Planner) PlanAdaptiveMission(config FieldConfig, altitudeM, overlapFraction float64) ([]*Mission, error) {
	if err := pl.validateConfig(config, altitudeM, overlapFraction); err != nil {
		return nil, err
	}

	field := geometry.RingFromPoints(config.Boundary)
	fieldArea := geometry.Area(field)
	maxCoverage := pl.profile.MaxCoveragePerCycle(altitudeM, overlapFraction)

	if fieldArea <= maxCoverage {
		mission, err := pl.PlanGridMission(config, altitudeM, overlapFraction, true)
		if err != nil {
			return nil, err
		}
		return []*Mission{mission}, nil
	}

	numSections := int(math.Ceil(fieldArea / maxCoverage))

	bound := field.Bound()
	minX, maxX := bound.Min[0], bound.Max[0]
	minY, maxY := bound.Min[1], bound.Max[1]
	stripWidth := (maxX - minX) / float64(numSections)

	var missions []*Mission
	section := 0

	for i := 0; i < numSections; i++ {
		stripMinX := minX + float64(i)*stripWidth
		stripMaxX := minX + float64(i+1)*stripWidth

		strip := geometry.RingFromPoints(orb.Ring{
			{stripMinX, minY},
			{stripMaxX, minY},
			{stripMaxX, maxY},
			{stripMinX, maxY},
		})

		// Перетин смуги з полем може дати кілька окремих ділянок.
		for _, part := range geometry.Intersection(field, strip) {
			if geometry.Area(part) < pl.profile.StripMinAreaSqm {
				continue
			}
			section++

			stripConfig := config
			stripConfig.Boundary = part
			stripConfig.Name = fmt.Sprintf("%s - Section %d", config.Name, section)

			mission, err := pl.PlanGridMission(stripConfig, altitudeM, overlapFraction, true)
			if err != nil {
				// Повністю заблокована смуга пропускається, інші
				// структурні помилки перериваються одразу.
				if err == ErrFieldObstructed {
					continue
				}
				return nil, err
			}
			missions = append(missions, mission)
		}
	}

	return missions, nil
}
