package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"crop-survey-system/pkg/planner"
)

// Enums для статусів
type MissionStatus string
type DetectionKind string

const (
	// Статуси місій
	MissionStatusPlanned   MissionStatus = "planned"
	MissionStatusActive    MissionStatus = "active"
	MissionStatusCompleted MissionStatus = "completed"
	MissionStatusAborted   MissionStatus = "aborted"

	// Типи виявлених об'єктів від зовнішнього сервісу аналізу
	DetectionKindWeed    DetectionKind = "weed"
	DetectionKindPest    DetectionKind = "pest"
	DetectionKindDisease DetectionKind = "disease"
)

// Field представляє ділянку поля з межею в локальних метрових
// координатах, перешкодами та безпольотними зонами.
type Field struct {
	ID         uuid.UUID             `json:"id"`
	Name       string                `json:"name"`
	Boundary   orb.Ring              `json:"boundary"`
	Obstacles  []planner.Obstacle    `json:"obstacles,omitempty"`
	NoFlyZones []orb.Ring            `json:"no_fly_zones,omitempty"`
	Reference  *planner.GeoReference `json:"reference_point,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// PlannerConfig будує вхідну конфігурацію планувальника з поля.
func (f *Field) PlannerConfig() planner.FieldConfig {
	return planner.FieldConfig{
		FieldID:    f.ID.String(),
		Name:       f.Name,
		Boundary:   f.Boundary,
		Obstacles:  f.Obstacles,
		NoFlyZones: f.NoFlyZones,
		Reference:  f.Reference,
	}
}

// Mission представляє збережений план польоту над полем.
type Mission struct {
	ID        uuid.UUID     `json:"id"`
	FieldID   uuid.UUID     `json:"-"`
	Status    MissionStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`

	planner.Mission
}

// Detection представляє об'єкт, виявлений зовнішнім сервісом аналізу
// зображень: бур'ян, шкідник чи уражена ділянка рослин.
type Detection struct {
	ID         uuid.UUID     `json:"id"`
	FieldID    uuid.UUID     `json:"field_id"`
	Kind       DetectionKind `json:"kind"`
	Confidence float64       `json:"confidence"`
	X          float64       `json:"x"`
	Y          float64       `json:"y"`
	BoundingW  float64       `json:"bounding_w"`
	BoundingH  float64       `json:"bounding_h"`
	FrameKey   string        `json:"frame_key,omitempty"`
	DetectedAt time.Time     `json:"detected_at"`
}
