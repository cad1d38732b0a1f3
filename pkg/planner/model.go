package planner

import "github.com/paulmach/orb"

// Obstacle представляє перешкоду на полі з довільною межею.
type Obstacle struct {
	Kind     string   `json:"kind"`
	Boundary orb.Ring `json:"boundary"`
}

// FieldConfig представляє вхідну конфігурацію поля для планування.
// Координати задаються в метрах у локальній системі поля.
type FieldConfig struct {
	FieldID    string        `json:"field_id"`
	Name       string        `json:"name"`
	Boundary   orb.Ring      `json:"boundary"`
	Obstacles  []Obstacle    `json:"obstacles,omitempty"`
	NoFlyZones []orb.Ring    `json:"no_fly_zones,omitempty"`
	Reference  *GeoReference `json:"reference_point,omitempty"`
}

// GeoReference прив'язує локальну систему координат поля до супутникових
// знімків. Планувальник не інтерпретує це поле, лише передає далі.
type GeoReference struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Waypoint представляє точку маршруту в сантиметрах. Порядок точок у
// послідовності є порядком польоту й не підлягає пересортуванню.
type Waypoint struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// ValidationResult містить результати перевірки поля перед плануванням.
type ValidationResult struct {
	Valid                   bool     `json:"valid"`
	FieldAreaSqm            float64  `json:"field_area_sqm"`
	MaxCoveragePerFlightSqm float64  `json:"max_coverage_per_flight_sqm"`
	MaxDistanceFromCenterM  float64  `json:"max_distance_from_center_m"`
	Warnings                []string `json:"warnings"`
}

// Mission представляє згенерований план польоту. Створюється заново
// на кожен виклик планувальника й після повернення не змінюється.
type Mission struct {
	FieldID              string           `json:"field_id"`
	FieldName            string           `json:"field_name"`
	Pattern              string           `json:"pattern"`
	Waypoints            []Waypoint       `json:"waypoints"`
	AltitudeCm           int              `json:"altitude_cm"`
	OverlapFraction      float64          `json:"overlap_fraction"`
	TotalWaypoints       int              `json:"total_waypoints"`
	EstimatedDurationSec int              `json:"estimated_duration_sec"`
	EstimatedBatteryPct  int              `json:"estimated_battery_pct"`
	BatteriesNeeded      int              `json:"batteries_needed"`
	TotalDistanceM       float64          `json:"total_distance_m"`
	CoverageAreaSqm      float64          `json:"coverage_area_sqm"`
	Validation           ValidationResult `json:"validation"`
	Warnings             []string         `json:"warnings,omitempty"`
	IsFeasible           bool             `json:"is_feasible"`
}
