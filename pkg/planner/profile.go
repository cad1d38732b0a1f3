package planner

// VehicleProfile описує фізичні характеристики та обмеження апарата.
// Усі калібрувальні константи алгоритму зібрані тут, щоб їх можна було
// переналаштувати без змін у коді планувальника. Значення незмінні
// після створення.
type VehicleProfile struct {
	// Характеристики камери (градуси).
	CameraFOVHorizontalDeg float64
	CameraFOVVerticalDeg   float64

	// Межі польоту.
	MinAltitudeM float64
	MaxAltitudeM float64
	MaxSpeedMS   float64
	MaxRangeM    float64

	// Батарея.
	BatteryLifeMin     float64
	BatteryReserveFrac float64

	// Обмеження одиночного переміщення (сантиметри).
	MaxMoveCm int
	MinMoveCm int

	// Очікуваний накопичений дрейф позиціонування (сантиметри).
	PositionDriftCm int

	// Калібрувальні константи розрахунку місії.
	CruiseSpeedMS        float64 // середня швидкість для оцінки тривалості
	HoverPerWaypointSec  float64 // час зависання на кожній точці
	TakeoffLandingSec    float64 // фіксовані накладні витрати зльоту й посадки
	WaypointCostSec      float64 // вартість точки при розрахунку місткості
	WaypointOverheadSec  float64 // запас часу при розрахунку місткості
	WaypointSafetyFactor float64 // коефіцієнт запасу для ліміту точок
	EstimatedHoverStops  int     // орієнтовна кількість зупинок для оцінки покриття

	// Геометричні запаси (метри).
	ObstacleClearanceM   float64 // буфер навколо перешкод
	RoutingCornerBufferM float64 // додатковий відступ кутів обходу

	// Пост-обробка.
	DedupThresholdCm float64 // мінімальна відстань між сусідніми точками
	StripMinAreaSqm  float64 // поріг відкидання смуг при розбитті поля
}

// DefaultTelloProfile повертає профіль для DJI Tello з консервативними
// обмеженнями для польотів над посівами.
func DefaultTelloProfile() VehicleProfile {
	return VehicleProfile{
		CameraFOVHorizontalDeg: 82.6,
		CameraFOVVerticalDeg:   51.0,
		MinAltitudeM:           0.5,
		MaxAltitudeM:           3.0,
		MaxSpeedMS:             2.0,
		MaxRangeM:              80,
		BatteryLifeMin:         30,
		BatteryReserveFrac:     0.20,
		MaxMoveCm:              500,
		MinMoveCm:              20,
		PositionDriftCm:        50,
		CruiseSpeedMS:          2.0,
		HoverPerWaypointSec:    1.0,
		TakeoffLandingSec:      6.0,
		WaypointCostSec:        2.0,
		WaypointOverheadSec:    10.0,
		WaypointSafetyFactor:   0.9,
		EstimatedHoverStops:    40,
		ObstacleClearanceM:     2.0,
		RoutingCornerBufferM:   0.5,
		DedupThresholdCm:       30,
		StripMinAreaSqm:        1.0,
	}
}

// UsableFlightTimeSec повертає корисний час польоту на одній батареї
// з урахуванням резерву на посадку.
func (p VehicleProfile) UsableFlightTimeSec() float64 {
	return p.BatteryLifeMin * 60 * (1 - p.BatteryReserveFrac)
}
