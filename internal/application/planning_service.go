package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"crop-survey-system/internal/domain"
	"crop-survey-system/internal/ports"
	"crop-survey-system/pkg/planner"
)

// PlanRequest описує параметри запиту на побудову плану польоту
type PlanRequest struct {
	AltitudeM          float64 `json:"altitude_m"`
	OverlapFraction    float64 `json:"overlap_fraction"`
	OptimizeForBattery bool    `json:"optimize_for_battery"`
	Adaptive           bool    `json:"adaptive"`
}

// PlanningService будує плани польоту для полів і зберігає готові місії
type PlanningService struct {
	fieldRepo   ports.FieldRepository
	missionRepo ports.MissionRepository
	storage     ports.ArtifactStorage
	planner     *planner.Planner
}

func NewPlanningService(fieldRepo ports.FieldRepository, missionRepo ports.MissionRepository, storage ports.ArtifactStorage, pl *planner.Planner) *PlanningService {
	return &PlanningService{
		fieldRepo:   fieldRepo,
		missionRepo: missionRepo,
		storage:     storage,
		planner:     pl,
	}
}

// PlanMissions будує план для поля. У звичайному режимі повертає одну місію,
// в адаптивному режимі поле може бути розбите на кілька секцій
func (s *PlanningService) PlanMissions(ctx context.Context, fieldID uuid.UUID, req PlanRequest) ([]*domain.Mission, error) {
	field, err := s.fieldRepo.FindByID(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("field not found: %w", err)
	}

	config := field.PlannerConfig()

	var plans []*planner.Mission
	if req.Adaptive {
		plans, err = s.planner.PlanAdaptiveMission(config, req.AltitudeM, req.OverlapFraction)
	} else {
		var plan *planner.Mission
		plan, err = s.planner.PlanGridMission(config, req.AltitudeM, req.OverlapFraction, req.OptimizeForBattery)
		if plan != nil {
			plans = []*planner.Mission{plan}
		}
	}
	if err != nil {
		return nil, err
	}

	missions := make([]*domain.Mission, 0, len(plans))
	for _, plan := range plans {
		mission := &domain.Mission{
			ID:        uuid.New(),
			FieldID:   field.ID,
			Status:    domain.MissionStatusPlanned,
			CreatedAt: time.Now(),
			Mission:   *plan,
		}

		if err := s.missionRepo.Save(ctx, mission); err != nil {
			return nil, fmt.Errorf("failed to save mission: %w", err)
		}

		// Артефакт плану зберігається окремо, щоб дрон міг завантажити його напряму
		artifact, err := json.Marshal(plan)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal flight plan: %w", err)
		}
		if _, err := s.storage.SavePlanArtifact(ctx, mission.ID, artifact); err != nil {
			log.Printf("Failed to save plan artifact for mission %s: %v", mission.ID, err)
		}

		missions = append(missions, mission)
	}

	return missions, nil
}

func (s *PlanningService) GetMission(ctx context.Context, id uuid.UUID) (*domain.Mission, error) {
	return s.missionRepo.FindByID(ctx, id)
}

func (s *PlanningService) ListMissionsByField(ctx context.Context, fieldID uuid.UUID) ([]*domain.Mission, error) {
	return s.missionRepo.FindByFieldID(ctx, fieldID)
}

func (s *PlanningService) UpdateMissionStatus(ctx context.Context, id uuid.UUID, status domain.MissionStatus) error {
	switch status {
	case domain.MissionStatusPlanned, domain.MissionStatusActive, domain.MissionStatusCompleted, domain.MissionStatusAborted:
	default:
		return fmt.Errorf("unknown mission status: %s", status)
	}

	return s.missionRepo.UpdateStatus(ctx, id, status)
}

// GetPlanArtifact повертає збережений JSON-план польоту місії
func (s *PlanningService) GetPlanArtifact(ctx context.Context, missionID uuid.UUID) (io.ReadCloser, error) {
	if _, err := s.missionRepo.FindByID(ctx, missionID); err != nil {
		return nil, fmt.Errorf("mission not found: %w", err)
	}

	return s.storage.GetPlanArtifact(ctx, missionID)
}
