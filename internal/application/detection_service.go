package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"crop-survey-system/internal/domain"
	"crop-survey-system/internal/ports"
)

// DetectionService приймає результати розпізнавання з дрона і зберігає їх
type DetectionService struct {
	detectionRepo ports.DetectionRepository
	fieldRepo     ports.FieldRepository
}

func NewDetectionService(detectionRepo ports.DetectionRepository, fieldRepo ports.FieldRepository) *DetectionService {
	return &DetectionService{
		detectionRepo: detectionRepo,
		fieldRepo:     fieldRepo,
	}
}

// Ingest зберігає одне виявлення, заповнюючи відсутні поля
func (s *DetectionService) Ingest(ctx context.Context, detection *domain.Detection) error {
	if err := s.validate(ctx, detection); err != nil {
		return err
	}

	if detection.ID == uuid.Nil {
		detection.ID = uuid.New()
	}
	if detection.DetectedAt.IsZero() {
		detection.DetectedAt = time.Now()
	}

	return s.detectionRepo.Save(ctx, detection)
}

// IngestBatch зберігає пакет виявлень однією транзакцією
func (s *DetectionService) IngestBatch(ctx context.Context, detections []*domain.Detection) error {
	if len(detections) == 0 {
		return nil
	}

	now := time.Now()
	for _, detection := range detections {
		if err := s.validate(ctx, detection); err != nil {
			return err
		}
		if detection.ID == uuid.Nil {
			detection.ID = uuid.New()
		}
		if detection.DetectedAt.IsZero() {
			detection.DetectedAt = now
		}
	}

	return s.detectionRepo.SaveBatch(ctx, detections)
}

func (s *DetectionService) ListByField(ctx context.Context, fieldID uuid.UUID) ([]*domain.Detection, error) {
	return s.detectionRepo.FindByFieldID(ctx, fieldID)
}

func (s *DetectionService) ListByKind(ctx context.Context, fieldID uuid.UUID, kind domain.DetectionKind) ([]*domain.Detection, error) {
	return s.detectionRepo.FindByKind(ctx, fieldID, kind)
}

func (s *DetectionService) validate(ctx context.Context, detection *domain.Detection) error {
	switch detection.Kind {
	case domain.DetectionKindWeed, domain.DetectionKindPest, domain.DetectionKindDisease:
	default:
		return fmt.Errorf("unknown detection kind: %s", detection.Kind)
	}

	if detection.Confidence < 0 || detection.Confidence > 1 {
		return fmt.Errorf("confidence must be in [0, 1], got %f", detection.Confidence)
	}

	if _, err := s.fieldRepo.FindByID(ctx, detection.FieldID); err != nil {
		return fmt.Errorf("field not found: %w", err)
	}

	return nil
}
