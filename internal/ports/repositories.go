package ports

import (
	"context"

	"github.com/google/uuid"

	"crop-survey-system/internal/domain"
)

// FieldRepository визначає методи для роботи з полями
type FieldRepository interface {
	Save(ctx context.Context, field *domain.Field) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Field, error)
	FindAll(ctx context.Context) ([]*domain.Field, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MissionRepository визначає методи для роботи з місіями
type MissionRepository interface {
	Save(ctx context.Context, mission *domain.Mission) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error)
	FindByFieldID(ctx context.Context, fieldID uuid.UUID) ([]*domain.Mission, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MissionStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DetectionRepository визначає методи для роботи з виявленими об'єктами
type DetectionRepository interface {
	Save(ctx context.Context, detection *domain.Detection) error
	SaveBatch(ctx context.Context, detections []*domain.Detection) error
	FindByFieldID(ctx context.Context, fieldID uuid.UUID) ([]*domain.Detection, error)
	FindByKind(ctx context.Context, fieldID uuid.UUID, kind domain.DetectionKind) ([]*domain.Detection, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
