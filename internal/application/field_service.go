package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"crop-survey-system/internal/domain"
	"crop-survey-system/internal/ports"
	"crop-survey-system/pkg/geometry"
	"crop-survey-system/pkg/planner"
)

// FieldService обробляє операції над полями та їх медіафайлами
type FieldService struct {
	fieldRepo ports.FieldRepository
	storage   ports.ArtifactStorage
}

func NewFieldService(fieldRepo ports.FieldRepository, storage ports.ArtifactStorage) *FieldService {
	return &FieldService{
		fieldRepo: fieldRepo,
		storage:   storage,
	}
}

// CreateField перевіряє конфігурацію поля і зберігає його
func (s *FieldService) CreateField(ctx context.Context, field *domain.Field) error {
	if field.Name == "" {
		return &planner.ConfigError{Field: "name", Reason: "must not be empty"}
	}
	if len(field.Boundary) < 3 {
		return &planner.ConfigError{Field: "boundary", Reason: "must have at least 3 vertices"}
	}
	if geometry.Area(geometry.RingFromPoints(field.Boundary)) <= 0 {
		return &planner.ConfigError{Field: "boundary", Reason: "must enclose a positive area"}
	}
	for i, obstacle := range field.Obstacles {
		if len(obstacle.Boundary) < 3 {
			return &planner.ConfigError{
				Field:  fmt.Sprintf("obstacles[%d]", i),
				Reason: "must have at least 3 vertices",
			}
		}
	}

	if field.ID == uuid.Nil {
		field.ID = uuid.New()
	}
	if field.CreatedAt.IsZero() {
		field.CreatedAt = time.Now()
	}

	return s.fieldRepo.Save(ctx, field)
}

func (s *FieldService) GetField(ctx context.Context, id uuid.UUID) (*domain.Field, error) {
	return s.fieldRepo.FindByID(ctx, id)
}

func (s *FieldService) ListFields(ctx context.Context) ([]*domain.Field, error) {
	return s.fieldRepo.FindAll(ctx)
}

func (s *FieldService) DeleteField(ctx context.Context, id uuid.UUID) error {
	return s.fieldRepo.Delete(ctx, id)
}

// SaveMedia зберігає кадр зйомки, перевіривши що поле існує
func (s *FieldService) SaveMedia(ctx context.Context, fieldID uuid.UUID, filename, contentType string, data io.Reader, size int64) (string, error) {
	if _, err := s.fieldRepo.FindByID(ctx, fieldID); err != nil {
		return "", err
	}

	return s.storage.SaveMedia(ctx, fieldID, filename, contentType, data, size)
}

func (s *FieldService) GetMedia(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	return s.storage.GetMedia(ctx, objectKey)
}

func (s *FieldService) ListMedia(ctx context.Context, fieldID uuid.UUID) ([]string, error) {
	return s.storage.ListMediaKeys(ctx, fieldID)
}
