package ports

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// ArtifactStorage визначає інтерфейс для зберігання артефактів планів
// польоту та медіафайлів зйомки в об'єктному сховищі
type ArtifactStorage interface {
	// Ініціалізація схеми бази даних
	InitializeDatabase() error

	// Робота з JSON-артефактами планів польоту
	SavePlanArtifact(ctx context.Context, missionID uuid.UUID, plan []byte) (string, error)
	GetPlanArtifact(ctx context.Context, missionID uuid.UUID) (io.ReadCloser, error)

	// Робота з медіафайлами зйомки поля
	SaveMedia(ctx context.Context, fieldID uuid.UUID, filename, contentType string, data io.Reader, size int64) (string, error)
	GetMedia(ctx context.Context, objectKey string) (io.ReadCloser, error)
	ListMediaKeys(ctx context.Context, fieldID uuid.UUID) ([]string, error)
}
