package storage

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArtifactStorage забезпечує зберігання артефактів планів польоту та
// медіафайлів зйомки: JSON-плани й кадри лежать у MinIO, метадані — у PostgreSQL
type ArtifactStorage struct {
	db          *sql.DB
	minioClient *minio.Client
	bucketName  string
}

// NewArtifactStorage створює новий екземпляр ArtifactStorage
func NewArtifactStorage(db *sql.DB, minioEndpoint, minioAccessKey, minioSecretKey, minioBucket string, useSSL bool) (*ArtifactStorage, error) {
	// Ініціалізація MinIO клієнта
	minioClient, err := minio.New(minioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioAccessKey, minioSecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	// Перевірка наявності бакета і створення його, якщо не існує
	exists, err := minioClient.BucketExists(context.Background(), minioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		err = minioClient.MakeBucket(context.Background(), minioBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &ArtifactStorage{
		db:          db,
		minioClient: minioClient,
		bucketName:  minioBucket,
	}, nil
}

// InitializeDatabase створює схему для полів, місій та виявлень
func (s *ArtifactStorage) InitializeDatabase() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS fields (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			boundary JSONB NOT NULL,
			obstacles JSONB,
			no_fly_zones JSONB,
			reference_point JSONB,
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create fields table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS missions (
			id UUID PRIMARY KEY,
			field_id UUID NOT NULL REFERENCES fields(id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			plan JSONB NOT NULL,
			is_feasible BOOLEAN NOT NULL,
			battery_pct INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create missions table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS detections (
			id UUID PRIMARY KEY,
			field_id UUID NOT NULL REFERENCES fields(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			x DOUBLE PRECISION NOT NULL,
			y DOUBLE PRECISION NOT NULL,
			bounding_w DOUBLE PRECISION NOT NULL,
			bounding_h DOUBLE PRECISION NOT NULL,
			frame_key TEXT,
			detected_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create detections table: %w", err)
	}

	// Індекси для пошуку місій та виявлень за полем
	_, err = s.db.Exec(`
		CREATE INDEX IF NOT EXISTS missions_field_idx
		ON missions (field_id, created_at)
	`)
	if err != nil {
		return fmt.Errorf("failed to create mission index: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE INDEX IF NOT EXISTS detections_field_kind_idx
		ON detections (field_id, kind)
	`)
	if err != nil {
		return fmt.Errorf("failed to create detection index: %w", err)
	}

	return nil
}

// SavePlanArtifact зберігає JSON-план польоту місії в MinIO
func (s *ArtifactStorage) SavePlanArtifact(ctx context.Context, missionID uuid.UUID, plan []byte) (string, error) {
	objectKey := planObjectKey(missionID)

	_, err := s.minioClient.PutObject(ctx, s.bucketName, objectKey, bytes.NewReader(plan), int64(len(plan)), minio.PutObjectOptions{
		ContentType: "application/json",
		UserMetadata: map[string]string{
			"mission-id":   missionID.String(),
			"created-time": time.Now().Format(time.RFC3339),
		},
	})

	if err != nil {
		return "", fmt.Errorf("failed to save plan artifact: %w", err)
	}

	return objectKey, nil
}

// GetPlanArtifact отримує JSON-план польоту місії з MinIO
func (s *ArtifactStorage) GetPlanArtifact(ctx context.Context, missionID uuid.UUID) (io.ReadCloser, error) {
	obj, err := s.minioClient.GetObject(ctx, s.bucketName, planObjectKey(missionID), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get plan artifact: %w", err)
	}

	return obj, nil
}

// SaveMedia зберігає медіафайл зйомки поля в MinIO
func (s *ArtifactStorage) SaveMedia(ctx context.Context, fieldID uuid.UUID, filename, contentType string, data io.Reader, size int64) (string, error) {
	// Timestamp у ключі гарантує унікальність об'єкта
	objectKey := fmt.Sprintf("media/%s/%s-%s", fieldID, time.Now().Format("20060102-150405.999"), filename)

	_, err := s.minioClient.PutObject(ctx, s.bucketName, objectKey, data, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"field-id":     fieldID.String(),
			"created-time": time.Now().Format(time.RFC3339),
		},
	})

	if err != nil {
		return "", fmt.Errorf("failed to save media: %w", err)
	}

	return objectKey, nil
}

// GetMedia отримує медіафайл з MinIO за ключем об'єкта
func (s *ArtifactStorage) GetMedia(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	obj, err := s.minioClient.GetObject(ctx, s.bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}

	return obj, nil
}

// ListMediaKeys повертає ключі всіх медіафайлів поля
func (s *ArtifactStorage) ListMediaKeys(ctx context.Context, fieldID uuid.UUID) ([]string, error) {
	prefix := fmt.Sprintf("media/%s/", fieldID)

	var keys []string
	for object := range s.minioClient.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list media objects: %w", object.Err)
		}
		keys = append(keys, object.Key)
	}

	return keys, nil
}

// planObjectKey формує ключ об'єкта для плану польоту місії
func planObjectKey(missionID uuid.UUID) string {
	return fmt.Sprintf("missions/%s/flight_plan.json", missionID)
}
