package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"crop-survey-system/internal/domain"
)

// PostgresDetectionRepository імплементує DetectionRepository для PostgreSQL
type PostgresDetectionRepository struct {
	db *sql.DB
}

// NewPostgresDetectionRepository створює новий екземпляр PostgresDetectionRepository
func NewPostgresDetectionRepository(db *sql.DB) *PostgresDetectionRepository {
	return &PostgresDetectionRepository{
		db: db,
	}
}

func (r *PostgresDetectionRepository) Save(ctx context.Context, detection *domain.Detection) error {
	query := `
		INSERT INTO detections (
			id, field_id, kind, confidence, x, y, bounding_w, bounding_h, frame_key, detected_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		detection.ID,
		detection.FieldID,
		detection.Kind,
		detection.Confidence,
		detection.X,
		detection.Y,
		detection.BoundingW,
		detection.BoundingH,
		detection.FrameKey,
		detection.DetectedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save detection: %w", err)
	}

	return nil
}

// SaveBatch зберігає пакет виявлень в одній транзакції
func (r *PostgresDetectionRepository) SaveBatch(ctx context.Context, detections []*domain.Detection) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO detections (
			id, field_id, kind, confidence, x, y, bounding_w, bounding_h, frame_key, detected_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, detection := range detections {
		_, err := tx.ExecContext(
			ctx,
			query,
			detection.ID,
			detection.FieldID,
			detection.Kind,
			detection.Confidence,
			detection.X,
			detection.Y,
			detection.BoundingW,
			detection.BoundingH,
			detection.FrameKey,
			detection.DetectedAt,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save detection in batch: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PostgresDetectionRepository) FindByFieldID(ctx context.Context, fieldID uuid.UUID) ([]*domain.Detection, error) {
	query := `
		SELECT id, field_id, kind, confidence, x, y, bounding_w, bounding_h, frame_key, detected_at
		FROM detections
		WHERE field_id = $1
		ORDER BY confidence DESC
	`

	return r.queryDetections(ctx, query, fieldID)
}

// FindByKind повертає виявлення заданого типу для поля
func (r *PostgresDetectionRepository) FindByKind(ctx context.Context, fieldID uuid.UUID, kind domain.DetectionKind) ([]*domain.Detection, error) {
	query := `
		SELECT id, field_id, kind, confidence, x, y, bounding_w, bounding_h, frame_key, detected_at
		FROM detections
		WHERE field_id = $1 AND kind = $2
		ORDER BY confidence DESC
	`

	return r.queryDetections(ctx, query, fieldID, kind)
}

func (r *PostgresDetectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM detections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete detection: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("detection not found: %w", sql.ErrNoRows)
	}

	return nil
}

// queryDetections виконує запит та читає рядки в доменні моделі
func (r *PostgresDetectionRepository) queryDetections(ctx context.Context, query string, args ...interface{}) ([]*domain.Detection, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	var detections []*domain.Detection
	for rows.Next() {
		var detection domain.Detection

		err := rows.Scan(
			&detection.ID,
			&detection.FieldID,
			&detection.Kind,
			&detection.Confidence,
			&detection.X,
			&detection.Y,
			&detection.BoundingW,
			&detection.BoundingH,
			&detection.FrameKey,
			&detection.DetectedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan detection row: %w", err)
		}

		detections = append(detections, &detection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating detection rows: %w", err)
	}

	return detections, nil
}
